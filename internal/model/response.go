package model

// MessageResponse is the uniform envelope: the transport status code is
// duplicated in the body next to a human-readable message.
type MessageResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

type LoginResponse struct {
	StatusCode  int        `json:"status_code"`
	Message     string     `json:"message"`
	User        *LoginUser `json:"user"`
	TokenType   string     `json:"token_type"`
	AccessToken string     `json:"access_token"`
}

type MeResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       string `json:"data"`
}

type UsersListResponse struct {
	StatusCode int                  `json:"status_code"`
	Message    string               `json:"message"`
	UsersList  []CompanyUserSummary `json:"users_list"`
}

type InactiveUsersListResponse struct {
	StatusCode int           `json:"status_code"`
	Message    string        `json:"message"`
	UsersList  []UserSummary `json:"inactive_users_list"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
