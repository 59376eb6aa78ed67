package model

type PromptPayload struct {
	PromptName        string `json:"promptName"`
	PromptDescription string `json:"promptDescription"`
	Status            *int   `json:"status"`
}

// AddUserRequest creates an active user unless the payload says
// otherwise: an omitted status defaults to 1.
type AddUserRequest struct {
	Name         string          `json:"name" binding:"required"`
	Email        string          `json:"email" binding:"required,email"`
	Password     string          `json:"password" binding:"required"`
	CompanyID    *int64          `json:"companyId"`
	RoleID       *int64          `json:"roleId"`
	ChangePrompt int             `json:"changePrompt"`
	Status       *int            `json:"status"`
	Prompts      []PromptPayload `json:"prompts"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest is a partial update: nil fields keep their stored
// value. The prompts list always replaces the user's prompt set.
type UpdateUserRequest struct {
	ID           int64           `json:"id"`
	Name         *string         `json:"name"`
	Email        *string         `json:"email"`
	Password     *string         `json:"password"`
	CompanyID    *int64          `json:"companyId"`
	RoleID       *int64          `json:"roleId"`
	ChangePrompt *int            `json:"changePrompt"`
	Status       *int            `json:"status"`
	Prompts      []PromptPayload `json:"prompts"`
}
