package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"-"`
	CompanyID    *int64 `json:"companyId"`
	RoleID       *int64 `json:"roleId"`
	ChangePrompt int    `json:"changePrompt"`
	Status       int    `json:"status"`
}

type UserPrompt struct {
	ID                int64  `json:"id"`
	PromptName        string `json:"promptName"`
	PromptDescription string `json:"promptDescription"`
	UserID            int64  `json:"userId"`
	Status            int    `json:"status"`
}

type Role struct {
	ID       int64  `json:"id"`
	RoleName string `json:"roleName"`
	Status   int    `json:"status"`
}

// CompanyRef and RoleRef are the projections embedded in the login response.
type CompanyRef struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"companyName"`
}

type RoleRef struct {
	ID       int64  `json:"id"`
	RoleName string `json:"roleName"`
}

// ProfileMatch rows are written by the external analysis pipeline; this
// service only reads them to compute per-user usage totals.
type ProfileMatch struct {
	ID             int64
	UserID         int64
	JobID          int64
	MatchScore     int
	TotalTokenUsed int64
	TotalCost      decimal.Decimal
}

// UserUpdate carries the allow-listed set of updatable user columns.
// Nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	Password     *string
	CompanyID    *int64
	RoleID       *int64
	ChangePrompt *int
	Status       *int
}

type LoginUser struct {
	User
	CompanysData *CompanyRef `json:"companysData"`
	RolesData    *RoleRef    `json:"rolesData"`
}

type UserPromptView struct {
	ID                int64  `json:"id"`
	PromptName        string `json:"promptName"`
	PromptDescription string `json:"promptDescription"`
}

// UserSummary is the composed view returned by the listing endpoints.
type UserSummary struct {
	User
	RoleName          string           `json:"roleName"`
	Prompts           []UserPromptView `json:"prompts"`
	TotalResumeParsed int              `json:"total_resume_parsed"`
}

// CompanyUserSummary additionally carries the usage totals attached to
// the per-company active listing.
type CompanyUserSummary struct {
	UserSummary
	TotalTokenUsed int64           `json:"totalTokenUsed"`
	TotalCost      decimal.Decimal `json:"totalCost"`
}

// MarshalJSON writes totalCost as a bare JSON number; decimal.Decimal
// quotes it by default, which existing API clients do not expect.
func (s CompanyUserSummary) MarshalJSON() ([]byte, error) {
	type summaryJSON struct {
		UserSummary
		TotalTokenUsed int64       `json:"totalTokenUsed"`
		TotalCost      json.Number `json:"totalCost"`
	}
	return json.Marshal(summaryJSON{
		UserSummary:    s.UserSummary,
		TotalTokenUsed: s.TotalTokenUsed,
		TotalCost:      json.Number(s.TotalCost.String()),
	})
}
