package service

import (
	"context"
	"errors"

	"github.com/job-analysis/backend/internal/db"
	"github.com/job-analysis/backend/internal/model"
	"github.com/job-analysis/backend/internal/security"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrMissingUserID = errors.New("user id missing")
)

type UserRepo interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUserWithPrompts(ctx context.Context, user *model.User, prompts []model.UserPrompt) (int64, error)
	UpdateUserWithPrompts(ctx context.Context, id int64, upd model.UserUpdate, prompts []model.UserPrompt) error
	SetUserStatus(ctx context.Context, id int64, status int) error
	ListUsersByCompany(ctx context.Context, companyID int64, status int) ([]model.User, error)
	ListUsersByStatus(ctx context.Context, status int) ([]model.User, error)
	GetCompanyRef(ctx context.Context, id int64) (*model.CompanyRef, error)
	GetRoleRef(ctx context.Context, id int64) (*model.RoleRef, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	ListUserPrompts(ctx context.Context) ([]model.UserPrompt, error)
	ListProfileMatches(ctx context.Context) ([]model.ProfileMatch, error)
}

// UserService implements the user directory: CRUD on user records plus
// the composed listing views joining roles, prompts and match totals in
// application code.
type UserService struct {
	repo   UserRepo
	tokens *TokenService
}

func NewUserService(repo UserRepo, tokens *TokenService) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// AddUser inserts a user and its prompts as one transaction. A
// duplicate email is not an error: it reports created=false and the
// caller answers 200 with an "already exists" message, same as a
// fresh insert.
func (s *UserService) AddUser(ctx context.Context, req model.AddUserRequest) (bool, error) {
	_, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return false, nil
	}
	if !db.IsNoRows(err) {
		return false, err
	}

	digest, err := security.HashPassword(req.Password)
	if err != nil {
		return false, err
	}

	status := 1
	if req.Status != nil {
		status = *req.Status
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     digest,
		CompanyID:    req.CompanyID,
		RoleID:       req.RoleID,
		ChangePrompt: req.ChangePrompt,
		Status:       status,
	}

	if _, err := s.repo.CreateUserWithPrompts(ctx, user, promptRows(req.Prompts)); err != nil {
		return false, err
	}
	return true, nil
}

// Login verifies the credential, attaches the user's company and role
// projections and issues a bearer token for the email.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.LoginUser, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if !security.CheckPassword(password, user.Password) {
		return nil, "", ErrWrongPassword
	}

	composed := &model.LoginUser{User: *user}

	if user.CompanyID != nil {
		company, err := s.repo.GetCompanyRef(ctx, *user.CompanyID)
		if err != nil && !db.IsNoRows(err) {
			return nil, "", err
		}
		composed.CompanysData = company
	}

	if user.RoleID != nil {
		role, err := s.repo.GetRoleRef(ctx, *user.RoleID)
		if err != nil && !db.IsNoRows(err) {
			return nil, "", err
		}
		composed.RolesData = role
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", err
	}

	return composed, token, nil
}

// UpdateUser applies the allow-listed partial update and replaces the
// user's prompt set wholesale, both in a single transaction. A supplied
// password is re-hashed; an empty one is ignored.
func (s *UserService) UpdateUser(ctx context.Context, req model.UpdateUserRequest) error {
	if req.ID == 0 {
		return ErrMissingUserID
	}

	upd := model.UserUpdate{
		Name:         req.Name,
		Email:        req.Email,
		CompanyID:    req.CompanyID,
		RoleID:       req.RoleID,
		ChangePrompt: req.ChangePrompt,
		Status:       req.Status,
	}

	if req.Password != nil && *req.Password != "" {
		digest, err := security.HashPassword(*req.Password)
		if err != nil {
			return err
		}
		upd.Password = &digest
	}

	return s.repo.UpdateUserWithPrompts(ctx, req.ID, upd, promptRows(req.Prompts))
}

// DeleteUser is a soft delete: status goes to 0 and stays there.
// Repeated calls are no-ops.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.SetUserStatus(ctx, id, 0)
}

// ListCompanyUsers returns the active users of a company with role
// name, prompts and usage totals attached.
func (s *UserService) ListCompanyUsers(ctx context.Context, companyID int64) ([]model.CompanyUserSummary, error) {
	users, err := s.repo.ListUsersByCompany(ctx, companyID, 1)
	if err != nil {
		return nil, err
	}

	roles, prompts, matches, err := s.loadLookups(ctx)
	if err != nil {
		return nil, err
	}

	matchesByUser := groupMatches(matches)
	list := make([]model.CompanyUserSummary, 0, len(users))
	for _, summary := range composeSummaries(users, roles, prompts, matchesByUser) {
		totalTokens := int64(0)
		totalCost := decimal.Zero
		for _, m := range matchesByUser[summary.ID] {
			totalTokens += m.TotalTokenUsed
			totalCost = totalCost.Add(m.TotalCost)
		}
		list = append(list, model.CompanyUserSummary{
			UserSummary:    summary,
			TotalTokenUsed: totalTokens,
			TotalCost:      totalCost,
		})
	}
	return list, nil
}

// ListInactiveUsers returns all soft-deleted users across companies,
// composed the same way minus the usage totals.
func (s *UserService) ListInactiveUsers(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.repo.ListUsersByStatus(ctx, 0)
	if err != nil {
		return nil, err
	}

	roles, prompts, matches, err := s.loadLookups(ctx)
	if err != nil {
		return nil, err
	}

	return composeSummaries(users, roles, prompts, groupMatches(matches)), nil
}

func (s *UserService) loadLookups(ctx context.Context) ([]model.Role, []model.UserPrompt, []model.ProfileMatch, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	prompts, err := s.repo.ListUserPrompts(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	matches, err := s.repo.ListProfileMatches(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return roles, prompts, matches, nil
}

func composeSummaries(users []model.User, roles []model.Role, prompts []model.UserPrompt, matchesByUser map[int64][]model.ProfileMatch) []model.UserSummary {
	roleNames := make(map[int64]string, len(roles))
	for _, r := range roles {
		roleNames[r.ID] = r.RoleName
	}

	promptsByUser := make(map[int64][]model.UserPromptView)
	for _, p := range prompts {
		promptsByUser[p.UserID] = append(promptsByUser[p.UserID], model.UserPromptView{
			ID:                p.ID,
			PromptName:        p.PromptName,
			PromptDescription: p.PromptDescription,
		})
	}

	list := make([]model.UserSummary, 0, len(users))
	for _, u := range users {
		roleName := ""
		if u.RoleID != nil {
			roleName = roleNames[*u.RoleID]
		}
		userPrompts := promptsByUser[u.ID]
		if userPrompts == nil {
			userPrompts = []model.UserPromptView{}
		}
		list = append(list, model.UserSummary{
			User:              u,
			RoleName:          roleName,
			Prompts:           userPrompts,
			TotalResumeParsed: len(matchesByUser[u.ID]),
		})
	}
	return list
}

func groupMatches(matches []model.ProfileMatch) map[int64][]model.ProfileMatch {
	byUser := make(map[int64][]model.ProfileMatch)
	for _, m := range matches {
		byUser[m.UserID] = append(byUser[m.UserID], m)
	}
	return byUser
}

func promptRows(payloads []model.PromptPayload) []model.UserPrompt {
	rows := make([]model.UserPrompt, 0, len(payloads))
	for _, p := range payloads {
		status := 1
		if p.Status != nil {
			status = *p.Status
		}
		rows = append(rows, model.UserPrompt{
			PromptName:        p.PromptName,
			PromptDescription: p.PromptDescription,
			Status:            status,
		})
	}
	return rows
}
