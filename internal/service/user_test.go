package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/job-analysis/backend/internal/config"
	"github.com/job-analysis/backend/internal/model"
	"github.com/job-analysis/backend/internal/security"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	usersByEmail map[string]*model.User
	activeUsers  []model.User
	statusUsers  []model.User
	roles        []model.Role
	prompts      []model.UserPrompt
	matches      []model.ProfileMatch
	companies    map[int64]*model.CompanyRef
	roleRefs     map[int64]*model.RoleRef

	createdUser       *model.User
	createdPrompts    []model.UserPrompt
	updatedID         int64
	updatedFields     model.UserUpdate
	replacedPrompts   []model.UserPrompt
	statusSet         map[int64]int
	companyListStatus int
	statusListArg     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: map[string]*model.User{},
		companies:    map[int64]*model.CompanyRef{},
		roleRefs:     map[int64]*model.RoleRef{},
		statusSet:    map[int64]int{},
	}
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) CreateUserWithPrompts(ctx context.Context, user *model.User, prompts []model.UserPrompt) (int64, error) {
	f.createdUser = user
	f.createdPrompts = prompts
	return 1, nil
}

func (f *fakeUserRepo) UpdateUserWithPrompts(ctx context.Context, id int64, upd model.UserUpdate, prompts []model.UserPrompt) error {
	f.updatedID = id
	f.updatedFields = upd
	f.replacedPrompts = prompts
	return nil
}

func (f *fakeUserRepo) SetUserStatus(ctx context.Context, id int64, status int) error {
	f.statusSet[id] = status
	return nil
}

func (f *fakeUserRepo) ListUsersByCompany(ctx context.Context, companyID int64, status int) ([]model.User, error) {
	f.companyListStatus = status
	return f.activeUsers, nil
}

func (f *fakeUserRepo) ListUsersByStatus(ctx context.Context, status int) ([]model.User, error) {
	f.statusListArg = status
	return f.statusUsers, nil
}

func (f *fakeUserRepo) GetCompanyRef(ctx context.Context, id int64) (*model.CompanyRef, error) {
	if c, ok := f.companies[id]; ok {
		return c, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetRoleRef(ctx context.Context, id int64) (*model.RoleRef, error) {
	if r, ok := f.roleRefs[id]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListRoles(ctx context.Context) ([]model.Role, error) {
	return f.roles, nil
}

func (f *fakeUserRepo) ListUserPrompts(ctx context.Context) ([]model.UserPrompt, error) {
	return f.prompts, nil
}

func (f *fakeUserRepo) ListProfileMatches(ctx context.Context) ([]model.ProfileMatch, error) {
	return f.matches, nil
}

func newTestUserService(t *testing.T, repo UserRepo) *UserService {
	t.Helper()
	tokens, err := NewTokenService(config.AuthConfig{JWTSecret: "test-secret", AccessTTL: "30m"})
	require.NoError(t, err)
	return NewUserService(repo, tokens)
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestAddUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(t, repo)

	created, err := svc.AddUser(context.Background(), model.AddUserRequest{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "pw1",
		Prompts: []model.PromptPayload{
			{PromptName: "intro", PromptDescription: "first pass"},
		},
	})
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, repo.createdUser)
	assert.NotEqual(t, "pw1", repo.createdUser.Password)
	assert.True(t, security.CheckPassword("pw1", repo.createdUser.Password))
	assert.Equal(t, 1, repo.createdUser.Status, "omitted status defaults to active")
	require.Len(t, repo.createdPrompts, 1)
	assert.Equal(t, 1, repo.createdPrompts[0].Status, "prompt status defaults to 1")
}

func TestAddUserExplicitStatus(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(t, repo)

	created, err := svc.AddUser(context.Background(), model.AddUserRequest{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "pw1",
		Status:   intPtr(0),
	})
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, repo.createdUser)
	assert.Equal(t, 0, repo.createdUser.Status, "an explicit status is honored")
}

func TestAddUserDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.usersByEmail["a@x.com"] = &model.User{ID: 1, Email: "a@x.com"}
	svc := newTestUserService(t, repo)

	created, err := svc.AddUser(context.Background(), model.AddUserRequest{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "pw1",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, repo.createdUser, "no second row for a duplicate email")
}

func TestLoginUserNotFound(t *testing.T) {
	svc := newTestUserService(t, newFakeUserRepo())

	_, _, err := svc.Login(context.Background(), "a@x.com", "pw1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	digest, err := security.HashPassword("pw1")
	require.NoError(t, err)
	repo.usersByEmail["a@x.com"] = &model.User{ID: 1, Email: "a@x.com", Password: digest}
	svc := newTestUserService(t, repo)

	_, _, err = svc.Login(context.Background(), "a@x.com", "pw2")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	digest, err := security.HashPassword("pw1")
	require.NoError(t, err)
	repo.usersByEmail["a@x.com"] = &model.User{
		ID:        1,
		Email:     "a@x.com",
		Password:  digest,
		CompanyID: int64Ptr(7),
		RoleID:    int64Ptr(3),
		Status:    1,
	}
	repo.companies[7] = &model.CompanyRef{ID: 7, CompanyName: "Acme"}
	repo.roleRefs[3] = &model.RoleRef{ID: 3, RoleName: "Recruiter"}
	svc := newTestUserService(t, repo)

	user, token, err := svc.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, user.CompanysData)
	assert.Equal(t, "Acme", user.CompanysData.CompanyName)
	require.NotNil(t, user.RolesData)
	assert.Equal(t, "Recruiter", user.RolesData.RoleName)

	subject, err := svc.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestLoginToleratesDanglingRefs(t *testing.T) {
	repo := newFakeUserRepo()
	digest, err := security.HashPassword("pw1")
	require.NoError(t, err)
	repo.usersByEmail["a@x.com"] = &model.User{
		ID:        1,
		Email:     "a@x.com",
		Password:  digest,
		CompanyID: int64Ptr(99),
		RoleID:    int64Ptr(99),
	}
	svc := newTestUserService(t, repo)

	user, _, err := svc.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Nil(t, user.CompanysData)
	assert.Nil(t, user.RolesData)
}

func TestUpdateUserMissingID(t *testing.T) {
	svc := newTestUserService(t, newFakeUserRepo())

	err := svc.UpdateUser(context.Background(), model.UpdateUserRequest{})
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(t, repo)

	err := svc.UpdateUser(context.Background(), model.UpdateUserRequest{
		ID:       5,
		Name:     strPtr("Bob"),
		Password: strPtr("newpw"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.updatedID)
	require.NotNil(t, repo.updatedFields.Password)
	assert.True(t, security.CheckPassword("newpw", *repo.updatedFields.Password))
}

func TestUpdateUserIgnoresEmptyPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(t, repo)

	err := svc.UpdateUser(context.Background(), model.UpdateUserRequest{
		ID:       5,
		Password: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, repo.updatedFields.Password)
}

func TestUpdateUserReplacesPrompts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(t, repo)

	err := svc.UpdateUser(context.Background(), model.UpdateUserRequest{ID: 5})
	require.NoError(t, err)
	assert.Empty(t, repo.replacedPrompts, "empty prompts list still replaces the set")

	err = svc.UpdateUser(context.Background(), model.UpdateUserRequest{
		ID: 5,
		Prompts: []model.PromptPayload{
			{PromptName: "p1", PromptDescription: "d1"},
			{PromptName: "p2", PromptDescription: "d2"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, repo.replacedPrompts, 2)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(t, repo)

	require.NoError(t, svc.DeleteUser(context.Background(), 9))
	assert.Equal(t, 0, repo.statusSet[9])

	// Idempotent: a second call is a no-op.
	require.NoError(t, svc.DeleteUser(context.Background(), 9))
	assert.Equal(t, 0, repo.statusSet[9])
}

func TestListCompanyUsersComposition(t *testing.T) {
	repo := newFakeUserRepo()
	repo.activeUsers = []model.User{
		{ID: 1, Name: "Ann", Email: "a@x.com", RoleID: int64Ptr(3), Status: 1},
		{ID: 2, Name: "Bob", Email: "b@x.com", Status: 1},
	}
	repo.roles = []model.Role{{ID: 3, RoleName: "Recruiter", Status: 1}}
	repo.prompts = []model.UserPrompt{
		{ID: 10, PromptName: "p1", PromptDescription: "d1", UserID: 1, Status: 1},
		{ID: 11, PromptName: "p2", PromptDescription: "d2", UserID: 1, Status: 1},
	}
	repo.matches = []model.ProfileMatch{
		{ID: 20, UserID: 1, JobID: 100, TotalTokenUsed: 100, TotalCost: decimal.RequireFromString("1.50")},
		{ID: 21, UserID: 1, JobID: 101, TotalTokenUsed: 200, TotalCost: decimal.RequireFromString("2.25")},
	}
	svc := newTestUserService(t, repo)

	list, err := svc.ListCompanyUsers(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, repo.companyListStatus, "active listing queries status 1 only")

	ann := list[0]
	assert.Equal(t, "Recruiter", ann.RoleName)
	assert.Len(t, ann.Prompts, 2)
	assert.Equal(t, 2, ann.TotalResumeParsed)
	assert.Equal(t, int64(300), ann.TotalTokenUsed)
	assert.True(t, ann.TotalCost.Equal(decimal.RequireFromString("3.75")))

	bob := list[1]
	assert.Equal(t, "", bob.RoleName, "missing role maps to empty string")
	assert.NotNil(t, bob.Prompts)
	assert.Len(t, bob.Prompts, 0)
	assert.Equal(t, 0, bob.TotalResumeParsed)
	assert.Equal(t, int64(0), bob.TotalTokenUsed)
	assert.True(t, bob.TotalCost.IsZero(), "no matches means zero cost")
}

func TestListInactiveUsersComposition(t *testing.T) {
	repo := newFakeUserRepo()
	repo.statusUsers = []model.User{
		{ID: 4, Name: "Cat", Email: "c@x.com", RoleID: int64Ptr(3), Status: 0},
	}
	repo.roles = []model.Role{{ID: 3, RoleName: "Recruiter", Status: 1}}
	repo.matches = []model.ProfileMatch{
		{ID: 30, UserID: 4, JobID: 102, TotalTokenUsed: 50, TotalCost: decimal.New(1, 0)},
	}
	svc := newTestUserService(t, repo)

	list, err := svc.ListInactiveUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, repo.statusListArg, "inactive listing queries status 0 only")
	assert.Equal(t, "Recruiter", list[0].RoleName)
	assert.Equal(t, 1, list[0].TotalResumeParsed)
	assert.NotNil(t, list[0].Prompts)
}
