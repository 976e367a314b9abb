package wellness

import (
	"context"
	"strings"
	"time"

	"github.com/itsatony/struccy"
	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Token is the response of POST /auth/token
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

var knownRoles = map[string]bool{
	models.RoleAdmin:       true,
	models.RoleRancher:     true,
	models.RoleVet:         true,
	models.RoleCheesemaker: true,
}

// Register creates a new user account. The username and email are unique;
// a clash surfaces as a conflict. An empty role defaults to rancher.
func (s *WellnessService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, errors.NewValidationError("username is required", nil)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, errors.NewValidationError("email is required", nil)
	}
	if req.Password == "" {
		return nil, errors.NewValidationError("password is required", nil)
	}

	role := req.Role
	if role == "" {
		role = models.RoleRancher
	}
	if !knownRoles[role] {
		return nil, errors.NewValidationError("unknown role: "+role, nil)
	}

	hash, err := s.Auth.HashPassword(req.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Registered user %s (%s)", user.Username, user.Role)
	return filterUser(user)
}

// Login verifies the credentials and issues a bearer token. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *WellnessService) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.NewAuthError("incorrect username or password", nil)
	}

	if !s.Auth.VerifyPassword(user.PasswordHash, password) {
		return nil, errors.NewAuthError("incorrect username or password", nil)
	}

	token, err := s.Auth.IssueToken(user)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", err)
	}

	return &Token{AccessToken: token, TokenType: "bearer"}, nil
}

// ListUsers returns every account. Admin only.
func (s *WellnessService) ListUsers(ctx context.Context) ([]*models.User, error) {
	_, scope, err := s.authorize(ctx, auth.ResourceUsers, auth.ActionRead)
	if err != nil {
		return nil, err
	}
	if scope != auth.ScopeAll {
		return nil, errors.NewAuthorizationError("listing users requires admin", nil)
	}

	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.User, 0, len(users))
	for _, user := range users {
		safe, err := filterUser(user)
		if err != nil {
			nuts.L.Warnf("[UserService] Failed to filter user %d: %v", user.ID, err)
			continue
		}
		filtered = append(filtered, safe)
	}
	return filtered, nil
}

// DeleteUser removes an account by id. Admin only.
func (s *WellnessService) DeleteUser(ctx context.Context, id int64) error {
	_, scope, err := s.authorize(ctx, auth.ResourceUsers, auth.ActionWrite)
	if err != nil {
		return err
	}
	if scope != auth.ScopeAll {
		return errors.NewAuthorizationError("deleting users requires admin", nil)
	}

	if _, err := s.Users.Get(ctx, id); err != nil {
		return err
	}

	nuts.L.Infof("[UserService] Deleting user %d", id)
	return s.Users.Delete(ctx, id)
}

// UpdateUserRole changes the role of the named user. Admin only.
func (s *WellnessService) UpdateUserRole(ctx context.Context, username, role string) error {
	_, scope, err := s.authorize(ctx, auth.ResourceUsers, auth.ActionWrite)
	if err != nil {
		return err
	}
	if scope != auth.ScopeAll {
		return errors.NewAuthorizationError("changing roles requires admin", nil)
	}

	if !knownRoles[role] {
		return errors.NewValidationError("unknown role: "+role, nil)
	}

	nuts.L.Infof("[UserService] Setting role of %s to %s", username, role)
	return s.Users.UpdateRole(ctx, username, role)
}

// filterUser strips fields the caller may not read, most importantly the
// password hash (readxs "system").
func filterUser(user *models.User) (*models.User, error) {
	roles := []string{user.Role}

	filteredMap, err := struccy.StructToMapFieldsWithReadXS(user, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter user fields", err)
	}
	// Merge as system so role-gated fields that survived the read filter
	// (like Role itself) land in the result.
	filtered := &models.User{}
	if _, err := struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, []string{"system"}); err != nil {
		return nil, errors.NewInternalError("failed to map filtered user fields", err)
	}
	return filtered, nil
}
