package auth

import (
	"testing"
	"time"

	"github.com/projectwellness/wellness-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	svc := NewService("test-secret", 30*time.Minute)

	hash, err := svc.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, svc.VerifyPassword(hash, "hunter2"))
	assert.False(t, svc.VerifyPassword(hash, "hunter3"))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", 30*time.Minute)
	user := &models.User{ID: 42, Username: "alice", Role: models.RoleRancher}

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	ctx, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ctx.UserID)
	assert.Equal(t, "alice", ctx.Username)
	assert.Equal(t, models.RoleRancher, ctx.Role)
}

func TestAuthenticateRejectsWrongKey(t *testing.T) {
	issuer := NewService("secret-one", 30*time.Minute)
	verifier := NewService("secret-two", 30*time.Minute)
	user := &models.User{ID: 1, Username: "alice", Role: models.RoleRancher}

	token, err := issuer.IssueToken(user)
	require.NoError(t, err)

	_, err = verifier.Authenticate(token)
	assert.Error(t, err)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)
	user := &models.User{ID: 1, Username: "alice", Role: models.RoleRancher}

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.Authenticate(token)
	assert.Error(t, err)
}

func TestAuthenticateRejectsMissingClaims(t *testing.T) {
	svc := NewService("test-secret", 30*time.Minute)

	// No username
	token, err := svc.IssueToken(&models.User{ID: 7, Role: models.RoleRancher})
	require.NoError(t, err)
	_, err = svc.Authenticate(token)
	assert.Error(t, err)

	// No user id
	token, err = svc.IssueToken(&models.User{Username: "bob", Role: models.RoleRancher})
	require.NoError(t, err)
	_, err = svc.Authenticate(token)
	assert.Error(t, err)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", 30*time.Minute)

	_, err := svc.Authenticate("not.a.token")
	assert.Error(t, err)
}
