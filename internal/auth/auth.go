// FilePath: internal/auth/auth.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Service issues and validates the bearer tokens used by the API and
// hashes user passwords. Tokens are HS256-signed and time-boxed.
type Service struct {
	secret   []byte
	lifetime time.Duration
}

// Claims carried inside a token: subject holds the username, id and role
// the database user id and role string.
type Claims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// UserContext is the authenticated caller attached to each request
type UserContext struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewService creates an auth service with the given signing secret and
// token lifetime.
func NewService(secret string, lifetime time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// HashPassword returns a salted bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash
func (s *Service) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken creates a signed token for the user, valid for the
// configured lifetime.
func (s *Service) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// Authenticate validates a bearer token and extracts the caller identity.
// Invalid signatures, expired tokens and missing claims all fail with an
// authentication error.
func (s *Service) Authenticate(tokenString string) (*UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAuthError("unexpected signing method", nil)
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAuthError("could not validate user", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.UserID == 0 {
		return nil, errors.NewAuthError("could not validate user", nil)
	}

	return &UserContext{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Role:     claims.Role,
	}, nil
}
