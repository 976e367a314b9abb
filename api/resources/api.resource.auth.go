// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/wellness"
	nuts "github.com/vaudience/go-nuts"
)

// AuthHandlers encapsulates registration and login
type AuthHandlers struct {
	service *wellness.WellnessService
}

// @Summary Register a new user
// @Description Create a user account with username, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param user body wellness.RegisterRequest true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req wellness.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// @Summary Obtain an access token
// @Description Exchange username and password for a bearer token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} wellness.Token
// @Failure 401 {object} errors.APIError
// @Router /auth/token [post]
func (h *AuthHandlers) Token(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	username, password, err := credentialsFromRequest(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid credentials payload", err).WithRequestID(requestID))
		return
	}

	token, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, token)
}

// credentialsFromRequest accepts either a JSON body or classic form
// fields, so both browser form posts and API clients work.
func credentialsFromRequest(r *http.Request) (string, string, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", "", err
		}
		return body.Username, body.Password, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	return r.PostFormValue("username"), r.PostFormValue("password"), nil
}
