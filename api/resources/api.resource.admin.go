// FilePath: api/resources/api.resource.admin.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/wellness"
	nuts "github.com/vaudience/go-nuts"
)

// AdminHandlers encapsulates the admin-only account management handlers
type AdminHandlers struct {
	service *wellness.WellnessService
}

// @Summary List all users
// @Description Get every registered account. Admin only.
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} errors.APIError
// @Router /admin/users [get]
// @Security BearerAuth
func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, users)
}

// @Summary Delete a user
// @Description Remove an account by id. Admin only.
// @Tags admin
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /admin/users/{id} [delete]
// @Security BearerAuth
func (h *AdminHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Change a user's role
// @Description Assign a new role to the named user. Admin only.
// @Tags admin
// @Accept json
// @Param username path string true "Username"
// @Param role body object true "New role"
// @Success 204
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /admin/users/{username}/role [put]
// @Security BearerAuth
func (h *AdminHandlers) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]
	requestID := nuts.NID("req", 12)

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.UpdateUserRole(r.Context(), username, body.Role); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
