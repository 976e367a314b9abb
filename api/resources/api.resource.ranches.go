// FilePath: api/resources/api.resource.ranches.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
	"github.com/projectwellness/wellness-hub/internal/wellness"
	nuts "github.com/vaudience/go-nuts"
)

// RanchHandlers encapsulates the ranch-related HTTP handlers
type RanchHandlers struct {
	service *wellness.WellnessService
}

// @Summary List ranches
// @Description Get the ranches visible to the caller
// @Tags ranches
// @Produce json
// @Success 200 {array} models.Ranch
// @Failure 403 {object} errors.APIError
// @Router /ranch [get]
// @Security BearerAuth
func (h *RanchHandlers) ListRanches(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	ranches, err := h.service.ListRanches(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, ranches)
}

// @Summary Create a ranch
// @Description Create a ranch and associate it with the caller
// @Tags ranches
// @Accept json
// @Produce json
// @Param ranch body models.Ranch true "Ranch details"
// @Success 201 {object} models.Ranch
// @Failure 400 {object} errors.APIError
// @Router /ranch [post]
// @Security BearerAuth
func (h *RanchHandlers) CreateRanch(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var ranch models.Ranch
	if err := json.NewDecoder(r.Body).Decode(&ranch); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateRanch(r.Context(), &ranch); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, ranch)
}

// @Summary Update a ranch
// @Description Update an existing ranch
// @Tags ranches
// @Accept json
// @Param id path int true "Ranch ID"
// @Param ranch body models.Ranch true "Ranch details"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /ranch/{id} [put]
// @Security BearerAuth
func (h *RanchHandlers) UpdateRanch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	var ranch models.Ranch
	if err := json.NewDecoder(r.Body).Decode(&ranch); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	ranch.ID = id

	if err := h.service.UpdateRanch(r.Context(), &ranch); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete a ranch
// @Description Delete a ranch and everything that belongs to it
// @Tags ranches
// @Param id path int true "Ranch ID"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /ranch/{id} [delete]
// @Security BearerAuth
func (h *RanchHandlers) DeleteRanch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.DeleteRanch(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Claim a ranch
// @Description Associate an existing ranch with the caller
// @Tags ranches
// @Param id path int true "Ranch ID"
// @Success 201
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /ranch/{id}/associate [post]
// @Security BearerAuth
func (h *RanchHandlers) AssociateRanch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.AssociateRanch(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "associated"})
}
