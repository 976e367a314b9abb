// FilePath: api/resources/api.resource.wellindex.go
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

// WellIndexHandlers encapsulates the wellbeing index HTTP handlers
type WellIndexHandlers struct {
	service *wellness.WellnessService
}

// @Summary List wellbeing indexes
// @Description Get the wellbeing index rows visible to the caller
// @Tags wellindex
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Success 200 {array} models.WellIndexInfo
// @Failure 403 {object} errors.APIError
// @Router /wellindex [get]
// @Security BearerAuth
func (h *WellIndexHandlers) ListWellIndexes(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filter, err := models.ParseRangeFilter(r.URL.Query())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	indexes, err := h.service.ListWellIndexes(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, indexes)
}

// @Summary Record a wellbeing index
// @Description Store an externally computed wellbeing score for a ranch
// @Tags wellindex
// @Accept json
// @Produce json
// @Param index body models.WellIndex true "Wellbeing index"
// @Success 201 {object} models.WellIndex
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /wellindex [post]
// @Security BearerAuth
func (h *WellIndexHandlers) CreateWellIndex(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var index models.WellIndex
	if err := json.NewDecoder(r.Body).Decode(&index); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateWellIndex(r.Context(), &index); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, index)
}

// @Summary Update a wellbeing index
// @Description Update an existing wellbeing index row
// @Tags wellindex
// @Accept json
// @Param id path int true "Wellbeing index ID"
// @Param index body models.WellIndex true "Wellbeing index"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /wellindex/{id} [put]
// @Security BearerAuth
func (h *WellIndexHandlers) UpdateWellIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	var index models.WellIndex
	if err := json.NewDecoder(r.Body).Decode(&index); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	index.ID = id

	if err := h.service.UpdateWellIndex(r.Context(), &index); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete a wellbeing index
// @Description Remove a wellbeing index row
// @Tags wellindex
// @Param id path int true "Wellbeing index ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /wellindex/{id} [delete]
// @Security BearerAuth
func (h *WellIndexHandlers) DeleteWellIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.DeleteWellIndex(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
