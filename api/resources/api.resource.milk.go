// FilePath: api/resources/api.resource.milk.go
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

// MilkHandlers encapsulates the dairy milk HTTP handlers
type MilkHandlers struct {
	service *wellness.WellnessService
}

// @Summary List milk records
// @Description Get the milk records visible to the caller within an optional time range
// @Tags milk
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Success 200 {array} models.DairyMilkInfo
// @Failure 403 {object} errors.APIError
// @Router /milk [get]
// @Security BearerAuth
func (h *MilkHandlers) ListMilk(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	filter, err := models.ParseRangeFilter(r.URL.Query())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	records, err := h.service.ListMilk(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// @Summary Record a milk entry
// @Description Store a quality/quantity record for one of the caller's ranches
// @Tags milk
// @Accept json
// @Produce json
// @Param milk body models.DairyMilk true "Milk record"
// @Success 201 {object} models.DairyMilk
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /milk [post]
// @Security BearerAuth
func (h *MilkHandlers) CreateMilk(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var milk models.DairyMilk
	if err := json.NewDecoder(r.Body).Decode(&milk); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateMilk(r.Context(), &milk); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, milk)
}

// @Summary Update a milk record
// @Description Update an existing milk record
// @Tags milk
// @Accept json
// @Param id path int true "Milk record ID"
// @Param milk body models.DairyMilk true "Milk record"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /milk/{id} [put]
// @Security BearerAuth
func (h *MilkHandlers) UpdateMilk(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	var milk models.DairyMilk
	if err := json.NewDecoder(r.Body).Decode(&milk); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	milk.ID = id

	if err := h.service.UpdateMilk(r.Context(), &milk); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete a milk record
// @Description Remove a milk record
// @Tags milk
// @Param id path int true "Milk record ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /milk/{id} [delete]
// @Security BearerAuth
func (h *MilkHandlers) DeleteMilk(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.DeleteMilk(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
