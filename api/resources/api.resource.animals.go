// FilePath: api/resources/api.resource.animals.go
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

// AnimalHandlers encapsulates the animal and health record HTTP handlers
type AnimalHandlers struct {
	service *wellness.WellnessService
}

// @Summary List animals
// @Description Get the animals visible to the caller, joined with their ranch
// @Tags animals
// @Produce json
// @Success 200 {array} models.AnimalInfo
// @Failure 403 {object} errors.APIError
// @Router /animal [get]
// @Security BearerAuth
func (h *AnimalHandlers) ListAnimals(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	animals, err := h.service.ListAnimals(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, animals)
}

// @Summary Register an animal
// @Description Add an animal to one of the caller's ranches
// @Tags animals
// @Accept json
// @Produce json
// @Param animal body models.Animal true "Animal details"
// @Success 201 {object} models.Animal
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /animal [post]
// @Security BearerAuth
func (h *AnimalHandlers) CreateAnimal(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var animal models.Animal
	if err := json.NewDecoder(r.Body).Decode(&animal); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateAnimal(r.Context(), &animal); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, animal)
}

// @Summary Update an animal
// @Description Update an animal the caller has access to
// @Tags animals
// @Accept json
// @Param id path int true "Animal ID"
// @Param animal body models.Animal true "Animal details"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /animal/{id} [put]
// @Security BearerAuth
func (h *AnimalHandlers) UpdateAnimal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	var animal models.Animal
	if err := json.NewDecoder(r.Body).Decode(&animal); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	animal.ID = id

	if err := h.service.UpdateAnimal(r.Context(), &animal); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete an animal
// @Description Delete an animal with its collars, telemetry and health records
// @Tags animals
// @Param id path int true "Animal ID"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /animal/{id} [delete]
// @Security BearerAuth
func (h *AnimalHandlers) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.DeleteAnimal(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List health records
// @Description Get health checks for one animal within an optional time range
// @Tags animals
// @Produce json
// @Param animal_id query int true "Animal ID"
// @Param limit query int false "Maximum rows (default 50)"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Success 200 {array} models.HealthRecord
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /animal/healthrecord [get]
// @Security BearerAuth
func (h *AnimalHandlers) ListHealthRecords(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	animalID, err := parsePathID(r.URL.Query().Get("animal_id"))
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	filter, err := models.ParseRangeFilter(r.URL.Query())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	records, err := h.service.ListHealthRecords(r.Context(), animalID, filter)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// @Summary Record a health check
// @Description Store a health check for an animal the caller has access to
// @Tags animals
// @Accept json
// @Produce json
// @Param record body models.HealthRecord true "Health check details"
// @Success 201 {object} models.HealthRecord
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /animal/healthrecord [post]
// @Security BearerAuth
func (h *AnimalHandlers) CreateHealthRecord(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var record models.HealthRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateHealthRecord(r.Context(), &record); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// @Summary Delete a health record
// @Description Remove a single health check entry
// @Tags animals
// @Param id path int true "Health record ID"
// @Success 204
// @Failure 404 {object} errors.APIError
// @Router /animal/healthrecord/{id} [delete]
// @Security BearerAuth
func (h *AnimalHandlers) DeleteHealthRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.DeleteHealthRecord(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
