// FilePath: api/resources/api.resource.collars.go
package resources

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/models"
	"github.com/projectwellness/wellness-hub/internal/wellness"
	nuts "github.com/vaudience/go-nuts"
)

// CollarHandlers encapsulates the GPS collar HTTP handlers
type CollarHandlers struct {
	service        *wellness.WellnessService
	maxUploadBytes int64
}

// @Summary List collars
// @Description Get the collars visible to the caller, joined with animal and ranch
// @Tags collars
// @Produce json
// @Success 200 {array} models.CollarInfo
// @Failure 403 {object} errors.APIError
// @Router /collar [get]
// @Security BearerAuth
func (h *CollarHandlers) ListCollars(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	collars, err := h.service.ListCollars(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, collars)
}

// @Summary List animals without a collar
// @Description Get animals lacking a collar; 404 when every animal is collared
// @Tags collars
// @Produce json
// @Success 200 {array} models.UncollaredAnimalInfo
// @Failure 404 {object} errors.APIError
// @Router /collar/without_collar [get]
// @Security BearerAuth
func (h *CollarHandlers) ListUncollared(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	animals, err := h.service.ListUncollaredAnimals(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, animals)
}

// @Summary Assign a collar
// @Description Register a tracking collar on an animal
// @Tags collars
// @Accept json
// @Produce json
// @Param collar body models.Collar true "Collar details"
// @Success 201 {object} models.Collar
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /collar [post]
// @Security BearerAuth
func (h *CollarHandlers) CreateCollar(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var collar models.Collar
	if err := json.NewDecoder(r.Body).Decode(&collar); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateCollar(r.Context(), &collar); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, collar)
}

// @Summary Update a collar
// @Description Update a collar the caller has access to
// @Tags collars
// @Accept json
// @Param id path int true "Collar ID"
// @Param collar body models.Collar true "Collar details"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /collar/{id} [put]
// @Security BearerAuth
func (h *CollarHandlers) UpdateCollar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	var collar models.Collar
	if err := json.NewDecoder(r.Body).Decode(&collar); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	collar.ID = id

	if err := h.service.UpdateCollar(r.Context(), &collar); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Remove a collar
// @Description Delete a collar and its telemetry
// @Tags collars
// @Param id path int true "Collar ID"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /collar/{id} [delete]
// @Security BearerAuth
func (h *CollarHandlers) DeleteCollar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.DeleteCollar(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Record a telemetry ping
// @Description Store one GPS/telemetry ping from a collar
// @Tags collars
// @Accept json
// @Produce json
// @Param ping body models.CollarGPSData true "Telemetry ping"
// @Success 201 {object} models.CollarGPSData
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /collar/data [post]
// @Security BearerAuth
func (h *CollarHandlers) RecordPing(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var ping models.CollarGPSData
	if err := json.NewDecoder(r.Body).Decode(&ping); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.RecordCollarPing(r.Context(), &ping); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, ping)
}

// @Summary List telemetry pings
// @Description Get the pings of one collar as a GeoJSON FeatureCollection
// @Tags collars
// @Produce json
// @Param collar_id query int true "Collar ID"
// @Param limit query int false "Maximum rows (default 50)"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} geo.FeatureCollection
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /collar/data [get]
// @Security BearerAuth
func (h *CollarHandlers) ListData(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	collarID, filter, err := collarDataQuery(r)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	collection, err := h.service.ListCollarData(r.Context(), collarID, filter)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, collection)
}

// @Summary Get a collar route
// @Description Get the time-ordered track of one collar as a GeoJSON LineString
// @Tags collars
// @Produce json
// @Param collar_id query int true "Collar ID"
// @Param limit query int false "Maximum rows (default 50)"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} geo.FeatureCollection
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /collar/data/route [get]
// @Security BearerAuth
func (h *CollarHandlers) GetRoute(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	collarID, filter, err := collarDataQuery(r)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	route, err := h.service.GetCollarRoute(r.Context(), collarID, filter)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, route)
}

// @Summary Upload a KML track
// @Description Parse a KML file and store its placemarks as pings for a collar.
// @Description Placemarks missing coordinates or a timestamp are skipped.
// @Tags collars
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "KML document"
// @Param collar_id formData int true "Collar ID"
// @Success 201 {object} wellness.KMLIngestSummary
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /collar/data/upload-xml [post]
// @Security BearerAuth
func (h *CollarHandlers) UploadKML(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondWithError(w, errors.NewValidationError("invalid multipart form", err).WithRequestID(requestID))
		return
	}

	collarID, err := parsePathID(r.FormValue("collar_id"))
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, errors.NewValidationError("file is required", err).WithRequestID(requestID))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".kml" && ext != ".xml" {
		respondWithError(w, errors.NewValidationError("unsupported file type: "+ext, nil).WithRequestID(requestID))
		return
	}

	summary, err := h.service.IngestKML(r.Context(), collarID, file)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, summary)
}

func collarDataQuery(r *http.Request) (int64, models.RangeFilter, error) {
	collarID, err := parsePathID(r.URL.Query().Get("collar_id"))
	if err != nil {
		return 0, models.RangeFilter{}, err
	}

	filter, err := models.ParseRangeFilter(r.URL.Query())
	if err != nil {
		return 0, models.RangeFilter{}, err
	}
	return collarID, filter, nil
}
