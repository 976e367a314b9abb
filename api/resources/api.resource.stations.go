// FilePath: api/resources/api.resource.stations.go
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

// StationHandlers encapsulates the weather station HTTP handlers
type StationHandlers struct {
	service *wellness.WellnessService
}

// @Summary List stations
// @Description Get the stations visible to the caller
// @Tags stations
// @Produce json
// @Success 200 {array} models.StationInfo
// @Failure 403 {object} errors.APIError
// @Router /station [get]
// @Security BearerAuth
func (h *StationHandlers) ListStations(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	stations, err := h.service.ListStations(r.Context())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, stations)
}

// @Summary Create a station
// @Description Register a weather station at the given coordinates
// @Tags stations
// @Accept json
// @Produce json
// @Param station body models.Station true "Station details"
// @Success 201 {object} models.Station
// @Failure 400 {object} errors.APIError
// @Router /station [post]
// @Security BearerAuth
func (h *StationHandlers) CreateStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var station models.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.CreateStation(r.Context(), &station); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, station)
}

// @Summary Update a station
// @Description Update a station the caller has access to
// @Tags stations
// @Accept json
// @Param id path int true "Station ID"
// @Param station body models.Station true "Station details"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /station/{id} [put]
// @Security BearerAuth
func (h *StationHandlers) UpdateStation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	var station models.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	station.ID = id

	if err := h.service.UpdateStation(r.Context(), &station); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Delete a station
// @Description Delete a station and its readings
// @Tags stations
// @Param id path int true "Station ID"
// @Success 204
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /station/{id} [delete]
// @Security BearerAuth
func (h *StationHandlers) DeleteStation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.DeleteStation(r.Context(), id); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Link a station to a ranch
// @Description Associate a station with a ranch the caller has access to
// @Tags stations
// @Param id path int true "Station ID"
// @Param ranchID path int true "Ranch ID"
// @Success 201
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /station/{id}/ranches/{ranchID} [post]
// @Security BearerAuth
func (h *StationHandlers) AssociateRanch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	stationID, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}
	ranchID, err := parsePathID(vars["ranchID"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	if err := h.service.AssociateStationRanch(r.Context(), stationID, ranchID); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "associated"})
}

// @Summary Get a station location
// @Description Get the station position as a GeoJSON point feature
// @Tags stations
// @Produce json
// @Param id path int true "Station ID"
// @Success 200 {object} geo.Feature
// @Failure 404 {object} errors.APIError
// @Router /station/{id}/location [get]
// @Security BearerAuth
func (h *StationHandlers) GetLocation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	feature, err := h.service.GetStationLocation(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, feature)
}

// @Summary List station readings
// @Description Get measurements for one station within an optional time range
// @Tags stations
// @Produce json
// @Param id path int true "Station ID"
// @Param limit query int false "Maximum rows (default 50)"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Success 200 {array} models.StationReading
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /station/{id}/data [get]
// @Security BearerAuth
func (h *StationHandlers) ListData(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	id, err := parsePathID(vars["id"])
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	filter, err := models.ParseRangeFilter(r.URL.Query())
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	readings, err := h.service.ListStationData(r.Context(), id, filter)
	if err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, readings)
}

// @Summary Record a station reading
// @Description Store one weather/air-quality measurement
// @Tags stations
// @Accept json
// @Produce json
// @Param reading body models.StationReading true "Measurement"
// @Success 201 {object} models.StationReading
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /station/data [post]
// @Security BearerAuth
func (h *StationHandlers) RecordReading(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var reading models.StationReading
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.service.RecordStationReading(r.Context(), &reading); err != nil {
		respondWithServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, reading)
}
