// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/projectwellness/wellness-hub/internal/errors"
	"github.com/projectwellness/wellness-hub/internal/wellness"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Auth        *AuthHandlers
	Admin       *AdminHandlers
	Ranches     *RanchHandlers
	Animals     *AnimalHandlers
	Stations    *StationHandlers
	Collars     *CollarHandlers
	Milk        *MilkHandlers
	WellIndexes *WellIndexHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *wellness.WellnessService, maxUploadBytes int64) *Resources {
	return &Resources{
		Auth:        &AuthHandlers{service: svc},
		Admin:       &AdminHandlers{service: svc},
		Ranches:     &RanchHandlers{service: svc},
		Animals:     &AnimalHandlers{service: svc},
		Stations:    &StationHandlers{service: svc},
		Collars:     &CollarHandlers{service: svc, maxUploadBytes: maxUploadBytes},
		Milk:        &MilkHandlers{service: svc},
		WellIndexes: &WellIndexHandlers{service: svc},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// Helper functions

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondWithServiceError preserves the status code of typed service
// errors; anything untyped becomes a 500.
func respondWithServiceError(w http.ResponseWriter, err error, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError("unexpected error", err).WithRequestID(requestID))
}

func parsePathID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("invalid id: "+value, err)
	}
	return id, nil
}
