// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/projectwellness/wellness-hub/api/middleware"
	"github.com/projectwellness/wellness-hub/api/resources"
	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/wellness"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.AuthMiddleware
	resources *resources.Resources
}

func NewRouter(svc *wellness.WellnessService, authService *auth.Service, maxUploadBytes int64) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewAuthMiddleware(authService),
		resources: resources.NewResources(svc, maxUploadBytes),
	}

	r.setupRoutes()
	return r
}

// Resources exposes the handler set so the server can wire the health
// check
func (r *Router) Resources() *resources.Resources {
	return r.resources
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		r.resources.HealthCheck(w, req)
	}).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", r.resources.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/token", r.resources.Auth.Token).Methods(http.MethodPost)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Admin
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/users", r.resources.Admin.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.resources.Admin.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{username}/role", r.resources.Admin.UpdateUserRole).Methods(http.MethodPut)

	// Ranches
	ranches := protected.PathPrefix("/ranch").Subrouter()
	ranches.HandleFunc("", r.resources.Ranches.ListRanches).Methods(http.MethodGet)
	ranches.HandleFunc("", r.resources.Ranches.CreateRanch).Methods(http.MethodPost)
	ranches.HandleFunc("/{id}", r.resources.Ranches.UpdateRanch).Methods(http.MethodPut)
	ranches.HandleFunc("/{id}", r.resources.Ranches.DeleteRanch).Methods(http.MethodDelete)
	ranches.HandleFunc("/{id}/associate", r.resources.Ranches.AssociateRanch).Methods(http.MethodPost)

	// Animals and health records
	animals := protected.PathPrefix("/animal").Subrouter()
	animals.HandleFunc("", r.resources.Animals.ListAnimals).Methods(http.MethodGet)
	animals.HandleFunc("", r.resources.Animals.CreateAnimal).Methods(http.MethodPost)
	animals.HandleFunc("/healthrecord", r.resources.Animals.ListHealthRecords).Methods(http.MethodGet)
	animals.HandleFunc("/healthrecord", r.resources.Animals.CreateHealthRecord).Methods(http.MethodPost)
	animals.HandleFunc("/healthrecord/{id}", r.resources.Animals.DeleteHealthRecord).Methods(http.MethodDelete)
	animals.HandleFunc("/{id}", r.resources.Animals.UpdateAnimal).Methods(http.MethodPut)
	animals.HandleFunc("/{id}", r.resources.Animals.DeleteAnimal).Methods(http.MethodDelete)

	// Weather stations
	stations := protected.PathPrefix("/station").Subrouter()
	stations.HandleFunc("", r.resources.Stations.ListStations).Methods(http.MethodGet)
	stations.HandleFunc("", r.resources.Stations.CreateStation).Methods(http.MethodPost)
	stations.HandleFunc("/data", r.resources.Stations.RecordReading).Methods(http.MethodPost)
	stations.HandleFunc("/{id}", r.resources.Stations.UpdateStation).Methods(http.MethodPut)
	stations.HandleFunc("/{id}", r.resources.Stations.DeleteStation).Methods(http.MethodDelete)
	stations.HandleFunc("/{id}/ranches/{ranchID}", r.resources.Stations.AssociateRanch).Methods(http.MethodPost)
	stations.HandleFunc("/{id}/location", r.resources.Stations.GetLocation).Methods(http.MethodGet)
	stations.HandleFunc("/{id}/data", r.resources.Stations.ListData).Methods(http.MethodGet)

	// GPS collars
	collars := protected.PathPrefix("/collar").Subrouter()
	collars.HandleFunc("", r.resources.Collars.ListCollars).Methods(http.MethodGet)
	collars.HandleFunc("", r.resources.Collars.CreateCollar).Methods(http.MethodPost)
	collars.HandleFunc("/without_collar", r.resources.Collars.ListUncollared).Methods(http.MethodGet)
	collars.HandleFunc("/data", r.resources.Collars.ListData).Methods(http.MethodGet)
	collars.HandleFunc("/data", r.resources.Collars.RecordPing).Methods(http.MethodPost)
	collars.HandleFunc("/data/route", r.resources.Collars.GetRoute).Methods(http.MethodGet)
	collars.HandleFunc("/data/upload-xml", r.resources.Collars.UploadKML).Methods(http.MethodPost)
	collars.HandleFunc("/{id}", r.resources.Collars.UpdateCollar).Methods(http.MethodPut)
	collars.HandleFunc("/{id}", r.resources.Collars.DeleteCollar).Methods(http.MethodDelete)

	// KML upload alias kept for existing clients
	protected.HandleFunc("/kml/upload_kml", r.resources.Collars.UploadKML).Methods(http.MethodPost)

	// Dairy milk
	milk := protected.PathPrefix("/milk").Subrouter()
	milk.HandleFunc("", r.resources.Milk.ListMilk).Methods(http.MethodGet)
	milk.HandleFunc("", r.resources.Milk.CreateMilk).Methods(http.MethodPost)
	milk.HandleFunc("/{id}", r.resources.Milk.UpdateMilk).Methods(http.MethodPut)
	milk.HandleFunc("/{id}", r.resources.Milk.DeleteMilk).Methods(http.MethodDelete)

	// Wellbeing indexes
	wellindex := protected.PathPrefix("/wellindex").Subrouter()
	wellindex.HandleFunc("", r.resources.WellIndexes.ListWellIndexes).Methods(http.MethodGet)
	wellindex.HandleFunc("", r.resources.WellIndexes.CreateWellIndex).Methods(http.MethodPost)
	wellindex.HandleFunc("/{id}", r.resources.WellIndexes.UpdateWellIndex).Methods(http.MethodPut)
	wellindex.HandleFunc("/{id}", r.resources.WellIndexes.DeleteWellIndex).Methods(http.MethodDelete)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
