// FilePath: internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/projectwellness/wellness-hub/api"
	"github.com/projectwellness/wellness-hub/internal/auth"
	"github.com/projectwellness/wellness-hub/internal/config"
	"github.com/projectwellness/wellness-hub/internal/database"
	"github.com/projectwellness/wellness-hub/internal/monitoring"
	"github.com/projectwellness/wellness-hub/internal/repository/postgres"
	"github.com/projectwellness/wellness-hub/internal/wellness"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	service    *wellness.WellnessService
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Initialize services
	s.db = initDB(s.config.Database.Postgres)
	s.service = initializeWellnessService(s.config, s.db)
	s.monitoring = monitoring.NewService(monitoring.Config{
		LogLevel:           s.config.Monitoring.LogLevel,
		PrometheusEndpoint: s.config.Monitoring.PrometheusEndpoint,
	})

	// Set up cleanup event handlers
	s.setupCleanupHandlers()

	// Build the router and wrap it with CORS and access logging
	router := api.NewRouter(s.service, s.service.Auth, s.config.Upload.MaxFileSize)
	router.Resources().SetHealthCheck(s.handleHealth())

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	s.srv.Handler = handlers.CombinedLoggingHandler(os.Stdout, cors(router))

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing database: %v", err)
		}
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth reports service and database status
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{
			"status":   "ok",
			"version":  nuts.GetVersion(),
			"database": "ok",
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(status)
	}
}

func (s *Server) setupCleanupHandlers() {
	// Handle ranch deletion events
	s.service.Cleanup.OnCleanup("ranch.deleted", func(id int64) {
		nuts.L.Infof("[Cleanup] Ranch %d and all associated data deleted", id)
		s.monitoring.RecordEvent("ranch_deletion", map[string]string{
			"ranch_id": strconv.FormatInt(id, 10),
		})
	})

	// Handle animal deletion events
	s.service.Cleanup.OnCleanup("animal.deleted", func(id int64) {
		nuts.L.Infof("[Cleanup] Animal %d and all associated data deleted", id)
		s.monitoring.RecordEvent("animal_deletion", map[string]string{
			"animal_id": strconv.FormatInt(id, 10),
		})
	})

	// Handle collar deletion events
	s.service.Cleanup.OnCleanup("collar.deleted", func(id int64) {
		nuts.L.Infof("[Cleanup] Collar %d and its telemetry deleted", id)
		s.monitoring.RecordEvent("collar_deletion", map[string]string{
			"collar_id": strconv.FormatInt(id, 10),
		})
	})
}

// initializeWellnessService creates and configures the wellness service
func initializeWellnessService(cfg *config.Config, db database.DB) *wellness.WellnessService {
	users := postgres.NewUserRepository(db)
	ranches := postgres.NewRanchRepository(db)
	animals := postgres.NewAnimalRepository(db)
	healthRecords := postgres.NewHealthRecordRepository(db)
	stations := postgres.NewStationRepository(db)
	stationData := postgres.NewStationDataRepository(db)
	collars := postgres.NewCollarRepository(db)
	collarData := postgres.NewCollarDataRepository(db)
	milk := postgres.NewDairyMilkRepository(db)
	wellIndexes := postgres.NewWellIndexRepository(db)

	authService := auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenLifetime)

	svc := wellness.New(users, ranches, animals, healthRecords, stations,
		stationData, collars, collarData, milk, wellIndexes, authService)
	if err := svc.Validate(); err != nil {
		nuts.L.Fatalf("[Server] Invalid service wiring: %v", err)
	}
	return svc
}

func initDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to Postgres: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping database: %v", err)
	}

	if err := database.VerifyPostGIS(wrappedDB); err != nil {
		nuts.L.Fatalf("[Server] PostGIS extension not available: %v", err)
	}
	return wrappedDB
}
