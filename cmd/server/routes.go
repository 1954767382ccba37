package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// setupRoutes registers all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/health/metrics", s.handleMetrics).Methods(http.MethodGet)

	router.HandleFunc("/api/analyze", s.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/api/analyses", s.handleCreateAnalysis).Methods(http.MethodPost)
	router.HandleFunc("/api/analyses", s.handleListAnalyses).Methods(http.MethodGet)
	router.HandleFunc("/api/analyses/{id}", s.handleGetAnalysis).Methods(http.MethodGet)
	router.HandleFunc("/api/analyses/{id}", s.handleDeleteAnalysis).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:         3600,
	})
	return c.Handler(router)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	handler := s.setupRoutes()

	addr := fmt.Sprintf(":%d", s.config.Port)
	s.log.Infof("PianoHands server starting on %s", addr)
	s.log.Infof("   Database: %s", s.config.DBPath)
	s.log.Infof("   CORS Origins: %v", s.config.AllowedOrigins)
	s.log.Infof("Endpoints:")
	s.log.Infof("   GET    /health              - Health check")
	s.log.Infof("   GET    /api/health/metrics  - Server metrics")
	s.log.Infof("   POST   /api/analyze         - Analyze a note stream")
	s.log.Infof("   POST   /api/analyses        - Analyze and persist (SMF upload or JSON notes)")
	s.log.Infof("   GET    /api/analyses        - List stored analyses")
	s.log.Infof("   GET    /api/analyses/{id}   - Get analysis by ID")
	s.log.Infof("   DELETE /api/analyses/{id}   - Delete analysis by ID")

	return http.ListenAndServe(addr, handler)
}
