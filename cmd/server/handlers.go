package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/hritwiksinha/PianoHands/pkg/logger"
	"github.com/hritwiksinha/PianoHands/pkg/models"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service pianohands.Service
	config  *ServerConfig
	log     pianohands.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	TempDir        string
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service pianohands.Service, config *ServerConfig) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "PianoHands API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":         "GET /health",
			"metrics":        "GET /api/health/metrics",
			"analyze":        "POST /api/analyze",
			"createAnalysis": "POST /api/analyses",
			"analyses":       "GET /api/analyses",
			"getAnalysis":    "GET /api/analyses/{id}",
			"delete":         "DELETE /api/analyses/{id}",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleMetrics handles GET /api/health/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	analyses, err := s.service.ListAnalyses()
	if err != nil {
		s.log.Errorf("Failed to get analysis count: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve metrics")
		return
	}

	s.respondJSON(w, http.StatusOK, MetricsResponse{
		Status:        "healthy",
		DatabasePath:  s.config.DBPath,
		AnalysisCount: len(analyses),
	})
}

// handleAnalyze handles POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Errorf("Failed to decode request: %v", err)
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	notes := req.ToNotes()
	difficulty := models.ParseDifficulty(req.Difficulty)

	s.log.Infof("Analyzing %d notes (%s)", len(notes), difficulty)
	result, err := s.service.Analyze(ctx, notes, difficulty)
	if err != nil {
		s.log.Errorf("Analysis failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	resp := AnalyzeResponse{
		Fingers:    result.Solution.Fingers,
		Reasons:    result.Solution.Reasons,
		TotalCost:  result.Solution.TotalCost,
		Difficulty: result.Difficulty.String(),
		Segments:   segmentDTOs(result.Segments),
	}

	if req.Title != "" {
		id, err := s.service.SaveAnalysis(result, notes, req.Title)
		if err != nil {
			s.log.Errorf("Failed to save analysis: %v", err)
			s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save analysis: %v", err))
			return
		}
		resp.AnalysisID = id
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleCreateAnalysis handles POST /api/analyses: analyze and
// persist, from either a multipart SMF upload or a JSON note array.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		s.createAnalysisFromUpload(ctx, w, r)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Errorf("Failed to decode request: %v", err)
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	notes := req.ToNotes()
	difficulty := models.ParseDifficulty(req.Difficulty)
	result, err := s.service.Analyze(ctx, notes, difficulty)
	if err != nil {
		s.log.Errorf("Analysis failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	s.respondCreated(w, result, notes, req.Title)
}

// createAnalysisFromUpload decodes an uploaded score file and runs
// the pipeline over it. Max upload size 10MB.
func (s *Server) createAnalysisFromUpload(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		s.log.Errorf("Failed to parse form: %v", err)
		s.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	difficulty := models.ParseDifficulty(r.FormValue("difficulty"))

	file, header, err := r.FormFile("score")
	if err != nil {
		s.log.Errorf("Failed to get score file: %v", err)
		s.respondError(w, http.StatusBadRequest, "score file is required")
		return
	}
	defer file.Close()

	tempFile := filepath.Join(s.config.TempDir, fmt.Sprintf("upload_%d_%s", time.Now().UnixNano(), header.Filename))
	out, err := os.Create(tempFile)
	if err != nil {
		s.log.Errorf("Failed to create temp file: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to process upload")
		return
	}
	defer out.Close()
	defer os.Remove(tempFile)

	if _, err := io.Copy(out, file); err != nil {
		s.log.Errorf("Failed to save file: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}
	out.Close()

	s.log.Infof("Analyzing uploaded score: %s", header.Filename)
	result, notes, err := s.service.AnalyzeFile(ctx, tempFile, difficulty)
	if err != nil {
		s.log.Errorf("Failed to analyze score: %v", err)
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to analyze score: %v", err))
		return
	}

	s.respondCreated(w, result, notes, title)
}

// respondCreated persists the result and writes the analyze payload.
func (s *Server) respondCreated(w http.ResponseWriter, result *models.AnalysisResult, notes []models.Note, title string) {
	id, err := s.service.SaveAnalysis(result, notes, title)
	if err != nil {
		s.log.Errorf("Failed to save analysis: %v", err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save analysis: %v", err))
		return
	}

	s.log.Infof("Created analysis %s (%q, %d notes)", id, title, len(notes))
	s.respondJSON(w, http.StatusCreated, AnalyzeResponse{
		Fingers:    result.Solution.Fingers,
		Reasons:    result.Solution.Reasons,
		TotalCost:  result.Solution.TotalCost,
		Difficulty: result.Difficulty.String(),
		Segments:   segmentDTOs(result.Segments),
		AnalysisID: id,
	})
}

func segmentDTOs(segments []models.PatternSegment) []SegmentDTO {
	out := make([]SegmentDTO, len(segments))
	for i, seg := range segments {
		out[i] = SegmentDTO{
			StartIndex: seg.StartIndex,
			EndIndex:   seg.EndIndex,
			Type:       seg.Type.String(),
			Confidence: seg.Confidence,
			Hand:       seg.Hand.String(),
		}
	}
	return out
}

// handleListAnalyses handles GET /api/analyses
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := s.service.ListAnalyses()
	if err != nil {
		s.log.Errorf("Failed to list analyses: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve analyses")
		return
	}

	dtos := make([]AnalysisSummaryDTO, len(analyses))
	for i, a := range analyses {
		dtos[i] = AnalysisSummaryDTO{
			ID:         a.ID,
			Title:      a.Title,
			Difficulty: a.Difficulty,
			TotalCost:  a.TotalCost,
			NoteCount:  a.NoteCount,
		}
	}

	s.respondJSON(w, http.StatusOK, ListAnalysesResponse{
		Analyses: dtos,
		Count:    len(dtos),
	})
}

// handleGetAnalysis handles GET /api/analyses/{id}
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	a, err := s.service.GetAnalysis(id)
	if err != nil {
		s.log.Warnf("Analysis not found: %s", id)
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Analysis %s not found", id))
		return
	}

	resp := AnalysisDetailResponse{
		AnalysisSummaryDTO: AnalysisSummaryDTO{
			ID:         a.ID,
			Title:      a.Title,
			Difficulty: a.Difficulty,
			TotalCost:  a.TotalCost,
			NoteCount:  a.NoteCount,
		},
	}
	for _, f := range a.Fingerings {
		resp.Fingerings = append(resp.Fingerings, FingeringDTO{
			NoteIndex: f.NoteIndex,
			Pitch:     f.Pitch,
			Finger:    f.Finger,
			Hand:      f.Hand,
			Reasons:   f.Reasons,
		})
	}
	for _, seg := range a.Segments {
		resp.Segments = append(resp.Segments, SegmentDTO{
			StartIndex: seg.StartIndex,
			EndIndex:   seg.EndIndex,
			Type:       seg.Type,
			Confidence: seg.Confidence,
			Hand:       seg.Hand,
		})
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// handleDeleteAnalysis handles DELETE /api/analyses/{id}
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := s.service.GetAnalysis(id); err != nil {
		s.log.Warnf("Analysis not found for deletion: %s", id)
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Analysis %s not found", id))
		return
	}

	if err := s.service.DeleteAnalysis(id); err != nil {
		s.log.Errorf("Failed to delete analysis %s: %v", id, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete analysis")
		return
	}

	s.log.Infof("Deleted analysis %s", id)
	s.respondJSON(w, http.StatusOK, DeleteAnalysisResponse{
		Message: "Analysis deleted successfully",
		ID:      id,
	})
}
