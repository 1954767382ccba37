package main

import (
	"fmt"

	"github.com/hritwiksinha/PianoHands/pkg/models"
)

// MaxNotesHardLimit bounds a single analyze request (~a long
// multi-movement score).
const MaxNotesHardLimit = 50000

// NoteDTO mirrors the core Note record over the wire.
type NoteDTO struct {
	Pitch         int     `json:"pitch"`
	Duration      float64 `json:"duration"`
	Voice         int     `json:"voice,omitempty"`
	Staff         int     `json:"staff"`
	MeasureNumber int     `json:"measure_number,omitempty"`
	Beat          float64 `json:"beat"`
	IsChord       bool    `json:"is_chord,omitempty"`
	IsGrace       bool    `json:"is_grace,omitempty"`
	IsRest        bool    `json:"is_rest,omitempty"`
	HasSlur       bool    `json:"has_slur,omitempty"`
	HasTrill      bool    `json:"has_trill,omitempty"`
	HasMordent    bool    `json:"has_mordent,omitempty"`
	HasTurn       bool    `json:"has_turn,omitempty"`
	HasAccent     bool    `json:"has_accent,omitempty"`
	HasStaccato   bool    `json:"has_staccato,omitempty"`
}

// AnalyzeRequest is the body for POST /api/analyze.
type AnalyzeRequest struct {
	Notes      []NoteDTO `json:"notes"`
	Difficulty string    `json:"difficulty,omitempty"`
	Title      string    `json:"title,omitempty"`
}

func (r *AnalyzeRequest) Validate() error {
	if len(r.Notes) == 0 {
		return fmt.Errorf("notes cannot be empty")
	}
	if len(r.Notes) > MaxNotesHardLimit {
		return fmt.Errorf("too many notes: %d (maximum: %d)", len(r.Notes), MaxNotesHardLimit)
	}
	for i, n := range r.Notes {
		if n.Pitch < 0 || n.Pitch > 127 {
			return fmt.Errorf("note %d: pitch %d out of range", i, n.Pitch)
		}
		if !n.IsRest && n.Duration <= 0 {
			return fmt.Errorf("note %d: duration must be positive", i)
		}
	}
	return nil
}

// ToNotes converts the request into core notes, dropping rests.
func (r *AnalyzeRequest) ToNotes() []models.Note {
	notes := make([]models.Note, 0, len(r.Notes))
	for _, n := range r.Notes {
		if n.IsRest {
			continue
		}
		notes = append(notes, models.Note{
			Pitch:         n.Pitch,
			Duration:      n.Duration,
			Voice:         n.Voice,
			Staff:         n.Staff,
			Hand:          models.HandForStaff(n.Staff),
			MeasureNumber: n.MeasureNumber,
			Beat:          n.Beat,
			IsChord:       n.IsChord,
			IsGrace:       n.IsGrace,
			HasSlur:       n.HasSlur,
			HasTrill:      n.HasTrill,
			HasMordent:    n.HasMordent,
			HasTurn:       n.HasTurn,
			HasAccent:     n.HasAccent,
			HasStaccato:   n.HasStaccato,
		})
	}
	return notes
}

// SegmentDTO is a labeled segment in API responses.
type SegmentDTO struct {
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Hand       string  `json:"hand"`
}

// AnalyzeResponse is the response for POST /api/analyze.
type AnalyzeResponse struct {
	Fingers    []int        `json:"fingers"`
	Reasons    [][]string   `json:"reasons"`
	TotalCost  int          `json:"total_cost"`
	Difficulty string       `json:"difficulty"`
	Segments   []SegmentDTO `json:"segments"`
	AnalysisID string       `json:"analysis_id,omitempty"`
}

// AnalysisSummaryDTO describes a stored analysis.
type AnalysisSummaryDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	TotalCost  int    `json:"total_cost"`
	NoteCount  int    `json:"note_count"`
}

// ListAnalysesResponse is the response for GET /api/analyses.
type ListAnalysesResponse struct {
	Analyses []AnalysisSummaryDTO `json:"analyses"`
	Count    int                  `json:"count"`
}

// FingeringDTO is one stored note label.
type FingeringDTO struct {
	NoteIndex int      `json:"note_index"`
	Pitch     int      `json:"pitch"`
	Finger    int      `json:"finger"`
	Hand      string   `json:"hand"`
	Reasons   []string `json:"reasons,omitempty"`
}

// AnalysisDetailResponse is the response for GET /api/analyses/{id}.
type AnalysisDetailResponse struct {
	AnalysisSummaryDTO
	Fingerings []FingeringDTO `json:"fingerings"`
	Segments   []SegmentDTO   `json:"segments,omitempty"`
}

// DeleteAnalysisResponse is the response for DELETE /api/analyses/{id}.
type DeleteAnalysisResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// MetricsResponse provides server health and database metrics.
type MetricsResponse struct {
	Status        string `json:"status"`
	DatabasePath  string `json:"database_path"`
	AnalysisCount int    `json:"analysis_count"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
