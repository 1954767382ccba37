package pianohands

import (
	"context"
	"fmt"

	"github.com/hritwiksinha/PianoHands/pkg/logger"
	"github.com/hritwiksinha/PianoHands/pkg/models"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/ingest"
)

// fingeringService is the default implementation of the Service
// interface.
type fingeringService struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &fingeringService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

// Analyze runs the fingering pipeline over an already-decoded note
// stream. The core is total; the error slot only reports context
// cancellation between the two stages.
func (s *fingeringService) Analyze(ctx context.Context, notes []models.Note, difficulty models.Difficulty) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Infof("Analyzing %d notes at %s difficulty", len(notes), difficulty)
	result := AnalyzeNotes(notes, difficulty)
	s.log.Infof("Assigned %d fingers across %d segments, total cost %d",
		len(result.Solution.Fingers), len(result.Segments), result.Solution.TotalCost)
	return result, nil
}

// AnalyzeFile decodes an SMF score and runs the pipeline over it,
// returning the decoded stream alongside the result so callers can
// line fingers up with their notes.
func (s *fingeringService) AnalyzeFile(ctx context.Context, path string, difficulty models.Difficulty) (*models.AnalysisResult, []models.Note, error) {
	s.log.Infof("Decoding score: %s", path)

	notes, err := ingest.ReadSMF(path)
	if err != nil {
		return nil, nil, fmt.Errorf("score decoding failed: %w", err)
	}
	s.log.Infof("Decoded %d pitched notes", len(notes))

	result, err := s.Analyze(ctx, notes, difficulty)
	if err != nil {
		return nil, nil, err
	}
	return result, notes, nil
}

// SaveAnalysis persists a result together with its note stream.
func (s *fingeringService) SaveAnalysis(result *models.AnalysisResult, notes []models.Note, title string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("nil analysis result")
	}
	if len(notes) != len(result.Solution.Fingers) {
		return "", fmt.Errorf("note count %d does not match finger count %d",
			len(notes), len(result.Solution.Fingers))
	}

	stored := models.StoredAnalysis{
		Title:      title,
		Difficulty: result.Difficulty.String(),
		TotalCost:  result.Solution.TotalCost,
		NoteCount:  len(notes),
	}
	for i, n := range notes {
		stored.Fingerings = append(stored.Fingerings, models.StoredFingering{
			NoteIndex: i,
			Pitch:     n.Pitch,
			Finger:    result.Solution.Fingers[i],
			Hand:      n.Hand.String(),
			Reasons:   result.Solution.Reasons[i],
		})
	}
	for _, seg := range result.Segments {
		stored.Segments = append(stored.Segments, models.StoredSegment{
			StartIndex: seg.StartIndex,
			EndIndex:   seg.EndIndex,
			Type:       seg.Type.String(),
			Confidence: seg.Confidence,
			Hand:       seg.Hand.String(),
		})
	}

	id, err := s.storage.SaveAnalysis(stored)
	if err != nil {
		return "", fmt.Errorf("failed to save analysis: %w", err)
	}
	s.log.Infof("Saved analysis %s (%q, %d notes)", id, title, len(notes))
	return id, nil
}

func (s *fingeringService) GetAnalysis(id string) (*models.StoredAnalysis, error) {
	return s.storage.GetAnalysisByID(id)
}

func (s *fingeringService) ListAnalyses() ([]models.StoredAnalysis, error) {
	return s.storage.ListAnalyses()
}

func (s *fingeringService) DeleteAnalysis(id string) error {
	return s.storage.DeleteAnalysisByID(id)
}

func (s *fingeringService) Close() error {
	return s.storage.Close()
}
