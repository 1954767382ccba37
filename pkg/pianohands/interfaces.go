package pianohands

import (
	"context"

	"github.com/hritwiksinha/PianoHands/pkg/models"
)

type Service interface {
	Analyze(ctx context.Context, notes []models.Note, difficulty models.Difficulty) (*models.AnalysisResult, error)
	AnalyzeFile(ctx context.Context, path string, difficulty models.Difficulty) (*models.AnalysisResult, []models.Note, error)
	SaveAnalysis(result *models.AnalysisResult, notes []models.Note, title string) (string, error)
	GetAnalysis(id string) (*models.StoredAnalysis, error)
	ListAnalyses() ([]models.StoredAnalysis, error)
	DeleteAnalysis(id string) error
	Close() error
}

type Storage interface {
	SaveAnalysis(a models.StoredAnalysis) (string, error)
	GetAnalysisByID(id string) (*models.StoredAnalysis, error)
	ListAnalyses() ([]models.StoredAnalysis, error)
	DeleteAnalysisByID(id string) error
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
