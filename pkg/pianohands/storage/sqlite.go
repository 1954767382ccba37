package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/hritwiksinha/PianoHands/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultDBFile = "pianohands.sqlite3"
const errDBClientNil = "db client is nil"

const reasonSeparator = "|"

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Analysis struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Title      string `gorm:"index:idx_analysis_title" json:"title"`
	Difficulty string `json:"difficulty"`
	TotalCost  int    `json:"total_cost"`
	NoteCount  int    `json:"note_count"`
	CreatedAt  time.Time
}

type NoteFingering struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	AnalysisID string `gorm:"type:varchar(36);index:idx_fingering_analysis" json:"analysis_id"`
	NoteIndex  int    `json:"note_index"`
	Pitch      int    `json:"pitch"`
	Finger     int    `json:"finger"`
	Hand       string `json:"hand"`
	Reasons    string `json:"reasons"`
}

type PatternRow struct {
	ID         uint    `gorm:"primaryKey;autoIncrement"`
	AnalysisID string  `gorm:"type:varchar(36);index:idx_pattern_analysis" json:"analysis_id"`
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
	Hand       string  `json:"hand"`
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("PIANOHANDS_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !os.IsExist(err) {
		if filepath.Dir(dbPath) != "." {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Analysis{}, &NoteFingering{}, &PatternRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// SaveAnalysis inserts the analysis row, its fingerings and its
// pattern segments in batches, rolling the row back if a batch
// insert fails.
func (c *DBClient) SaveAnalysis(a models.StoredAnalysis) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errDBClientNil)
	}

	row := Analysis{
		ID:         uuid.NewString(),
		Title:      a.Title,
		Difficulty: a.Difficulty,
		TotalCost:  a.TotalCost,
		NoteCount:  a.NoteCount,
	}
	if err := c.DB.Create(&row).Error; err != nil {
		return "", fmt.Errorf("creating analysis: %w", err)
	}

	entries := make([]NoteFingering, 0, len(a.Fingerings))
	for _, f := range a.Fingerings {
		entries = append(entries, NoteFingering{
			AnalysisID: row.ID,
			NoteIndex:  f.NoteIndex,
			Pitch:      f.Pitch,
			Finger:     f.Finger,
			Hand:       f.Hand,
			Reasons:    strings.Join(f.Reasons, reasonSeparator),
		})
	}
	if len(entries) > 0 {
		if err := c.DB.CreateInBatches(entries, 500).Error; err != nil {
			c.DB.Delete(&row)
			return "", fmt.Errorf("batch insert fingerings: %w", err)
		}
	}

	patterns := make([]PatternRow, 0, len(a.Segments))
	for _, s := range a.Segments {
		patterns = append(patterns, PatternRow{
			AnalysisID: row.ID,
			StartIndex: s.StartIndex,
			EndIndex:   s.EndIndex,
			Type:       s.Type,
			Confidence: s.Confidence,
			Hand:       s.Hand,
		})
	}
	if len(patterns) > 0 {
		if err := c.DB.CreateInBatches(patterns, 500).Error; err != nil {
			c.DB.Where("analysis_id = ?", row.ID).Delete(&NoteFingering{})
			c.DB.Delete(&row)
			return "", fmt.Errorf("batch insert patterns: %w", err)
		}
	}

	return row.ID, nil
}

func (c *DBClient) GetAnalysisByID(id string) (*models.StoredAnalysis, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var row Analysis
	if err := c.DB.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis %s not found", id)
		}
		return nil, fmt.Errorf("querying analysis: %w", err)
	}

	var fingerings []NoteFingering
	if err := c.DB.Where("analysis_id = ?", id).Order("note_index asc").Find(&fingerings).Error; err != nil {
		return nil, fmt.Errorf("querying fingerings: %w", err)
	}

	out := &models.StoredAnalysis{
		ID:         row.ID,
		Title:      row.Title,
		Difficulty: row.Difficulty,
		TotalCost:  row.TotalCost,
		NoteCount:  row.NoteCount,
	}
	for _, f := range fingerings {
		var reasons []string
		if f.Reasons != "" {
			reasons = strings.Split(f.Reasons, reasonSeparator)
		}
		out.Fingerings = append(out.Fingerings, models.StoredFingering{
			NoteIndex: f.NoteIndex,
			Pitch:     f.Pitch,
			Finger:    f.Finger,
			Hand:      f.Hand,
			Reasons:   reasons,
		})
	}

	var patterns []PatternRow
	// Insertion order preserves the merged segment ordering.
	if err := c.DB.Where("analysis_id = ?", id).Order("id asc").Find(&patterns).Error; err != nil {
		return nil, fmt.Errorf("querying patterns: %w", err)
	}
	for _, p := range patterns {
		out.Segments = append(out.Segments, models.StoredSegment{
			StartIndex: p.StartIndex,
			EndIndex:   p.EndIndex,
			Type:       p.Type,
			Confidence: p.Confidence,
			Hand:       p.Hand,
		})
	}
	return out, nil
}

func (c *DBClient) ListAnalyses() ([]models.StoredAnalysis, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}

	var rows []Analysis
	if err := c.DB.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}

	out := make([]models.StoredAnalysis, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.StoredAnalysis{
			ID:         r.ID,
			Title:      r.Title,
			Difficulty: r.Difficulty,
			TotalCost:  r.TotalCost,
			NoteCount:  r.NoteCount,
		})
	}
	return out, nil
}

func (c *DBClient) DeleteAnalysisByID(id string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("analysis_id = ?", id).Delete(&NoteFingering{}).Error; err != nil {
			return err
		}
		if err := tx.Where("analysis_id = ?", id).Delete(&PatternRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&Analysis{}).Error; err != nil {
			return err
		}
		return nil
	})
}
