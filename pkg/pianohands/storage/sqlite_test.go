package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hritwiksinha/PianoHands/pkg/models"
)

func setupTestDB(t *testing.T) *DBClient {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_pianohands.sqlite3")
	client, err := NewDBClientWithPath(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test db: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})
	return client
}

func sampleAnalysis() models.StoredAnalysis {
	return models.StoredAnalysis{
		Title:      "Scale Study",
		Difficulty: "intermediate",
		TotalCost:  -268,
		NoteCount:  3,
		Fingerings: []models.StoredFingering{
			{NoteIndex: 0, Pitch: 60, Finger: 1, Hand: "RH", Reasons: []string{"Matches position"}},
			{NoteIndex: 1, Pitch: 62, Finger: 2, Hand: "RH", Reasons: []string{"Natural progression", "Scale fingering"}},
			{NoteIndex: 2, Pitch: 64, Finger: 3, Hand: "RH", Reasons: nil},
		},
		Segments: []models.StoredSegment{
			{StartIndex: 0, EndIndex: 2, Type: "scale", Confidence: 0.92, Hand: "RH"},
		},
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	client := setupTestDB(t)

	id, err := client.SaveAnalysis(sampleAnalysis())
	if err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty analysis ID")
	}

	got, err := client.GetAnalysisByID(id)
	if err != nil {
		t.Fatalf("GetAnalysisByID failed: %v", err)
	}

	if got.Title != "Scale Study" {
		t.Errorf("Title = %q, expected 'Scale Study'", got.Title)
	}
	if got.Difficulty != "intermediate" {
		t.Errorf("Difficulty = %q, expected intermediate", got.Difficulty)
	}
	if got.TotalCost != -268 {
		t.Errorf("TotalCost = %d, expected -268", got.TotalCost)
	}
	if len(got.Fingerings) != 3 {
		t.Fatalf("expected 3 fingerings, got %d", len(got.Fingerings))
	}

	want := sampleAnalysis().Fingerings
	for i, f := range got.Fingerings {
		if f.NoteIndex != want[i].NoteIndex || f.Pitch != want[i].Pitch ||
			f.Finger != want[i].Finger || f.Hand != want[i].Hand {
			t.Errorf("fingering %d = %+v, expected %+v", i, f, want[i])
		}
	}
	if !reflect.DeepEqual(got.Fingerings[1].Reasons, want[1].Reasons) {
		t.Errorf("reasons = %v, expected %v", got.Fingerings[1].Reasons, want[1].Reasons)
	}
	if len(got.Fingerings[2].Reasons) != 0 {
		t.Errorf("expected empty reasons, got %v", got.Fingerings[2].Reasons)
	}

	if !reflect.DeepEqual(got.Segments, sampleAnalysis().Segments) {
		t.Errorf("segments = %+v, expected %+v", got.Segments, sampleAnalysis().Segments)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	client := setupTestDB(t)

	if _, err := client.GetAnalysisByID("no-such-id"); err == nil {
		t.Error("expected an error for a missing analysis")
	}
}

func TestListAnalyses(t *testing.T) {
	client := setupTestDB(t)

	if _, err := client.SaveAnalysis(sampleAnalysis()); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}
	second := sampleAnalysis()
	second.Title = "Arpeggio Study"
	if _, err := client.SaveAnalysis(second); err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}

	analyses, err := client.ListAnalyses()
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}
	if len(analyses) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(analyses))
	}
	ids := map[string]bool{}
	for _, a := range analyses {
		if a.NoteCount != 3 {
			t.Errorf("NoteCount = %d, expected 3", a.NoteCount)
		}
		ids[a.ID] = true
	}
	if len(ids) != 2 {
		t.Error("expected unique analysis IDs")
	}
}

func TestDeleteAnalysis(t *testing.T) {
	client := setupTestDB(t)

	id, err := client.SaveAnalysis(sampleAnalysis())
	if err != nil {
		t.Fatalf("SaveAnalysis failed: %v", err)
	}

	if err := client.DeleteAnalysisByID(id); err != nil {
		t.Fatalf("DeleteAnalysisByID failed: %v", err)
	}

	if _, err := client.GetAnalysisByID(id); err == nil {
		t.Error("expected the analysis to be gone after deletion")
	}

	var count int64
	client.DB.Model(&NoteFingering{}).Where("analysis_id = ?", id).Count(&count)
	if count != 0 {
		t.Errorf("expected fingerings to be deleted, found %d", count)
	}
	client.DB.Model(&PatternRow{}).Where("analysis_id = ?", id).Count(&count)
	if count != 0 {
		t.Errorf("expected patterns to be deleted, found %d", count)
	}
}

func TestNilClientGuards(t *testing.T) {
	var client *DBClient

	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should be a no-op, got %v", err)
	}
	if _, err := client.SaveAnalysis(sampleAnalysis()); err == nil {
		t.Error("SaveAnalysis on nil client should error")
	}
	if _, err := client.GetAnalysisByID("x"); err == nil {
		t.Error("GetAnalysisByID on nil client should error")
	}
	if err := client.DeleteAnalysisByID("x"); err == nil {
		t.Error("DeleteAnalysisByID on nil client should error")
	}
}
