package ingest

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/hritwiksinha/PianoHands/pkg/models"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// writeTestSMF renders tracks to a temp file and returns its path.
func writeTestSMF(t *testing.T, tracks ...smf.Track) string {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	for _, tr := range tracks {
		if err := s.Add(tr); err != nil {
			t.Fatalf("Failed to add track: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "test.mid")
	if err := s.WriteFile(path); err != nil {
		t.Fatalf("Failed to write SMF: %v", err)
	}
	return path
}

func TestReadSMFSingleTrack(t *testing.T) {
	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(480, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOn(0, 62, 100))
	tr.Add(240, midi.NoteOff(0, 62))
	tr.Add(0, midi.NoteOn(0, 48, 100))
	tr.Add(480, midi.NoteOff(0, 48))
	tr.Close(0)

	notes, err := ReadSMF(writeTestSMF(t, tr))
	if err != nil {
		t.Fatalf("ReadSMF failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}

	if notes[0].Pitch != 60 || notes[0].Duration != 1.0 {
		t.Errorf("note 0 = pitch %d dur %.2f, expected 60 / 1.00", notes[0].Pitch, notes[0].Duration)
	}
	if notes[1].Pitch != 62 || notes[1].Duration != 0.5 {
		t.Errorf("note 1 = pitch %d dur %.2f, expected 62 / 0.50", notes[1].Pitch, notes[1].Duration)
	}

	// Single-track files split hands at middle C.
	if notes[0].Staff != 1 || notes[0].Hand != models.RightHand {
		t.Errorf("note 0 should be staff 1 / RH, got %d / %s", notes[0].Staff, notes[0].Hand)
	}
	if notes[2].Staff != 2 || notes[2].Hand != models.LeftHand {
		t.Errorf("note 2 (pitch 48) should be staff 2 / LH, got %d / %s", notes[2].Staff, notes[2].Hand)
	}

	for i, n := range notes {
		if n.IsRest {
			t.Errorf("note %d flagged as rest; SMF streams are rest-free", i)
		}
	}
}

func TestReadSMFTwoTracks(t *testing.T) {
	var upper smf.Track
	upper.Add(0, midi.NoteOn(0, 72, 100))
	upper.Add(480, midi.NoteOff(0, 72))
	upper.Close(0)

	var lower smf.Track
	lower.Add(0, midi.NoteOn(1, 40, 100))
	lower.Add(480, midi.NoteOff(1, 40))
	lower.Close(0)

	notes, err := ReadSMF(writeTestSMF(t, upper, lower))
	if err != nil {
		t.Fatalf("ReadSMF failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}

	// Notes at the same tick order by track.
	if notes[0].Pitch != 72 || notes[0].Staff != 1 {
		t.Errorf("note 0 = pitch %d staff %d, expected 72 staff 1", notes[0].Pitch, notes[0].Staff)
	}
	if notes[1].Pitch != 40 || notes[1].Staff != 2 {
		t.Errorf("note 1 = pitch %d staff %d, expected 40 staff 2", notes[1].Pitch, notes[1].Staff)
	}
}

func TestReadSMFChordFlag(t *testing.T) {
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(0, midi.NoteOn(0, 64, 100))
	tr.Add(0, midi.NoteOn(0, 67, 100))
	tr.Add(480, midi.NoteOff(0, 60))
	tr.Add(0, midi.NoteOff(0, 64))
	tr.Add(0, midi.NoteOff(0, 67))
	tr.Close(0)

	notes, err := ReadSMF(writeTestSMF(t, tr))
	if err != nil {
		t.Fatalf("ReadSMF failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}

	if notes[0].IsChord {
		t.Error("the first note of a stack opens it and is not flagged")
	}
	if !notes[1].IsChord || !notes[2].IsChord {
		t.Error("stacked notes should carry the chord flag")
	}
	for i := 1; i < 3; i++ {
		if notes[i].Pitch <= notes[i-1].Pitch {
			t.Error("stacked notes should order by pitch")
		}
	}
}

func TestReadSMFMeasuresAndBeats(t *testing.T) {
	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	// One quarter note on each beat of two 4/4 measures.
	for i := 0; i < 8; i++ {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(480, midi.NoteOff(0, 60))
	}
	tr.Close(0)

	notes, err := ReadSMF(writeTestSMF(t, tr))
	if err != nil {
		t.Fatalf("ReadSMF failed: %v", err)
	}
	if len(notes) != 8 {
		t.Fatalf("expected 8 notes, got %d", len(notes))
	}

	for i, n := range notes {
		wantMeasure := i/4 + 1
		wantBeat := float64(i % 4)
		if n.MeasureNumber != wantMeasure {
			t.Errorf("note %d measure = %d, expected %d", i, n.MeasureNumber, wantMeasure)
		}
		if math.Abs(n.Beat-wantBeat) > 1e-9 {
			t.Errorf("note %d beat = %f, expected %f", i, n.Beat, wantBeat)
		}
	}
}

func TestReadSMFMissingFile(t *testing.T) {
	if _, err := ReadSMF("/nonexistent/score.mid"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
