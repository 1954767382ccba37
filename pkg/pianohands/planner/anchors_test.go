package planner

import (
	"testing"

	"github.com/hritwiksinha/PianoHands/pkg/models"
)

func notesFromPitches(pitches []int, hand models.Hand) []models.Note {
	staff := 1
	if hand == models.LeftHand {
		staff = 2
	}
	notes := make([]models.Note, len(pitches))
	for i, p := range pitches {
		notes[i] = models.Note{
			Pitch:         p,
			Duration:      1.0,
			Voice:         1,
			Staff:         staff,
			Hand:          hand,
			MeasureNumber: i/4 + 1,
			Beat:          float64(i % 4),
		}
	}
	return notes
}

func TestComputeAnchorsRightHandScale(t *testing.T) {
	notes := notesFromPitches([]int{60, 62, 64, 65, 67, 69, 71, 72}, models.RightHand)
	got := computeAnchors(notes, models.RightHand)
	want := []int{60, 60, 60, 60, 60, 69, 69, 69}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("anchor[%d] = %d, expected %d", i, got[i], want[i])
		}
	}
}

func TestComputeAnchorsTrailingSingletonFolds(t *testing.T) {
	notes := notesFromPitches([]int{60, 64, 67, 72, 76, 79, 84}, models.RightHand)
	got := computeAnchors(notes, models.RightHand)
	want := []int{60, 60, 60, 72, 72, 72, 72}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("anchor[%d] = %d, expected %d", i, got[i], want[i])
		}
	}
}

func TestComputeAnchorsLeftHand(t *testing.T) {
	notes := notesFromPitches([]int{48, 55, 52, 55, 48, 55, 52, 55}, models.LeftHand)
	got := computeAnchors(notes, models.LeftHand)
	for i, a := range got {
		if a != 55 {
			t.Errorf("anchor[%d] = %d, expected 55 (top of range)", i, a)
		}
	}
}

func TestComputeAnchorsEmpty(t *testing.T) {
	if got := computeAnchors(nil, models.RightHand); got != nil {
		t.Errorf("expected nil anchors for empty stream, got %v", got)
	}
}

func TestExpectedFingerRightHand(t *testing.T) {
	tests := []struct {
		delta, want int
	}{
		{-3, 1}, {0, 1}, {1, 2}, {2, 2}, {3, 3}, {4, 3}, {5, 4}, {6, 4}, {7, 5}, {12, 5},
	}
	for _, tt := range tests {
		if got := expectedFinger(models.RightHand, tt.delta); got != tt.want {
			t.Errorf("expectedFinger(RH, %d) = %d, expected %d", tt.delta, got, tt.want)
		}
	}
}

func TestExpectedFingerLeftHand(t *testing.T) {
	tests := []struct {
		delta, want int
	}{
		{3, 1}, {0, 1}, {-1, 2}, {-2, 2}, {-3, 3}, {-4, 3}, {-5, 4}, {-6, 4}, {-7, 5}, {-12, 5},
	}
	for _, tt := range tests {
		if got := expectedFinger(models.LeftHand, tt.delta); got != tt.want {
			t.Errorf("expectedFinger(LH, %d) = %d, expected %d", tt.delta, got, tt.want)
		}
	}
}
