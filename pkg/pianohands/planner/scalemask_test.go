package planner

import (
	"testing"

	"github.com/hritwiksinha/PianoHands/pkg/models"
)

func TestComputeScaleMaskFullScale(t *testing.T) {
	notes := notesFromPitches([]int{60, 62, 64, 65, 67, 69, 71, 72}, models.RightHand)
	mask := computeScaleMask(notes)
	for i, m := range mask {
		if !m {
			t.Errorf("mask[%d] = false, expected true for a full scale run", i)
		}
	}
}

func TestComputeScaleMaskShortRuns(t *testing.T) {
	// Two three-interval runs split by a leap: both below the
	// four-interval minimum.
	notes := notesFromPitches([]int{60, 62, 64, 65, 58, 60, 62, 63}, models.RightHand)
	mask := computeScaleMask(notes)
	for i, m := range mask {
		if m {
			t.Errorf("mask[%d] = true, expected false for short runs", i)
		}
	}
}

func TestComputeScaleMaskDirectionChangeBreaksRun(t *testing.T) {
	// Up four steps then down four steps: two separate runs, both
	// long enough; every note is in at least one.
	notes := notesFromPitches([]int{60, 62, 64, 65, 67, 65, 64, 62, 60}, models.RightHand)
	mask := computeScaleMask(notes)
	for i, m := range mask {
		if !m {
			t.Errorf("mask[%d] = false, expected true", i)
		}
	}
}

func TestComputeScaleMaskArpeggioUnmarked(t *testing.T) {
	notes := notesFromPitches([]int{60, 64, 67, 72, 76, 79, 84}, models.RightHand)
	for i, m := range computeScaleMask(notes) {
		if m {
			t.Errorf("mask[%d] = true, expected false for arpeggio", i)
		}
	}
}

func TestComputeScaleMaskTooShort(t *testing.T) {
	notes := notesFromPitches([]int{60, 62, 64, 65}, models.RightHand)
	for i, m := range computeScaleMask(notes) {
		if m {
			t.Errorf("mask[%d] = true, expected false below minimum run", i)
		}
	}
}
