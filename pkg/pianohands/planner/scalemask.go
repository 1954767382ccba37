package planner

import (
	"github.com/hritwiksinha/PianoHands/pkg/models"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/theory"
)

// minScaleRun is the shortest monotone stepwise interval run that
// counts as scale motion.
const minScaleRun = 4

// computeScaleMask marks every note inside a maximal run of at least
// four consecutive stepwise intervals sharing one direction.
func computeScaleMask(notes []models.Note) []bool {
	n := len(notes)
	mask := make([]bool, n)
	if n < minScaleRun+1 {
		return mask
	}

	intervals := make([]int, n-1)
	for i := 1; i < n; i++ {
		intervals[i-1] = notes[i].Pitch - notes[i-1].Pitch
	}

	for i := 0; i < len(intervals); {
		if !theory.IsStepwise(intervals[i]) {
			i++
			continue
		}
		j := i
		for j+1 < len(intervals) &&
			theory.IsStepwise(intervals[j+1]) &&
			theory.Sign(intervals[j+1]) == theory.Sign(intervals[i]) {
			j++
		}
		if j-i+1 >= minScaleRun {
			// Intervals i..j cover notes i..j+1.
			for k := i; k <= j+1; k++ {
				mask[k] = true
			}
		}
		i = j + 1
	}

	return mask
}
