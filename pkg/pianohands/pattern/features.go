// Package pattern segments a hand-local note stream into labeled
// musical figures. A sliding window of adaptive size is classified
// by a priority-ordered decision tree, then adjacent windows are
// merged into non-overlapping segments covering the stream.
package pattern

import (
	"math"

	"github.com/hritwiksinha/PianoHands/pkg/models"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/theory"
)

// windowFeatures is the numeric summary of one window.
type windowFeatures struct {
	pitches   []int
	intervals []int

	pitchRange   int
	pitchEntropy float64

	ascendingRatio  float64
	descendingRatio float64

	maxAbsInterval   int
	meanAbsInterval  float64
	intervalVariance float64

	stepwiseRatio    float64
	leapRatio        float64
	directionChanges int

	meanSimultaneity float64
	maxSimultaneity  int

	durationMean     float64
	durationVariance float64

	anySlur     bool
	anyOrnament bool
	anyGrace    bool
	firstStaff  int
}

func extractFeatures(notes []models.Note) windowFeatures {
	var f windowFeatures

	f.pitches = make([]int, len(notes))
	for i, n := range notes {
		f.pitches[i] = n.Pitch
	}
	f.intervals = theory.Intervals(f.pitches)

	if len(f.pitches) > 0 {
		lo, hi := f.pitches[0], f.pitches[0]
		for _, p := range f.pitches {
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		f.pitchRange = hi - lo
		f.firstStaff = notes[0].Staff
	}
	f.pitchEntropy = theory.Entropy(f.pitches)

	asc, desc, stepwise, leaps, dirChanges := 0, 0, 0, 0, 0
	absVals := make([]float64, 0, len(f.intervals))
	for i, iv := range f.intervals {
		a := theory.Abs(iv)
		absVals = append(absVals, float64(a))
		if a > f.maxAbsInterval {
			f.maxAbsInterval = a
		}
		switch theory.Sign(iv) {
		case 1:
			asc++
		case -1:
			desc++
		}
		if a <= 2 {
			stepwise++
		}
		if a > 4 {
			leaps++
		}
		if i >= 1 {
			s0, s1 := theory.Sign(f.intervals[i-1]), theory.Sign(iv)
			if s0 != 0 && s1 != 0 && s0 != s1 {
				dirChanges++
			}
		}
	}
	n := len(f.intervals)
	f.ascendingRatio = theory.Ratio(asc, n)
	f.descendingRatio = theory.Ratio(desc, n)
	f.stepwiseRatio = theory.Ratio(stepwise, n)
	f.leapRatio = theory.Ratio(leaps, n)
	f.directionChanges = dirChanges
	f.meanAbsInterval = theory.Mean(absVals)
	f.intervalVariance = theory.Variance(absVals)

	// Simultaneity groups notes by beat position rounded to two
	// decimals; the counts form the multiset summarized below.
	beatCounts := make(map[int64]int, len(notes))
	for _, n := range notes {
		beatCounts[beatKey(n)]++
	}
	if len(beatCounts) > 0 {
		total := 0
		for _, c := range beatCounts {
			total += c
			if c > f.maxSimultaneity {
				f.maxSimultaneity = c
			}
		}
		f.meanSimultaneity = float64(total) / float64(len(beatCounts))
	}

	durs := make([]float64, len(notes))
	for i, n := range notes {
		durs[i] = n.Duration
		if n.HasSlur || n.SlurStart || n.SlurStop {
			f.anySlur = true
		}
		if n.HasTrill || n.HasMordent || n.HasTurn {
			f.anyOrnament = true
		}
		if n.IsGrace {
			f.anyGrace = true
		}
	}
	f.durationMean = theory.Mean(durs)
	f.durationVariance = theory.Variance(durs)

	return f
}

// beatKey identifies a metric position. Beat positions repeat every
// measure, so the measure number is folded in to keep notes from
// different measures apart.
func beatKey(n models.Note) int64 {
	return int64(n.MeasureNumber)*100000 + int64(math.Round(n.Beat*100))
}
