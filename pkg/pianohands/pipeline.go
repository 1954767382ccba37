// Package pianohands assigns fingerings to piano scores. The core is
// a pure two-stage pipeline per hand: a pattern recognizer labels
// the note stream with musical figures, then a dynamic program picks
// the cheapest finger assignment under a difficulty profile.
package pianohands

import (
	"sort"

	"github.com/hritwiksinha/PianoHands/pkg/models"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/pattern"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/planner"
)

// AnalyzeNotes runs the full pipeline: split the stream by hand,
// recognize patterns and plan fingers per hand, then interleave the
// solutions back into input order. The call is pure and
// deterministic; notes are never mutated.
func AnalyzeNotes(notes []models.Note, difficulty models.Difficulty) *models.AnalysisResult {
	var right, left []models.Note
	for _, n := range notes {
		if n.Hand == models.LeftHand {
			left = append(left, n)
		} else {
			right = append(right, n)
		}
	}

	rightSegs := recognizeHand(right, models.RightHand)
	leftSegs := recognizeHand(left, models.LeftHand)

	rightSol := planner.Plan(right, rightSegs, models.RightHand, difficulty)
	leftSol := planner.Plan(left, leftSegs, models.LeftHand, difficulty)

	fingers := make([]int, len(notes))
	reasons := make([][]string, len(notes))
	ri, li := 0, 0
	for i, n := range notes {
		if n.Hand == models.LeftHand {
			fingers[i] = leftSol.Fingers[li]
			reasons[i] = leftSol.Reasons[li]
			li++
		} else {
			fingers[i] = rightSol.Fingers[ri]
			reasons[i] = rightSol.Reasons[ri]
			ri++
		}
	}

	segments := make([]models.PatternSegment, 0, len(rightSegs)+len(leftSegs))
	segments = append(segments, rightSegs...)
	segments = append(segments, leftSegs...)
	sort.SliceStable(segments, func(i, j int) bool {
		if segments[i].StartIndex != segments[j].StartIndex {
			return segments[i].StartIndex < segments[j].StartIndex
		}
		return segments[i].Hand < segments[j].Hand
	})

	return &models.AnalysisResult{
		Difficulty: difficulty,
		Solution: models.FingeringSolution{
			Fingers:   fingers,
			TotalCost: rightSol.TotalCost + leftSol.TotalCost,
			Reasons:   reasons,
		},
		Segments: segments,
	}
}

func recognizeHand(notes []models.Note, hand models.Hand) []models.PatternSegment {
	segs := pattern.Recognize(notes)
	for i := range segs {
		segs[i].Hand = hand
	}
	return segs
}
