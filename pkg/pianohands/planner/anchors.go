package planner

import "github.com/hritwiksinha/PianoHands/pkg/models"

// maxAnchorSpan is the widest pitch range one hand position covers.
const maxAnchorSpan = 8

// computeAnchors scans the stream and assigns each note the anchor
// pitch of its hand-position segment. A segment closes when adding
// the current note would stretch its range past eight semitones; the
// right hand anchors at the bottom of the range, the left at the
// top. A trailing single-note segment folds into its predecessor so
// the last note of a run keeps the position it was approached from.
func computeAnchors(notes []models.Note, hand models.Hand) []int {
	n := len(notes)
	if n == 0 {
		return nil
	}

	type span struct{ start, end int }
	var spans []span

	start := 0
	lo, hi := notes[0].Pitch, notes[0].Pitch
	for i := 1; i < n; i++ {
		p := notes[i].Pitch
		nlo, nhi := lo, hi
		if p < nlo {
			nlo = p
		}
		if p > nhi {
			nhi = p
		}
		if nhi-nlo > maxAnchorSpan {
			spans = append(spans, span{start, i - 1})
			start = i
			lo, hi = p, p
			continue
		}
		lo, hi = nlo, nhi
	}
	spans = append(spans, span{start, n - 1})

	if len(spans) >= 2 && spans[len(spans)-1].start == spans[len(spans)-1].end {
		last := spans[len(spans)-1]
		spans = spans[:len(spans)-1]
		spans[len(spans)-1].end = last.end
	}

	anchors := make([]int, n)
	for _, s := range spans {
		lo, hi := notes[s.start].Pitch, notes[s.start].Pitch
		for i := s.start + 1; i <= s.end; i++ {
			p := notes[i].Pitch
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
		anchor := lo
		if hand == models.LeftHand {
			anchor = hi
		}
		for i := s.start; i <= s.end; i++ {
			anchors[i] = anchor
		}
	}
	return anchors
}

// expectedFinger maps an offset from the anchor to the finger the
// five-finger position prescribes.
func expectedFinger(hand models.Hand, delta int) int {
	if hand == models.RightHand {
		switch {
		case delta <= 0:
			return 1
		case delta <= 2:
			return 2
		case delta <= 4:
			return 3
		case delta <= 6:
			return 4
		default:
			return 5
		}
	}
	switch {
	case delta >= 0:
		return 1
	case delta >= -2:
		return 2
	case delta >= -4:
		return 3
	case delta >= -6:
		return 4
	default:
		return 5
	}
}
