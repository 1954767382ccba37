package planner

import (
	"github.com/hritwiksinha/PianoHands/pkg/models"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/theory"
)

// pruneBound marks a single transition as infeasible.
const pruneBound = 500

// Reason tags appended as each cost rule fires.
const (
	reasonMatchesPosition  = "Matches position"
	reasonPositionMismatch = "Position mismatch"
	reasonComfortFinger    = "Comfortable finger"
	reasonWeakFinger       = "Weak finger"
	reasonShortOnBlack     = "Short finger on black key"
	reasonLongOnBlack      = "Long finger on black key"
	reasonThumbOnBlack     = "Thumb on black key"
	reasonPinkyOnBlack     = "Pinky on black key"
	reasonSameFingerLeap   = "Same finger leap"
	reasonRepeatSame       = "Repeated note, same finger"
	reasonRepeatChange     = "Repeated note, finger change"
	reasonNatural          = "Natural progression"
	reasonThumbCrossing    = "Thumb crossing"
	reasonScaleCrossing    = "Thumb crossing in scale"
	reasonImpossible       = "Impossible stretch"
	reasonStretch          = "Stretch"
	reasonScaleFingering   = "Scale fingering"
	reasonScaleSameFinger  = "Same finger in scale"
	reasonPositionChange   = "Position change"
	reasonSimple           = "Simple transition"
	reasonEfficient        = "Efficient crossing"
	reasonArpeggio         = "Arpeggio pattern"
)

// Rewarded scale transitions. The first set serves rising right-hand
// and falling left-hand motion, the second the mirror directions.
var (
	scalePairsUp = map[[2]int]bool{
		{1, 2}: true, {2, 3}: true, {3, 1}: true,
		{3, 4}: true, {4, 5}: true, {4, 1}: true,
	}
	scalePairsDown = map[[2]int]bool{
		{5, 4}: true, {4, 3}: true, {3, 2}: true, {2, 1}: true,
		{1, 3}: true, {1, 2}: true, {1, 4}: true,
	}
)

// initialCost scores placing finger f on the opening note.
func initialCost(p Profile, d models.Difficulty, hand models.Hand, note models.Note, anchor int, f int) (int, []string) {
	cost := 0
	var reasons []string

	expected := expectedFinger(hand, note.Pitch-anchor)
	if f == expected {
		cost -= 25
		reasons = append(reasons, reasonMatchesPosition)
	} else {
		cost += 12 * theory.Abs(f-expected)
		reasons = append(reasons, reasonPositionMismatch)
	}

	if d == models.Beginner {
		if f == 4 {
			cost += p.Finger4Penalty
			reasons = append(reasons, reasonWeakFinger)
		}
		if f == 5 {
			cost += p.Finger5Penalty
			reasons = append(reasons, reasonWeakFinger)
		}
		if f <= 3 {
			cost -= 5
			reasons = append(reasons, reasonComfortFinger)
		}
	}

	if theory.IsBlackKey(note.Pitch) {
		if f == 1 || f == 5 {
			if p.AllowThumbOnBlack {
				cost += 10
			} else {
				cost += 25
			}
			reasons = append(reasons, reasonShortOnBlack)
		} else {
			cost -= 8
			reasons = append(reasons, reasonLongOnBlack)
		}
	}

	return cost, reasons
}

// transitionCost scores moving from finger g on prev to finger f on
// curr. Rules are additive; each firing rule appends its tag.
func transitionCost(
	p Profile,
	d models.Difficulty,
	hand models.Hand,
	prev, curr models.Note,
	g, f int,
	patCtx models.PatternType,
	inScale bool,
	anchor, prevAnchor int,
) (int, []string) {
	cost := 0
	var reasons []string

	interval := curr.Pitch - prev.Pitch
	absI := theory.Abs(interval)
	ascending := interval > 0
	deltaF := f - g
	scaleCtx := inScale || patCtx == models.PatternScale
	thumbCrossing := (g == 1) != (f == 1)

	// 1. Same finger on a moving pitch.
	if f == g && interval != 0 {
		cost += 40 + 5*absI
		reasons = append(reasons, reasonSameFingerLeap)
	}

	// 2. Repeated pitch.
	if interval == 0 {
		if f == g {
			cost += 25
			reasons = append(reasons, reasonRepeatSame)
		} else {
			cost -= 10
			reasons = append(reasons, reasonRepeatChange)
		}
	}

	// 3. Natural progression, or a thumb crossing against it.
	if interval != 0 {
		natural := false
		if hand == models.RightHand {
			natural = (ascending && deltaF > 0) || (!ascending && deltaF < 0)
		} else {
			natural = (ascending && deltaF < 0) || (!ascending && deltaF > 0)
		}
		if natural {
			cost -= 20
			reasons = append(reasons, reasonNatural)
		} else if thumbCrossing {
			// In scale motion the standard crossings pivot around
			// the thumb's neighbors; wider crossings pay in full.
			if scaleCtx && theory.Abs(deltaF) <= 2 {
				cost += p.ThumbCrossingPenalty / 3
				reasons = append(reasons, reasonScaleCrossing)
			} else {
				cost += p.ThumbCrossingPenalty
				reasons = append(reasons, reasonThumbCrossing)
			}
		}
	}

	// 4. Stretch beyond the pair's natural span.
	if span := NaturalSpan(g, f); absI > span {
		over := absI - span
		if over > p.MaxComfortableSpan-span {
			cost += 200
			reasons = append(reasons, reasonImpossible)
		} else {
			cost += over * p.StretchPenalty
			reasons = append(reasons, reasonStretch)
		}
	}

	// 5. Position adherence outside scale runs.
	if !inScale {
		expected := expectedFinger(hand, curr.Pitch-anchor)
		if f == expected {
			cost -= 15
			reasons = append(reasons, reasonMatchesPosition)
		} else {
			cost += 8 * theory.Abs(f-expected)
			reasons = append(reasons, reasonPositionMismatch)
		}
	}

	// Crossing into a new hand position.
	if anchor != prevAnchor {
		cost += p.PositionChangePenalty
		reasons = append(reasons, reasonPositionChange)
	}

	// 6. Scale shaping.
	if scaleCtx {
		if interval != 0 {
			up := scalePairsUp
			down := scalePairsDown
			if hand == models.LeftHand {
				up, down = down, up
			}
			pair := [2]int{g, f}
			if (ascending && up[pair]) || (!ascending && down[pair]) {
				cost -= 25
				reasons = append(reasons, reasonScaleFingering)
			}
		}
		if f == g {
			cost += 50
			reasons = append(reasons, reasonScaleSameFinger)
		}
		if thumbCrossing && p.PreferSimplePatterns {
			cost += 20
			reasons = append(reasons, reasonThumbCrossing)
		}
	}

	// 7. Black-key preference on the arriving pitch.
	if theory.IsBlackKey(curr.Pitch) {
		switch f {
		case 1:
			if p.AllowThumbOnBlack {
				cost += 15
			} else {
				cost += 35
			}
			reasons = append(reasons, reasonThumbOnBlack)
		case 5:
			cost += 20
			reasons = append(reasons, reasonPinkyOnBlack)
		default:
			cost -= 5
			reasons = append(reasons, reasonLongOnBlack)
		}
	}

	// 8. Difficulty shaping.
	if d == models.Beginner {
		if f == 4 {
			cost += p.Finger4Penalty
			reasons = append(reasons, reasonWeakFinger)
		}
		if f == 5 && !theory.IsBlackKey(curr.Pitch) {
			cost += p.Finger5Penalty
			reasons = append(reasons, reasonWeakFinger)
		}
		if theory.Abs(deltaF) <= 1 && absI <= 2 {
			cost -= 10
			reasons = append(reasons, reasonSimple)
		}
	}
	if d == models.Advanced && absI > 5 && thumbCrossing {
		cost -= 10
		reasons = append(reasons, reasonEfficient)
	}

	// 9. Arpeggio shaping.
	if patCtx == models.PatternArpeggio && interval != 0 {
		up := ascending
		if hand == models.LeftHand {
			up = !up
		}
		good := false
		if up {
			good = g < f || (g >= 3 && f == 1)
		} else {
			good = g > f || (g == 1 && f >= 3)
		}
		if good {
			cost -= 15
			reasons = append(reasons, reasonArpeggio)
		}
	}

	return cost, reasons
}
