package planner

import (
	"github.com/hritwiksinha/PianoHands/pkg/models"
)

const (
	// fullDPLimit is the longest stream solved as one dynamic
	// program; longer streams are chunked.
	fullDPLimit  = 64
	chunkSize    = 32
	chunkOverlap = 4

	infinity = 1 << 30
)

// Plan computes a minimum-cost finger assignment for one hand-local
// stream under the difficulty profile. Segments supply the pattern
// context per note; notes outside every segment read as unknown.
func Plan(notes []models.Note, segments []models.PatternSegment, hand models.Hand, d models.Difficulty) models.FingeringSolution {
	n := len(notes)
	if n == 0 {
		return models.FingeringSolution{Fingers: []int{}, Reasons: [][]string{}}
	}

	p := ProfileFor(d)
	ctx := patternContexts(segments, n)
	anchors := computeAnchors(notes, hand)
	mask := computeScaleMask(notes)

	var fingers []int
	var fallback []bool
	if n <= fullDPLimit {
		fingers, fallback = solveRange(notes, p, d, hand, ctx, anchors, mask, 0, n)
	} else {
		fingers = make([]int, 0, n)
		fallback = make([]bool, 0, n)
		for start := 0; start < n; start += chunkSize - chunkOverlap {
			end := start + chunkSize
			if end > n {
				end = n
			}
			fs, fb := solveRange(notes, p, d, hand, ctx, anchors, mask, start, end)
			if start == 0 {
				fingers = append(fingers, fs...)
				fallback = append(fallback, fb...)
			} else {
				// Only the non-overlap tail survives from later
				// chunks; the overlap seeds hand continuity.
				fingers = append(fingers, fs[chunkOverlap:]...)
				fallback = append(fallback, fb[chunkOverlap:]...)
			}
			if end == n {
				break
			}
		}
	}

	return replay(notes, p, d, hand, ctx, anchors, mask, fingers, fallback)
}

// patternContexts flattens the segment list into a per-note type.
func patternContexts(segments []models.PatternSegment, n int) []models.PatternType {
	ctx := make([]models.PatternType, n)
	for i := range ctx {
		ctx[i] = models.PatternUnknown
	}
	for _, seg := range segments {
		for i := seg.StartIndex; i <= seg.EndIndex && i < n; i++ {
			if i >= 0 {
				ctx[i] = seg.Type
			}
		}
	}
	return ctx
}

// solveRange runs the DP over notes[start:end). Ties are broken by
// scanning predecessor fingers in order 1..5 and keeping the first
// argmin; the final finger is the lowest among equal-cost winners.
func solveRange(
	notes []models.Note,
	p Profile,
	d models.Difficulty,
	hand models.Hand,
	ctx []models.PatternType,
	anchors []int,
	mask []bool,
	start, end int,
) ([]int, []bool) {
	length := end - start
	fingers := make([]int, length)
	fallbacks := make([]bool, length)
	if length == 0 {
		return fingers, fallbacks
	}

	prev := [5]int{}
	parents := make([][5]int8, length)

	for fi := 0; fi < 5; fi++ {
		cost, _ := initialCost(p, d, hand, notes[start], anchors[start], fi+1)
		prev[fi] = cost
	}

	for i := 1; i < length; i++ {
		var cur [5]int
		layerReachable := false
		for fi := 0; fi < 5; fi++ {
			best := infinity
			var bestG int8 = -1
			for gi := 0; gi < 5; gi++ {
				if prev[gi] >= infinity {
					continue
				}
				step, _ := transitionCost(
					p, d, hand,
					notes[start+i-1], notes[start+i],
					gi+1, fi+1,
					ctx[start+i], mask[start+i],
					anchors[start+i], anchors[start+i-1],
				)
				if step > pruneBound {
					continue
				}
				if c := prev[gi] + step; c < best {
					best = c
					bestG = int8(gi)
				}
			}
			cur[fi] = best
			parents[i][fi] = bestG
			if best < infinity {
				layerReachable = true
			}
		}
		if !layerReachable {
			// Every predecessor pruned; documented fallback keeps
			// the planner total.
			for fi := 0; fi < 5; fi++ {
				cur[fi] = infinity
			}
			cur[2] = 0
			parents[i][2] = -1
			fallbacks[i] = true
		}
		prev = cur
	}

	bestF := 0
	for fi := 1; fi < 5; fi++ {
		if prev[fi] < prev[bestF] {
			bestF = fi
		}
	}

	fi := int8(bestF)
	for i := length - 1; i >= 0; i-- {
		if fallbacks[i] {
			fingers[i] = 3
		} else {
			fingers[i] = int(fi) + 1
		}
		if i > 0 {
			next := parents[i][fi]
			if next < 0 {
				// Fallback layer: resume from the thumb (finger 1)
				// state of the preceding layer.
				next = 0
			}
			fi = next
		}
	}

	return fingers, fallbacks
}

// replay walks the chosen finger sequence once over the full stream
// to collect reason tags and the aggregate cost. Fallback notes
// contribute nothing, by definition.
func replay(
	notes []models.Note,
	p Profile,
	d models.Difficulty,
	hand models.Hand,
	ctx []models.PatternType,
	anchors []int,
	mask []bool,
	fingers []int,
	fallback []bool,
) models.FingeringSolution {
	n := len(notes)
	reasons := make([][]string, n)
	total := 0

	for i := 0; i < n; i++ {
		if fallback[i] {
			reasons[i] = []string{}
			continue
		}
		var cost int
		var tags []string
		if i == 0 {
			cost, tags = initialCost(p, d, hand, notes[i], anchors[i], fingers[i])
		} else {
			cost, tags = transitionCost(
				p, d, hand,
				notes[i-1], notes[i],
				fingers[i-1], fingers[i],
				ctx[i], mask[i],
				anchors[i], anchors[i-1],
			)
		}
		total += cost
		if tags == nil {
			tags = []string{}
		}
		reasons[i] = tags
	}

	return models.FingeringSolution{
		Fingers:   fingers,
		TotalCost: total,
		Reasons:   reasons,
	}
}
