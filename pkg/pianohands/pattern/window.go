package pattern

import "github.com/hritwiksinha/PianoHands/pkg/models"

const (
	baseWindowSize = 8
	lookaheadSpan  = 16
)

// adaptiveWindowSize picks the window length from the mean duration
// of up to the next 16 notes: dense textures get longer windows,
// slow ones shorter. The half-beat boundary is strict, so a mean of
// exactly 0.5 keeps the base size.
func adaptiveWindowSize(notes []models.Note, cursor int) int {
	end := cursor + lookaheadSpan
	if end > len(notes) {
		end = len(notes)
	}
	if end <= cursor {
		return baseWindowSize
	}
	var sum float64
	for _, n := range notes[cursor:end] {
		sum += n.Duration
	}
	mean := sum / float64(end-cursor)

	switch {
	case mean < 0.25:
		return 16
	case mean < 0.5:
		return 12
	case mean > 2:
		return 4
	default:
		return baseWindowSize
	}
}

// Recognize slides the adaptive window across a hand-local stream,
// classifies each window and merges the results into a sorted list
// of non-overlapping segments covering the whole stream.
func Recognize(notes []models.Note) []models.PatternSegment {
	n := len(notes)
	if n == 0 {
		return nil
	}

	var raw []models.PatternSegment
	for i := 0; i < n; {
		w := adaptiveWindowSize(notes, i)
		if n-i < 2 {
			i++
			continue
		}
		end := i + w
		if end > n {
			end = n
		}
		window := notes[i:end]
		typ, conf, feats := classifyWindow(window, extractFeatures(window))
		raw = append(raw, models.PatternSegment{
			StartIndex: i,
			EndIndex:   end - 1,
			Type:       typ,
			Confidence: conf,
			Features:   feats,
		})
		step := w / 2
		if step < 1 {
			step = 1
		}
		i += step
	}

	return mergeSegments(raw, n)
}
