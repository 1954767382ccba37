package pattern

import "github.com/hritwiksinha/PianoHands/pkg/models"

// mergeSegments walks the raw window labels left to right, merging a
// segment into the running one when they share a type or when the
// running segment is still shorter than three notes. Remaining
// overlap from the half-overlap slide is clipped so the output
// abuts without overlapping and covers [0, n).
func mergeSegments(raw []models.PatternSegment, n int) []models.PatternSegment {
	if n == 0 {
		return nil
	}
	if len(raw) == 0 {
		// Streams too short to window still get full coverage.
		return []models.PatternSegment{{
			StartIndex: 0,
			EndIndex:   n - 1,
			Type:       models.PatternUnknown,
			Confidence: 0.5,
		}}
	}

	var out []models.PatternSegment
	running := raw[0]
	for _, next := range raw[1:] {
		if next.Type == running.Type || running.Len() < 3 {
			if next.EndIndex > running.EndIndex {
				running.EndIndex = next.EndIndex
			}
			if next.Confidence > running.Confidence {
				running.Confidence = next.Confidence
			}
			continue
		}
		if next.StartIndex <= running.EndIndex {
			next.StartIndex = running.EndIndex + 1
		}
		if next.StartIndex > next.EndIndex {
			// Fully absorbed by the running segment.
			continue
		}
		out = append(out, running)
		running = next
	}
	out = append(out, running)

	out[0].StartIndex = 0
	out[len(out)-1].EndIndex = n - 1
	return out
}
