package pattern

import (
	"testing"

	"github.com/hritwiksinha/PianoHands/pkg/models"
)

func TestAdaptiveWindowSize(t *testing.T) {
	tests := []struct {
		duration float64
		want     int
	}{
		{0.2, 16},
		{0.24, 16},
		{0.25, 12},
		{0.4, 12},
		{0.5, 8}, // the half-beat boundary is strict
		{1.0, 8},
		{2.0, 8},
		{2.5, 4},
	}
	for _, tt := range tests {
		notes := stream(make([]int, 20), tt.duration)
		if got := adaptiveWindowSize(notes, 0); got != tt.want {
			t.Errorf("adaptiveWindowSize(duration=%.2f) = %d, expected %d", tt.duration, got, tt.want)
		}
	}
}

func TestAdaptiveWindowSizeShortLookahead(t *testing.T) {
	// Lookahead clips at the end of the stream.
	notes := stream([]int{60, 62, 64}, 2.5)
	if got := adaptiveWindowSize(notes, 0); got != 4 {
		t.Errorf("expected window 4, got %d", got)
	}
	if got := adaptiveWindowSize(notes, 3); got != baseWindowSize {
		t.Errorf("expected base window at stream end, got %d", got)
	}
}

func TestRecognizeEmptyStream(t *testing.T) {
	if segs := Recognize(nil); segs != nil {
		t.Errorf("expected no segments for empty stream, got %v", segs)
	}
}

func TestRecognizeSingleNote(t *testing.T) {
	segs := Recognize(stream([]int{60}, 1.0))
	if len(segs) != 1 {
		t.Fatalf("expected one segment, got %d", len(segs))
	}
	if segs[0].StartIndex != 0 || segs[0].EndIndex != 0 {
		t.Errorf("expected [0..0], got [%d..%d]", segs[0].StartIndex, segs[0].EndIndex)
	}
	if segs[0].Type != models.PatternUnknown {
		t.Errorf("expected unknown, got %s", segs[0].Type)
	}
}

func TestSegmentsCoverStreamWithoutOverlap(t *testing.T) {
	// A mixed stream that produces several segment types.
	pitches := []int{
		60, 62, 64, 65, 67, 69, 71, 72, // scale up
		72, 72, 72, 72, 72, // repeated
		72, 60, 71, 59, 70, 58, // leaps
		60, 64, 67, 72, 76, 79, 84, // arpeggio
	}
	notes := stream(pitches, 1.0)
	segs := Recognize(notes)
	if len(segs) == 0 {
		t.Fatal("expected segments")
	}

	if segs[0].StartIndex != 0 {
		t.Errorf("first segment starts at %d, expected 0", segs[0].StartIndex)
	}
	if last := segs[len(segs)-1]; last.EndIndex != len(notes)-1 {
		t.Errorf("last segment ends at %d, expected %d", last.EndIndex, len(notes)-1)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].StartIndex != segs[i-1].EndIndex+1 {
			t.Errorf("segment %d starts at %d, expected %d (no gaps, no overlaps)",
				i, segs[i].StartIndex, segs[i-1].EndIndex+1)
		}
	}
	for i, seg := range segs {
		if seg.StartIndex > seg.EndIndex {
			t.Errorf("segment %d is empty: [%d..%d]", i, seg.StartIndex, seg.EndIndex)
		}
	}
}

func TestMergeSegmentsSameType(t *testing.T) {
	raw := []models.PatternSegment{
		{StartIndex: 0, EndIndex: 7, Type: models.PatternScale, Confidence: 0.92},
		{StartIndex: 4, EndIndex: 11, Type: models.PatternScale, Confidence: 0.92},
	}
	out := mergeSegments(raw, 12)
	if len(out) != 1 {
		t.Fatalf("expected one merged segment, got %d", len(out))
	}
	if out[0].StartIndex != 0 || out[0].EndIndex != 11 {
		t.Errorf("expected [0..11], got [%d..%d]", out[0].StartIndex, out[0].EndIndex)
	}
}

func TestMergeSegmentsShortRunningSegment(t *testing.T) {
	// A running segment below three notes absorbs its neighbor even
	// across a type change.
	raw := []models.PatternSegment{
		{StartIndex: 0, EndIndex: 1, Type: models.PatternUnknown, Confidence: 0.5},
		{StartIndex: 2, EndIndex: 9, Type: models.PatternScale, Confidence: 0.92},
	}
	out := mergeSegments(raw, 10)
	if len(out) != 1 {
		t.Fatalf("expected one merged segment, got %d", len(out))
	}
	if out[0].Confidence != 0.92 {
		t.Errorf("merge should keep the max confidence, got %f", out[0].Confidence)
	}
}
