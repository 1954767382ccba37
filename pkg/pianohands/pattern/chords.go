package pattern

import (
	"sort"

	"github.com/hritwiksinha/PianoHands/pkg/pianohands/theory"
)

// chordInfo is the outcome of matching a pitch-class set against the
// recognized triad and seventh shapes.
type chordInfo struct {
	chordType string // major, minor, diminished, augmented, seventh
	root      int    // pitch class
	inversion int    // 0 = root position
}

// triadShapes maps consecutive pitch-class intervals to a quality.
var triadShapes = []struct {
	first, second int
	name          string
}{
	{4, 3, "major"},
	{3, 4, "minor"},
	{3, 3, "diminished"},
	{4, 4, "augmented"},
}

// analyzeChord matches the unique pitch classes of a window against
// triads and sevenths. Three classes match when some rotation walks
// one of the triad shapes; four classes match when the rotation's
// first two consecutive intervals are each a third.
func analyzeChord(pitches []int) (chordInfo, bool) {
	if len(pitches) < 3 {
		return chordInfo{}, false
	}

	seen := make(map[int]bool, 12)
	var classes []int
	for _, p := range pitches {
		pc := theory.PitchClass(p)
		if !seen[pc] {
			seen[pc] = true
			classes = append(classes, pc)
		}
	}
	sort.Ints(classes)

	if len(classes) != 3 && len(classes) != 4 {
		return chordInfo{}, false
	}

	lo := pitches[0]
	for _, p := range pitches {
		if p < lo {
			lo = p
		}
	}
	bass := theory.PitchClass(lo)

	n := len(classes)
	for r := 0; r < n; r++ {
		rot := make([]int, n)
		for i := range rot {
			rot[i] = classes[(r+i)%n]
		}
		first := interval12(rot[0], rot[1])
		second := interval12(rot[1], rot[2])

		if n == 3 {
			for _, shape := range triadShapes {
				if first == shape.first && second == shape.second {
					return chordInfo{
						chordType: shape.name,
						root:      rot[0],
						inversion: chordPosition(rot, bass),
					}, true
				}
			}
			continue
		}

		// Sevenths only require stacked thirds at the bottom.
		if (first == 3 || first == 4) && (second == 3 || second == 4) {
			return chordInfo{
				chordType: "seventh",
				root:      rot[0],
				inversion: chordPosition(rot, bass),
			}, true
		}
	}

	return chordInfo{}, false
}

// interval12 is the upward distance between two pitch classes.
func interval12(a, b int) int {
	d := (b - a) % 12
	if d < 0 {
		d += 12
	}
	return d
}

// chordPosition locates the sounding bass within the chord rotation:
// 0 root position, 1 first inversion, and so on.
func chordPosition(rotation []int, bass int) int {
	for i, pc := range rotation {
		if pc == bass {
			return i
		}
	}
	return 0
}
