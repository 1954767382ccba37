package pattern

import "github.com/hritwiksinha/PianoHands/pkg/pianohands/theory"

var (
	majorSteps = []int{2, 2, 1, 2, 2, 2, 1}
	minorSteps = []int{2, 1, 2, 2, 1, 2, 2}
)

// identifyScaleType names the scale from a window's interval vector.
// Descending windows are matched against the step pattern read from
// the top of the run, so a falling major scale still reads as major.
func identifyScaleType(intervals []int, direction string) string {
	if len(intervals) == 0 {
		return "modal"
	}

	abs := make([]int, len(intervals))
	allHalf := true
	allPenta := true
	for i, iv := range intervals {
		a := theory.Abs(iv)
		abs[i] = a
		if a != 1 {
			allHalf = false
		}
		if a != 2 && a != 3 {
			allPenta = false
		}
	}
	if allHalf {
		return "chromatic"
	}

	if direction == "descending" {
		rev := make([]int, len(abs))
		for i, a := range abs {
			rev[len(abs)-1-i] = a
		}
		abs = rev
	}

	if containsRun(abs, majorSteps) {
		return "major"
	}
	if containsRun(abs, minorSteps) {
		return "minor"
	}
	if allPenta {
		return "pentatonic"
	}
	return "modal"
}

// containsRun reports whether sub occurs contiguously in s.
func containsRun(s, sub []int) bool {
	if len(sub) > len(s) {
		return false
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
