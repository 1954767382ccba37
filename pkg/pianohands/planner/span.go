package planner

// naturalSpans holds the comfortable semitone distance between pairs
// of fingers in a relaxed hand, keyed by (low, high) finger.
var naturalSpans = map[[2]int]int{
	{1, 2}: 2,
	{2, 3}: 2,
	{3, 4}: 1,
	{4, 5}: 2,
	{1, 3}: 4,
	{2, 4}: 3,
	{3, 5}: 3,
	{1, 4}: 5,
	{2, 5}: 5,
	{1, 5}: 8,
}

// NaturalSpan returns the comfortable span between two fingers; the
// lookup is symmetric and a same-finger pair spans nothing.
func NaturalSpan(a, b int) int {
	if a == b {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return naturalSpans[[2]int{a, b}]
}
