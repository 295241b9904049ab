// Package fixtures holds the dates every round-trip case is run against.
package fixtures

import "time"

// dates are the fixture dates, in run order. All of them lie before the
// 1900 epoch most date libraries special-case, and several have years below
// 100, where two-digit year heuristics kick in.
var dates = []time.Time{
	time.Date(31, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(32, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(40, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(50, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(120, time.January, 1, 0, 0, 0, 0, time.UTC),
}

// Sentinel is the placeholder the update path inserts before overwriting it
// with the fixture date. It is never compared.
var Sentinel = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Dates returns a copy of the fixture list.
func Dates() []time.Time {
	out := make([]time.Time, len(dates))
	copy(out, dates)
	return out
}
