package types

import "time"

// Operation names the code path a round-trip case exercises.
type Operation string

// Round-trip operations.
const (
	OpCreate Operation = "CREATE"
	OpUpdate Operation = "UPDATE"
)

// Result is the outcome of one round-trip case.
type Result struct {
	Op     Operation
	Input  time.Time // Fixture date handed to the validator.
	Output time.Time // Date read back from the store; zero when Err is set.

	InputYear  int
	OutputYear int

	// Err is the first error hit by the case, if any. When set, Output and
	// OutputYear carry no meaning.
	Err error

	// Residual is the number of rows the case left behind, filled only when
	// cleanup verification is enabled.
	Residual int
}

// NewResult builds a successful Result from the input date and the record
// read back from the store.
func NewResult(op Operation, input time.Time, retrieved *TestData) Result {
	return Result{
		Op:         op,
		Input:      input,
		Output:     retrieved.Date,
		InputYear:  CalendarYear(input),
		OutputYear: retrieved.Year(),
	}
}

// FailedResult builds a Result for a case that stopped on err.
func FailedResult(op Operation, input time.Time, err error) Result {
	return Result{
		Op:        op,
		Input:     input,
		InputYear: CalendarYear(input),
		Err:       err,
	}
}

// Match reports whether the case completed and the year survived the round
// trip.
func (r Result) Match() bool {
	return r.Err == nil && r.InputYear == r.OutputYear
}

// Tally counts matching and non-matching results.
func Tally(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.Match() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
