// Package roundtrip drives the date round-trip cases: for each fixture it
// writes the date through the create path and the update path, reads it
// back, and compares calendar years.
// See docs/ARCHITECTURE.md § Runner.
package roundtrip

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kboshold/bug-reproduction-prisma-date/internal/fixtures"
	"github.com/kboshold/bug-reproduction-prisma-date/internal/report"
	"github.com/kboshold/bug-reproduction-prisma-date/internal/validate"
	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// Runner executes round-trip cases one at a time against a single table.
type Runner struct {
	table    types.TestDataTable
	reporter report.Reporter
	logger   *zap.Logger

	timeout       time.Duration
	verifyCleanup bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTimeout bounds every case. Zero leaves cases unbounded.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithCleanupCheck counts rows before and after each case and records any
// row a successful case left behind in Result.Residual.
func WithCleanupCheck(enabled bool) Option {
	return func(r *Runner) { r.verifyCleanup = enabled }
}

// New creates a Runner over table that reports to reporter.
func New(table types.TestDataTable, reporter report.Reporter, opts ...Option) *Runner {
	r := &Runner{
		table:    table,
		reporter: reporter,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("roundtrip")
	return r
}

// Run executes the create path then the update path for every date, in
// order, and returns the results in the order they ran. A failing case never
// stops the run.
func (r *Runner) Run(ctx context.Context, dates []time.Time) ([]types.Result, error) {
	results := make([]types.Result, 0, 2*len(dates))

	r.reporter.Banner()
	for _, date := range dates {
		r.reporter.Section(date)

		res := r.TestCreate(ctx, date)
		r.reporter.Result(res)
		results = append(results, res)

		res = r.TestUpdate(ctx, date)
		r.reporter.Result(res)
		results = append(results, res)

		r.reporter.Separator()
	}

	if err := r.reporter.Finish(results); err != nil {
		return results, fmt.Errorf("writing report: %w", err)
	}
	return results, nil
}

// RunFixtures runs the standard fixture list.
func (r *Runner) RunFixtures(ctx context.Context) ([]types.Result, error) {
	return r.Run(ctx, fixtures.Dates())
}

// TestCreate inserts input, reads it back, deletes it, and compares years.
func (r *Runner) TestCreate(ctx context.Context, input time.Time) types.Result {
	return r.runCase(ctx, types.OpCreate, input, func(ctx context.Context, date time.Time) (*types.TestData, error) {
		rec, err := r.table.Create(ctx, date)
		if err != nil {
			return nil, err
		}
		return r.readBackAndDelete(ctx, rec.ID)
	})
}

// TestUpdate inserts the sentinel, updates it to input, reads it back,
// deletes it, and compares years.
func (r *Runner) TestUpdate(ctx context.Context, input time.Time) types.Result {
	return r.runCase(ctx, types.OpUpdate, input, func(ctx context.Context, date time.Time) (*types.TestData, error) {
		rec, err := r.table.Create(ctx, fixtures.Sentinel)
		if err != nil {
			return nil, err
		}
		if _, err := r.table.Update(ctx, rec.ID, date); err != nil {
			return nil, err
		}
		return r.readBackAndDelete(ctx, rec.ID)
	})
}

// readBackAndDelete fetches the record, failing with ErrNotFound if it is
// gone, then removes it.
func (r *Runner) readBackAndDelete(ctx context.Context, id string) (*types.TestData, error) {
	retrieved, err := r.table.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.table.Delete(ctx, id); err != nil {
		return nil, err
	}
	return retrieved, nil
}

// runCase validates input, runs the store steps, and turns the outcome into
// a Result.
func (r *Runner) runCase(ctx context.Context, op types.Operation, input time.Time,
	steps func(context.Context, time.Time) (*types.TestData, error)) types.Result {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log := r.logger.With(zap.String("op", string(op)), zap.String("input", report.ISOString(input)))

	date, err := validate.Date(input)
	if err != nil {
		log.Info("case failed", zap.Error(err))
		return types.FailedResult(op, input, err)
	}

	before, counted := r.count(ctx, log)

	retrieved, err := steps(ctx, date)
	if err != nil {
		log.Info("case failed", zap.Error(err))
		return types.FailedResult(op, input, err)
	}

	res := types.NewResult(op, input, retrieved)
	if counted {
		if after, ok := r.count(ctx, log); ok && after > before {
			res.Residual = after - before
			log.Warn("case left rows behind", zap.Int("residual", res.Residual))
		}
	}
	if !res.Match() {
		log.Debug("year changed in round trip",
			zap.Int("input_year", res.InputYear), zap.Int("output_year", res.OutputYear))
	}
	return res
}

// count returns the current row count when cleanup verification is on.
func (r *Runner) count(ctx context.Context, log *zap.Logger) (int, bool) {
	if !r.verifyCleanup {
		return 0, false
	}
	n, err := r.table.Count(ctx)
	if err != nil {
		log.Warn("counting rows failed", zap.Error(err))
		return 0, false
	}
	return n, true
}
