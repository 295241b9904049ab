package roundtrip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kboshold/bug-reproduction-prisma-date/internal/fixtures"
	"github.com/kboshold/bug-reproduction-prisma-date/internal/memstore"
	"github.com/kboshold/bug-reproduction-prisma-date/internal/report"
	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder captures reporter events as strings.
type recorder struct {
	events    []string
	finishErr error
}

func (r *recorder) Banner()                 { r.events = append(r.events, "banner") }
func (r *recorder) Section(d time.Time)     { r.events = append(r.events, "section "+report.DatePart(d)) }
func (r *recorder) Result(res types.Result) { r.events = append(r.events, "result "+string(res.Op)) }
func (r *recorder) Separator()              { r.events = append(r.events, "separator") }
func (r *recorder) Finish(results []types.Result) error {
	r.events = append(r.events, fmt.Sprintf("finish %d", len(results)))
	return r.finishErr
}

// twoDigitYears maps years below 100 into the 1900s, the way a driver that
// builds dates from (year, month, day) parts with legacy semantics would.
func twoDigitYears(d time.Time) time.Time {
	if d.Year() < 100 {
		return d.AddDate(1900, 0, 0)
	}
	return d
}

// leakyTable reports success on Delete without removing anything.
type leakyTable struct {
	*memstore.Table
}

func (leakyTable) Delete(context.Context, string) error { return nil }

// blockingTable blocks every Create until the context ends.
type blockingTable struct {
	*memstore.Table
}

func (blockingTable) Create(ctx context.Context, _ time.Time) (*types.TestData, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRunEventOrder(t *testing.T) {
	rec := &recorder{}
	results, err := New(memstore.New(), rec).RunFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 10)

	want := []string{"banner"}
	for _, d := range fixtures.Dates() {
		want = append(want, "section "+report.DatePart(d), "result CREATE", "result UPDATE", "separator")
	}
	want = append(want, "finish 10")
	assert.Equal(t, want, rec.events)
}

func TestRunFaithfulStore(t *testing.T) {
	ctx := context.Background()
	tbl := memstore.New()

	results, err := New(tbl, &recorder{}).RunFixtures(ctx)
	require.NoError(t, err)

	for i, res := range results {
		wantOp := types.OpCreate
		if i%2 == 1 {
			wantOp = types.OpUpdate
		}
		assert.Equal(t, wantOp, res.Op)
		assert.NoError(t, res.Err)
		assert.True(t, res.Match(), "%s %s", res.Op, res.Input)
		assert.True(t, fixtures.Dates()[i/2].Equal(res.Input))
	}

	n, err := tbl.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "no record may remain after the run")
}

func TestRunLossyStore(t *testing.T) {
	results, err := New(memstore.New(memstore.WithCodec(twoDigitYears)), &recorder{}).RunFixtures(context.Background())
	require.NoError(t, err)

	for _, res := range results {
		require.NoError(t, res.Err)
		if res.InputYear < 100 {
			assert.False(t, res.Match(), "%s %d should be shifted", res.Op, res.InputYear)
			assert.Equal(t, res.InputYear+1900, res.OutputYear)
		} else {
			assert.True(t, res.Match(), "%s %d should survive", res.Op, res.InputYear)
		}
	}
}

func TestTestCreateScenario(t *testing.T) {
	var buf bytes.Buffer
	r := New(memstore.New(), report.NewText(&buf))

	input := time.Date(31, time.January, 1, 0, 0, 0, 0, time.UTC)
	res := r.TestCreate(context.Background(), input)
	r.reporter.Result(res)

	require.NoError(t, res.Err)
	assert.Equal(t, 31, res.InputYear)
	assert.Equal(t, 31, res.OutputYear)
	assert.Equal(t, "  ✅ CREATE 0031-01-01T00:00:00.000Z => 0031-01-01T00:00:00.000Z (31 -> 31)\n", buf.String())
}

func TestSentinelNeverReported(t *testing.T) {
	var buf bytes.Buffer
	_, err := New(memstore.New(), report.NewText(&buf)).RunFixtures(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "2000-01-01")
	assert.Equal(t, 5, strings.Count(out, " CREATE "))
	assert.Equal(t, 5, strings.Count(out, " UPDATE "))
}

func TestRunStoreFailures(t *testing.T) {
	refused := errors.New("dial tcp 10.255.255.1:5432: connect: connection refused")

	tests := []struct {
		name    string
		failOn  string
		wantErr error
	}{
		{"create fails", "create", refused},
		{"get fails", "get", types.ErrNotFound},
		{"delete fails", "delete", refused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tbl := memstore.New(memstore.WithFailure(tt.failOn, tt.wantErr))

			results, err := New(tbl, report.NewText(&buf)).RunFixtures(context.Background())
			require.NoError(t, err)
			require.Len(t, results, 10)

			for _, res := range results {
				assert.ErrorIs(t, res.Err, tt.wantErr)
				assert.False(t, res.Match())
			}
			assert.Equal(t, 10, strings.Count(buf.String(), "=> Error: "))
		})
	}
}

func TestUpdatePathFailsOnUpdate(t *testing.T) {
	boom := errors.New("boom")
	r := New(memstore.New(memstore.WithFailure("update", boom)), &recorder{})

	create := r.TestCreate(context.Background(), fixtures.Dates()[0])
	update := r.TestUpdate(context.Background(), fixtures.Dates()[0])

	assert.NoError(t, create.Err)
	assert.ErrorIs(t, update.Err, boom)
}

func TestCleanupCheck(t *testing.T) {
	t.Run("leaky delete is recorded", func(t *testing.T) {
		tbl := leakyTable{memstore.New()}
		results, err := New(tbl, &recorder{}, WithCleanupCheck(true)).RunFixtures(context.Background())
		require.NoError(t, err)
		for _, res := range results {
			assert.Equal(t, 1, res.Residual, "%s %s", res.Op, res.Input)
		}
	})

	t.Run("disabled check records nothing", func(t *testing.T) {
		tbl := leakyTable{memstore.New()}
		results, err := New(tbl, &recorder{}).RunFixtures(context.Background())
		require.NoError(t, err)
		for _, res := range results {
			assert.Zero(t, res.Residual)
		}
	})

	t.Run("failed cases are ignored", func(t *testing.T) {
		tbl := memstore.New(memstore.WithFailure("update", errors.New("boom")))
		res := New(tbl, &recorder{}, WithCleanupCheck(true)).TestUpdate(context.Background(), fixtures.Dates()[0])
		assert.Error(t, res.Err)
		assert.Zero(t, res.Residual)
	})

	t.Run("count failure does not fail the case", func(t *testing.T) {
		tbl := memstore.New(memstore.WithFailure("count", errors.New("no count")))
		res := New(tbl, &recorder{}, WithCleanupCheck(true)).TestCreate(context.Background(), fixtures.Dates()[0])
		assert.NoError(t, res.Err)
		assert.True(t, res.Match())
	})
}

func TestTimeout(t *testing.T) {
	tbl := blockingTable{memstore.New()}
	r := New(tbl, &recorder{}, WithTimeout(10*time.Millisecond))

	res := r.TestCreate(context.Background(), fixtures.Dates()[0])
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)

	res = r.TestUpdate(context.Background(), fixtures.Dates()[0])
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestRunFinishError(t *testing.T) {
	rec := &recorder{finishErr: errors.New("disk full")}
	results, err := New(memstore.New(), rec).RunFixtures(context.Background())

	assert.Len(t, results, 10)
	assert.ErrorContains(t, err, "writing report: disk full")
}
