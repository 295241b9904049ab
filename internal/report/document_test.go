package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResults() []types.Result {
	shifted := types.NewResult(types.OpUpdate, day(50), &types.TestData{Date: day(1950)})
	shifted.Residual = 1
	return []types.Result{
		types.NewResult(types.OpCreate, day(50), &types.TestData{Date: day(50)}),
		shifted,
		types.FailedResult(types.OpCreate, day(120), errors.New("boom")),
	}
}

func TestDocumentJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewDocument(&buf, FormatJSON)

	r.Banner()
	r.Section(day(50))
	r.Separator()
	assert.Empty(t, buf.String(), "events before Finish must not write")

	require.NoError(t, r.Finish(sampleResults()))

	var got summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, 1, got.Passed)
	assert.Equal(t, 2, got.Failed)
	require.Len(t, got.Results, 3)

	assert.Equal(t, "CREATE", got.Results[0].Operation)
	assert.Equal(t, "0050-01-01T00:00:00.000Z", got.Results[0].Input)
	assert.True(t, got.Results[0].Match)

	require.NotNil(t, got.Results[1].OutputYear)
	assert.Equal(t, 1950, *got.Results[1].OutputYear)
	assert.Equal(t, 1, got.Results[1].Residual)
	assert.False(t, got.Results[1].Match)

	assert.Equal(t, "boom", got.Results[2].Error)
	assert.Empty(t, got.Results[2].Output)
	assert.Nil(t, got.Results[2].OutputYear)
}

func TestDocumentYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDocument(&buf, FormatYAML).Finish(sampleResults()))

	var got summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Passed)
	assert.Equal(t, 2, got.Failed)
	require.Len(t, got.Results, 3)
	assert.Equal(t, "UPDATE", got.Results[1].Operation)
	assert.Equal(t, "0050-01-01T00:00:00.000Z", got.Results[0].Input)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	r, err := New(&buf, "")
	require.NoError(t, err)
	assert.IsType(t, &Text{}, r)

	r, err = New(&buf, FormatYAML)
	require.NoError(t, err)
	assert.IsType(t, &Document{}, r)

	_, err = New(&buf, "xml")
	assert.EqualError(t, err, `unknown format "xml" (want text, json, or yaml)`)
}
