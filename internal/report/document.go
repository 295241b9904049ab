package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// record is the serialized form of a Result.
type record struct {
	Operation  string `json:"operation" yaml:"operation"`
	Input      string `json:"input" yaml:"input"`
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
	InputYear  int    `json:"input_year" yaml:"input_year"`
	OutputYear *int   `json:"output_year,omitempty" yaml:"output_year,omitempty"`
	Match      bool   `json:"match" yaml:"match"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	Residual   int    `json:"residual,omitempty" yaml:"residual,omitempty"`
}

// summary is the whole document written by Finish.
type summary struct {
	Results []record `json:"results" yaml:"results"`
	Passed  int      `json:"passed" yaml:"passed"`
	Failed  int      `json:"failed" yaml:"failed"`
}

func newRecord(res types.Result) record {
	rec := record{
		Operation: string(res.Op),
		Input:     ISOString(res.Input),
		InputYear: res.InputYear,
		Match:     res.Match(),
		Residual:  res.Residual,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
		return rec
	}
	year := res.OutputYear
	rec.Output = ISOString(res.Output)
	rec.OutputYear = &year
	return rec
}

func newSummary(results []types.Result) summary {
	s := summary{Results: make([]record, 0, len(results))}
	for _, res := range results {
		s.Results = append(s.Results, newRecord(res))
	}
	s.Passed, s.Failed = types.Tally(results)
	return s
}

// Document buffers nothing per event and writes a single JSON or YAML
// document from the full result list in Finish.
type Document struct {
	w      io.Writer
	format string
}

// NewDocument creates a Document reporter for FormatJSON or FormatYAML.
func NewDocument(w io.Writer, format string) *Document {
	return &Document{w: w, format: format}
}

func (d *Document) Banner()             {}
func (d *Document) Section(time.Time)   {}
func (d *Document) Result(types.Result) {}
func (d *Document) Separator()          {}

// Finish writes the summary document.
func (d *Document) Finish(results []types.Result) error {
	s := newSummary(results)
	switch d.format {
	case FormatJSON:
		enc := json.NewEncoder(d.w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(d.w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", d.format)
	}
}
