package report

import (
	"fmt"
	"io"
	"time"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// Reporter receives run events in order: Banner once, then for every fixture
// Section, two Results, and Separator, and finally Finish with every result.
type Reporter interface {
	Banner()
	Section(date time.Time)
	Result(res types.Result)
	Separator()
	Finish(results []types.Result) error
}

// Compile-time interface checks.
var (
	_ Reporter = (*Text)(nil)
	_ Reporter = (*Document)(nil)
)

// New returns the reporter for format, writing to w.
func New(w io.Writer, format string) (Reporter, error) {
	switch format {
	case FormatText, "":
		return NewText(w), nil
	case FormatJSON, FormatYAML:
		return NewDocument(w, format), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text, json, or yaml)", format)
	}
}
