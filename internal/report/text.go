// Package report renders round-trip results: colored console lines as the
// run progresses, or a single JSON or YAML document once it ends.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// Title is printed in the banner above the first section.
const Title = "🔍 Date Round-Trip Reproduction Test"

// Status markers.
const (
	markPass = "✅"
	markFail = "❌"
)

// Text writes one line per event. Colors follow the terminal's capabilities:
// when w is not a terminal, or NO_COLOR is set, plain text is written.
type Text struct {
	w io.Writer

	banner  lipgloss.Style
	section lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
}

// NewText creates a Text reporter writing to w.
func NewText(w io.Writer) *Text {
	r := lipgloss.NewRenderer(w)
	return &Text{
		w:       w,
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		pass:    r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Banner prints the title surrounded by blank lines.
func (t *Text) Banner() {
	fmt.Fprintf(t.w, "\n%s\n\n", t.banner.Render(Title))
}

// Section prints the header for one fixture date.
func (t *Text) Section(date time.Time) {
	fmt.Fprintln(t.w, t.section.Render(fmt.Sprintf("Testing %s:", DatePart(date))))
}

// Result prints the pass, fail, or error line for one case.
func (t *Text) Result(res types.Result) {
	fmt.Fprintln(t.w, t.line(res))
}

// Separator prints the blank line that closes a section.
func (t *Text) Separator() {
	fmt.Fprintln(t.w)
}

// Finish is a no-op: every result has already been printed.
func (t *Text) Finish([]types.Result) error {
	return nil
}

func (t *Text) line(res types.Result) string {
	if res.Err != nil {
		return fmt.Sprintf("  %s %s %s => Error: %v",
			markFail, res.Op, t.fail.Render(ISOString(res.Input)), res.Err)
	}

	mark, style := markPass, t.pass
	if !res.Match() {
		mark, style = markFail, t.fail
	}
	return fmt.Sprintf("  %s %s %s => %s (%d -> %d)",
		mark, res.Op,
		style.Render(ISOString(res.Input)),
		style.Render(ISOString(res.Output)),
		res.InputYear, res.OutputYear)
}
