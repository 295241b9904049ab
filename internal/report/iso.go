package report

import (
	"fmt"
	"strings"
	"time"
)

// ISOString formats t the way ECMAScript's Date.prototype.toISOString does:
// UTC, millisecond precision, and a signed six-digit year outside 0..9999.
// Bug reports against JavaScript tooling quote dates in this shape, so the
// tool prints them the same way.
func ISOString(t time.Time) string {
	t = t.UTC()
	rest := t.Format("-01-02T15:04:05.000Z")
	y := t.Year()
	if y >= 0 && y <= 9999 {
		return fmt.Sprintf("%04d%s", y, rest)
	}
	return fmt.Sprintf("%+07d%s", y, rest)
}

// DatePart returns the calendar-date prefix of ISOString.
func DatePart(t time.Time) string {
	s := ISOString(t)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
