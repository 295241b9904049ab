package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// sqliteDateLayout is the text form of the date column in SQLite: RFC 3339
// with millisecond precision, always in UTC.
const sqliteDateLayout = "2006-01-02T15:04:05.000Z07:00"

// dialect captures what differs between the SQL backends: driver name,
// placeholder syntax, goose dialect, and how the date column is encoded.
type dialect struct {
	name     string // backend name, also the migrations subdirectory
	driver   string // database/sql driver name
	goose    string // goose dialect name
	numbered bool   // $1, $2 placeholders instead of ?
	encode   func(time.Time) any
}

var dialects = map[string]*dialect{
	types.BackendPostgres: {
		name:     types.BackendPostgres,
		driver:   "pgx",
		goose:    "postgres",
		numbered: true,
		encode:   func(t time.Time) any { return t.UTC() },
	},
	types.BackendSQLite: {
		name:   types.BackendSQLite,
		driver: "sqlite",
		goose:  "sqlite3",
		encode: func(t time.Time) any { return t.UTC().Format(sqliteDateLayout) },
	},
}

// bind rewrites ? placeholders into the dialect's syntax.
func (d *dialect) bind(query string) string {
	if !d.numbered {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// decodeDate converts a scanned date column into a UTC time. Postgres hands
// back time.Time; SQLite hands back the stored text.
func decodeDate(src any) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v.UTC(), nil
	case string:
		return parseDate(v)
	case []byte:
		return parseDate(string(v))
	case nil:
		return time.Time{}, fmt.Errorf("decoding date: %w: NULL", types.ErrInvalidDate)
	default:
		return time.Time{}, fmt.Errorf("decoding date: %w: unsupported type %T", types.ErrInvalidDate, src)
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding date %q: %w", s, err)
	}
	return t.UTC(), nil
}
