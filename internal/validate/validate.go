// Package validate checks inputs before they reach the store.
package validate

import (
	"fmt"
	"time"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// Date returns v unchanged if it is a date value. A time.Time or a non-nil
// *time.Time is accepted; anything else yields an error wrapping
// types.ErrInvalidDate.
func Date(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case *time.Time:
		if d != nil {
			return *d, nil
		}
		return time.Time{}, fmt.Errorf("%w: expected date, received nil", types.ErrInvalidDate)
	case nil:
		return time.Time{}, fmt.Errorf("%w: expected date, received nil", types.ErrInvalidDate)
	default:
		return time.Time{}, fmt.Errorf("%w: expected date, received %T", types.ErrInvalidDate, v)
	}
}
