package format

import "errors"

// ErrInvalidTimestamp indicates a seconds offset that cannot be formatted:
// negative, NaN, infinite, or beyond the int64 millisecond range.
var ErrInvalidTimestamp = errors.New("invalid timestamp")
