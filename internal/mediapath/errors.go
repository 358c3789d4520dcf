package mediapath

import "errors"

// ErrInvalidPath indicates a path is empty or has no usable stem.
var ErrInvalidPath = errors.New("invalid media path")
