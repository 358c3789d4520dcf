package subtitle

import "errors"

// ErrInvalidGranularity indicates an unknown subtitle granularity name.
var ErrInvalidGranularity = errors.New("invalid granularity")
