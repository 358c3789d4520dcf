package format

import (
	"fmt"
	"math"
	"time"
)

// msTolerance absorbs binary floating-point error before truncation, so
// 2.01 seconds (2009.9999999999998 ms) formats as ",010".
const msTolerance = 1e-6

// maxTimestampMillis is the largest millisecond count that fits in int64.
const maxTimestampMillis = float64(math.MaxInt64)

// Timestamp formats a seconds offset as an SRT timestamp (HH:MM:SS,mmm).
// Milliseconds are truncated, not rounded. Hours are not capped and widen
// past two digits.
func Timestamp(seconds float64) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "", fmt.Errorf("%v seconds: %w", seconds, ErrInvalidTimestamp)
	}
	if seconds < 0 {
		return "", fmt.Errorf("negative offset %v seconds: %w", seconds, ErrInvalidTimestamp)
	}

	millis := math.Floor(seconds*1000 + msTolerance)
	if millis >= maxTimestampMillis {
		return "", fmt.Errorf("offset %v seconds out of range: %w", seconds, ErrInvalidTimestamp)
	}

	total := int64(millis)
	ms := total % 1000
	s := (total / 1000) % 60
	m := (total / 60_000) % 60
	h := total / 3_600_000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms), nil
}

// Duration formats a duration as HH:MM:SS, or MM:SS under an hour.
func Duration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Seconds converts a float seconds value, as returned by the transcription
// API, to a time.Duration. Invalid values map to zero.
func Seconds(v float64) time.Duration {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(v * float64(time.Second))
}

// Size formats a byte count for status messages: MB from 1MB, then KB.
func Size(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%d KB", bytes/kb)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
