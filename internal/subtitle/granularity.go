package subtitle

import (
	"fmt"
	"strings"
)

// Granularity selects what each subtitle cue covers.
// The zero value is invalid; use ParseGranularity or the predefined values.
type Granularity struct {
	name string
}

// Granularity names accepted by ParseGranularity.
const (
	granularityWord     = "word"
	granularitySegment  = "segment"
	granularitySentence = "sentence"
)

// Predefined granularities.
var (
	ByWord     = Granularity{name: granularityWord}
	BySegment  = Granularity{name: granularitySegment}
	BySentence = Granularity{name: granularitySentence}
)

// Compile-time interface compliance check.
var _ fmt.Stringer = Granularity{}

// ParseGranularity parses "word", "segment" or "sentence" (case-insensitive,
// plural forms accepted). Empty input is an error.
func ParseGranularity(s string) (Granularity, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	switch name {
	case granularityWord, granularitySegment, granularitySentence:
		return Granularity{name: name}, nil
	case "":
		return Granularity{}, fmt.Errorf("granularity cannot be empty: %w", ErrInvalidGranularity)
	default:
		return Granularity{}, fmt.Errorf("unknown granularity %q (use word, segment or sentence): %w",
			s, ErrInvalidGranularity)
	}
}

// String returns the granularity name, or "" for the zero value.
func (g Granularity) String() string {
	return g.name
}

// IsZero reports whether g is unset.
func (g Granularity) IsZero() bool {
	return g.name == ""
}

// OrDefault returns g, or ByWord if g is unset.
func (g Granularity) OrDefault() Granularity {
	if g.IsZero() {
		return ByWord
	}
	return g
}

// Suffix is the file name suffix for subtitles of this granularity,
// e.g. "-words" in "talk-words.srt".
func (g Granularity) Suffix() string {
	if g.IsZero() {
		return ""
	}
	return "-" + g.name + "s"
}
