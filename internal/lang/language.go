// Package lang validates the audio language hint passed to the
// transcription API.
package lang

import (
	"fmt"
	"strings"
)

// knownLanguages holds the ISO 639-1 codes Whisper accepts as a language
// hint. Regional variants are accepted by their base code.
var knownLanguages = map[string]bool{
	"af": true, "ar": true, "bg": true, "bn": true, "ca": true, "cs": true, "da": true, "de": true,
	"el": true, "en": true, "es": true, "et": true, "fa": true, "fi": true, "fr": true, "gu": true,
	"he": true, "hi": true, "hr": true, "hu": true, "id": true, "it": true, "ja": true, "kn": true,
	"ko": true, "lt": true, "lv": true, "mk": true, "ml": true, "mr": true, "ms": true, "nl": true,
	"no": true, "pa": true, "pl": true, "pt": true, "ro": true, "ru": true, "sk": true, "sl": true,
	"sr": true, "sv": true, "sw": true, "ta": true, "te": true, "th": true, "tl": true, "tr": true,
	"uk": true, "ur": true, "vi": true, "zh": true,
}

// Language is a validated language code, normalized to lowercase with a
// hyphen separator ("pt-br"). The zero value means auto-detect.
type Language struct {
	code string
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Language{}

// Parse validates s as an ISO 639-1 code ("en") or a locale ("pt-BR",
// "pt_BR"). An empty string yields the zero Language (auto-detect).
func Parse(s string) (Language, error) {
	if s == "" {
		return Language{}, nil
	}

	code := normalize(s)
	if !knownLanguages[base(code)] {
		return Language{}, fmt.Errorf("invalid language code %q (use ISO 639-1 codes like 'en', 'it', 'pt-BR'): %w",
			s, ErrInvalid)
	}
	return Language{code: code}, nil
}

// String returns the normalized code, or "" for auto-detect.
func (l Language) String() string {
	return l.code
}

// IsZero reports whether l is the auto-detect value.
func (l Language) IsZero() bool {
	return l.code == ""
}

// BaseCode returns the ISO 639-1 part of the code: "pt-br" -> "pt".
// The transcription API rejects regional variants.
func (l Language) BaseCode() string {
	return base(l.code)
}

func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
}

func base(code string) string {
	b, _, _ := strings.Cut(code, "-")
	return b
}
