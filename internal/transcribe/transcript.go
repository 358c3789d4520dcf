package transcribe

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alnah/go-subtitle/internal/subtitle"
)

// estimatedWordSeconds is the span given to each word when a response has
// text but no word timings.
const estimatedWordSeconds = 0.5

// Transcript is the timed result of one transcription.
// Words and Segments keep the text exactly as the API returned it.
type Transcript struct {
	Text     string             `json:"text"`
	Language string             `json:"language,omitempty"`
	Duration float64            `json:"duration"`
	Words    []subtitle.Segment `json:"words,omitempty"`
	Segments []subtitle.Segment `json:"segments,omitempty"`
}

// TimedWords returns the word timings. When the response carried none, the
// words of Text are laid end to end from zero, estimatedWordSeconds each,
// and estimated is true.
func (t Transcript) TimedWords() (words []subtitle.Segment, estimated bool) {
	if len(t.Words) > 0 {
		return t.Words, false
	}

	fields := strings.Fields(t.Text)
	if len(fields) == 0 {
		return nil, false
	}
	words = make([]subtitle.Segment, len(fields))
	for i, w := range fields {
		start := float64(i) * estimatedWordSeconds
		words[i] = subtitle.Segment{Start: start, End: start + estimatedWordSeconds, Text: w}
	}
	return words, true
}

// Select returns the entries to write as subtitles for granularity g.
// Text is whitespace-cleaned and empty entries are dropped, so cue indices
// stay contiguous. Sentence granularity is built from words.
func (t Transcript) Select(g subtitle.Granularity) ([]subtitle.Segment, error) {
	switch g {
	case subtitle.ByWord:
		words, _ := t.TimedWords()
		return subtitle.Clean(words), nil
	case subtitle.BySegment:
		return subtitle.Clean(t.Segments), nil
	case subtitle.BySentence:
		words, _ := t.TimedWords()
		return subtitle.Sentences(words), nil
	default:
		return nil, fmt.Errorf("granularity %q: %w", g, subtitle.ErrInvalidGranularity)
	}
}

// PlainText is the transcript as running text: Text when present, otherwise
// the segments joined. It ends with a newline unless empty.
func (t Transcript) PlainText() string {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		parts := make([]string, len(t.Segments))
		for i, seg := range t.Segments {
			parts[i] = seg.Text
		}
		text = subtitle.CleanText(strings.Join(parts, " "))
	}
	if text == "" {
		return ""
	}
	return text + "\n"
}

// JSON returns the transcript as indented JSON.
func (t Transcript) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode transcript: %w", err)
	}
	return append(data, '\n'), nil
}
