// Package subtitle serializes timed transcript segments as SRT subtitles.
//
// SRT is a sequence of numbered blocks:
//
//	1
//	00:00:00,000 --> 00:00:01,000
//	Hi
//
// Serialization is a pure function of its input: the same segments always
// produce byte-identical output.
package subtitle

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/alnah/go-subtitle/internal/format"
)

// Segment is a span of speech: a single word or a longer segment.
// Start and End are offsets in seconds from the start of the audio.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Cue is one SRT block: a 1-based index, a formatted time range and text.
type Cue struct {
	Index int
	Start string
	End   string
	Text  string
}

// String renders the cue as an SRT block, including the blank separator line.
func (c Cue) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(c.Index))
	b.WriteByte('\n')
	b.WriteString(c.Start)
	b.WriteString(" --> ")
	b.WriteString(c.End)
	b.WriteByte('\n')
	b.WriteString(c.Text)
	b.WriteString("\n\n")
	return b.String()
}

// Cues yields one cue per segment, numbered from 1 in input order.
// The sequence is lazy and can be ranged over any number of times.
// It stops after yielding the first timestamp error.
//
// Start <= End and non-overlap are not checked.
func Cues(segments []Segment) iter.Seq2[Cue, error] {
	return func(yield func(Cue, error) bool) {
		for i, seg := range segments {
			cue, err := newCue(i+1, seg)
			if err != nil {
				yield(Cue{}, err)
				return
			}
			if !yield(cue, nil) {
				return
			}
		}
	}
}

func newCue(index int, seg Segment) (Cue, error) {
	start, err := format.Timestamp(seg.Start)
	if err != nil {
		return Cue{}, fmt.Errorf("cue %d start: %w", index, err)
	}
	end, err := format.Timestamp(seg.End)
	if err != nil {
		return Cue{}, fmt.Errorf("cue %d end: %w", index, err)
	}
	return Cue{Index: index, Start: start, End: end, Text: seg.Text}, nil
}

// Blocks yields the rendered SRT block of each segment.
func Blocks(segments []Segment) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for cue, err := range Cues(segments) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(cue.String(), nil) {
				return
			}
		}
	}
}

// Serialize returns the full SRT document for segments.
// No segments yields an empty document.
func Serialize(segments []Segment) (string, error) {
	var b strings.Builder
	if err := Write(&b, segments); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write streams the SRT document for segments to w.
// On a timestamp error, blocks already written stay written.
func Write(w io.Writer, segments []Segment) error {
	for block, err := range Blocks(segments) {
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, block); err != nil {
			return fmt.Errorf("write srt: %w", err)
		}
	}
	return nil
}
