package subtitle

import "strings"

// CleanText collapses runs of whitespace into one space and trims the ends.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Clean returns the segments with cleaned text, dropping those left empty.
// Order is preserved, so cue numbering stays contiguous.
func Clean(segments []Segment) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		seg.Text = CleanText(seg.Text)
		if seg.Text == "" {
			continue
		}
		out = append(out, seg)
	}
	return out
}

// Sentences groups word segments into sentences. A sentence ends at a word
// whose last character is '.', '!' or '?'; trailing words without a
// terminator form a final sentence. Each sentence spans from its first
// word's start to its last word's end.
func Sentences(words []Segment) []Segment {
	var (
		sentences []Segment
		current   []Segment
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		parts := make([]string, len(current))
		for i, w := range current {
			parts[i] = w.Text
		}
		if text := CleanText(strings.Join(parts, " ")); text != "" {
			sentences = append(sentences, Segment{
				Start: current[0].Start,
				End:   current[len(current)-1].End,
				Text:  text,
			})
		}
		current = nil
	}

	for _, w := range words {
		current = append(current, w)
		if endsSentence(w.Text) {
			flush()
		}
	}
	flush()

	return sentences
}

func endsSentence(word string) bool {
	word = strings.TrimRight(word, " \t\n")
	if word == "" {
		return false
	}
	switch word[len(word)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}
