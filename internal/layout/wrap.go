package layout

import "strings"

// Wrap breaks text into lines of at most maxRunes characters. Breaks fall on
// any character, not on word boundaries, which suits CJK text.
//
// With keepNewlines, existing line breaks (real or literal backslash-n) start
// a new line and blank lines are kept. Without it, they become spaces before
// wrapping. A non-positive maxRunes returns the text normalized but unwrapped.
func Wrap(text string, maxRunes int, keepNewlines bool) string {
	text = Normalize(text)
	if text == "" || maxRunes <= 0 {
		return text
	}
	if !keepNewlines {
		text = strings.ReplaceAll(text, "\n", " ")
	}

	var out []string
	for _, para := range SplitLines(text) {
		out = append(out, chunk(para, maxRunes)...)
	}
	return strings.Join(out, "\n")
}

// chunk splits s into pieces of at most n runes. An empty s yields one
// empty piece.
func chunk(s string, n int) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}
	pieces := make([]string, 0, (len(runes)+n-1)/n)
	for len(runes) > n {
		pieces = append(pieces, string(runes[:n]))
		runes = runes[n:]
	}
	return append(pieces, string(runes))
}
