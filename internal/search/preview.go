package search

import "strings"

// TruncatePreview shortens definition text for display to at most
// maxRunes characters, cutting on a character boundary and backing up
// to the nearest preceding space so words are not split. "..." is
// appended whenever truncation occurred. The cut is computed on code
// points, so multi-byte characters are never corrupted. A maxRunes of
// zero or less returns text unchanged.
func TruncatePreview(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
