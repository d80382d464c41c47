package search

import "strings"

// matchEscaper neutralizes FTS5 reserved characters: double quotes
// are doubled, wildcard and column-filter markers become token breaks.
var matchEscaper = strings.NewReplacer(`"`, `""`, "*", " ", "^", " ", ":", " ")

// PrepareMatchQuery rewrites a raw query as an FTS5 MATCH expression.
// Reserved characters are escaped and every whitespace-delimited
// token becomes a prefix term, so "hel" matches "hello". Returns the
// empty string when no tokens remain after escaping.
func PrepareMatchQuery(query string) string {
	tokens := strings.Fields(matchEscaper.Replace(query))
	if len(tokens) == 0 {
		return ""
	}
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok + "*"
	}
	return strings.Join(terms, " ")
}
