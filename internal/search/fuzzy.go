package search

import (
	"context"
	"sort"
	"strings"

	"github.com/hyperjump/jiten/internal/models"
	"github.com/hyperjump/jiten/internal/store"
	"github.com/hyperjump/jiten/internal/textdist"
)

// fuzzyTier scores a bounded candidate pool by edit distance against
// the lowercased query. Scoring uses plain Levenshtein, so an
// adjacent transposition costs two edits and can fall outside the
// distance threshold; textdist.DamerauLevenshtein exists as a
// transposition-aware variant but is not used for ranking.
func (e *Engine) fuzzyTier(query string) tierFunc {
	return func(ctx context.Context, remaining int) ([]models.SearchResult, error) {
		return e.fuzzyMatch(ctx, query, remaining)
	}
}

func (e *Engine) fuzzyMatch(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	runes := []rune(query)
	if len(runes) < e.config.MinFuzzyQueryLength {
		return nil, nil
	}

	var results []models.SearchResult
	seen := make(map[int64]struct{})

	// Prefix-anchored candidates: headwords sharing the query's first
	// one or two characters.
	anchorLen := 2
	if len(runes) < anchorLen {
		anchorLen = len(runes)
	}
	candidates, err := e.store.LookupCaseInsensitivePrefix(ctx, string(runes[:anchorLen]), e.config.FuzzyPrefixCandidates)
	if err != nil {
		return nil, err
	}
	for _, entry := range candidates {
		if r, ok := e.scoreFuzzyCandidate(query, entry); ok {
			results = append(results, r)
			seen[entry.ID] = struct{}{}
		}
	}

	// Suffix-anchored candidates catch a wrong first character: any
	// single character followed by the query minus its first character.
	if len(results) < limit && len(runes) >= 2 {
		pattern := "_%" + store.EscapeLike(string(runes[1:])) + "%"
		more, err := e.store.LookupCaseInsensitiveContains(ctx, pattern, e.config.FuzzySuffixCandidates)
		if err != nil {
			return nil, err
		}
		for _, entry := range more {
			if _, ok := seen[entry.ID]; ok {
				continue
			}
			if r, ok := e.scoreFuzzyCandidate(query, entry); ok {
				results = append(results, r)
				seen[entry.ID] = struct{}{}
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// scoreFuzzyCandidate keeps a candidate only when its edit distance
// from the query is positive and within the threshold. Distance zero
// is an exact match, already covered by the exact tier at a better
// score, and must not be double-scored here.
func (e *Engine) scoreFuzzyCandidate(query string, entry *models.Entry) (models.SearchResult, bool) {
	distance := textdist.Levenshtein(query, strings.ToLower(entry.Word))
	if distance == 0 || distance > e.config.MaxFuzzyDistance {
		return models.SearchResult{}, false
	}
	return e.result(entry, fuzzyBase+float64(distance)), true
}
