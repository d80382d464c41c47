// Package search implements the tiered dictionary search engine:
// exact, prefix, full-text, and fuzzy headword matching merged into
// one ranked, deduplicated, paginated result list.
package search

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/jiten/internal/config"
	"github.com/hyperjump/jiten/internal/models"
	"github.com/hyperjump/jiten/internal/store"
)

// Base score per tier. Within a tier each result adds a tier-specific
// delta (prefix extension length, index rank magnitude, edit
// distance), so tiers never interleave after the final sort.
const (
	exactBase  = 0.0
	prefixBase = 1.0
	indexBase  = 2.0
	fuzzyBase  = 3.0
)

// Engine runs tiered search against a lexicon store. It is stateless
// per call and safe for concurrent use as long as the store supports
// concurrent reads.
type Engine struct {
	store  store.Reader
	config config.SearchConfig
}

// NewEngine creates a search engine over st. Zero fields in cfg fall
// back to defaults; cfg may be nil.
func NewEngine(st store.Reader, cfg *config.SearchConfig) *Engine {
	var c config.SearchConfig
	if cfg != nil {
		c = *cfg
	}
	config.ApplySearchDefaults(&c)
	return &Engine{store: st, config: c}
}

// tierFunc retrieves and scores candidates for one tier. remaining is
// how many more results the caller still needs; a tier never returns
// more than that.
type tierFunc func(ctx context.Context, remaining int) ([]models.SearchResult, error)

// Search runs the four tiers in priority order and returns the
// requested offset/limit window of the merged result list.
//
// Tiers are consulted only while fewer than offset+limit results have
// accumulated. Duplicate entry IDs from later tiers are dropped. The
// final sort is stable and ascending by score, so ties keep
// tier-then-insertion order. For a fixed store snapshot the output is
// deterministic.
func (e *Engine) Search(ctx context.Context, query string, limit, offset int) ([]models.SearchResult, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || limit == 0 {
		return []models.SearchResult{}, nil
	}

	needed := saturatingAdd(offset, limit)

	// The fuzzy tier alone matches case-insensitively; the others
	// respect the store's native collation.
	tiers := []tierFunc{
		e.exactTier(trimmed),
		e.prefixTier(trimmed),
		e.indexTier(trimmed),
		e.fuzzyTier(strings.ToLower(trimmed)),
	}

	results := make([]models.SearchResult, 0, limit)
	for _, tier := range tiers {
		remaining := needed - len(results)
		if remaining <= 0 {
			break
		}
		matches, err := tier(ctx, remaining)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !containsID(results, m.ID) {
				results = append(results, m)
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	start := offset
	if start > len(results) {
		start = len(results)
	}
	end := needed
	if end > len(results) {
		end = len(results)
	}
	return results[start:end], nil
}

// exactTier matches the headword verbatim.
func (e *Engine) exactTier(word string) tierFunc {
	return func(ctx context.Context, remaining int) ([]models.SearchResult, error) {
		entries, err := e.store.LookupExact(ctx, word, remaining)
		if err != nil {
			return nil, err
		}
		results := make([]models.SearchResult, 0, len(entries))
		for _, entry := range entries {
			results = append(results, e.result(entry, exactBase))
		}
		return results, nil
	}
}

// prefixTier matches headwords starting with the query; shorter
// extensions rank closer to an exact match.
func (e *Engine) prefixTier(prefix string) tierFunc {
	prefixLen := utf8.RuneCountInString(prefix)
	return func(ctx context.Context, remaining int) ([]models.SearchResult, error) {
		entries, err := e.store.LookupPrefix(ctx, prefix, remaining)
		if err != nil {
			return nil, err
		}
		results := make([]models.SearchResult, 0, len(entries))
		for _, entry := range entries {
			extension := utf8.RuneCountInString(entry.Word) - prefixLen
			if extension < 0 {
				extension = 0
			}
			results = append(results, e.result(entry, prefixBase+0.1*float64(extension)))
		}
		return results, nil
	}
}

// indexTier delegates to the store's full-text index with every token
// rewritten as a prefix term.
func (e *Engine) indexTier(query string) tierFunc {
	return func(ctx context.Context, remaining int) ([]models.SearchResult, error) {
		match := PrepareMatchQuery(query)
		if match == "" {
			// Escaping stripped every token; no results, not an error,
			// and the index is never consulted.
			return nil, nil
		}
		ranked, err := e.store.LookupIndexed(ctx, match, remaining)
		if err != nil {
			return nil, err
		}
		results := make([]models.SearchResult, 0, len(ranked))
		for _, r := range ranked {
			results = append(results, e.result(r.Entry, indexBase+math.Abs(r.Rank)))
		}
		return results, nil
	}
}

func (e *Engine) result(entry *models.Entry, score float64) models.SearchResult {
	return models.SearchResult{
		ID:      entry.ID,
		Word:    entry.Word,
		POS:     entry.POS,
		Preview: TruncatePreview(entry.Definition, e.config.PreviewLength),
		Score:   score,
	}
}

// containsID reports whether results already holds id. Result sets
// stay small (offset+limit), so a linear scan is fine.
func containsID(results []models.SearchResult, id int64) bool {
	for i := range results {
		if results[i].ID == id {
			return true
		}
	}
	return false
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
