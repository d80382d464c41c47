// Package store defines the lexicon persistence interface for dictionary entries.
package store

import (
	"context"

	"github.com/hyperjump/jiten/internal/models"
)

// RankedEntry pairs an entry with its full-text index relevance rank.
// SQLite FTS5 bm25 ranks are negative; callers should compare by
// magnitude rather than assume a sign convention.
type RankedEntry struct {
	Entry *models.Entry
	Rank  float64
}

// Reader is the read-only subset of the store used by the search
// engine. All lookups return at most limit entries; a limit of zero
// or less returns no entries.
type Reader interface {
	// LookupExact returns entries whose headword equals word verbatim.
	LookupExact(ctx context.Context, word string, limit int) ([]*models.Entry, error)

	// LookupPrefix returns entries whose headword starts with prefix,
	// ordered by headword length ascending then lexicographic.
	LookupPrefix(ctx context.Context, prefix string, limit int) ([]*models.Entry, error)

	// LookupIndexed runs an FTS5 MATCH query against the headword
	// index and returns entries ordered by the index's native rank.
	LookupIndexed(ctx context.Context, match string, limit int) ([]*RankedEntry, error)

	// LookupCaseInsensitivePrefix returns entries whose case-folded
	// headword starts with the case-folded prefix.
	LookupCaseInsensitivePrefix(ctx context.Context, prefix string, limit int) ([]*models.Entry, error)

	// LookupCaseInsensitiveContains returns entries whose case-folded
	// headword matches the given LIKE pattern. The caller builds the
	// pattern; use EscapeLike for literal fragments.
	LookupCaseInsensitiveContains(ctx context.Context, pattern string, limit int) ([]*models.Entry, error)
}

// Store defines the full lexicon persistence contract: tier lookups,
// full-definition reads, entry writes, bulk import, and stats.
type Store interface {
	Reader

	// GetFullDefinition returns the complete record for a word ID,
	// including definitions, pronunciations, etymology, and translations.
	GetFullDefinition(ctx context.Context, id int64) (*models.FullDefinition, error)

	// Entry writes
	InsertWord(ctx context.Context, word, pos, language string, etymologyNum int) (int64, error)
	InsertDefinition(ctx context.Context, wordID int64, text string, examples, tags []string) (int64, error)
	InsertPronunciation(ctx context.Context, wordID int64, ipa, audioURL, accent string) (int64, error)
	InsertEtymology(ctx context.Context, wordID int64, text string) (int64, error)
	InsertTranslation(ctx context.Context, wordID int64, targetLanguage, translation string) (int64, error)

	// DeleteWord removes a word and all dependent rows (cascading).
	DeleteWord(ctx context.Context, id int64) error

	// BatchImportEntries inserts raw import records in one transaction.
	BatchImportEntries(ctx context.Context, entries []*models.RawWordEntry) error

	// Stats
	CountWords(ctx context.Context) (int64, error)
	CountDefinitions(ctx context.Context) (int64, error)

	// Reload closes and reopens the underlying database. Used when an
	// import replaces the database file on disk.
	Reload() error

	Close() error
}
