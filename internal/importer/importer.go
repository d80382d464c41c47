// Package importer loads Wiktionary JSONL exports into the lexicon store.
package importer

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/jiten/internal/models"
	"github.com/hyperjump/jiten/internal/store"
)

const (
	defaultBatchSize = 1000
	// Lines in kaikki.org exports can run to megabytes for common words.
	maxLineBytes = 16 * 1024 * 1024
)

// Progress receives (current, total) line counts during an import.
// total is 0 when the input size is unknown (gzipped or piped input).
type Progress func(current, total uint64)

// Stats summarizes a completed import.
type Stats struct {
	Lines    uint64 // lines read, including skipped ones
	Imported uint64 // entries written to the store
	Errors   uint64 // malformed or failed lines
}

// Importer performs bulk JSONL imports in batched transactions.
type Importer struct {
	store     store.Store
	logger    *zap.Logger
	batchSize int
}

// NewImporter creates an importer writing to st. logger may be nil.
func NewImporter(st store.Store, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: st, logger: logger, batchSize: defaultBatchSize}
}

// ImportFile imports a JSONL file at path into the store. Files
// ending in .gz are decompressed on the fly. progress may be nil.
func (im *Importer) ImportFile(ctx context.Context, path string, progress Progress) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	var total uint64
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		reader = gz
	} else {
		// Plain files are cheap to pre-scan for progress totals.
		if total, err = countLines(path); err != nil {
			return nil, err
		}
	}

	return im.Import(ctx, reader, total, progress)
}

// Import reads JSONL records from r and writes them to the store in
// batches. Malformed lines are counted and skipped, never fatal.
// total is only used for progress reporting; pass 0 when unknown.
func (im *Importer) Import(ctx context.Context, r io.Reader, total uint64, progress Progress) (*Stats, error) {
	if progress == nil {
		progress = func(uint64, uint64) {}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	stats := &Stats{}
	batch := make([]*models.RawWordEntry, 0, im.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := im.store.BatchImportEntries(ctx, batch); err != nil {
			return fmt.Errorf("batch import failed at line %d: %w", stats.Lines, err)
		}
		stats.Imported += uint64(len(batch))
		batch = batch[:0]
		progress(stats.Lines, total)
		return nil
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry models.RawWordEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			stats.Errors++
			im.logger.Debug("skipping malformed line",
				zap.Uint64("line", stats.Lines), zap.Error(err))
			continue
		}
		if entry.Word == "" {
			stats.Errors++
			continue
		}

		batch = append(batch, &entry)
		if len(batch) >= im.batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read import stream: %w", err)
	}
	if err := flush(); err != nil {
		return stats, err
	}
	progress(stats.Lines, total)

	im.logger.Info("import complete",
		zap.Uint64("lines", stats.Lines),
		zap.Uint64("imported", stats.Imported),
		zap.Uint64("errors", stats.Errors),
	)
	return stats, nil
}

func countLines(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var count uint64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to count lines: %w", err)
	}
	return count, nil
}
