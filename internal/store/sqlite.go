package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/jiten/internal/models"
)

// SQLiteStore implements Store using SQLite with an FTS5 headword index.
//
// The db handle is guarded by an RWMutex so Reload can swap it while
// readers are active. Note: FTS5 requires go-sqlite3 built with the
// sqlite_fts5 tag.
type SQLiteStore struct {
	mu       sync.RWMutex
	db       *sql.DB
	path     string
	readOnly bool
}

const entryColumns = `w.id, w.word, w.pos,
	COALESCE((SELECT definition FROM definitions WHERE word_id = w.id LIMIT 1), '')`

// NewSQLiteStore opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do
// not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	s := &SQLiteStore{path: dbPath}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

// OpenReadOnly opens an existing database for search-only use.
// The schema is not touched.
func OpenReadOnly(dbPath string) (*SQLiteStore, error) {
	s := &SQLiteStore{path: dbPath, readOnly: true}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) open() error {
	dsn := s.path
	if s.readOnly {
		dsn = "file:" + s.path + "?mode=ro"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if !s.readOnly {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to enable WAL: %w", err)
		}
		if err := initSchema(db); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	s.db = db
	return nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS words (
		id INTEGER PRIMARY KEY,
		word TEXT NOT NULL,
		pos TEXT NOT NULL,
		language TEXT NOT NULL,
		etymology_num INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_words_word ON words(word);
	CREATE INDEX IF NOT EXISTS idx_words_language ON words(language);

	CREATE VIRTUAL TABLE IF NOT EXISTS words_fts USING fts5(
		word,
		content='words',
		content_rowid='id'
	);

	CREATE TRIGGER IF NOT EXISTS words_ai AFTER INSERT ON words BEGIN
		INSERT INTO words_fts(rowid, word) VALUES (new.id, new.word);
	END;

	CREATE TRIGGER IF NOT EXISTS words_ad AFTER DELETE ON words BEGIN
		INSERT INTO words_fts(words_fts, rowid, word) VALUES('delete', old.id, old.word);
	END;

	CREATE TRIGGER IF NOT EXISTS words_au AFTER UPDATE ON words BEGIN
		INSERT INTO words_fts(words_fts, rowid, word) VALUES('delete', old.id, old.word);
		INSERT INTO words_fts(rowid, word) VALUES (new.id, new.word);
	END;

	CREATE TABLE IF NOT EXISTS definitions (
		id INTEGER PRIMARY KEY,
		word_id INTEGER NOT NULL,
		definition TEXT NOT NULL,
		examples TEXT,
		tags TEXT,
		FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_definitions_word_id ON definitions(word_id);

	CREATE TABLE IF NOT EXISTS pronunciations (
		id INTEGER PRIMARY KEY,
		word_id INTEGER NOT NULL,
		ipa TEXT,
		audio_url TEXT,
		accent TEXT,
		FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_pronunciations_word_id ON pronunciations(word_id);

	CREATE TABLE IF NOT EXISTS etymologies (
		id INTEGER PRIMARY KEY,
		word_id INTEGER NOT NULL,
		etymology_text TEXT NOT NULL,
		FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_etymologies_word_id ON etymologies(word_id);

	CREATE TABLE IF NOT EXISTS translations (
		id INTEGER PRIMARY KEY,
		word_id INTEGER NOT NULL,
		target_language TEXT NOT NULL,
		translation TEXT NOT NULL,
		FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_translations_word_id ON translations(word_id);
	CREATE INDEX IF NOT EXISTS idx_translations_language ON translations(target_language);
	`
	_, err := db.Exec(schema)
	return err
}

// handle returns the current db handle under a read lock.
func (s *SQLiteStore) handle() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// EscapeLike escapes LIKE metacharacters (%, _, \) in a literal
// fragment so it can be embedded in a LIKE pattern with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// LookupExact returns entries whose headword equals word verbatim.
func (s *SQLiteStore) LookupExact(ctx context.Context, word string, limit int) ([]*models.Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.handle().QueryContext(ctx,
		`SELECT `+entryColumns+` FROM words w WHERE w.word = ? LIMIT ?`,
		word, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// LookupPrefix returns entries whose headword starts with prefix,
// shortest headword first, then lexicographic.
func (s *SQLiteStore) LookupPrefix(ctx context.Context, prefix string, limit int) ([]*models.Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	pattern := EscapeLike(prefix) + "%"
	rows, err := s.handle().QueryContext(ctx,
		`SELECT `+entryColumns+` FROM words w
		 WHERE w.word LIKE ? ESCAPE '\'
		 ORDER BY length(w.word), w.word LIMIT ?`,
		pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// LookupIndexed runs an FTS5 MATCH query, ordered by the index's
// native rank.
func (s *SQLiteStore) LookupIndexed(ctx context.Context, match string, limit int) ([]*RankedEntry, error) {
	if limit <= 0 || match == "" {
		return nil, nil
	}
	rows, err := s.handle().QueryContext(ctx,
		`SELECT `+entryColumns+`, fts.rank
		 FROM words_fts fts
		 JOIN words w ON fts.rowid = w.id
		 WHERE words_fts MATCH ?
		 ORDER BY rank LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*RankedEntry
	for rows.Next() {
		var e models.Entry
		var rank float64
		if err := rows.Scan(&e.ID, &e.Word, &e.POS, &e.Definition, &rank); err != nil {
			return nil, err
		}
		results = append(results, &RankedEntry{Entry: &e, Rank: rank})
	}
	return results, rows.Err()
}

// LookupCaseInsensitivePrefix returns entries whose case-folded
// headword starts with the case-folded prefix.
func (s *SQLiteStore) LookupCaseInsensitivePrefix(ctx context.Context, prefix string, limit int) ([]*models.Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	pattern := EscapeLike(strings.ToLower(prefix)) + "%"
	rows, err := s.handle().QueryContext(ctx,
		`SELECT `+entryColumns+` FROM words w
		 WHERE lower(w.word) LIKE ? ESCAPE '\' LIMIT ?`,
		pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// LookupCaseInsensitiveContains returns entries whose case-folded
// headword matches the given LIKE pattern.
func (s *SQLiteStore) LookupCaseInsensitiveContains(ctx context.Context, pattern string, limit int) ([]*models.Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.handle().QueryContext(ctx,
		`SELECT `+entryColumns+` FROM words w
		 WHERE lower(w.word) LIKE ? ESCAPE '\' LIMIT ?`,
		pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*models.Entry, error) {
	defer rows.Close()
	var entries []*models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Word, &e.POS, &e.Definition); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// GetFullDefinition returns the complete record for a word ID.
func (s *SQLiteStore) GetFullDefinition(ctx context.Context, id int64) (*models.FullDefinition, error) {
	db := s.handle()

	var full models.FullDefinition
	err := db.QueryRowContext(ctx,
		`SELECT id, word, pos, language FROM words WHERE id = ?`, id,
	).Scan(&full.ID, &full.Word, &full.POS, &full.Language)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("word not found: %d", id)
	}
	if err != nil {
		return nil, err
	}

	if full.Definitions, err = s.getDefinitions(ctx, db, id); err != nil {
		return nil, err
	}
	if full.Pronunciations, err = s.getPronunciations(ctx, db, id); err != nil {
		return nil, err
	}
	if full.Etymology, err = s.getEtymology(ctx, db, id); err != nil {
		return nil, err
	}
	if full.Translations, err = s.getTranslations(ctx, db, id); err != nil {
		return nil, err
	}
	return &full, nil
}

func (s *SQLiteStore) getDefinitions(ctx context.Context, db *sql.DB, wordID int64) ([]models.Definition, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, definition, examples, tags FROM definitions WHERE word_id = ?`, wordID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []models.Definition
	for rows.Next() {
		var d models.Definition
		var examplesJSON, tagsJSON sql.NullString
		if err := rows.Scan(&d.ID, &d.Text, &examplesJSON, &tagsJSON); err != nil {
			return nil, err
		}
		if examplesJSON.Valid && examplesJSON.String != "" {
			_ = json.Unmarshal([]byte(examplesJSON.String), &d.Examples)
		}
		if tagsJSON.Valid && tagsJSON.String != "" {
			_ = json.Unmarshal([]byte(tagsJSON.String), &d.Tags)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

func (s *SQLiteStore) getPronunciations(ctx context.Context, db *sql.DB, wordID int64) ([]models.Pronunciation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, COALESCE(ipa, ''), COALESCE(audio_url, ''), COALESCE(accent, '')
		 FROM pronunciations WHERE word_id = ?`, wordID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prons []models.Pronunciation
	for rows.Next() {
		var p models.Pronunciation
		if err := rows.Scan(&p.ID, &p.IPA, &p.AudioURL, &p.Accent); err != nil {
			return nil, err
		}
		prons = append(prons, p)
	}
	return prons, rows.Err()
}

func (s *SQLiteStore) getEtymology(ctx context.Context, db *sql.DB, wordID int64) (string, error) {
	var text string
	err := db.QueryRowContext(ctx,
		`SELECT etymology_text FROM etymologies WHERE word_id = ? LIMIT 1`, wordID,
	).Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *SQLiteStore) getTranslations(ctx context.Context, db *sql.DB, wordID int64) ([]models.Translation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, target_language, translation FROM translations WHERE word_id = ?`, wordID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trans []models.Translation
	for rows.Next() {
		var t models.Translation
		if err := rows.Scan(&t.ID, &t.TargetLanguage, &t.Translation); err != nil {
			return nil, err
		}
		trans = append(trans, t)
	}
	return trans, rows.Err()
}

// InsertWord inserts a word entry and returns its ID.
func (s *SQLiteStore) InsertWord(ctx context.Context, word, pos, language string, etymologyNum int) (int64, error) {
	result, err := s.handle().ExecContext(ctx,
		`INSERT INTO words (word, pos, language, etymology_num) VALUES (?, ?, ?, ?)`,
		word, pos, language, etymologyNum,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertDefinition inserts a definition for a word. Examples and tags
// are stored as JSON arrays.
func (s *SQLiteStore) InsertDefinition(ctx context.Context, wordID int64, text string, examples, tags []string) (int64, error) {
	examplesJSON, err := json.Marshal(examples)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal examples: %w", err)
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal tags: %w", err)
	}
	result, err := s.handle().ExecContext(ctx,
		`INSERT INTO definitions (word_id, definition, examples, tags) VALUES (?, ?, ?, ?)`,
		wordID, text, string(examplesJSON), string(tagsJSON),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertPronunciation inserts a pronunciation for a word.
func (s *SQLiteStore) InsertPronunciation(ctx context.Context, wordID int64, ipa, audioURL, accent string) (int64, error) {
	result, err := s.handle().ExecContext(ctx,
		`INSERT INTO pronunciations (word_id, ipa, audio_url, accent) VALUES (?, ?, ?, ?)`,
		wordID, ipa, audioURL, accent,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertEtymology inserts an etymology for a word.
func (s *SQLiteStore) InsertEtymology(ctx context.Context, wordID int64, text string) (int64, error) {
	result, err := s.handle().ExecContext(ctx,
		`INSERT INTO etymologies (word_id, etymology_text) VALUES (?, ?)`,
		wordID, text,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertTranslation inserts a translation for a word.
func (s *SQLiteStore) InsertTranslation(ctx context.Context, wordID int64, targetLanguage, translation string) (int64, error) {
	result, err := s.handle().ExecContext(ctx,
		`INSERT INTO translations (word_id, target_language, translation) VALUES (?, ?, ?)`,
		wordID, targetLanguage, translation,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// DeleteWord removes a word; dependent definitions, pronunciations,
// etymologies, and translations cascade.
func (s *SQLiteStore) DeleteWord(ctx context.Context, id int64) error {
	_, err := s.handle().ExecContext(ctx, `DELETE FROM words WHERE id = ?`, id)
	return err
}

// BatchImportEntries inserts raw import records in one transaction.
func (s *SQLiteStore) BatchImportEntries(ctx context.Context, entries []*models.RawWordEntry) error {
	tx, err := s.handle().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		if err := importEntry(ctx, tx, entry); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func importEntry(ctx context.Context, tx *sql.Tx, entry *models.RawWordEntry) error {
	lang := entry.Lang
	if lang == "" {
		lang = "English"
	}
	result, err := tx.ExecContext(ctx,
		`INSERT INTO words (word, pos, language, etymology_num) VALUES (?, ?, ?, ?)`,
		entry.Word, entry.POS, lang, entry.EtymologyNumber,
	)
	if err != nil {
		return err
	}
	wordID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, sense := range entry.Senses {
		text := ""
		if len(sense.Glosses) > 0 {
			text = sense.Glosses[0]
		} else if len(sense.RawGlosses) > 0 {
			text = sense.RawGlosses[0]
		}
		if text == "" {
			continue
		}
		examples := make([]string, 0, len(sense.Examples))
		for _, ex := range sense.Examples {
			examples = append(examples, ex.Text)
		}
		examplesJSON, err := json.Marshal(examples)
		if err != nil {
			return err
		}
		tagsJSON, err := json.Marshal(sense.Tags)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO definitions (word_id, definition, examples, tags) VALUES (?, ?, ?, ?)`,
			wordID, text, string(examplesJSON), string(tagsJSON),
		); err != nil {
			return err
		}
	}

	for _, sound := range entry.Sounds {
		if sound.IPA == "" {
			continue
		}
		accent := ""
		if len(sound.Tags) > 0 {
			accent = sound.Tags[0]
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pronunciations (word_id, ipa, audio_url, accent) VALUES (?, ?, ?, ?)`,
			wordID, sound.IPA, sound.AudioURL(), accent,
		); err != nil {
			return err
		}
	}

	if entry.EtymologyText != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO etymologies (word_id, etymology_text) VALUES (?, ?)`,
			wordID, entry.EtymologyText,
		); err != nil {
			return err
		}
	}

	for _, tr := range entry.Translations {
		if tr.Word == "" {
			continue
		}
		lang := tr.Code
		if lang == "" {
			lang = tr.Lang
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO translations (word_id, target_language, translation) VALUES (?, ?, ?)`,
			wordID, lang, tr.Word,
		); err != nil {
			return err
		}
	}
	return nil
}

// CountWords returns the total number of word entries.
func (s *SQLiteStore) CountWords(ctx context.Context) (int64, error) {
	var count int64
	err := s.handle().QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&count)
	return count, err
}

// CountDefinitions returns the total number of definitions.
func (s *SQLiteStore) CountDefinitions(ctx context.Context) (int64, error) {
	var count int64
	err := s.handle().QueryRowContext(ctx, `SELECT COUNT(*) FROM definitions`).Scan(&count)
	return count, err
}

// Reload closes and reopens the database handle. Called after the
// database file has been replaced on disk (e.g. by an offline import).
func (s *SQLiteStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
	dsn := s.path
	if s.readOnly {
		dsn = "file:" + s.path + "?mode=ro"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
