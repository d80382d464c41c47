// Package e2e exercises the full stack (importer, store, engine, HTTP API)
// against a small dictionary corpus.
package e2e

import "github.com/hyperjump/jiten/internal/models"

// QueryCase is one expected search outcome against the corpus.
type QueryCase struct {
	Description   string
	Query         string
	ExpectedWords []string // at least one must appear in the results
}

// Corpus is a fixture dictionary with query test cases.
type Corpus struct {
	Entries   []*models.RawWordEntry
	TestCases []QueryCase
}

func entry(word, pos string, glosses ...string) *models.RawWordEntry {
	senses := make([]models.RawSense, 0, len(glosses))
	for _, g := range glosses {
		senses = append(senses, models.RawSense{Glosses: []string{g}})
	}
	return &models.RawWordEntry{Word: word, POS: pos, Lang: "English", Senses: senses}
}

// BuildCorpus returns the fixture dictionary and its query cases.
func BuildCorpus() *Corpus {
	return &Corpus{
		Entries: []*models.RawWordEntry{
			entry("hello", "interjection", "a greeting or expression of goodwill"),
			entry("help", "verb", "to give assistance to someone"),
			entry("helper", "noun", "one who helps"),
			entry("helicopter", "noun", "an aircraft lifted by rotating wings"),
			entry("world", "noun", "the earth and all the people on it"),
			entry("word", "noun", "a unit of language carrying meaning"),
			entry("dictionary", "noun", "a reference listing words with their definitions"),
			entry("definition", "noun", "a statement of the meaning of a word"),
			entry("café", "noun", "a small restaurant serving coffee"),
			entry("status quo", "noun", "the existing state of affairs"),
		},
		TestCases: []QueryCase{
			{"exact headword", "hello", []string{"hello"}},
			{"prefix of several words", "hel", []string{"help", "helper", "hello"}},
			{"typo one substitution", "helo", []string{"hello", "help"}},
			{"typo wrong first character", "vorld", []string{"world"}},
			{"interior token via index", "quo", []string{"status quo"}},
			{"case insensitive", "HELLO", []string{"hello"}},
			{"accented headword", "café", []string{"café"}},
		},
	}
}
