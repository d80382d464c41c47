// Package models defines core data structures for dictionary entries, queries, and search results.
package models

// Entry is the lightweight read model for a dictionary entry as
// returned by store lookups: identity, headword, part of speech, and
// the first definition text (empty when the entry has none).
type Entry struct {
	ID         int64  `json:"id" db:"id"`
	Word       string `json:"word" db:"word"`
	POS        string `json:"pos" db:"pos"`
	Definition string `json:"definition" db:"definition"`
}

// FullDefinition is the complete record for a dictionary entry:
// every meaning plus pronunciations, etymology, and translations.
type FullDefinition struct {
	ID             int64           `json:"id"`
	Word           string          `json:"word"`
	POS            string          `json:"pos"`
	Language       string          `json:"language"`
	Definitions    []Definition    `json:"definitions"`
	Pronunciations []Pronunciation `json:"pronunciations"`
	Etymology      string          `json:"etymology,omitempty"`
	Translations   []Translation   `json:"translations"`
}

// Definition is a single meaning of a word.
type Definition struct {
	ID       int64    `json:"id"`
	Text     string   `json:"text"`
	Examples []string `json:"examples,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Pronunciation holds IPA and audio information for a word.
type Pronunciation struct {
	ID       int64  `json:"id"`
	IPA      string `json:"ipa,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
	Accent   string `json:"accent,omitempty"`
}

// Translation is a rendering of a word in another language.
type Translation struct {
	ID             int64  `json:"id"`
	TargetLanguage string `json:"target_language"`
	Translation    string `json:"translation"`
}
