package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/jiten/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Results: []models.SearchResult{
			{ID: 1, Word: "hello", POS: "interjection", Preview: "a greeting", Score: 0},
			{ID: 2, Word: "help", POS: "verb", Score: 1.1},
		},
		Total:     2,
		QueryTime: 3,
		Query:     "hel",
	}
}

func TestWriteSearchResultsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Found 2 results", "hello (interjection)", "a greeting", "help (verb)"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSearchResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Total != 2 || len(decoded.Results) != 2 {
		t.Errorf("decoded response = %+v", decoded)
	}
}

func TestWriteFullDefinitionText(t *testing.T) {
	def := &models.FullDefinition{
		ID: 1, Word: "test", POS: "noun", Language: "English",
		Definitions: []models.Definition{
			{Text: "a procedure", Examples: []string{"this is a test"}, Tags: []string{"formal"}},
		},
		Pronunciations: []models.Pronunciation{{IPA: "/tɛst/", Accent: "UK"}},
		Etymology:      "from Latin",
		Translations:   []models.Translation{{TargetLanguage: "fr", Translation: "essai"}},
	}
	var buf bytes.Buffer
	if err := WriteFullDefinition(&buf, def, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"test (noun, English)", "1. a procedure", "(formal)", "/tɛst/ [UK]", "Etymology: from Latin", "fr: essai"} {
		if !strings.Contains(out, want) {
			t.Errorf("definition output missing %q:\n%s", want, out)
		}
	}
}
