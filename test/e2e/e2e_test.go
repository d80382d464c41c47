package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/jiten/internal/config"
	"github.com/hyperjump/jiten/internal/models"
	"github.com/hyperjump/jiten/internal/search"
	"github.com/hyperjump/jiten/internal/server"
	"github.com/hyperjump/jiten/internal/store"
)

const e2eSearchLimit = 30

func TestE2E_SearchReturnsCorrectResults(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewSQLiteStore(filepath.Join(dir, "dict.db"))
	if err != nil {
		if strings.Contains(err.Error(), "fts5") {
			t.Skip("sqlite built without fts5; build with -tags sqlite_fts5")
		}
		t.Fatal(err)
	}
	defer st.Close()

	cfg := &config.Config{}
	cfg.Storage.DatabasePath = filepath.Join(dir, "dict.db")
	config.ApplyDefaults(cfg)

	corpus := BuildCorpus()
	if len(corpus.Entries) == 0 || len(corpus.TestCases) == 0 {
		t.Fatal("corpus is empty")
	}
	if err := st.BatchImportEntries(context.Background(), corpus.Entries); err != nil {
		t.Fatal(err)
	}

	engine := search.NewEngine(st, &cfg.Search)
	srv := server.NewServer(engine, st, cfg, zap.NewNop())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	t.Logf("imported %d entries; running %d query test cases", len(corpus.Entries), len(corpus.TestCases))

	for _, tc := range corpus.TestCases {
		t.Run(tc.Description, func(t *testing.T) {
			resp := postSearch(t, ts.URL, tc.Query)
			words := make([]string, 0, len(resp.Results))
			for _, r := range resp.Results {
				words = append(words, r.Word)
			}
			if !containsAny(words, tc.ExpectedWords) {
				t.Errorf("query %q: expected at least one of %v, got %v", tc.Query, tc.ExpectedWords, words)
			}
		})
	}
}

func TestE2E_LookupAndDelete(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewSQLiteStore(filepath.Join(dir, "dict.db"))
	if err != nil {
		if strings.Contains(err.Error(), "fts5") {
			t.Skip("sqlite built without fts5; build with -tags sqlite_fts5")
		}
		t.Fatal(err)
	}
	defer st.Close()

	cfg := &config.Config{}
	cfg.Storage.DatabasePath = filepath.Join(dir, "dict.db")
	config.ApplyDefaults(cfg)

	if err := st.BatchImportEntries(context.Background(), BuildCorpus().Entries); err != nil {
		t.Fatal(err)
	}
	engine := search.NewEngine(st, &cfg.Search)
	srv := server.NewServer(engine, st, cfg, zap.NewNop())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp := postSearch(t, ts.URL, "hello")
	if len(resp.Results) == 0 {
		t.Fatal("no results for hello")
	}
	id := resp.Results[0].ID

	// Lookup the full entry.
	getResp, err := http.Get(fmt.Sprintf("%s/api/v1/words/%d", ts.URL, id))
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("lookup status = %d", getResp.StatusCode)
	}
	var def models.FullDefinition
	if err := json.NewDecoder(getResp.Body).Decode(&def); err != nil {
		t.Fatal(err)
	}
	if def.Word != "hello" || len(def.Definitions) == 0 {
		t.Errorf("definition = %+v", def)
	}

	// Delete it and confirm it is gone from search and lookup.
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/words/%d", ts.URL, id), nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", delResp.StatusCode)
	}

	getResp2, err := http.Get(fmt.Sprintf("%s/api/v1/words/%d", ts.URL, id))
	if err != nil {
		t.Fatal(err)
	}
	getResp2.Body.Close()
	if getResp2.StatusCode != http.StatusNotFound {
		t.Errorf("lookup after delete status = %d, want 404", getResp2.StatusCode)
	}

	resp = postSearch(t, ts.URL, "hello")
	for _, r := range resp.Results {
		if r.ID == id {
			t.Errorf("deleted entry still in search results: %+v", r)
		}
	}
}

func postSearch(t *testing.T, baseURL, query string) *models.SearchResponse {
	t.Helper()
	body, _ := json.Marshal(models.SearchQuery{Query: query, Limit: e2eSearchLimit})
	resp, err := http.Post(baseURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d", resp.StatusCode)
	}
	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return &out
}

func containsAny(got, expected []string) bool {
	for _, g := range got {
		for _, e := range expected {
			if g == e {
				return true
			}
		}
	}
	return false
}
