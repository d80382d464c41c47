package benchmark

import (
	"testing"

	"github.com/hyperjump/jiten/internal/search"
	"github.com/hyperjump/jiten/internal/textdist"
)

func BenchmarkLevenshtein(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = textdist.Levenshtein("helicopter", "helicoptor")
	}
}

func BenchmarkLevenshteinUnicode(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = textdist.Levenshtein("café-au-lait", "cafe-au-lait")
	}
}

func BenchmarkDamerauLevenshtein(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = textdist.DamerauLevenshtein("helicopter", "heilcopter")
	}
}

func BenchmarkPrepareMatchQuery(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = search.PrepareMatchQuery(`machine "learning" alg*rithms`)
	}
}

func BenchmarkTruncatePreview(b *testing.B) {
	text := "a unit of language that native speakers can identify and which carries meaning in isolation from other such units"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = search.TruncatePreview(text, 100)
	}
}
