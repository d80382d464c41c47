package textdist

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"identical empty", "", "", 0},
		{"identical word", "hello", "hello", 0},
		{"identical unicode", "こんにちは", "こんにちは", 0},

		// Empty string cases
		{"empty a", "", "abc", 3},
		{"empty b", "hello", "", 5},

		// Single character differences
		{"one substitution", "cat", "bat", 1},
		{"one insertion", "cat", "cart", 1},
		{"one deletion", "cart", "cat", 1},

		// Multiple differences
		{"kitten to sitting", "kitten", "sitting", 3},
		{"saturday to sunday", "saturday", "sunday", 3},

		// Common typos
		{"helo to hello", "helo", "hello", 1},
		{"machine to machne", "machine", "machne", 1},
		{"learning to lerning", "learning", "lerning", 1},

		// Case sensitivity
		{"case difference", "Hello", "hello", 1},

		// Unicode
		{"unicode substitution", "café", "cafe", 1},
		{"unicode insertion", "naïve", "naive", 1},
		{"astral plane", "a𝕏b", "ab", 1},

		// Transposition costs 2 under plain Levenshtein
		{"transposition ab-ba", "ab", "ba", 2},
		{"transposition hlelo", "hlelo", "hello", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}
			// Distance is symmetric even though the implementation
			// swaps its arguments internally.
			reverse := Levenshtein(tt.b, tt.a)
			if result != reverse {
				t.Errorf("Levenshtein is not symmetric: (%q,%q)=%d, (%q,%q)=%d",
					tt.a, tt.b, result, tt.b, tt.a, reverse)
			}
		})
	}
}

func TestDamerauLevenshtein(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{"identical empty", "", "", 0},
		{"identical word", "hello", "hello", 0},
		{"empty a", "", "hello", 5},
		{"empty b", "hello", "", 5},
		{"one substitution", "cat", "bat", 1},

		// Transposition counts as one edit
		{"transposition ab-ba", "ab", "ba", 1},
		{"transposition hlelo", "hlelo", "hello", 1},
		{"transposition recieve", "recieve", "receive", 1},

		// Transposition plus another edit
		{"transposition and deletion", "hlel", "hello", 2},

		{"kitten to sitting", "kitten", "sitting", 3},
		{"unicode transposition", "はこんにち", "こんにちは", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DamerauLevenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("DamerauLevenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestDamerauNeverExceedsLevenshtein(t *testing.T) {
	pairs := [][2]string{
		{"hello", "hlelo"},
		{"abcdef", "badcfe"},
		{"search", "serach"},
		{"kitten", "sitting"},
	}
	for _, p := range pairs {
		lev := Levenshtein(p[0], p[1])
		dam := DamerauLevenshtein(p[0], p[1])
		if dam > lev {
			t.Errorf("DamerauLevenshtein(%q, %q) = %d exceeds Levenshtein %d", p[0], p[1], dam, lev)
		}
	}
}
