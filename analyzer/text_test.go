package analyzer

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestKeywordDensity(t *testing.T) {
	t.Run("ExactPercentages", func(t *testing.T) {
		density := keywordDensity("go go go gophers write go code")
		// 7 words total: go x4, gophers, write, code.
		if len(density) != 4 {
			t.Fatalf("Expected 4 keywords, got %d", len(density))
		}
		if density[0].Word != "go" {
			t.Errorf("Expected primary keyword %q, got %q", "go", density[0].Word)
		}
		if density[0].Density != 4.0/7.0*100 {
			t.Errorf("Expected density %v, got %v", 4.0/7.0*100, density[0].Density)
		}
		for _, stat := range density[1:] {
			if stat.Density != 1.0/7.0*100 {
				t.Errorf("Expected density %v for %q, got %v", 1.0/7.0*100, stat.Word, stat.Density)
			}
		}
	})

	t.Run("PercentagesSumTo100", func(t *testing.T) {
		density := keywordDensity("one two three two one one")
		sum := 0.0
		for _, stat := range density {
			sum += stat.Density
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("Expected densities to sum to 100, got %v", sum)
		}
	})

	t.Run("TiesBrokenByFirstEncounter", func(t *testing.T) {
		density := keywordDensity("beta alpha beta alpha gamma")
		words := density.Words()
		if !reflect.DeepEqual(words, []string{"beta", "alpha", "gamma"}) {
			t.Errorf("Unexpected keyword order: %v", words)
		}
	})

	t.Run("TopTenLimit", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 15; i++ {
			fmt.Fprintf(&sb, "word%d ", i)
		}
		density := keywordDensity(sb.String())
		if len(density) != keywordTableSize {
			t.Errorf("Expected %d keywords, got %d", keywordTableSize, len(density))
		}
	})

	t.Run("Lowercased", func(t *testing.T) {
		density := keywordDensity("Go GO go")
		if len(density) != 1 || density[0].Word != "go" {
			t.Errorf("Expected single lowercased keyword, got %v", density)
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		if density := keywordDensity(""); len(density) != 0 {
			t.Errorf("Expected empty density table, got %v", density)
		}
		if keywordDensity("   ").Primary() != "" {
			t.Error("Expected empty primary keyword placeholder")
		}
	})
}

func TestReadabilityScore(t *testing.T) {
	t.Run("Formula", func(t *testing.T) {
		// "hello world": 2 words, 1 sentence fragment, 3 vowel runs.
		got := readabilityScore("hello world")
		want := fleschBase - fleschSentenceWeight*(2.0/1.0) - fleschSyllableWeight*(3.0/2.0)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Expected score %v, got %v", want, got)
		}
	})

	t.Run("TrailingTerminatorAddsFragment", func(t *testing.T) {
		// The raw terminator split keeps the empty trailing fragment, so
		// "hi." has 2 sentence fragments.
		got := readabilityScore("hi.")
		want := fleschBase - fleschSentenceWeight*(1.0/2.0) - fleschSyllableWeight*(1.0/1.0)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Expected score %v, got %v", want, got)
		}
	})

	t.Run("EmptyTextScoresZero", func(t *testing.T) {
		if got := readabilityScore(""); got != 0 {
			t.Errorf("Expected 0 for empty text, got %v", got)
		}
		if got := readabilityScore("   "); got != 0 {
			t.Errorf("Expected 0 for whitespace text, got %v", got)
		}
	})

	t.Run("DegenerateTextGoesNegative", func(t *testing.T) {
		// A single unbroken "word" with five vowel groups: the syllable
		// term alone drags the score far below zero.
		if got := readabilityScore("aeiobaeiobaeiobaeiobaeio"); got >= 0 {
			t.Errorf("Expected negative score for degenerate text, got %v", got)
		}
	})
}

func TestCountQuestions(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"LeadingQuestion", "How are you? I am fine", 1},
		{"OnlyStatementStart", "Tell me how it works.", 0},
		{"CaseInsensitive", "WHAT time is it", 1},
		{"AllSixOpeners", "who.what.where.when.why.how", 6},
		{"Empty", "", 0},
		// The split fragments keep their leading space, so a question that
		// follows a terminator plus a space does not count.
		{"SpaceAfterTerminator", "Fine. What next?", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := countQuestions(tc.text); got != tc.want {
				t.Errorf("countQuestions(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}
