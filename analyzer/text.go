package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

// Flesch Reading Ease coefficients. Kept as named constants so the scoring
// formula stays auditable.
const (
	fleschBase           = 206.835
	fleschSentenceWeight = 1.015
	fleschSyllableWeight = 84.6
	readabilityThreshold = 60.0
	keywordTableSize     = 10
)

var (
	wordPattern     = regexp.MustCompile(`\w+`)
	sentencePattern = regexp.MustCompile(`[.!?]`)
	vowelRunPattern = regexp.MustCompile(`(?i)[aeiouy]+`)
)

// questionWords are the sentence openers that mark question-based content.
var questionWords = []string{"who", "what", "where", "when", "why", "how"}

// keywordDensity computes the top-10 keyword table for the given text. Each
// entry's density is occurrences/totalWords*100 exactly; ordering is by
// count descending with ties broken by first encounter in the text.
func keywordDensity(text string) KeywordDensity {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return KeywordDensity{}
	}

	counts := make(map[string]int, len(words))
	firstSeen := make(map[string]int, len(words))
	order := make([]string, 0, len(words))
	for i, w := range words {
		if _, seen := counts[w]; !seen {
			firstSeen[w] = i
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return firstSeen[a] < firstSeen[b]
	})

	if len(order) > keywordTableSize {
		order = order[:keywordTableSize]
	}

	total := float64(len(words))
	density := make(KeywordDensity, len(order))
	for i, w := range order {
		density[i] = KeywordStat{Word: w, Density: float64(counts[w]) / total * 100}
	}
	return density
}

// readabilityScore is a Flesch-Reading-Ease style estimate. Sentence count is
// the raw terminator split, empty fragments included, so a trailing period
// still counts a sentence boundary. Degenerate text scores 0.
func readabilityScore(text string) float64 {
	words := len(wordPattern.FindAllString(text, -1))
	sentences := len(sentencePattern.Split(text, -1))
	syllables := 0
	for _, token := range strings.Fields(text) {
		syllables += len(vowelRunPattern.FindAllString(token, -1))
	}
	if words == 0 || sentences == 0 {
		return 0
	}
	asl := float64(words) / float64(sentences)
	asw := float64(syllables) / float64(words)
	return fleschBase - fleschSentenceWeight*asl - fleschSyllableWeight*asw
}

// countQuestions counts sentences that open with a question word. Fragments
// are matched as split, without trimming, so a question mid-paragraph only
// counts when the terminator sits directly before it.
func countQuestions(text string) int {
	count := 0
	for _, sentence := range sentencePattern.Split(text, -1) {
		lower := strings.ToLower(sentence)
		for _, qw := range questionWords {
			if strings.HasPrefix(lower, qw) {
				count++
				break
			}
		}
	}
	return count
}
