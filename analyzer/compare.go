package analyzer

// matchCompetitorSuggestion is appended when the main page scores below the
// competitor.
const matchCompetitorSuggestion = "Your score is lower; focus on matching competitor's strong areas like headings."

// Compare derives the comparison record from two independently built page
// analyses. Keyword overlap keeps the main page's density order so the
// output is deterministic.
func Compare(main, competitor *AnalysisResult) *ComparisonResult {
	competitorWords := make(map[string]bool, len(competitor.KeywordDensity))
	for _, stat := range competitor.KeywordDensity {
		competitorWords[stat.Word] = true
	}

	overlap := []string{}
	for _, stat := range main.KeywordDensity {
		if competitorWords[stat.Word] {
			overlap = append(overlap, stat.Word)
		}
	}

	comparison := &ComparisonResult{
		HealthScoreDiff: main.HealthScore - competitor.HealthScore,
		KeywordOverlap:  overlap,
		Suggestions:     []string{},
	}
	if comparison.HealthScoreDiff < 0 {
		comparison.Suggestions = append(comparison.Suggestions, matchCompetitorSuggestion)
	}
	return comparison
}
