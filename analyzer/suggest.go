package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const highImpactMarker = "High"

// generateSuggestions evaluates the fixed rule table against the extracted
// signals and returns matched suggestions with their priority rationales.
// High-impact rationales are stably partitioned to the front: relative order
// within each tier stays exactly as generated.
func generateSuggestions(sig PageSignals, keywords KeywordDensity) (suggestions, rationales []string) {
	add := func(suggestion, rationale string) {
		suggestions = append(suggestions, suggestion)
		rationales = append(rationales, rationale)
	}

	if sig.Title == "" {
		add("Add a title tag with primary keyword.",
			"High impact: Improves click-through rates by up to 30%.")
	} else if utf8.RuneCountInString(sig.Title) > maxTitleRunes {
		add("Shorten title to under 60 chars.",
			"Medium impact: Prevents truncation in search results.")
	}
	if !sig.HasMetaDesc || sig.MetaDescription == "" {
		add("Add meta description with keywords.",
			"High impact: Boosts CTR by 20-40%.")
	}
	if len(sig.Headings.H1) == 0 {
		add("Add at least one H1 heading.",
			"High impact: Enhances on-page structure for crawlers.")
	}
	// The primary keyword is "" for empty text; the suggestion still fires
	// with the placeholder rather than being suppressed.
	add(fmt.Sprintf("Incorporate keyword '%s' more naturally in content.", keywords.Primary()),
		"Medium impact: Improves keyword relevance.")
	if sig.ImagesWithoutAlt > 0 {
		add("Add alt text to all images with descriptive keywords.",
			"High impact: Improves accessibility and image search rankings.")
	}

	return partitionByImpact(suggestions, rationales)
}

// partitionByImpact moves high-impact pairs to the front without reordering
// ties. This is a stable partition, not a full sort.
func partitionByImpact(suggestions, rationales []string) ([]string, []string) {
	outSuggestions := make([]string, 0, len(suggestions))
	outRationales := make([]string, 0, len(rationales))
	for i, rationale := range rationales {
		if strings.Contains(rationale, highImpactMarker) {
			outSuggestions = append(outSuggestions, suggestions[i])
			outRationales = append(outRationales, rationale)
		}
	}
	for i, rationale := range rationales {
		if !strings.Contains(rationale, highImpactMarker) {
			outSuggestions = append(outSuggestions, suggestions[i])
			outRationales = append(outRationales, rationale)
		}
	}
	return outSuggestions, outRationales
}
