package analyzer

import (
	"fmt"
	"net/url"
	"strings"
)

// Scoring and threshold constants. The penalty model is fixed and
// deliberately simple: info issues never affect the score.
const (
	criticalPenaltyWeight  = 3
	warningPenaltyWeight   = 1
	penaltyUnit            = 5
	maxHealthScore         = 100
	maxHealthyExternalURLs = 10
	maxTitleRunes          = 60
)

// viewportMarker is matched literally against the raw markup; quote style
// and spacing sensitivity is intentional, the check is a naive proxy.
const viewportMarker = `name="viewport"`

// checkHTTPS reports whether the page URL uses the https scheme.
func checkHTTPS(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	return u.Scheme == "https"
}

// checkMobileFriendly reports whether the markup declares a viewport.
func checkMobileFriendly(markup string) bool {
	return strings.Contains(markup, viewportMarker)
}

// checkAIOverviewPotential looks for FAQ or summary style content markers.
func checkAIOverviewPotential(markup string) bool {
	lower := strings.ToLower(markup)
	return strings.Contains(lower, "faq") || strings.Contains(lower, "summary")
}

// checkBacklinkToxicity is a crude external-link-count proxy, not real
// link-graph analysis.
func checkBacklinkToxicity(links LinkCounts) bool {
	return links.External > maxHealthyExternalURLs
}

// runChecks evaluates the fixed heuristic battery against the extracted
// signals and fills in the derived fields, the issue buckets and the health
// score on the result. The battery order is fixed and determines issue order
// within each severity bucket.
func runChecks(result *AnalysisResult, sig PageSignals, pageURL, markup string) {
	text := strings.Join(sig.VisibleText, " ")

	result.KeywordDensity = keywordDensity(text)
	result.HTTPS = checkHTTPS(pageURL)
	result.MobileFriendly = checkMobileFriendly(markup)
	result.ReadabilityScore = readabilityScore(text)
	result.QuestionCount = countQuestions(text)
	result.VoiceSearchReady = result.QuestionCount > 0
	result.AIOverviewPotential = checkAIOverviewPotential(markup)
	result.BacklinkToxicityRisk = checkBacklinkToxicity(sig.Links)

	issues := IssueSet{Critical: []Issue{}, Warning: []Issue{}, Info: []Issue{}}
	addIssue := func(severity Severity, message string) {
		issue := Issue{Severity: severity, Message: message}
		switch severity {
		case SeverityCritical:
			issues.Critical = append(issues.Critical, issue)
		case SeverityWarning:
			issues.Warning = append(issues.Warning, issue)
		case SeverityInfo:
			issues.Info = append(issues.Info, issue)
		}
	}

	if !result.HTTPS {
		addIssue(SeverityCritical, "Site not using HTTPS")
	}
	if !result.MobileFriendly {
		addIssue(SeverityWarning, "No viewport meta for mobile")
	}
	if sig.ImagesWithoutAlt > 0 {
		addIssue(SeverityWarning, fmt.Sprintf("%d images without alt text", sig.ImagesWithoutAlt))
	}
	if !sig.SchemaFound {
		addIssue(SeverityInfo, "No schema markup found")
	}
	if sig.VideoEmbedCount == 0 {
		addIssue(SeverityInfo, "No video content detected")
	}
	if result.ReadabilityScore < readabilityThreshold {
		addIssue(SeverityWarning, "Content readability low")
	}
	if !result.VoiceSearchReady {
		addIssue(SeverityInfo, "No question-based content for voice search")
	}
	if !result.AIOverviewPotential {
		addIssue(SeverityInfo, "Limited potential for AI overviews")
	}
	if result.BacklinkToxicityRisk {
		addIssue(SeverityWarning, "Potential toxic backlinks (too many externals)")
	}

	result.Issues = issues
	result.HealthScore = healthScore(issues)
}

// healthScore derives the 0-100 health score from the issue buckets using
// the fixed linear penalty model.
func healthScore(issues IssueSet) int {
	critical, warning, _ := issues.Counts()
	penalty := criticalPenaltyWeight*critical + warningPenaltyWeight*warning
	score := maxHealthScore - penaltyUnit*penalty
	if score < 0 {
		return 0
	}
	return score
}
