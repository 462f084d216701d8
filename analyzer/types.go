package analyzer

// Severity classifies an audit issue. The three variants are fixed; every
// issue lands in exactly one bucket of an IssueSet.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Issue is a single categorized finding derived from page signals.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// IssueSet holds issues bucketed by severity. Order within a bucket is the
// analyzer evaluation order, which is fixed.
type IssueSet struct {
	Critical []Issue `json:"critical"`
	Warning  []Issue `json:"warning"`
	Info     []Issue `json:"info"`
}

// Counts returns the number of issues per severity bucket.
func (s IssueSet) Counts() (critical, warning, info int) {
	return len(s.Critical), len(s.Warning), len(s.Info)
}

// Headings holds the extracted heading text per level, in document order.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// LinkCounts is the crude internal/external link tally. A link counts as
// external when its href starts with a protocol token.
type LinkCounts struct {
	Internal int `json:"internal"`
	External int `json:"external"`
}

// PageSignals is everything one extraction pass pulls out of raw markup.
// It is built once and never mutated afterwards. Title and heading text is
// structural and never counted into VisibleText.
type PageSignals struct {
	Title            string
	MetaDescription  string
	HasMetaDesc      bool
	Headings         Headings
	ImagesWithoutAlt int
	Links            LinkCounts
	SchemaFound      bool
	VideoEmbedCount  int
	VisibleText      []string
}

// KeywordStat is one entry of the keyword density table.
type KeywordStat struct {
	Word    string  `json:"word"`
	Density float64 `json:"density"`
}

// KeywordDensity is the top-10 keyword table, ordered by frequency with ties
// broken by first encounter in the text. The order is part of the contract:
// the first entry is the primary keyword.
type KeywordDensity []KeywordStat

// Words returns the keyword tokens in table order.
func (k KeywordDensity) Words() []string {
	words := make([]string, len(k))
	for i, stat := range k {
		words[i] = stat.Word
	}
	return words
}

// Primary returns the highest-density keyword, or "" for empty text. The
// empty placeholder is a known degenerate case, not an error.
func (k KeywordDensity) Primary() string {
	if len(k) == 0 {
		return ""
	}
	return k[0].Word
}

// SocialAnalysis is non-scoring preview metadata (Open Graph, twitter card,
// canonical URL). It never contributes issues or score.
type SocialAnalysis struct {
	OGTitle       string `json:"ogTitle"`
	OGDescription string `json:"ogDescription"`
	OGImage       string `json:"ogImage"`
	TwitterCard   string `json:"twitterCard"`
	Canonical     string `json:"canonical"`
	HasOpenGraph  bool   `json:"hasOpenGraph"`
}

// AnalysisResult is the complete audit of a single page. Built once per
// analyzed page, immutable afterwards.
type AnalysisResult struct {
	Title                string         `json:"title"`
	MetaDescription      *string        `json:"metaDescription"`
	Headings             Headings       `json:"headings"`
	KeywordDensity       KeywordDensity `json:"keywordDensity"`
	Links                LinkCounts     `json:"links"`
	ImagesWithoutAlt     int            `json:"imagesWithoutAlt"`
	SchemaFound          bool           `json:"schemaFound"`
	VideoEmbeds          int            `json:"videoEmbeds"`
	HTTPS                bool           `json:"https"`
	MobileFriendly       bool           `json:"mobileFriendly"`
	ReadabilityScore     float64        `json:"readabilityScore"`
	VoiceSearchReady     bool           `json:"voiceSearchReady"`
	QuestionCount        int            `json:"questionCount"`
	AIOverviewPotential  bool           `json:"aiOverviewPotential"`
	BacklinkToxicityRisk bool           `json:"backlinkToxicityRisk"`
	Social               SocialAnalysis `json:"social"`
	Issues               IssueSet       `json:"issues"`
	HealthScore          int            `json:"healthScore"`
	Suggestions          []string       `json:"suggestions"`
	SuggestionRationales []string       `json:"suggestionRationales"`
}

// ComparisonResult compares a main page against a competitor page.
type ComparisonResult struct {
	HealthScoreDiff int      `json:"healthScoreDiff"`
	KeywordOverlap  []string `json:"keywordOverlap"`
	Suggestions     []string `json:"suggestions"`
}

// QuickFix is a static upsell entry attached verbatim to every audit.
type QuickFix struct {
	Fix    string  `json:"fix"`
	Price  float64 `json:"price"`
	Impact string  `json:"impact"`
}

// AuditRequest is the inbound request consumed by the orchestrator.
type AuditRequest struct {
	URL           string `json:"url" binding:"required,url"`
	CompetitorURL string `json:"competitorUrl" binding:"omitempty,url"`
}

// AuditResult is the outbound record for one audit: the main page analysis
// plus the optional competitor comparison and the presentation sidecars.
type AuditResult struct {
	AnalysisResult

	URL                string            `json:"url"`
	CompetitorAnalysis *ComparisonResult `json:"competitorAnalysis,omitempty"`
	CompetitorDetails  *AnalysisResult   `json:"competitorDetails,omitempty"`
	CompetitorError    string            `json:"competitorError,omitempty"`
	IssuesDiagram      string            `json:"issuesDiagram,omitempty"`
	Report             string            `json:"report,omitempty"`
	QuickFixes         []QuickFix        `json:"quickFixes,omitempty"`
}
