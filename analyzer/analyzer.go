package analyzer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seo-audit/backend/diagram"
	"github.com/seo-audit/backend/report"
	"github.com/seo-audit/backend/stats"
)

// ErrMissingURL is returned when an audit is requested without a URL. The
// HTTP layer rejects this before the core runs, but the core enforces the
// precondition itself as well.
var ErrMissingURL = errors.New("url is required")

// quickFixes is a static upsell table appended verbatim to every audit. It
// is constant data, not derived from analysis.
var quickFixes = []QuickFix{
	{Fix: "Optimize meta descriptions and titles", Price: 4.99, Impact: "Immediate CTR boost"},
	{Fix: "Add alt text to images", Price: 4.99, Impact: "Better image SEO"},
	{Fix: "Improve H1/H2 structure", Price: 4.99, Impact: "Enhanced on-page ranking"},
}

// cacheEntry is a cached per-page analysis with its creation time.
type cacheEntry struct {
	analysis  *AnalysisResult
	timestamp time.Time
}

// CacheStats provides statistics about the analysis cache.
type CacheStats struct {
	Entries     int           `json:"entries"`
	CacheHits   int           `json:"cacheHits"`
	CacheMisses int           `json:"cacheMisses"`
	CacheTTL    time.Duration `json:"cacheTTL"`
}

// Analyzer runs page audits: fetch, extract, analyze, suggest and compare.
// Per-page analyses are cached at the service level; the per-page pipeline
// itself is a single synchronous pass with no shared state between the main
// and competitor pages.
type Analyzer struct {
	fetcher         Fetcher
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
	stats           *stats.Storage
	stopCleanup     chan struct{}
}

// New creates an Analyzer backed by the production HTTP fetcher, with
// statistics persisted under dataDir.
func New(dataDir string) (*Analyzer, error) {
	return NewWithFetcher(dataDir, NewHTTPFetcher())
}

// NewWithFetcher creates an Analyzer with a custom page fetcher.
func NewWithFetcher(dataDir string, fetcher Fetcher) (*Analyzer, error) {
	statsStorage, err := stats.NewStorage(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	a := &Analyzer{
		fetcher:         fetcher,
		cache:           make(map[string]cacheEntry),
		cacheTTL:        30 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
		stats:           statsStorage,
		stopCleanup:     make(chan struct{}),
	}

	go a.periodicCleanup()

	return a, nil
}

// Audit performs the full audit sequence: analyze the main page, optionally
// analyze a competitor page, compare the two, and assemble the result with
// its report, diagram and quick-fix table. A main-page fetch failure aborts
// the whole audit; a competitor fetch failure only sets CompetitorError.
func (a *Analyzer) Audit(ctx context.Context, req AuditRequest) (*AuditResult, error) {
	if req.URL == "" {
		return nil, ErrMissingURL
	}

	main, err := a.AnalyzePage(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	result := &AuditResult{
		AnalysisResult: *main,
		URL:            req.URL,
	}

	if req.CompetitorURL != "" {
		competitor, err := a.AnalyzePage(ctx, req.CompetitorURL)
		if err != nil {
			logrus.WithField("url", req.CompetitorURL).Warnf("competitor analysis failed: %v", err)
			result.CompetitorError = err.Error()
		} else {
			result.CompetitorAnalysis = Compare(main, competitor)
			result.CompetitorDetails = competitor
		}
	}

	// The diagram is rendered for the main page only, from just the three
	// severity counts.
	critical, warning, info := main.Issues.Counts()
	if uri, err := diagram.Generate(critical, warning, info); err != nil {
		logrus.Warnf("issues diagram not generated: %v", err)
	} else {
		result.IssuesDiagram = uri
	}

	// The report snapshots everything assembled so far; the report string
	// and the quick-fix table themselves stay outside of it.
	rendered, err := report.Render(result)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	result.Report = rendered
	result.QuickFixes = quickFixes

	return result, nil
}

// AnalyzePage fetches a single page and runs the full extraction and
// heuristic pipeline over it. Results are cached by URL.
func (a *Analyzer) AnalyzePage(ctx context.Context, url string) (*AnalysisResult, error) {
	if url == "" {
		return nil, ErrMissingURL
	}

	if time.Since(a.lastCleanup) > a.cleanupInterval {
		go a.cleanup()
	}

	cacheKey := generateCacheKey(url)
	a.cacheMutex.RLock()
	if entry, found := a.cache[cacheKey]; found {
		if time.Since(entry.timestamp) < a.cacheTTL {
			a.stats.IncrementStats(1, 0, 0, 0)
			a.cacheMutex.RUnlock()
			return entry.analysis, nil
		}
	}
	a.cacheMutex.RUnlock()

	a.stats.IncrementStats(0, 1, 0, 0)

	markup, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		a.stats.IncrementStats(0, 0, 1, 1)
		return nil, err
	}
	a.stats.IncrementStats(0, 0, 1, 0)

	analysis := analyzePage(url, markup)

	a.cacheMutex.Lock()
	a.cache[cacheKey] = cacheEntry{analysis: analysis, timestamp: time.Now()}
	a.cacheMutex.Unlock()

	return analysis, nil
}

// analyzePage is the pure per-page pipeline: markup goes in, a finished
// analysis comes out. No I/O, no shared state.
func analyzePage(url, markup string) *AnalysisResult {
	sig := ExtractSignals(markup)

	result := &AnalysisResult{
		Title:            sig.Title,
		Headings:         sig.Headings,
		Links:            sig.Links,
		ImagesWithoutAlt: sig.ImagesWithoutAlt,
		SchemaFound:      sig.SchemaFound,
		VideoEmbeds:      sig.VideoEmbedCount,
		Social:           analyzeSocial(markup),
	}
	if sig.HasMetaDesc {
		desc := sig.MetaDescription
		result.MetaDescription = &desc
	}

	runChecks(result, sig, url, markup)
	result.Suggestions, result.SuggestionRationales = generateSuggestions(sig, result.KeywordDensity)

	return result
}

// generateCacheKey creates a unique key for the URL.
func generateCacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return hex.EncodeToString(hash[:])
}

// periodicCleanup removes expired cache entries until Shutdown.
func (a *Analyzer) periodicCleanup() {
	ticker := time.NewTicker(a.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.cleanup()
		case <-a.stopCleanup:
			return
		}
	}
}

// cleanup removes expired entries and enforces the cache size limit.
func (a *Analyzer) cleanup() {
	now := time.Now()

	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()

	for key, entry := range a.cache {
		if now.Sub(entry.timestamp) > a.cacheTTL {
			delete(a.cache, key)
		}
	}

	if len(a.cache) > a.maxCacheSize {
		entries := make([]struct {
			key       string
			timestamp time.Time
		}, 0, len(a.cache))
		for key, entry := range a.cache {
			entries = append(entries, struct {
				key       string
				timestamp time.Time
			}{key, entry.timestamp})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})
		for i := 0; i < len(entries)-a.maxCacheSize; i++ {
			delete(a.cache, entries[i].key)
		}
	}

	a.lastCleanup = now
}

// SetCacheTTL sets the cache TTL.
func (a *Analyzer) SetCacheTTL(ttl time.Duration) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cacheTTL = ttl
}

// SetMaxCacheSize sets the maximum number of cached analyses.
func (a *Analyzer) SetMaxCacheSize(size int) {
	a.cacheMutex.Lock()
	a.maxCacheSize = size
	a.cacheMutex.Unlock()
	a.cleanup()
}

// ClearCache drops all cached analyses.
func (a *Analyzer) ClearCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cache = make(map[string]cacheEntry)
}

// IsCached checks whether a URL has a live cache entry.
func (a *Analyzer) IsCached(url string) bool {
	cacheKey := generateCacheKey(url)
	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	entry, found := a.cache[cacheKey]
	return found && time.Since(entry.timestamp) < a.cacheTTL
}

// GetCacheStats returns statistics about the analysis cache.
func (a *Analyzer) GetCacheStats() CacheStats {
	current := a.stats.GetCurrentStats()

	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()

	return CacheStats{
		Entries:     len(a.cache),
		CacheHits:   current.CacheHits,
		CacheMisses: current.CacheMisses,
		CacheTTL:    a.cacheTTL,
	}
}

// GetStats returns the statistics storage instance.
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// Shutdown stops the cleanup goroutine and flushes statistics.
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}

	close(a.stopCleanup)

	if a.stats != nil {
		if err := a.stats.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown stats storage: %w", err)
		}
	}

	a.cacheMutex.Lock()
	a.cache = nil
	a.cacheMutex.Unlock()

	return nil
}
