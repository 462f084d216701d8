package logging

import (
	"encoding/json"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Environment variable name for controlling statistics visibility.
const ENV_DEV_MODE = "DEV_MODE"

const statisticsFile = "statistics.json"

// Statistics represents service-level usage statistics.
type Statistics struct {
	UniqueVisitors     map[string]time.Time `json:"uniqueVisitors"`     // IP -> Last Visit Time
	AuditRequests      int                  `json:"auditRequests"`      // Total number of audit requests
	ComparisonRequests int                  `json:"comparisonRequests"` // Audits that included a competitor
	ErrorCount         int                  `json:"errorCount"`         // Number of failed audits
	PopularURLs        map[string]int       `json:"popularUrls"`        // Audited URL -> Count
	AverageAuditTime   float64              `json:"averageAuditTime"`   // Average audit time in milliseconds
	TotalAuditTime     float64              `json:"-"`                  // Used to calculate average
	RequestCount       int                  `json:"-"`                  // Used to calculate average
	LastPersisted      time.Time            `json:"lastPersisted"`      // Last time stats were saved
	mutex              sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics singleton.
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			PopularURLs:    make(map[string]int),
			LastPersisted:  time.Now(),
		}

		if err := stats.Load(); err != nil {
			logrus.Warnf("could not load existing statistics: %v", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor.
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// cleanURL strips query parameters and local addresses, returning just the
// scheme, host and path of an audited URL.
func cleanURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}

	// Don't track our own API URLs.
	if strings.Contains(u.Host, "localhost") ||
		strings.Contains(u.Host, "127.0.0.1") ||
		strings.Contains(strings.ToLower(u.Path), "/api/") {
		return ""
	}

	cleaned := u.Scheme + "://" + u.Host
	if u.Path != "" && u.Path != "/" {
		cleaned += u.Path
	}

	return strings.TrimSuffix(cleaned, "/")
}

// TrackAudit records one audit request against a page URL.
func (s *Statistics) TrackAudit(url string, auditTime float64, withCompetitor, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AuditRequests++
	if withCompetitor {
		s.ComparisonRequests++
	}

	if cleaned := cleanURL(url); cleaned != "" {
		s.PopularURLs[cleaned]++
	}

	if hasError {
		s.ErrorCount++
	}

	s.TotalAuditTime += auditTime
	s.RequestCount++
	s.AverageAuditTime = s.TotalAuditTime / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last
// 24 hours.
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularURLs returns up to n of the most audited URLs.
func (s *Statistics) GetPopularURLs(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make(map[string]int)
	count := 0

	for url, freq := range s.PopularURLs {
		if count < n {
			result[url] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the audit error rate as a percentage.
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.AuditRequests == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.AuditRequests)) * 100
}

// Save persists the statistics to a file.
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create(statisticsFile)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(s)
}

// Load reads the statistics from a file.
func (s *Statistics) Load() error {
	file, err := os.Open(statisticsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(s)
}

// GetStatistics returns the current statistics. Detail such as popular URLs
// is only exposed in development mode.
func (s *Statistics) GetStatistics() map[string]interface{} {
	result := map[string]interface{}{
		"uniqueVisitors24h": s.GetUniqueVisitorsCount(),
		"errorRate":         s.GetErrorRate(),
	}

	s.mutex.RLock()
	result["totalRequests"] = s.AuditRequests
	result["comparisonRequests"] = s.ComparisonRequests
	result["averageAuditTime"] = s.AverageAuditTime
	s.mutex.RUnlock()

	if os.Getenv(ENV_DEV_MODE) == "true" {
		result["popularUrls"] = s.GetPopularURLs(5) // Top 5 URLs only shown in dev mode
	}

	return result
}
