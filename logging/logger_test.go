package logging

import (
	"testing"
	"time"
)

func newStatistics() *Statistics {
	return &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		PopularURLs:    make(map[string]int),
		LastPersisted:  time.Now(),
	}
}

func TestTrackAudit(t *testing.T) {
	s := newStatistics()

	s.TrackAudit("https://example.com/page?utm=x", 120, false, false)
	s.TrackAudit("https://example.com/page", 80, true, true)

	if s.AuditRequests != 2 {
		t.Errorf("Expected 2 audit requests, got %d", s.AuditRequests)
	}
	if s.ComparisonRequests != 1 {
		t.Errorf("Expected 1 comparison request, got %d", s.ComparisonRequests)
	}
	if s.ErrorCount != 1 {
		t.Errorf("Expected 1 error, got %d", s.ErrorCount)
	}
	if s.AverageAuditTime != 100 {
		t.Errorf("Expected average audit time 100, got %v", s.AverageAuditTime)
	}
	// Query parameters are stripped, so both audits count the same URL.
	if s.PopularURLs["https://example.com/page"] != 2 {
		t.Errorf("Expected 2 hits for the cleaned URL, got %v", s.PopularURLs)
	}
}

func TestTrackVisitor(t *testing.T) {
	s := newStatistics()

	s.TrackVisitor("1.2.3.4")
	s.TrackVisitor("1.2.3.4")
	s.TrackVisitor("5.6.7.8")

	if got := s.GetUniqueVisitorsCount(); got != 2 {
		t.Errorf("Expected 2 unique visitors, got %d", got)
	}
}

func TestGetErrorRate(t *testing.T) {
	s := newStatistics()

	if s.GetErrorRate() != 0 {
		t.Error("Expected 0 error rate with no requests")
	}

	s.TrackAudit("https://example.com", 10, false, true)
	s.TrackAudit("https://example.com", 10, false, false)
	s.TrackAudit("https://example.com", 10, false, false)
	s.TrackAudit("https://example.com", 10, false, false)

	if got := s.GetErrorRate(); got != 25 {
		t.Errorf("Expected 25%% error rate, got %v", got)
	}
}

func TestCleanURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com/page?q=1", "https://example.com/page"},
		{"https://example.com/", "https://example.com"},
		{"http://localhost:8082/api/audit", ""},
		{"http://127.0.0.1/somewhere", ""},
	}

	for _, tc := range cases {
		if got := cleanURL(tc.in); got != tc.want {
			t.Errorf("cleanURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
