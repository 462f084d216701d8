package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Run("IncrementStats", func(t *testing.T) {
		storage.IncrementStats(1, 2, 3, 4)
		stats := storage.GetCurrentStats()

		if stats.CacheHits != 1 {
			t.Errorf("Expected 1 cache hit, got %d", stats.CacheHits)
		}
		if stats.CacheMisses != 2 {
			t.Errorf("Expected 2 cache misses, got %d", stats.CacheMisses)
		}
		if stats.PagesFetched != 3 {
			t.Errorf("Expected 3 pages fetched, got %d", stats.PagesFetched)
		}
		if stats.FetchErrors != 4 {
			t.Errorf("Expected 4 fetch errors, got %d", stats.FetchErrors)
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}

		stats := storage2.GetCurrentStats()
		if stats.CacheHits != 1 {
			t.Errorf("Expected 1 cache hit after reload, got %d", stats.CacheHits)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		storage.stats[oldMonth] = &MonthlyStats{
			CacheHits:   100,
			LastUpdated: time.Now().AddDate(0, -2, 0),
		}

		storage.Cleanup()

		if _, exists := storage.stats[oldMonth]; exists {
			t.Error("Old stats should have been cleaned up")
		}
	})

	t.Run("FileSize", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}

		// File should be relatively small (< 1KB for this test data)
		if info.Size() > 1024 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats()

		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					storage.IncrementStats(1, 1, 1, 1)
					storage.GetCurrentStats()
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		stats := storage.GetCurrentStats()
		expected := 1000 // 10 goroutines * 100 iterations
		if stats.CacheHits-before.CacheHits != expected {
			t.Errorf("Expected %d new cache hits, got %d", expected, stats.CacheHits-before.CacheHits)
		}
		if stats.FetchErrors-before.FetchErrors != expected {
			t.Errorf("Expected %d new fetch errors, got %d", expected, stats.FetchErrors-before.FetchErrors)
		}
	})

	t.Run("Shutdown", func(t *testing.T) {
		if err := storage.Shutdown(); err != nil {
			t.Errorf("Shutdown failed: %v", err)
		}
	})
}

func TestGetAllMonths(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer storage.Shutdown()

	storage.stats["2025-01"] = &MonthlyStats{}
	storage.stats["2025-03"] = &MonthlyStats{}
	storage.stats["2024-12"] = &MonthlyStats{}

	months := storage.GetAllMonths()
	if len(months) != 3 {
		t.Fatalf("Expected 3 months, got %d", len(months))
	}
	if months[0] != "2025-03" || months[2] != "2024-12" {
		t.Errorf("Months not sorted newest first: %v", months)
	}

	if _, ok := storage.GetMonthlyStats("2025-01"); !ok {
		t.Error("Expected stats for 2025-01")
	}
	if _, ok := storage.GetMonthlyStats("1999-01"); ok {
		t.Error("Did not expect stats for 1999-01")
	}
}
