package analyzer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("<html><title>ok</title></html>"))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher()

	t.Run("Success", func(t *testing.T) {
		markup, err := fetcher.Fetch(context.Background(), server.URL+"/ok")
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if markup != "<html><title>ok</title></html>" {
			t.Errorf("Unexpected markup: %q", markup)
		}
	})

	t.Run("NonSuccessStatus", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), server.URL+"/missing")
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("Expected *FetchError, got %T", err)
		}
		if fetchErr.Error() != "HTTP Error 404" {
			t.Errorf("Unexpected error message: %q", fetchErr.Error())
		}
	})

	t.Run("TransportFailure", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("Expected *FetchError, got %T", err)
		}
	})
}
