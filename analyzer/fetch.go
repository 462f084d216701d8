package analyzer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const fetchUserAgent = "SEOAuditor/1.0"

// Fetcher retrieves raw markup for a URL. The core never performs network
// I/O itself; it only consumes this contract.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError is a transport failure or non-success status from the page
// fetch. Main-page fetch errors abort the audit; competitor fetch errors are
// recovered and reported as a sidecar field.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP Error %d", e.Status)
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPFetcher fetches pages over plain HTTP GET with connection pooling and
// keep-alive, the same client shape the rest of the service uses.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with a pooled transport and a hard
// request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  false,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

// Fetch retrieves the page body as text. Any status other than 200 is a
// *FetchError; no retries.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	return string(body), nil
}
