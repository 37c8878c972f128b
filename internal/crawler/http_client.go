package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

const (
	// Total attempts per URL including the first
	defaultMaxAttempts = 3
	// Backoff before the second attempt; doubles per retry
	baseBackoff = 500 * time.Millisecond
	// Backoff ceiling
	maxBackoff = 4 * time.Second
)

// HTTP statuses treated as transient and retried with backoff
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// HTTPClient handles HTTP requests with retry on transient failures
type HTTPClient struct {
	client      *http.Client
	userAgent   string
	maxAttempts int
}

// HTTPMetrics contains performance metrics for an HTTP request
type HTTPMetrics struct {
	TTFB         time.Duration // Time to First Byte
	DownloadTime time.Duration // Total download time
	Attempts     int           // Attempts used including retries
}

// HTTPResponse contains the response and metrics
type HTTPResponse struct {
	StatusCode  int
	Headers     http.Header
	Body        []byte
	ContentType string
	FinalURL    string // After following redirects
	Metrics     HTTPMetrics
}

// NewHTTPClient creates a new HTTP client
func NewHTTPClient(userAgent string, timeout time.Duration) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	return &HTTPClient{
		client:      client,
		userAgent:   userAgent,
		maxAttempts: defaultMaxAttempts,
	}
}

// Get performs an HTTP GET request. Transport errors and transient
// statuses (429, 500, 502, 503, 504) are retried with capped
// exponential backoff up to the attempt budget; other statuses are
// returned as-is for the caller to interpret. Time to abandon a URL
// is bounded by the per-request timeout times the attempt budget plus
// backoff sleeps.
func (h *HTTPClient) Get(ctx context.Context, url string) (*HTTPResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		resp, err := h.doRequest(ctx, url)
		if err == nil && !retryableStatuses[resp.StatusCode] {
			resp.Metrics.Attempts = attempt
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("transient status %d", resp.StatusCode)
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == h.maxAttempts {
			break
		}
		if err := sleepBackoff(ctx, attempt); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", h.maxAttempts, lastErr)
}

func (h *HTTPClient) doRequest(ctx context.Context, url string) (*HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	var firstByteTime time.Time
	trace := &httptrace.ClientTrace{
		GotFirstResponseByte: func() {
			firstByteTime = time.Now()
		},
	}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))

	startTime := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var metrics HTTPMetrics
	if !firstByteTime.IsZero() {
		metrics.TTFB = firstByteTime.Sub(startTime)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	metrics.DownloadTime = time.Since(startTime)

	return &HTTPResponse{
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
		Metrics:     metrics,
	}, nil
}

// sleepBackoff waits out the exponential backoff for the given attempt
// number, returning early if the context is cancelled.
func sleepBackoff(ctx context.Context, attempt int) error {
	backoff := baseBackoff << (attempt - 1)
	if backoff > maxBackoff {
		backoff = maxBackoff
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close closes idle connections held by the HTTP client
func (h *HTTPClient) Close() {
	h.client.CloseIdleConnections()
}
