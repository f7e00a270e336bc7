package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"

	maxFetchRetries = 2
)

// Fetcher retrieves one source's raw payload. Cancellation and timeouts travel
// through the context.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

var _ Fetcher = &HTTPFetcher{}

// HTTPFetcher fetches source payloads over HTTP with browser-like headers,
// retrying transient failures with fibonacci backoff.
type HTTPFetcher struct {
	client *http.Client
	logger *zap.Logger
}

func NewHTTPFetcher(timeout time.Duration, logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, req Request) ([]byte, error) {
	var body []byte
	backoff := retry.WithMaxRetries(maxFetchRetries, retry.NewFibonacci(500*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		b, err := f.fetchOnce(ctx, req)
		if err != nil {
			f.logger.Debug("fetch attempt failed", zap.String("url", req.URL), zap.Error(err))
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", req.URL, err)
	}
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload io.Reader
	if req.Body != "" {
		payload = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, payload)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", acceptHeader)
	httpReq.Header.Set("Accept-Language", acceptLanguage)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if method == http.MethodPost {
		httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, retry.RetryableError(fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("reading body: %w", err))
	}
	return b, nil
}
