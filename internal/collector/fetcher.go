package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"AssetCompare/internal/model"
)

// Fetcher retrieves daily adjusted close prices for one ticker.
// Points are returned in chronological order; rng is inclusive on both ends.
type Fetcher interface {
	FetchDailyAdjClose(ctx context.Context, ticker string, rng model.DateRange) ([]model.PricePoint, error)
	Name() string
}

// newHTTPClient builds a client with an optional proxy URL.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
