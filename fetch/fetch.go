// Package fetch downloads register headers over HTTP.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent by the fetchers returned by New.
const DefaultUserAgent = "mmio-gen (+https://omibyte.io)"

// maxHeaderSize bounds the size of a downloaded header.
const maxHeaderSize = 16 << 20

// Fetcher performs rate limited GET requests for header text. A Fetcher can
// be used by several goroutines at once; they share its limiter.
type Fetcher struct {
	// Client is the underlying HTTP client.
	Client *http.Client

	// Limiter, if set, is waited on before every request.
	Limiter *rate.Limiter

	// UserAgent is provided with every request. If UserAgent is empty, Fetch
	// returns ErrNoUserAgent.
	UserAgent string
}

// New returns a fetcher sending at most one request per interval. A zero
// interval disables rate limiting.
func New(interval time.Duration) *Fetcher {
	f := &Fetcher{
		Client: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		UserAgent: DefaultUserAgent,
	}
	if interval > 0 {
		f.Limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return f
}

// Fetch returns the body of the document at url. Any status other than
// 200 OK is reported as an *Error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.UserAgent == "" {
		return "", ErrNoUserAgent
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", &Error{
			URL:        url,
			StatusCode: res.StatusCode,
			Status:     res.Status,
		}
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxHeaderSize))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
