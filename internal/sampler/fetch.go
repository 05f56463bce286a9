package sampler

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rileyhilliard/pimon/internal/errors"
)

// DefaultConnectTimeout bounds the TCP dial of a scrape. The request as a
// whole has no deadline.
const DefaultConnectTimeout = 5 * time.Second

// userAgent is sent with every scrape.
const userAgent = "pimon"

// Fetcher retrieves one exposition payload.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// HTTPFetcher fetches payloads with a plain HTTP GET.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher whose dials give up after connectTimeout.
// A nil client gets a fresh transport; otherwise client is used as is.
func NewHTTPFetcher(client *http.Client, connectTimeout time.Duration) *HTTPFetcher {
	if client == nil {
		if connectTimeout <= 0 {
			connectTimeout = DefaultConnectTimeout
		}
		dialer := &net.Dialer{Timeout: connectTimeout}
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         dialer.DialContext,
				TLSHandshakeTimeout: connectTimeout,
				MaxIdleConns:        2,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &HTTPFetcher{client: client}
}

// ValidateURL parses rawURL and requires an http or https scheme and a host.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrURL,
			fmt.Sprintf("Can't parse URL %q", rawURL),
			"Use a full URL such as http://localhost:9100/metrics")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New(errors.ErrURL,
			fmt.Sprintf("URL %q must use http or https", rawURL),
			"Use a full URL such as http://localhost:9100/metrics")
	}
	if u.Host == "" {
		return nil, errors.New(errors.ErrURL,
			fmt.Sprintf("URL %q has no host", rawURL),
			"Use a full URL such as http://localhost:9100/metrics")
	}
	return u, nil
}

// Fetch issues one GET and returns the body of a 200 response.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrURL,
			fmt.Sprintf("Can't build request for %s", u.Redacted()), "")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Couldn't reach %s", u.Redacted()),
			"Check that node_exporter is running and the URL is reachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.New(errors.ErrStatus,
			fmt.Sprintf("%s returned %s", u.Redacted(), resp.Status),
			"Check the metrics path, node_exporter serves /metrics")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Failed reading response from %s", u.Redacted()))
	}
	return body, nil
}
