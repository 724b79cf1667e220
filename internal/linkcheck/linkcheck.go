// Package linkcheck validates that DOI and URL links in a bibliography
// still resolve. Requests are rate-limited to stay polite to doi.org and
// publisher hosts.
package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/schedkit/syllabib/internal/apa"
	"github.com/schedkit/syllabib/internal/bib"
)

const (
	// DefaultTimeout bounds a single link request.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit is requests per second across all hosts.
	DefaultRateLimit = 2.0
)

// Link is one checkable link, attributed to the entry that declared it.
type Link struct {
	Key string
	URL string
}

// Result is the outcome of checking one link.
type Result struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Status int    `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
	OK     bool   `json:"ok"`
}

// Checker performs rate-limited link validation.
type Checker struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) { c.client = hc }
}

// WithRateLimit overrides the requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *Checker) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// New creates a Checker with default timeout and rate limit.
func New(opts ...Option) *Checker {
	c := &Checker{
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EntryLinks collects the checkable link of each entry: the canonical DOI
// resolver link when a DOI is present, otherwise the raw url field.
// Entries with neither are skipped. Links are returned in key order.
func EntryLinks(entries map[string]bib.Entry) []Link {
	var links []Link
	for key, e := range entries {
		if doi := e.Field("doi"); doi != "" {
			links = append(links, Link{Key: key, URL: apa.DOIURL(doi)})
		} else if u := e.Field("url"); u != "" {
			links = append(links, Link{Key: key, URL: u})
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Key < links[j].Key })
	return links
}

// Check validates each link in order, honoring the rate limit. A HEAD
// request is tried first; hosts that reject HEAD get a GET retry. Any
// status below 400 counts as alive.
func (c *Checker) Check(ctx context.Context, links []Link) []Result {
	results := make([]Result, 0, len(links))
	for _, l := range links {
		if err := c.limiter.Wait(ctx); err != nil {
			results = append(results, Result{Key: l.Key, URL: l.URL, Error: err.Error()})
			continue
		}
		results = append(results, c.checkOne(ctx, l))
	}
	return results
}

func (c *Checker) checkOne(ctx context.Context, l Link) Result {
	status, err := c.request(ctx, http.MethodHead, l.URL)
	if err != nil || status == http.StatusMethodNotAllowed || status == http.StatusForbidden {
		status, err = c.request(ctx, http.MethodGet, l.URL)
	}
	res := Result{Key: l.Key, URL: l.URL, Status: status}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.OK = status < 400
	return res
}

func (c *Checker) request(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
