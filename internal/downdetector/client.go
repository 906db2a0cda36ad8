package downdetector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/domain"
)

// DefaultBaseTemplate builds the per-domain endpoint. The first verb is the
// regional domain suffix, the second the service slug.
const DefaultBaseTemplate = "https://downdetector.%s/api/v1/service/%s/reports"

// DefaultAttemptTimeout bounds each domain attempt independently; the cascade
// as a whole has no extra budget beyond the sum of its attempts.
const DefaultAttemptTimeout = 10 * time.Second

// DefaultDomains is the cascade order: the default top-level domain first,
// then regional alternates.
var DefaultDomains = []string{"com", "co.uk", "ca", "com.au", "in"}

// ErrCascadeExhausted means every configured domain was attempted and failed.
var ErrCascadeExhausted = errors.New("all downdetector domains failed")

// Client queries the crowd-sourced outage-report source across regional
// domains, stopping at the first success.
type Client struct {
	log     *zap.Logger
	http    *http.Client
	base    string
	domains []string
	timeout time.Duration
}

func New(log *zap.Logger, base string, domains []string, attemptTimeout time.Duration) *Client {
	if base == "" {
		base = DefaultBaseTemplate
	}
	if len(domains) == 0 {
		domains = DefaultDomains
	}
	if attemptTimeout <= 0 {
		attemptTimeout = DefaultAttemptTimeout
	}
	return &Client{
		log:     log,
		http:    &http.Client{},
		base:    base,
		domains: domains,
		timeout: attemptTimeout,
	}
}

// Query walks the domain list in order and returns the first payload that
// decodes. A failed attempt (transport error, non-200, malformed body) is
// never retried; the cascade just moves on. Failure reasons are collected
// for diagnostics only.
func (c *Client) Query(ctx context.Context, service string) (domain.OutageReportSet, error) {
	slug := url.PathEscape(strings.ToLower(strings.TrimSpace(service)))

	var reasons []string
	for _, d := range c.domains {
		set, err := c.attempt(ctx, d, slug)
		if err == nil {
			c.log.Debug("cascade_hit",
				zap.String("service", service),
				zap.String("domain", d),
				zap.Int("reports", len(set.Reports)),
			)
			return set, nil
		}
		reasons = append(reasons, d+": "+err.Error())
		c.log.Debug("cascade_attempt_failed",
			zap.String("service", service),
			zap.String("domain", d),
			zap.Error(err),
		)
	}
	return domain.OutageReportSet{}, fmt.Errorf("%w: %s", ErrCascadeExhausted, strings.Join(reasons, "; "))
}

func (c *Client) attempt(ctx context.Context, dom, slug string) (domain.OutageReportSet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf(c.base, dom, slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.OutageReportSet{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.OutageReportSet{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.OutageReportSet{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var set domain.OutageReportSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return domain.OutageReportSet{}, fmt.Errorf("decode payload: %w", err)
	}
	return set, nil
}
