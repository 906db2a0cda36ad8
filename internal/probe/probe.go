package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hamed0406/statuscheck/internal/domain"
)

// DefaultTimeout bounds a single probe, including redirects.
const DefaultTimeout = 10 * time.Second

// ErrBadURL is returned for input rejected before any request is sent.
var ErrBadURL = errors.New("invalid probe url")

// Prober issues a single header-only request and folds everything that can
// go wrong on the wire into the outcome instead of an error.
type Prober struct {
	client *http.Client
}

func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		client: &http.Client{Timeout: timeout},
	}
}

// Probe checks target with a HEAD request. Redirects are followed. The only
// error it returns is ErrBadURL; timeouts and transport failures come back
// as an unreachable outcome with Err set.
func (p *Prober) Probe(ctx context.Context, target string) (domain.ProbeOutcome, error) {
	u, err := url.Parse(target)
	if err != nil {
		return domain.ProbeOutcome{}, fmt.Errorf("%w: %v", ErrBadURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.ProbeOutcome{}, fmt.Errorf("%w: %q", ErrBadURL, target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return domain.ProbeOutcome{}, fmt.Errorf("%w: %v", ErrBadURL, err)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	elapsed := time.Since(start).Seconds() * 1000
	if err != nil {
		return domain.ProbeOutcome{Reachable: false, ElapsedMS: elapsed, Err: err.Error()}, nil
	}
	defer resp.Body.Close()

	return domain.ProbeOutcome{
		Reachable:  resp.StatusCode >= 200 && resp.StatusCode < 300,
		HTTPStatus: resp.StatusCode,
		ElapsedMS:  elapsed,
	}, nil
}
