package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/classify"
	"github.com/hamed0406/statuscheck/internal/domain"
	"github.com/hamed0406/statuscheck/internal/usage"
)

// ErrEmptyService is the only error Resolve returns; everything past the
// validation boundary degrades to a fallback verdict instead of failing.
var ErrEmptyService = errors.New("service name is required")

// Source is the crowd-sourced outage-report integration.
type Source interface {
	Query(ctx context.Context, service string) (domain.OutageReportSet, error)
}

// Prober is the active HTTP probe used for the fallback path.
type Prober interface {
	Probe(ctx context.Context, url string) (domain.ProbeOutcome, error)
}

// Resolver orchestrates a resolution: explicit-URL fast path, then the
// primary source with classification, then the active probe as last resort.
type Resolver struct {
	log      *zap.Logger
	source   Source // nil when the integration is not deployed
	prober   Prober
	counters *usage.Counters
}

func New(log *zap.Logger, source Source, prober Prober, counters *usage.Counters) *Resolver {
	return &Resolver{log: log, source: source, prober: prober, counters: counters}
}

// CanonicalURL derives the probe target for a bare service name.
func CanonicalURL(service string) string {
	return "https://" + strings.ToLower(strings.TrimSpace(service)) + ".com"
}

// Resolve answers a status query. It fails only on an empty service name;
// source outages, cascade exhaustion and probe failures all fold into a
// best-effort result. Exactly one usage counter is bumped per completed
// resolution.
func (r *Resolver) Resolve(ctx context.Context, q domain.ServiceQuery) (domain.ResolutionResult, error) {
	name := strings.TrimSpace(q.ServiceName)
	if name == "" {
		return domain.ResolutionResult{}, ErrEmptyService
	}
	start := time.Now()

	if q.ExplicitURL != "" {
		return r.fallback(ctx, name, q.ExplicitURL, start), nil
	}

	if r.source != nil {
		set, err := r.source.Query(ctx, name)
		if err == nil {
			res := domain.ResolutionResult{
				Status:         classify.Classify(set),
				ResponseTimeMS: msSince(start),
				ServiceName:    name,
				DataSource:     domain.SourcePrimary,
				Raw:            &set,
				Timestamp:      time.Now().UTC(),
			}
			r.counters.RecordPrimary()
			r.log.Info("resolved",
				zap.String("service", name),
				zap.String("status", string(res.Status)),
				zap.String("source", string(res.DataSource)),
				zap.Float64("response_ms", res.ResponseTimeMS),
			)
			return res, nil
		}
		r.log.Warn("primary_source_failed", zap.String("service", name), zap.Error(err))
	}

	return r.fallback(ctx, name, CanonicalURL(name), start), nil
}

func (r *Resolver) fallback(ctx context.Context, name, target string, start time.Time) domain.ResolutionResult {
	res := domain.ResolutionResult{
		ServiceName: name,
		DataSource:  domain.SourceFallback,
		URL:         target,
	}

	out, err := r.prober.Probe(ctx, target)
	switch {
	case err != nil:
		res.Status = domain.VerdictDown
		res.Err = err.Error()
	case out.Reachable:
		res.Status = domain.VerdictUp
		res.HTTPStatus = out.HTTPStatus
	default:
		res.Status = domain.VerdictDown
		res.HTTPStatus = out.HTTPStatus
		res.Err = out.Err
	}

	res.ResponseTimeMS = msSince(start)
	res.Timestamp = time.Now().UTC()
	r.counters.RecordFallback()
	r.log.Info("resolved",
		zap.String("service", name),
		zap.String("status", string(res.Status)),
		zap.String("source", string(res.DataSource)),
		zap.String("url", target),
		zap.Float64("response_ms", res.ResponseTimeMS),
	)
	return res
}

func msSince(start time.Time) float64 {
	return time.Since(start).Seconds() * 1000
}
