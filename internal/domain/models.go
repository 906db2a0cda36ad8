package domain

import "time"

// Verdict is the tri-state availability classification returned to callers.
type Verdict string

const (
	VerdictUp       Verdict = "up"
	VerdictDegraded Verdict = "degraded"
	VerdictDown     Verdict = "down"
)

// DataSource tags which path produced a resolution.
type DataSource string

const (
	SourcePrimary  DataSource = "downdetector-api"
	SourceFallback DataSource = "http-fallback"
)

// ServiceQuery is the input to a resolution. ExplicitURL, when set, forces
// the active-probe path and skips the crowd-sourced lookup entirely.
type ServiceQuery struct {
	ServiceName string
	ExplicitURL string
}

// ReportPoint is one sample in an outage-report series.
type ReportPoint struct {
	Timestamp string  `json:"timestamp,omitempty"`
	Value     float64 `json:"value"`
}

// OutageReportSet is the raw payload from the crowd-sourced source.
// Either series may be empty or absent; that is valid data, not an error.
type OutageReportSet struct {
	Reports  []ReportPoint `json:"reports,omitempty"`
	Baseline []ReportPoint `json:"baseline,omitempty"`
}

// ProbeOutcome is the result of a single active probe. Err is set only on
// transport failure or timeout; a non-2xx response carries HTTPStatus instead.
type ProbeOutcome struct {
	Reachable  bool
	HTTPStatus int
	ElapsedMS  float64
	Err        string
}

// ResolutionResult is what the resolver hands back. Raw is present exactly
// when DataSource is SourcePrimary; HTTPStatus, URL and Err belong to the
// fallback path.
type ResolutionResult struct {
	Status         Verdict
	ResponseTimeMS float64
	ServiceName    string
	DataSource     DataSource
	Raw            *OutageReportSet
	HTTPStatus     int
	URL            string
	Err            string
	Timestamp      time.Time
}

// UsageSnapshot is a point-in-time read of the process-wide query counters.
type UsageSnapshot struct {
	TotalQueries int64
	PrimaryHits  int64
	FallbackHits int64
}
