package classify

import "github.com/hamed0406/statuscheck/internal/domain"

const (
	// window is how many of the most recent samples feed the averages.
	window = 5

	downThreshold     = 10.0
	degradedThreshold = 3.0
)

// Classify maps an outage-report payload to a verdict. It never fails:
// an empty or absent report series is optimistic ("up"), and an empty
// baseline averages as 1 so the ratio is still defined.
func Classify(set domain.OutageReportSet) domain.Verdict {
	if len(set.Reports) == 0 {
		return domain.VerdictUp
	}

	avgReports := mean(tail(set.Reports, window))
	avgBaseline := mean(tail(set.Baseline, window))
	if avgBaseline <= 0 {
		avgBaseline = 1
	}

	ratio := avgReports / avgBaseline
	switch {
	case ratio > downThreshold:
		return domain.VerdictDown
	case ratio > degradedThreshold:
		return domain.VerdictDegraded
	default:
		return domain.VerdictUp
	}
}

func tail(points []domain.ReportPoint, n int) []domain.ReportPoint {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

func mean(points []domain.ReportPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		if p.Value > 0 {
			sum += p.Value
		}
	}
	return sum / float64(len(points))
}
