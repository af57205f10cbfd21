// Package export implements the vessel data export pipeline: progress
// aggregation over fetched entity trees, flattening into tabular rows,
// and CSV/Excel rendering. Everything here is a pure in-memory
// transform; no database or network access happens inside the package.
package export

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ReportEntry is one already-fetched progress report.
type ReportEntry struct {
	Percentage int
	ReportDate time.Time
	Reporter   string
	CreatedAt  time.Time
}

// ProgressSummary annotates a work detail (or order) with fields
// derived from its progress reports. Nothing here is persisted; it is
// recomputed on every read.
type ProgressSummary struct {
	CurrentProgress    int        `json:"currentProgress"`
	LatestProgressDate *time.Time `json:"latestProgressDate,omitempty"`
	ProgressCount      int        `json:"progressCount"`
}

// AggregateReports computes the latest-report summary for one parent.
// An empty list is a valid state and yields the zero summary. A report
// with no date is malformed input and is reported as an error rather
// than silently treated as oldest.
func AggregateReports(reports []ReportEntry) (ProgressSummary, error) {
	if len(reports) == 0 {
		return ProgressSummary{}, nil
	}

	for i, r := range reports {
		if r.ReportDate.IsZero() {
			return ProgressSummary{}, fmt.Errorf("progress report %d has no report date", i)
		}
	}

	sorted := make([]ReportEntry, len(reports))
	copy(sorted, reports)
	// Date descending; same-date ties go to the later-created report so
	// the winner does not depend on sort internals. Stable sort keeps
	// insertion order as the final fallback.
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ReportDate.Equal(sorted[j].ReportDate) {
			return sorted[i].ReportDate.After(sorted[j].ReportDate)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	latest := sorted[0]
	date := latest.ReportDate
	return ProgressSummary{
		CurrentProgress:    latest.Percentage,
		LatestProgressDate: &date,
		ProgressCount:      len(reports),
	}, nil
}

// OrderSummary is the derived rollup over all work details of one
// work order.
type OrderSummary struct {
	OverallProgress    int  `json:"overallProgress"`
	IsFullyCompleted   bool `json:"isFullyCompleted"`
	VerificationStatus bool `json:"verificationStatus"`
}

// SummarizeOrder rolls detail summaries up to the order level:
// unweighted mean of current progress rounded to the nearest integer,
// fully completed only when at least one detail exists and every one
// of them sits at exactly 100, verified when any detail carries a
// verified sign-off.
func SummarizeOrder(details []DetailNode) (OrderSummary, error) {
	if len(details) == 0 {
		return OrderSummary{}, nil
	}

	var sum int
	completed := true
	verified := false
	for _, d := range details {
		ps, err := AggregateReports(d.Reports)
		if err != nil {
			return OrderSummary{}, fmt.Errorf("detail %s: %w", d.ID, err)
		}
		sum += ps.CurrentProgress
		if ps.CurrentProgress != 100 {
			completed = false
		}
		for _, v := range d.Verifications {
			if v.Verified {
				verified = true
				break
			}
		}
	}

	mean := float64(sum) / float64(len(details))
	return OrderSummary{
		OverallProgress:    int(math.Round(mean)),
		IsFullyCompleted:   completed,
		VerificationStatus: verified,
	}, nil
}
