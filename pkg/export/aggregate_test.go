package export

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAggregateReportsEmpty(t *testing.T) {
	ps, err := AggregateReports(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ps.CurrentProgress != 0 || ps.ProgressCount != 0 || ps.LatestProgressDate != nil {
		t.Errorf("empty list should yield zero summary, got %+v", ps)
	}
}

func TestAggregateReports(t *testing.T) {
	tests := []struct {
		name         string
		reports      []ReportEntry
		wantProgress int
		wantDate     string
		wantCount    int
	}{
		{
			name: "single report",
			reports: []ReportEntry{
				{Percentage: 30, ReportDate: date("2024-02-10")},
			},
			wantProgress: 30,
			wantDate:     "2024-02-10",
			wantCount:    1,
		},
		{
			name: "latest date wins regardless of order",
			reports: []ReportEntry{
				{Percentage: 50, ReportDate: date("2024-01-01")},
				{Percentage: 80, ReportDate: date("2024-01-05")},
				{Percentage: 60, ReportDate: date("2024-01-03")},
			},
			wantProgress: 80,
			wantDate:     "2024-01-05",
			wantCount:    3,
		},
		{
			name: "same date tie broken by created_at",
			reports: []ReportEntry{
				{Percentage: 40, ReportDate: date("2024-03-01"), CreatedAt: date("2024-03-01").Add(1 * time.Hour)},
				{Percentage: 55, ReportDate: date("2024-03-01"), CreatedAt: date("2024-03-01").Add(2 * time.Hour)},
			},
			wantProgress: 55,
			wantDate:     "2024-03-01",
			wantCount:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := AggregateReports(tt.reports)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ps.CurrentProgress != tt.wantProgress {
				t.Errorf("CurrentProgress = %d, want %d", ps.CurrentProgress, tt.wantProgress)
			}
			if ps.ProgressCount != tt.wantCount {
				t.Errorf("ProgressCount = %d, want %d", ps.ProgressCount, tt.wantCount)
			}
			if ps.LatestProgressDate == nil || ps.LatestProgressDate.Format("2006-01-02") != tt.wantDate {
				t.Errorf("LatestProgressDate = %v, want %s", ps.LatestProgressDate, tt.wantDate)
			}
		})
	}
}

func TestAggregateReportsMissingDate(t *testing.T) {
	_, err := AggregateReports([]ReportEntry{{Percentage: 10}})
	if err == nil {
		t.Fatal("expected error for report with zero date")
	}
}

func TestAggregateReportsDoesNotMutateInput(t *testing.T) {
	reports := []ReportEntry{
		{Percentage: 20, ReportDate: date("2024-01-02")},
		{Percentage: 10, ReportDate: date("2024-01-01")},
	}
	if _, err := AggregateReports(reports); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reports[0].Percentage != 20 {
		t.Error("input slice was reordered")
	}
}

func TestSummarizeOrder(t *testing.T) {
	tests := []struct {
		name          string
		details       []DetailNode
		wantOverall   int
		wantCompleted bool
		wantVerified  bool
	}{
		{
			name: "no details",
		},
		{
			// One detail at 80, one with no reports: round((80+0)/2) = 40.
			name: "mixed progress",
			details: []DetailNode{
				{ID: "a", Reports: []ReportEntry{
					{Percentage: 50, ReportDate: date("2024-01-01")},
					{Percentage: 80, ReportDate: date("2024-01-05")},
				}},
				{ID: "b"},
			},
			wantOverall: 40,
		},
		{
			name: "all complete",
			details: []DetailNode{
				{ID: "a", Reports: []ReportEntry{{Percentage: 100, ReportDate: date("2024-01-01")}}},
				{ID: "b", Reports: []ReportEntry{{Percentage: 100, ReportDate: date("2024-01-02")}}},
			},
			wantOverall:   100,
			wantCompleted: true,
		},
		{
			name: "almost complete is not complete",
			details: []DetailNode{
				{ID: "a", Reports: []ReportEntry{{Percentage: 100, ReportDate: date("2024-01-01")}}},
				{ID: "b", Reports: []ReportEntry{{Percentage: 99, ReportDate: date("2024-01-01")}}},
			},
			wantOverall: 100, // round(99.5)
		},
		{
			name: "verified when any detail signed off",
			details: []DetailNode{
				{ID: "a", Verifications: []VerificationEntry{{Verified: false}}},
				{ID: "b", Verifications: []VerificationEntry{{Verified: true}}},
			},
			wantVerified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SummarizeOrder(tt.details)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.OverallProgress != tt.wantOverall {
				t.Errorf("OverallProgress = %d, want %d", s.OverallProgress, tt.wantOverall)
			}
			if s.IsFullyCompleted != tt.wantCompleted {
				t.Errorf("IsFullyCompleted = %v, want %v", s.IsFullyCompleted, tt.wantCompleted)
			}
			if s.VerificationStatus != tt.wantVerified {
				t.Errorf("VerificationStatus = %v, want %v", s.VerificationStatus, tt.wantVerified)
			}
		})
	}
}
