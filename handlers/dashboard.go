package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"p9e.in/marops/config"
	"p9e.in/marops/models"
	"p9e.in/marops/pkg/export"
)

type dashboardSummary struct {
	Vessels              int64 `json:"vessels"`
	WorkOrders           int64 `json:"workOrders"`
	OpenWorkOrders       int64 `json:"openWorkOrders"`
	CompletedWorkOrders  int64 `json:"completedWorkOrders"`
	UnpaidInvoices       int64 `json:"unpaidInvoices"`
	FleetAverageProgress int   `json:"fleetAverageProgress"`
}

// GetDashboardSummary returns the landing-page counters. Completion is
// derived per order from its details' progress reports, same as
// everywhere else; nothing is stored.
func GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	var s dashboardSummary

	counts := []struct {
		model interface{}
		dst   *int64
		cond  []interface{}
	}{
		{&models.Vessel{}, &s.Vessels, nil},
		{&models.WorkOrder{}, &s.WorkOrders, nil},
		{&models.Invoice{}, &s.UnpaidInvoices, []interface{}{"payment_status = ?", models.PaymentStatusUnpaid}},
	}
	for _, c := range counts {
		q := config.DB.Model(c.model)
		if c.cond != nil {
			q = q.Where(c.cond[0], c.cond[1:]...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	var orders []models.WorkOrder
	err := config.DB.
		Preload("WorkDetails.ProgressReports").
		Preload("WorkDetails.Verifications").
		Find(&orders).Error
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var progressSum float64
	for _, o := range orders {
		summary, err := export.SummarizeOrder(detailNodes(o.WorkDetails))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		progressSum += float64(summary.OverallProgress)
		if summary.IsFullyCompleted {
			s.CompletedWorkOrders++
		} else {
			s.OpenWorkOrders++
		}
	}
	if len(orders) > 0 {
		s.FleetAverageProgress = int(math.Round(progressSum / float64(len(orders))))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}
