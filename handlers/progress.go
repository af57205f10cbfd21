package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/marops/config"
	"p9e.in/marops/middleware"
	"p9e.in/marops/models"
	"p9e.in/marops/pkg/export"
	"p9e.in/marops/utils"
)

// CreateProgressReport validates and inserts one progress submission.
// Three business rules apply before any write: the percentage is
// clamped to [0,100], only one report may exist per (parent, date)
// pair, and progress never decreases. A duplicate date is an expected
// business rejection (409), not a system fault.
func CreateProgressReport(w http.ResponseWriter, r *http.Request) {
	var item models.ProgressReport
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if (item.WorkDetailID == nil) == (item.WorkOrderID == nil) {
		http.Error(w, "exactly one of workDetailId or workOrderId must be set", http.StatusBadRequest)
		return
	}
	if item.ReportDate.Time().IsZero() {
		http.Error(w, "reportDate is required", http.StatusBadRequest)
		return
	}

	// Clamp rather than reject; the dashboards send sliders that can
	// overshoot by a point.
	if item.Percentage < 0 {
		item.Percentage = 0
	}
	if item.Percentage > 100 {
		item.Percentage = 100
	}

	parentCol, parentID := "work_order_id", item.WorkOrderID
	if item.WorkDetailID != nil {
		parentCol, parentID = "work_detail_id", item.WorkDetailID
	}

	if err := checkParentExists(parentCol, *parentID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// One report per (parent, date).
	var dupes int64
	day := item.ReportDate.Time().Format("2006-01-02")
	err := config.DB.Model(&models.ProgressReport{}).
		Where(parentCol+" = ?", parentID).
		Where("DATE(report_date) = ?", day).
		Count(&dupes).Error
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if dupes > 0 {
		http.Error(w, fmt.Sprintf("a progress report for %s already exists on this work item", day), http.StatusConflict)
		return
	}

	// Progress is monotonic non-decreasing.
	var existing []models.ProgressReport
	if err := config.DB.Where(parentCol+" = ?", parentID).Find(&existing).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	current, err := export.AggregateReports(reportEntries(existing))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if item.Percentage < current.CurrentProgress {
		http.Error(w, fmt.Sprintf("progress cannot decrease: current is %d%%, submitted %d%%",
			current.CurrentProgress, item.Percentage), http.StatusBadRequest)
		return
	}

	if item.Latitude != nil && item.Longitude != nil {
		if err := checkYardPosition(&item); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	user := middleware.GetUser(r)
	if item.ReporterName == "" {
		item.ReporterName = user.Name
	}
	if item.ReporterPhone == "" {
		item.ReporterPhone = user.Phone
	}

	if err := config.DB.Create(&item).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func checkParentExists(parentCol string, id uuid.UUID) error {
	var err error
	if parentCol == "work_detail_id" {
		err = config.DB.First(&models.WorkDetail{}, "id = ?", id).Error
	} else {
		err = config.DB.First(&models.WorkOrder{}, "id = ?", id).Error
	}
	if err == gorm.ErrRecordNotFound {
		return fmt.Errorf("work item %s not found", id)
	}
	return err
}

// checkYardPosition rejects position-tagged reports submitted from
// outside the work order's yard boundary.
func checkYardPosition(item *models.ProgressReport) error {
	var order models.WorkOrder
	var err error
	if item.WorkOrderID != nil {
		err = config.DB.Preload("Yard").First(&order, "id = ?", *item.WorkOrderID).Error
	} else {
		var detail models.WorkDetail
		if err = config.DB.First(&detail, "id = ?", *item.WorkDetailID).Error; err == nil {
			err = config.DB.Preload("Yard").First(&order, "id = ?", detail.WorkOrderID).Error
		}
	}
	if err != nil {
		return err
	}
	if order.Yard == nil || len(order.Yard.Boundary) == 0 {
		return nil
	}

	inside, err := utils.BoundaryContains(order.Yard.Boundary, *item.Latitude, *item.Longitude)
	if err != nil {
		return err
	}
	if !inside {
		return fmt.Errorf("reported position is outside yard %s", order.Yard.Name)
	}
	return nil
}

func GetAllProgressReports(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, "work_detail_id", "work_order_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var total int64
	q := config.DB.Model(&models.ProgressReport{})
	for col, val := range params.Filters {
		q = q.Where(col+" = ?", val)
	}
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var reports []models.ProgressReport
	if err := params.Apply(config.DB.Model(&models.ProgressReport{})).Find(&reports).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params.Envelope(reports, total))
}

func DeleteProgressReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result := config.DB.Delete(&models.ProgressReport{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "progress report not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
