package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/marops/config"
	"p9e.in/marops/models"
	"p9e.in/marops/pkg/export"
)

func GetAllWorkDetails(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, "work_order_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var total int64
	q := config.DB.Model(&models.WorkDetail{})
	for col, val := range params.Filters {
		q = q.Where(col+" = ?", val)
	}
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var details []models.WorkDetail
	if err := params.Apply(config.DB.Model(&models.WorkDetail{})).Find(&details).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params.Envelope(details, total))
}

func CreateWorkDetail(w http.ResponseWriter, r *http.Request) {
	var item models.WorkDetail
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var order models.WorkOrder
	if err := config.DB.First(&order, "id = ?", item.WorkOrderID).Error; err != nil {
		http.Error(w, "work order not found", http.StatusBadRequest)
		return
	}
	if item.Description == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}
	if err := config.DB.Create(&item).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// workDetailResponse carries the detail plus its derived progress
// summary.
type workDetailResponse struct {
	models.WorkDetail
	export.ProgressSummary
}

func GetWorkDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.WorkDetail
	err := config.DB.
		Preload("ProgressReports").
		Preload("Verifications").
		First(&item, "id = ?", id).Error
	if err != nil {
		http.Error(w, "work detail not found", http.StatusNotFound)
		return
	}

	summary, err := export.AggregateReports(reportEntries(item.ProgressReports))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(workDetailResponse{WorkDetail: item, ProgressSummary: summary})
}

func UpdateWorkDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.WorkDetail
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "work detail not found", http.StatusNotFound)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := config.DB.Save(&item).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func DeleteWorkDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result := config.DB.Delete(&models.WorkDetail{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "work detail not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
