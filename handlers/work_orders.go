package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/marops/config"
	"p9e.in/marops/models"
	"p9e.in/marops/pkg/export"
)

func GetAllWorkOrders(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, "vessel_id", "yard_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var total int64
	q := config.DB.Model(&models.WorkOrder{})
	for col, val := range params.Filters {
		q = q.Where(col+" = ?", val)
	}
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var orders []models.WorkOrder
	if err := params.Apply(config.DB.Model(&models.WorkOrder{}).Preload("Vessel")).Find(&orders).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params.Envelope(orders, total))
}

func CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var item models.WorkOrder
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var vessel models.Vessel
	if err := config.DB.First(&vessel, "id = ?", item.VesselID).Error; err != nil {
		http.Error(w, "vessel not found", http.StatusBadRequest)
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

// workOrderResponse is a work order plus its derived progress fields,
// recomputed on every read.
type workOrderResponse struct {
	models.WorkOrder
	export.OrderSummary
}

func GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.WorkOrder
	err := config.DB.
		Preload("Vessel").
		Preload("WorkDetails.ProgressReports").
		Preload("WorkDetails.Verifications").
		Preload("Invoices").
		First(&item, "id = ?", id).Error
	if err != nil {
		http.Error(w, "work order not found", http.StatusNotFound)
		return
	}

	summary, err := export.SummarizeOrder(detailNodes(item.WorkDetails))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(workOrderResponse{WorkOrder: item, OrderSummary: summary})
}

func UpdateWorkOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.WorkOrder
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "work order not found", http.StatusNotFound)
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

func DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result := config.DB.Delete(&models.WorkOrder{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "work order not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
