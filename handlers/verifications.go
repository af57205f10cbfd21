package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/marops/config"
	"p9e.in/marops/middleware"
	"p9e.in/marops/models"
)

func CreateVerification(w http.ResponseWriter, r *http.Request) {
	var item models.VerificationRecord
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var detail models.WorkDetail
	if err := config.DB.First(&detail, "id = ?", item.WorkDetailID).Error; err != nil {
		http.Error(w, "work detail not found", http.StatusBadRequest)
		return
	}
	if item.VerifiedDate.Time().IsZero() {
		http.Error(w, "verifiedDate is required", http.StatusBadRequest)
		return
	}
	if item.VerifierName == "" {
		item.VerifierName = middleware.GetUser(r).Name
	}
	if err := config.DB.Create(&item).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func GetAllVerifications(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, "work_detail_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var total int64
	q := config.DB.Model(&models.VerificationRecord{})
	for col, val := range params.Filters {
		q = q.Where(col+" = ?", val)
	}
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var records []models.VerificationRecord
	if err := params.Apply(config.DB.Model(&models.VerificationRecord{})).Find(&records).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params.Envelope(records, total))
}

func DeleteVerification(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result := config.DB.Delete(&models.VerificationRecord{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "verification record not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
