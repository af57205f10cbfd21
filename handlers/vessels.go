package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/marops/config"
	"p9e.in/marops/models"
)

func GetAllVessels(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, "vessel_type", "owner_company")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var total int64
	q := config.DB.Model(&models.Vessel{})
	for col, val := range params.Filters {
		q = q.Where(col+" = ?", val)
	}
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var vessels []models.Vessel
	if err := params.Apply(config.DB.Model(&models.Vessel{})).Find(&vessels).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params.Envelope(vessels, total))
}

func CreateVessel(w http.ResponseWriter, r *http.Request) {
	var item models.Vessel
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if item.Name == "" {
		http.Error(w, "vessel name is required", http.StatusBadRequest)
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

func GetVessel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.Vessel
	if err := config.DB.Preload("WorkOrders").First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "vessel not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func UpdateVessel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.Vessel
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "vessel not found", http.StatusNotFound)
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

// DeleteVessel soft-deletes; the row keeps its deleted_at timestamp
// and drops out of every read.
func DeleteVessel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result := config.DB.Delete(&models.Vessel{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "vessel not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
