package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/marops/config"
	"p9e.in/marops/models"
	"p9e.in/marops/utils"
)

func GetAllYards(w http.ResponseWriter, r *http.Request) {
	var yards []models.Yard
	if err := config.DB.Order("name").Find(&yards).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(yards)
}

func CreateYard(w http.ResponseWriter, r *http.Request) {
	var item models.Yard
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if item.Name == "" {
		http.Error(w, "yard name is required", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateBoundary(item.Boundary); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
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

func UpdateYard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.Yard
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "yard not found", http.StatusNotFound)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateBoundary(item.Boundary); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := config.DB.Save(&item).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func DeleteYard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result := config.DB.Delete(&models.Yard{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "yard not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
