package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"p9e.in/marops/config"
	"p9e.in/marops/middleware"
	"p9e.in/marops/models"
	"p9e.in/marops/utils"
)

// invoiceView hides the monetary fields from roles without financial
// access. The struct mirrors models.Invoice minus Amount/Currency.
type invoiceView struct {
	models.Invoice
	Amount   *float64 `json:"amount,omitempty"`
	Currency *string  `json:"currency,omitempty"`
}

func redactInvoice(inv models.Invoice, includeFinancial bool) invoiceView {
	v := invoiceView{Invoice: inv}
	if includeFinancial {
		v.Amount = &inv.Amount
		v.Currency = &inv.Currency
	}
	return v
}

func GetAllInvoices(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r, "work_order_id", "payment_status")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var total int64
	q := config.DB.Model(&models.Invoice{})
	for col, val := range params.Filters {
		q = q.Where(col+" = ?", val)
	}
	if err := q.Count(&total).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var invoices []models.Invoice
	if err := params.Apply(config.DB.Model(&models.Invoice{})).Find(&invoices).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	includeFinancial := utils.CanViewFinancialData(middleware.GetRole(r))
	views := make([]invoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, redactInvoice(inv, includeFinancial))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(params.Envelope(views, total))
}

// CreateInvoice requires an uploaded BASTP document on the work order;
// handover paperwork gates billing.
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var item models.Invoice
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var order models.WorkOrder
	if err := config.DB.First(&order, "id = ?", item.WorkOrderID).Error; err != nil {
		http.Error(w, "work order not found", http.StatusBadRequest)
		return
	}

	var bastpCount int64
	if err := config.DB.Model(&models.BastpDocument{}).
		Where("work_order_id = ?", item.WorkOrderID).
		Count(&bastpCount).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if bastpCount == 0 {
		http.Error(w, "a BASTP document must be uploaded before invoicing this work order", http.StatusBadRequest)
		return
	}

	if item.PaymentStatus == "" {
		item.PaymentStatus = models.PaymentStatusUnpaid
	}
	if item.Amount < 0 {
		http.Error(w, "amount cannot be negative", http.StatusBadRequest)
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

func GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.Invoice
	if err := config.DB.Preload("BastpDocument").First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}
	includeFinancial := utils.CanViewFinancialData(middleware.GetRole(r))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(redactInvoice(item, includeFinancial))
}

// MarkInvoicePaid / MarkInvoiceUnpaid are atomic single-row updates.
// Two tabs racing on the same invoice is last-write-wins; there is no
// optimistic-concurrency check here.
func MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	setPaymentStatus(w, r, models.PaymentStatusPaid)
}

func MarkInvoiceUnpaid(w http.ResponseWriter, r *http.Request) {
	setPaymentStatus(w, r, models.PaymentStatusUnpaid)
}

func setPaymentStatus(w http.ResponseWriter, r *http.Request, status string) {
	id := mux.Vars(r)["id"]

	updates := map[string]interface{}{"payment_status": status}
	if status == models.PaymentStatusPaid {
		updates["paid_date"] = time.Now()
	} else {
		updates["paid_date"] = nil
	}

	result := config.DB.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}

	var item models.Invoice
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	includeFinancial := utils.CanViewFinancialData(middleware.GetRole(r))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(redactInvoice(item, includeFinancial))
}

func DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result := config.DB.Delete(&models.Invoice{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
