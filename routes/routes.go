package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/marops/handlers"
	"p9e.in/marops/middleware"
	"p9e.in/marops/models"
	"p9e.in/marops/utils"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	// User profile endpoint
	api.HandleFunc("/profile", handleProfile).Methods("GET")

	// Dashboard
	api.HandleFunc("/dashboard/summary", handlers.GetDashboardSummary).Methods("GET")

	// Resource routes
	registerVesselRoutes(api)
	registerWorkRoutes(api)
	registerInvoiceRoutes(api)
	registerExportRoutes(api)

	// =====================================================
	// Admin Routes (MASTER only)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	return r
}

// handleProfile returns user profile information
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	user := middleware.GetUser(r)

	response := map[string]interface{}{
		"userID":            claims.UserID,
		"name":              user.Name,
		"email":             user.Email,
		"role":              user.Role,
		"canViewFinancials": utils.CanViewFinancialData(user.Role),
	}
	json.NewEncoder(w).Encode(response)
}

func registerVesselRoutes(api *mux.Router) {
	api.HandleFunc("/vessels", handlers.GetAllVessels).Methods("GET")
	api.HandleFunc("/vessels", handlers.CreateVessel).Methods("POST")
	api.HandleFunc("/vessels/{id}", handlers.GetVessel).Methods("GET")
	api.HandleFunc("/vessels/{id}", handlers.UpdateVessel).Methods("PUT")
	api.HandleFunc("/vessels/{id}", handlers.DeleteVessel).Methods("DELETE")

	api.HandleFunc("/yards", handlers.GetAllYards).Methods("GET")
	api.HandleFunc("/yards", handlers.CreateYard).Methods("POST")
	api.HandleFunc("/yards/{id}", handlers.UpdateYard).Methods("PUT")
	api.HandleFunc("/yards/{id}", handlers.DeleteYard).Methods("DELETE")
}

func registerWorkRoutes(api *mux.Router) {
	api.HandleFunc("/workorders", handlers.GetAllWorkOrders).Methods("GET")
	api.HandleFunc("/workorders", handlers.CreateWorkOrder).Methods("POST")
	api.HandleFunc("/workorders/{id}", handlers.GetWorkOrder).Methods("GET")
	api.HandleFunc("/workorders/{id}", handlers.UpdateWorkOrder).Methods("PUT")
	api.HandleFunc("/workorders/{id}", handlers.DeleteWorkOrder).Methods("DELETE")

	// BASTP documents hang off a work order; invoices are gated on them
	api.HandleFunc("/workorders/{id}/documents", handlers.UploadBastpDocument).Methods("POST")
	api.HandleFunc("/workorders/{id}/documents", handlers.GetWorkOrderDocuments).Methods("GET")
	api.HandleFunc("/documents/{id}/url", handlers.GetBastpDocumentURL).Methods("GET")

	api.HandleFunc("/workdetails", handlers.GetAllWorkDetails).Methods("GET")
	api.HandleFunc("/workdetails", handlers.CreateWorkDetail).Methods("POST")
	api.HandleFunc("/workdetails/{id}", handlers.GetWorkDetail).Methods("GET")
	api.HandleFunc("/workdetails/{id}", handlers.UpdateWorkDetail).Methods("PUT")
	api.HandleFunc("/workdetails/{id}", handlers.DeleteWorkDetail).Methods("DELETE")

	api.HandleFunc("/progress", handlers.GetAllProgressReports).Methods("GET")
	api.HandleFunc("/progress", handlers.CreateProgressReport).Methods("POST")
	api.HandleFunc("/progress/{id}", handlers.DeleteProgressReport).Methods("DELETE")

	// Verification sign-offs are the surveyor's call
	api.Handle("/verifications", middleware.RequireRole(
		[]string{models.RoleMaster, models.RoleSurveyor},
		http.HandlerFunc(handlers.CreateVerification))).Methods("POST")
	api.HandleFunc("/verifications", handlers.GetAllVerifications).Methods("GET")
	api.Handle("/verifications/{id}", middleware.RequireRole(
		[]string{models.RoleMaster, models.RoleSurveyor},
		http.HandlerFunc(handlers.DeleteVerification))).Methods("DELETE")
}

func registerInvoiceRoutes(api *mux.Router) {
	financeOnly := []string{models.RoleMaster, models.RoleFinance}

	api.HandleFunc("/invoices", handlers.GetAllInvoices).Methods("GET")
	api.HandleFunc("/invoices/{id}", handlers.GetInvoice).Methods("GET")
	api.Handle("/invoices", middleware.RequireRole(financeOnly,
		http.HandlerFunc(handlers.CreateInvoice))).Methods("POST")
	api.Handle("/invoices/{id}", middleware.RequireRole(financeOnly,
		http.HandlerFunc(handlers.DeleteInvoice))).Methods("DELETE")
	api.Handle("/invoices/{id}/pay", middleware.RequireRole(financeOnly,
		http.HandlerFunc(handlers.MarkInvoicePaid))).Methods("POST")
	api.Handle("/invoices/{id}/unpay", middleware.RequireRole(financeOnly,
		http.HandlerFunc(handlers.MarkInvoiceUnpaid))).Methods("POST")
}

func registerExportRoutes(api *mux.Router) {
	api.HandleFunc("/export/csv", handlers.ExportVesselDataCSV).Methods("GET")
	api.HandleFunc("/export/excel", handlers.ExportVesselDataExcel).Methods("GET")
}

// registerAdminRoutes registers MASTER-only user management
func registerAdminRoutes(admin *mux.Router) {
	masterOnly := []string{models.RoleMaster}

	admin.Handle("/users", middleware.RequireRole(masterOnly,
		http.HandlerFunc(handlers.GetAllUsers))).Methods("GET")
	admin.Handle("/users", middleware.RequireRole(masterOnly,
		http.HandlerFunc(handlers.Register))).Methods("POST")
	admin.Handle("/users/{id}", middleware.RequireRole(masterOnly,
		http.HandlerFunc(handlers.UpdateUser))).Methods("PUT")
	admin.Handle("/users/{id}", middleware.RequireRole(masterOnly,
		http.HandlerFunc(handlers.DeleteUser))).Methods("DELETE")
}
