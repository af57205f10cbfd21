package handlers

import (
	"fmt"
	"net/http"
	"time"

	"p9e.in/marops/config"
	"p9e.in/marops/middleware"
	"p9e.in/marops/models"
	"p9e.in/marops/pkg/export"
	"p9e.in/marops/utils"
)

// loadVesselTrees fetches the nested entity tree for the requested
// vessels (all of them when no vessel_id filter is present) and
// converts it to the export package's intermediate representation.
// This is the only suspension point in an export; everything after it
// runs synchronously on the fetched data.
func loadVesselTrees(r *http.Request) ([]export.VesselTree, bool, error) {
	q := config.DB.
		Preload("WorkOrders.WorkDetails.ProgressReports").
		Preload("WorkOrders.WorkDetails.Verifications").
		Preload("WorkOrders.Invoices")

	ids := r.URL.Query()["vessel_id"]
	allVessels := len(ids) == 0
	if !allVessels {
		q = q.Where("id IN ?", ids)
	}

	var vessels []models.Vessel
	if err := q.Find(&vessels).Error; err != nil {
		return nil, false, err
	}

	trees := make([]export.VesselTree, 0, len(vessels))
	for _, v := range vessels {
		trees = append(trees, export.VesselTree{
			ID:     v.ID.String(),
			Name:   v.Name,
			Type:   v.VesselType,
			Owner:  v.OwnerCompany,
			Orders: orderNodes(v.WorkOrders),
		})
	}
	return trees, allVessels, nil
}

func orderNodes(orders []models.WorkOrder) []export.OrderNode {
	nodes := make([]export.OrderNode, 0, len(orders))
	for _, o := range orders {
		orderDate := o.OrderDate.Time()
		nodes = append(nodes, export.OrderNode{
			ID:          o.ID.String(),
			CustomerRef: o.CustomerRefNo,
			ShipyardRef: o.ShipyardRefNo,
			Description: o.Description,
			OrderDate:   &orderDate,
			Invoices:    invoiceInfos(o.Invoices),
			Details:     detailNodes(o.WorkDetails),
		})
	}
	return nodes
}

func detailNodes(details []models.WorkDetail) []export.DetailNode {
	nodes := make([]export.DetailNode, 0, len(details))
	for _, d := range details {
		nodes = append(nodes, export.DetailNode{
			ID:            d.ID.String(),
			Description:   d.Description,
			PlannedStart:  jsonTimePtr(d.PlannedStart),
			PlannedEnd:    jsonTimePtr(d.PlannedEnd),
			Reports:       reportEntries(d.ProgressReports),
			Verifications: verificationEntries(d.Verifications),
		})
	}
	return nodes
}

func reportEntries(reports []models.ProgressReport) []export.ReportEntry {
	entries := make([]export.ReportEntry, 0, len(reports))
	for _, rep := range reports {
		entries = append(entries, export.ReportEntry{
			Percentage: rep.Percentage,
			ReportDate: rep.ReportDate.Time(),
			Reporter:   rep.ReporterName,
			CreatedAt:  rep.CreatedAt,
		})
	}
	return entries
}

func verificationEntries(records []models.VerificationRecord) []export.VerificationEntry {
	entries := make([]export.VerificationEntry, 0, len(records))
	for _, rec := range records {
		d := rec.VerifiedDate.Time()
		entries = append(entries, export.VerificationEntry{
			Verified: rec.Verified,
			Date:     &d,
			Verifier: rec.VerifierName,
		})
	}
	return entries
}

func invoiceInfos(invoices []models.Invoice) []export.InvoiceInfo {
	infos := make([]export.InvoiceInfo, 0, len(invoices))
	for _, inv := range invoices {
		invoiceDate := inv.InvoiceDate.Time()
		infos = append(infos, export.InvoiceInfo{
			ID:            inv.ID.String(),
			Number:        inv.InvoiceNumber,
			Amount:        inv.Amount,
			Currency:      inv.Currency,
			PaymentStatus: inv.PaymentStatus,
			InvoiceDate:   &invoiceDate,
			PaidDate:      jsonTimePtr(inv.PaidDate),
		})
	}
	return infos
}

func jsonTimePtr(jt *models.JSONTime) *time.Time {
	if jt == nil {
		return nil
	}
	t := jt.Time()
	return &t
}

func exportScope(trees []export.VesselTree) []string {
	names := make([]string, 0, len(trees))
	for _, t := range trees {
		names = append(names, t.Name)
	}
	return names
}

// ExportVesselDataCSV runs the full pipeline: fetch, aggregate,
// flatten, serialize, download. Zero selected vessels is a valid empty
// state and produces a zero-record CSV, not an error.
func ExportVesselDataCSV(w http.ResponseWriter, r *http.Request) {
	includeFinancial := utils.CanViewFinancialData(middleware.GetRole(r))

	trees, allVessels, err := loadVesselTrees(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rs, err := export.Flatten(trees, export.FlattenOptions{IncludeFinancialData: includeFinancial})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	csvData, err := export.RenderCSV(rs)
	if err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := export.Filename(exportScope(trees), allVessels, time.Now(), includeFinancial, "csv")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(csvData)))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csvData))
}

// ExportVesselDataExcel is the same pipeline rendered as a workbook.
func ExportVesselDataExcel(w http.ResponseWriter, r *http.Request) {
	includeFinancial := utils.CanViewFinancialData(middleware.GetRole(r))

	trees, allVessels, err := loadVesselTrees(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rs, err := export.Flatten(trees, export.FlattenOptions{IncludeFinancialData: includeFinancial})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	excelFile, err := export.RenderExcel("Vessel Work Order Export", rs)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := excelFile.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := export.Filename(exportScope(trees), allVessels, time.Now(), includeFinancial, "xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
