package export

import (
	"fmt"
	"time"
)

// The intermediate tree the flattener walks. Handlers build it from
// the preloaded gorm result so the walk itself never touches the
// backend response shape and stays testable without a database.

type VesselTree struct {
	ID     string
	Name   string
	Type   string
	Owner  string
	Orders []OrderNode
}

type OrderNode struct {
	ID          string
	CustomerRef string
	ShipyardRef string
	Description string
	OrderDate   *time.Time
	Invoices    []InvoiceInfo // only the first is exported
	Details     []DetailNode
}

type DetailNode struct {
	ID            string
	Description   string
	PlannedStart  *time.Time
	PlannedEnd    *time.Time
	Reports       []ReportEntry
	Verifications []VerificationEntry
}

type InvoiceInfo struct {
	ID            string
	Number        string
	Amount        float64
	Currency      string
	PaymentStatus string
	InvoiceDate   *time.Time
	PaidDate      *time.Time
}

type VerificationEntry struct {
	Verified bool
	Date     *time.Time
	Verifier string
}

// FlattenOptions controls the emitted field set. Financial redaction
// happens here, at row-build time, so redacted exports never contain
// the monetary keys at all.
type FlattenOptions struct {
	IncludeFinancialData bool
}

// RowSet is an ordered flat table: Columns fixes the header order,
// every row maps column name to a scalar (or nil for absent).
type RowSet struct {
	Columns []string
	Rows    []map[string]interface{}
}

// invoice_amount and invoice_currency are the monetary fields dropped
// in operational (redacted) exports.
var financialColumns = map[string]bool{
	"invoice_amount":   true,
	"invoice_currency": true,
}

var exportColumns = []string{
	"vessel_id", "vessel_name", "vessel_type", "vessel_owner",
	"wo_id", "wo_customer_ref", "wo_shipyard_ref", "wo_description",
	"wo_order_date", "wo_overall_progress", "wo_fully_completed",
	"wo_verification_status",
	"invoice_id", "invoice_number", "invoice_amount", "invoice_currency",
	"invoice_payment_status", "invoice_date", "invoice_paid_date",
	"wd_id", "wd_description", "wd_planned_start", "wd_planned_end",
	"wd_current_progress", "wd_progress_count",
	"verification_verified", "verification_date",
	"progress_percentage", "progress_date", "progress_reporter",
}

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

// Flatten walks the vessel trees depth-first and emits one row per
// leaf progress report. A parent with no children at the next level
// still gets exactly one row, with every descendant field nil, so
// incomplete trees are represented rather than dropped. Ancestor
// fields are repeated on every row; the export is meant to be
// self-contained per row in a spreadsheet tool.
func Flatten(trees []VesselTree, opts FlattenOptions) (RowSet, error) {
	columns := make([]string, 0, len(exportColumns))
	for _, c := range exportColumns {
		if !opts.IncludeFinancialData && financialColumns[c] {
			continue
		}
		columns = append(columns, c)
	}

	rs := RowSet{Columns: columns}

	emit := func(row map[string]interface{}) {
		if !opts.IncludeFinancialData {
			for c := range financialColumns {
				delete(row, c)
			}
		}
		rs.Rows = append(rs.Rows, row)
	}

	for _, v := range trees {
		base := map[string]interface{}{
			"vessel_id":    v.ID,
			"vessel_name":  v.Name,
			"vessel_type":  v.Type,
			"vessel_owner": v.Owner,
		}

		if len(v.Orders) == 0 {
			emit(fillAbsent(base))
			continue
		}

		for _, o := range v.Orders {
			summary, err := SummarizeOrder(o.Details)
			if err != nil {
				return RowSet{}, fmt.Errorf("work order %s: %w", o.ID, err)
			}

			orderRow := cloneRow(base)
			orderRow["wo_id"] = o.ID
			orderRow["wo_customer_ref"] = o.CustomerRef
			orderRow["wo_shipyard_ref"] = o.ShipyardRef
			orderRow["wo_description"] = o.Description
			orderRow["wo_order_date"] = formatDate(o.OrderDate)
			orderRow["wo_overall_progress"] = summary.OverallProgress
			orderRow["wo_fully_completed"] = summary.IsFullyCompleted
			orderRow["wo_verification_status"] = summary.VerificationStatus

			if len(o.Invoices) > 0 {
				inv := o.Invoices[0]
				orderRow["invoice_id"] = inv.ID
				orderRow["invoice_number"] = inv.Number
				orderRow["invoice_amount"] = inv.Amount
				orderRow["invoice_currency"] = inv.Currency
				orderRow["invoice_payment_status"] = inv.PaymentStatus
				orderRow["invoice_date"] = formatDate(inv.InvoiceDate)
				orderRow["invoice_paid_date"] = formatDate(inv.PaidDate)
			}

			if len(o.Details) == 0 {
				emit(fillAbsent(orderRow))
				continue
			}

			for _, d := range o.Details {
				ps, err := AggregateReports(d.Reports)
				if err != nil {
					return RowSet{}, fmt.Errorf("work detail %s: %w", d.ID, err)
				}

				detailRow := cloneRow(orderRow)
				detailRow["wd_id"] = d.ID
				detailRow["wd_description"] = d.Description
				detailRow["wd_planned_start"] = formatDate(d.PlannedStart)
				detailRow["wd_planned_end"] = formatDate(d.PlannedEnd)
				detailRow["wd_current_progress"] = ps.CurrentProgress
				detailRow["wd_progress_count"] = ps.ProgressCount

				if ver := latestVerification(d.Verifications); ver != nil {
					detailRow["verification_verified"] = ver.Verified
					detailRow["verification_date"] = formatDate(ver.Date)
				}

				if len(d.Reports) == 0 {
					emit(fillAbsent(detailRow))
					continue
				}

				for _, rep := range d.Reports {
					row := cloneRow(detailRow)
					date := rep.ReportDate
					row["progress_percentage"] = rep.Percentage
					row["progress_date"] = formatDate(&date)
					row["progress_reporter"] = rep.Reporter
					emit(row)
				}
			}
		}
	}

	return rs, nil
}

// latestVerification prefers a verified record; otherwise the last
// record in backend order, nil when none exist.
func latestVerification(vs []VerificationEntry) *VerificationEntry {
	if len(vs) == 0 {
		return nil
	}
	for i := range vs {
		if vs[i].Verified {
			return &vs[i]
		}
	}
	return &vs[len(vs)-1]
}

func cloneRow(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(exportColumns))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// fillAbsent sets every not-yet-populated column to nil so a sentinel
// row still carries the full header set.
func fillAbsent(row map[string]interface{}) map[string]interface{} {
	out := cloneRow(row)
	for _, c := range exportColumns {
		if _, ok := out[c]; !ok {
			out[c] = nil
		}
	}
	return out
}
