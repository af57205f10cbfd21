package export

import (
	"strings"
	"testing"
)

func sampleTree() []VesselTree {
	d1 := date("2024-01-01")
	d2 := date("2024-01-05")
	return []VesselTree{
		{
			ID: "v1", Name: "MV Kencana", Type: "Tug", Owner: "PT Samudra",
			Orders: []OrderNode{
				{
					ID: "o1", CustomerRef: "CUST-1", ShipyardRef: "YARD-1",
					OrderDate: &d1,
					Invoices: []InvoiceInfo{
						{ID: "i1", Number: "INV-001", Amount: 1500.5, Currency: "USD", PaymentStatus: "unpaid", InvoiceDate: &d2},
					},
					Details: []DetailNode{
						{
							ID: "wd1", Description: "Hull cleaning",
							Reports: []ReportEntry{
								{Percentage: 50, ReportDate: date("2024-01-01"), Reporter: "Andi"},
								{Percentage: 80, ReportDate: date("2024-01-05"), Reporter: "Andi"},
							},
						},
						{ID: "wd2", Description: "Propeller polish"},
					},
				},
			},
		},
		{
			ID: "v2", Name: "Barge 7", Type: "Barge", Owner: "PT Samudra",
		},
	}
}

func TestFlattenRowCounts(t *testing.T) {
	rs, err := Flatten(sampleTree(), FlattenOptions{IncludeFinancialData: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// wd1 has two leaf reports, wd2 is an empty branch, v2 is an empty
	// vessel: 2 + 1 + 1 rows.
	if len(rs.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rs.Rows))
	}
}

func TestFlattenEmptyBranchesStillEmitRows(t *testing.T) {
	rs, err := Flatten(sampleTree(), FlattenOptions{IncludeFinancialData: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var emptyVesselRow, emptyDetailRow map[string]interface{}
	for _, row := range rs.Rows {
		if row["vessel_id"] == "v2" {
			emptyVesselRow = row
		}
		if row["wd_id"] == "wd2" {
			emptyDetailRow = row
		}
	}

	if emptyVesselRow == nil {
		t.Fatal("vessel with no work orders was dropped from the export")
	}
	if emptyVesselRow["wo_id"] != nil || emptyVesselRow["progress_percentage"] != nil {
		t.Error("empty vessel row should have nil descendant fields")
	}

	if emptyDetailRow == nil {
		t.Fatal("work detail with no reports was dropped from the export")
	}
	if emptyDetailRow["progress_percentage"] != nil {
		t.Error("empty detail row should have nil progress fields")
	}
	if emptyDetailRow["wd_current_progress"] != 0 {
		t.Errorf("empty detail current progress = %v, want 0", emptyDetailRow["wd_current_progress"])
	}
}

func TestFlattenAncestorFieldsRepeat(t *testing.T) {
	rs, err := Flatten(sampleTree(), FlattenOptions{IncludeFinancialData: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var leafRows []map[string]interface{}
	for _, row := range rs.Rows {
		if row["wd_id"] == "wd1" {
			leafRows = append(leafRows, row)
		}
	}
	if len(leafRows) != 2 {
		t.Fatalf("got %d leaf rows for wd1, want 2", len(leafRows))
	}
	for _, row := range leafRows {
		if row["vessel_name"] != "MV Kencana" || row["wo_customer_ref"] != "CUST-1" || row["invoice_number"] != "INV-001" {
			t.Errorf("ancestor fields not repeated on leaf row: %+v", row)
		}
		if row["wd_current_progress"] != 80 {
			t.Errorf("wd_current_progress = %v, want 80", row["wd_current_progress"])
		}
	}
}

func TestFlattenOrderRollup(t *testing.T) {
	rs, err := Flatten(sampleTree(), FlattenOptions{IncludeFinancialData: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, row := range rs.Rows {
		if row["wo_id"] != "o1" {
			continue
		}
		if row["wo_overall_progress"] != 40 {
			t.Errorf("wo_overall_progress = %v, want 40", row["wo_overall_progress"])
		}
		if row["wo_fully_completed"] != false {
			t.Errorf("wo_fully_completed = %v, want false", row["wo_fully_completed"])
		}
	}
}

func TestFlattenFinancialRedaction(t *testing.T) {
	redacted, err := Flatten(sampleTree(), FlattenOptions{IncludeFinancialData: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, col := range redacted.Columns {
		if financialColumns[col] {
			t.Errorf("redacted export still lists column %s", col)
		}
	}
	for i, row := range redacted.Rows {
		if _, ok := row["invoice_amount"]; ok {
			t.Errorf("row %d still carries invoice_amount", i)
		}
	}
	// Non-monetary invoice fields survive redaction.
	found := false
	for _, row := range redacted.Rows {
		if row["invoice_number"] == "INV-001" {
			found = true
		}
	}
	if !found {
		t.Error("invoice_number should not be redacted")
	}

	full, err := Flatten(sampleTree(), FlattenOptions{IncludeFinancialData: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, row := range full.Rows {
		if row["invoice_id"] == "i1" {
			if _, ok := row["invoice_amount"]; !ok {
				t.Error("full export missing invoice_amount on invoiced row")
			}
		}
	}
}

func TestFlattenFirstInvoiceOnly(t *testing.T) {
	trees := sampleTree()
	trees[0].Orders[0].Invoices = append(trees[0].Orders[0].Invoices,
		InvoiceInfo{ID: "i2", Number: "INV-002", Amount: 99})

	rs, err := Flatten(trees, FlattenOptions{IncludeFinancialData: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, row := range rs.Rows {
		if row["invoice_id"] == "i2" {
			t.Fatal("second invoice leaked into the export")
		}
	}
}

func TestFlattenColumnPrefixes(t *testing.T) {
	rs, err := Flatten(sampleTree(), FlattenOptions{IncludeFinancialData: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prefixes := []string{"vessel_", "wo_", "invoice_", "wd_", "verification_", "progress_"}
	for _, col := range rs.Columns {
		ok := false
		for _, p := range prefixes {
			if strings.HasPrefix(col, p) {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("column %s has no entity prefix", col)
		}
	}
}
