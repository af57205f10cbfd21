package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestRenderCSVEmptyRowSet(t *testing.T) {
	out, err := RenderCSV(RowSet{Columns: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("empty row set should render zero bytes, got %q", out)
	}
}

func TestRenderCSVNullAndComma(t *testing.T) {
	rs := RowSet{
		Columns: []string{"a", "b"},
		Rows: []map[string]interface{}{
			{"a": "x,y", "b": nil},
		},
	}
	out, err := RenderCSV(rs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "a,b\n\"x,y\",\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRenderCSVRoundTrip(t *testing.T) {
	rs := RowSet{
		Columns: []string{"name", "note", "qty"},
		Rows: []map[string]interface{}{
			{"name": "plain", "note": "nothing special", "qty": 3},
			{"name": "comma, inside", "note": `say "hi"`, "qty": 0},
			{"name": "multi\nline", "note": "", "qty": 12},
			{"name": nil, "note": "absent name", "qty": 7},
		},
	}
	out, err := RenderCSV(rs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing output: %v", err)
	}
	if len(records) != len(rs.Rows)+1 {
		t.Fatalf("got %d records, want %d", len(records), len(rs.Rows)+1)
	}
	for i, col := range rs.Columns {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}
	for r, row := range rs.Rows {
		for c, col := range rs.Columns {
			want := renderField(row[col])
			if records[r+1][c] != want {
				t.Errorf("record[%d][%d] = %q, want %q", r+1, c, records[r+1][c], want)
			}
		}
	}
}

func TestRenderCSVEndToEnd(t *testing.T) {
	rs, err := Flatten(sampleTree(), FlattenOptions{IncludeFinancialData: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := RenderCSV(rs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("re-parsing output: %v", err)
	}
	if len(records) != len(rs.Rows)+1 {
		t.Fatalf("got %d records, want %d", len(records), len(rs.Rows)+1)
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name             string
		vessels          []string
		all              bool
		includeFinancial bool
		want             string
	}{
		{"all vessels full", nil, true, true, "vessel_data_all_vessels_2024-06-01_full.csv"},
		{"single vessel redacted", []string{"MV Kencana"}, false, false, "vessel_data_mv_kencana_2024-06-01_operational.csv"},
		{"multiple vessels", []string{"A", "B", "C"}, false, true, "vessel_data_3_vessels_2024-06-01_full.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.vessels, tt.all, day, tt.includeFinancial, "csv")
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
