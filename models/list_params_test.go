package models

import (
	"net/http/httptest"
	"testing"
)

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantErr  bool
		page     int
		pageSize int
		filters  map[string]string
	}{
		{"defaults", "/vessels", false, 1, 50, map[string]string{}},
		{"explicit paging", "/vessels?page=3&page_size=20", false, 3, 20, map[string]string{}},
		{"whitelisted filter", "/vessels?status=active&color=red", false, 1, 50, map[string]string{"status": "active"}},
		{"page zero", "/vessels?page=0", true, 0, 0, nil},
		{"page_size over cap", "/vessels?page_size=9999", true, 0, 0, nil},
		{"non-numeric page", "/vessels?page=abc", true, 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p, err := ParseListParams(r, "status")
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Page != tt.page || p.PageSize != tt.pageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", p.Page, p.PageSize, tt.page, tt.pageSize)
			}
			if len(p.Filters) != len(tt.filters) {
				t.Fatalf("got %d filters, want %d", len(p.Filters), len(tt.filters))
			}
			for k, v := range tt.filters {
				if p.Filters[k] != v {
					t.Errorf("filter %s = %q, want %q", k, p.Filters[k], v)
				}
			}
		})
	}
}

func TestEnvelopePageCount(t *testing.T) {
	p := &ListParams{Page: 1, PageSize: 50}
	if got := p.Envelope(nil, 101).TotalPages; got != 3 {
		t.Errorf("TotalPages = %d, want 3", got)
	}
	if got := p.Envelope(nil, 100).TotalPages; got != 2 {
		t.Errorf("TotalPages = %d, want 2", got)
	}
	if got := p.Envelope(nil, 0).TotalPages; got != 0 {
		t.Errorf("TotalPages = %d, want 0", got)
	}
}
