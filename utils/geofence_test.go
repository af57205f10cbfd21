package utils

import "testing"

// Unit square around the origin.
var squareBoundary = []byte(`{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`)

func TestValidateBoundary(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{"empty is allowed", "", false},
		{"valid polygon", string(squareBoundary), false},
		{"not json", "{nope", true},
		{"wrong geometry type", `{"type":"Point","coordinates":[1,1]}`, true},
		{"degenerate polygon", `{"type":"Polygon","coordinates":[[[0,0],[1,1]]]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoundary([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBoundary() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoundaryContains(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"inside", 0.5, 0.5, true},
		{"outside", 2, 2, false},
		{"outside negative", -0.5, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BoundaryContains(squareBoundary, tt.lat, tt.lng)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BoundaryContains(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}

func TestBoundaryContainsNoBoundary(t *testing.T) {
	got, err := BoundaryContains(nil, 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Error("missing boundary should contain everything")
	}
}
