package utils

import "testing"

func TestCanViewFinancialData(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{"MASTER", true},
		{"FINANCE", true},
		{"SURVEYOR", false},
		{"OPERATOR", false},
		{"master", false}, // roles are case-sensitive
		{"", false},
		{"ADMIN", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := CanViewFinancialData(tt.role); got != tt.expected {
				t.Errorf("CanViewFinancialData(%q) = %v, expected %v", tt.role, got, tt.expected)
			}
		})
	}
}
