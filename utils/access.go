package utils

import "p9e.in/marops/models"

// financialRoles is the single place that decides who sees money
// fields. Every call site (export, invoices) must go through
// CanViewFinancialData instead of comparing role strings inline.
var financialRoles = map[string]bool{
	models.RoleMaster:  true,
	models.RoleFinance: true,
}

// CanViewFinancialData reports whether a role grants access to payment
// amounts and other monetary fields.
func CanViewFinancialData(role string) bool {
	return financialRoles[role]
}
