package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC,
// defaulting to DESC on anything unrecognized.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist and falls
// back to defaultField when the input is empty or not allowed. Sort
// fields reach the ORDER BY clause verbatim, so only whitelisted column
// names may pass.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields are present on every entity
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ClinicSortFields are allowed sort fields for clinics
var ClinicSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
	"status":     true,
	"balance":    true,
}

// UserSortFields are allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// SupplierSortFields are allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"status":     true,
}

// ProductSortFields are allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"sku":         true,
	"base_price":  true,
	"category_id": true,
	"supplier_id": true,
	"unit":        true,
}

// CategorySortFields are allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
	"sort_order": true,
}

// InventoryItemSortFields are allowed sort fields for inventory items
var InventoryItemSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"product_id":  true,
	"quantity":    true,
	"unit_cost":   true,
	"total_value": true,
	"status":      true,
}

// InventoryMovementSortFields are allowed sort fields for movements
var InventoryMovementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"item_id":    true,
	"type":       true,
	"reason":     true,
	"quantity":   true,
}

// OrderSortFields are allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"supplier_id":  true,
	"status":       true,
	"total":        true,
}

// TransactionSortFields are allowed sort fields for transactions
var TransactionSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"transaction_number": true,
	"type":               true,
	"category":           true,
	"amount":             true,
	"status":             true,
}

// InvoiceSortFields are allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"supplier_id":    true,
	"type":           true,
	"status":         true,
	"total":          true,
	"issue_date":     true,
}

// AccountPayableSortFields are allowed sort fields for payables
var AccountPayableSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"supplier_id": true,
	"category":    true,
	"amount":      true,
	"amount_paid": true,
	"due_date":    true,
	"status":      true,
}

// AccountReceivableSortFields are allowed sort fields for receivables
var AccountReceivableSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"patient_name":    true,
	"procedure":       true,
	"amount":          true,
	"amount_received": true,
	"due_date":        true,
	"status":          true,
}

// AppointmentSortFields are allowed sort fields for appointments
var AppointmentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"patient_name": true,
	"date":         true,
	"procedure":    true,
	"status":       true,
}
