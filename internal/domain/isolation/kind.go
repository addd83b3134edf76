// Package isolation implements clinic-level data isolation for the API.
//
// Clinics are the tenancy boundary: operational resources (inventory,
// orders, finances, appointments) belong to exactly one clinic, while
// catalog resources (suppliers, products, categories) are shared by all
// authenticated users. This package declares the resource-kind
// classification, resolves the per-request access context, and provides
// the authorization gate and per-kind policies that enforce the
// isolation invariants on every read and write.
package isolation

import "fmt"

// ResourceKind identifies an API resource type for isolation purposes
type ResourceKind string

// Clinic-scoped kinds. Instances carry a non-null clinic_id and every
// access is restricted to the requesting user's clinic.
const (
	KindInventoryItem     ResourceKind = "inventory_item"
	KindInventoryMovement ResourceKind = "inventory_movement"
	KindOrder             ResourceKind = "order"
	KindTransaction       ResourceKind = "transaction"
	KindAccountPayable    ResourceKind = "account_payable"
	KindAccountReceivable ResourceKind = "account_receivable"
	KindAppointment       ResourceKind = "appointment"
	KindInvoice           ResourceKind = "invoice"
)

// Shared kinds. No clinic reference, visible to all authenticated users.
const (
	KindSupplier ResourceKind = "supplier"
	KindProduct  ResourceKind = "product"
	KindCategory ResourceKind = "category"
)

// String returns the string representation
func (k ResourceKind) String() string {
	return string(k)
}

// ClinicScoped reports whether instances of this kind are owned by a clinic
func (k ResourceKind) ClinicScoped() bool {
	switch k {
	case KindInventoryItem, KindInventoryMovement, KindOrder, KindTransaction,
		KindAccountPayable, KindAccountReceivable, KindAppointment, KindInvoice:
		return true
	}
	return false
}

// Shared reports whether this kind is catalog data visible across clinics
func (k ResourceKind) Shared() bool {
	switch k {
	case KindSupplier, KindProduct, KindCategory:
		return true
	}
	return false
}

// Valid reports whether the kind is part of the declared enumeration
func (k ResourceKind) Valid() bool {
	return k.ClinicScoped() || k.Shared()
}

// ClinicScopedKinds returns the full set of clinic-scoped kinds
func ClinicScopedKinds() []ResourceKind {
	return []ResourceKind{
		KindInventoryItem,
		KindInventoryMovement,
		KindOrder,
		KindTransaction,
		KindAccountPayable,
		KindAccountReceivable,
		KindAppointment,
		KindInvoice,
	}
}

// SharedKinds returns the full set of shared kinds
func SharedKinds() []ResourceKind {
	return []ResourceKind{
		KindSupplier,
		KindProduct,
		KindCategory,
	}
}

// AllKinds returns every declared resource kind
func AllKinds() []ResourceKind {
	return append(ClinicScopedKinds(), SharedKinds()...)
}

// ParseKind converts a string into a declared ResourceKind
func ParseKind(s string) (ResourceKind, error) {
	k := ResourceKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown resource kind %q", s)
	}
	return k, nil
}
