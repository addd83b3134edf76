// Package partner holds external business partners. Suppliers are
// shared catalog data, not clinic-owned.
package partner

import (
	"strings"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier is a vendor clinics order from
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Slug          string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	CNPJ          string          `gorm:"type:varchar(18);not null;uniqueIndex"`
	Email         string          `gorm:"type:varchar(200);not null"`
	Phone         string          `gorm:"type:varchar(50)"`
	Address       string          `gorm:"type:text"`
	Description   string          `gorm:"type:text"`
	Website       string          `gorm:"type:varchar(500)"`
	MinOrderValue decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Rating        int             `gorm:"not null;default:0"`
	Status        SupplierStatus  `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, slug, cnpj, email string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name must be 1-200 characters")
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_SLUG", "Supplier slug is required")
	}
	if strings.TrimSpace(cnpj) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_CNPJ", "Supplier CNPJ is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_EMAIL", "Supplier email is required")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		CNPJ:              strings.TrimSpace(cnpj),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		MinOrderValue:     decimal.Zero,
		Status:            SupplierStatusActive,
	}, nil
}

// IsActive reports whether the supplier accepts new orders
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

// SupplierRepository provides access to supplier records
type SupplierRepository interface {
	shared.Repository[Supplier]
}
