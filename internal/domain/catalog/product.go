package catalog

import (
	"strings"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUnit is the sales unit of a product
type ProductUnit string

const (
	ProductUnitUnit  ProductUnit = "unit"
	ProductUnitBox   ProductUnit = "box"
	ProductUnitKg    ProductUnit = "kg"
	ProductUnitLiter ProductUnit = "liter"
)

// IsValid checks if the unit is one of the declared units
func (u ProductUnit) IsValid() bool {
	switch u {
	case ProductUnitUnit, ProductUnitBox, ProductUnitKg, ProductUnitLiter:
		return true
	}
	return false
}

// Product is a supplier's catalog item. Products are shared catalog
// data; clinic stock levels live in inventory items that reference them.
type Product struct {
	shared.BaseAggregateRoot
	SupplierID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                 string          `gorm:"type:varchar(200);not null"`
	Slug                 string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	SKU                  string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description          string          `gorm:"type:text"`
	Brand                string          `gorm:"type:varchar(100)"`
	BasePrice            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Unit                 ProductUnit     `gorm:"type:varchar(20);not null;default:'unit'"`
	UnitsPerPackage      int             `gorm:"not null;default:1"`
	Available            bool            `gorm:"not null;default:true"`
	StockSupplier        int             `gorm:"not null;default:0"`
	IsFeatured           bool            `gorm:"not null;default:false"`
	IsNew                bool            `gorm:"not null;default:false"`
	RequiresPrescription bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in a supplier's catalog
func NewProduct(supplierID, categoryID uuid.UUID, name, slug, sku string, basePrice decimal.Decimal, unit ProductUnit) (*Product, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Product supplier is required")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name must be 1-200 characters")
	}
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_SKU", "Product SKU is required")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_PRICE", "Product base price cannot be negative")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_UNIT", "Unknown product unit")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		CategoryID:        categoryID,
		Name:              name,
		Slug:              strings.ToLower(strings.TrimSpace(slug)),
		SKU:               sku,
		BasePrice:         basePrice,
		Unit:              unit,
		UnitsPerPackage:   1,
		Available:         true,
	}, nil
}

// Disable removes the product from availability
func (p *Product) Disable() {
	p.Available = false
	p.Touch()
	p.IncrementVersion()
}
