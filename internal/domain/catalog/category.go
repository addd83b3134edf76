// Package catalog holds the shared catalog entities: products and
// categories. Catalog data is visible to every authenticated user
// regardless of clinic.
package catalog

import (
	"strings"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category groups products. Categories form a single-parent tree.
type Category struct {
	shared.BaseAggregateRoot
	Name        string     `gorm:"type:varchar(200);not null"`
	Slug        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string     `gorm:"type:text"`
	Icon        string     `gorm:"type:varchar(100)"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder   int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, slug string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name must be 1-200 characters")
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_SLUG", "Category slug is required")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
	}, nil
}
