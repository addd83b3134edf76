package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/catalog"
	"github.com/clinisupply/backend/internal/domain/shared"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM.
// Categories are shared platform data, readable by every clinic.
type GormCategoryRepository struct {
	gormSharedRepo[catalog.Category]
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{
		gormSharedRepo: newGormSharedRepo[catalog.Category](db, queryOptions{
			sortFields:   CategorySortFields,
			defaultOrder: "sort_order",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("name ILIKE ? OR slug ILIKE ?", term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if parentID, ok := filters["parent_id"]; ok {
					q = q.Where("parent_id = ?", parentID)
				}
				return q
			},
		}),
	}
}

// FindBySlug finds a category by its URL slug
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(slug)).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
