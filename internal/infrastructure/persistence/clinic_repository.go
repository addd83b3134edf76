package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/shared"
)

// GormClinicRepository implements identity.ClinicRepository using GORM
type GormClinicRepository struct {
	gormSharedRepo[identity.Clinic]
}

// NewGormClinicRepository creates a new GormClinicRepository
func NewGormClinicRepository(db *gorm.DB) *GormClinicRepository {
	return &GormClinicRepository{
		gormSharedRepo: newGormSharedRepo[identity.Clinic](db, queryOptions{
			sortFields:   ClinicSortFields,
			defaultOrder: "created_at",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("name ILIKE ? OR slug ILIKE ? OR email ILIKE ?", term, term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				return q
			},
		}),
	}
}

// FindBySlug finds a clinic by its URL slug
func (r *GormClinicRepository) FindBySlug(ctx context.Context, slug string) (*identity.Clinic, error) {
	var clinic identity.Clinic
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(slug)).
		First(&clinic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &clinic, nil
}

var _ identity.ClinicRepository = (*GormClinicRepository)(nil)
