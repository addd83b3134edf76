package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/shared"
)

// queryOptions parameterize the generic repository bases per entity
type queryOptions struct {
	sortFields   map[string]bool
	defaultOrder string
	search       func(q *gorm.DB, term string) *gorm.DB
	filters      func(q *gorm.DB, filters map[string]interface{}) *gorm.DB
}

func applyQueryOptions(q *gorm.DB, filter shared.Filter, opts queryOptions) *gorm.DB {
	if filter.Search != "" && opts.search != nil {
		q = opts.search(q, "%"+filter.Search+"%")
	}
	if len(filter.Filters) > 0 && opts.filters != nil {
		q = opts.filters(q, filter.Filters)
	}
	return q
}

func applyPagination(q *gorm.DB, filter shared.Filter, opts queryOptions) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, opts.sortFields, opts.defaultOrder)
	q = q.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	return q.Offset(filter.Offset()).Limit(filter.Limit())
}

// gormClinicRepo implements shared.ClinicRepository for a clinic-owned
// entity. Every read is keyed by the owning clinic; callers cannot reach
// rows belonging to another clinic through this type.
type gormClinicRepo[T any] struct {
	db   *gorm.DB
	opts queryOptions
}

func newGormClinicRepo[T any](db *gorm.DB, opts queryOptions) gormClinicRepo[T] {
	if opts.defaultOrder == "" {
		opts.defaultOrder = "created_at"
	}
	if opts.sortFields == nil {
		opts.sortFields = CommonSortFields
	}
	return gormClinicRepo[T]{db: db, opts: opts}
}

// byClinic keys the query by the owning clinic. shared.AllClinics
// widens the read across clinics for administrator callers.
func byClinic(q *gorm.DB, clinicID uuid.UUID) *gorm.DB {
	if clinicID == shared.AllClinics {
		return q
	}
	return q.Where("clinic_id = ?", clinicID)
}

// FindByIDForClinic loads one row owned by the given clinic. A row that
// exists under another clinic comes back as shared.ErrNotFound.
func (r *gormClinicRepo[T]) FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*T, error) {
	var entity T
	q := byClinic(r.db.WithContext(ctx), clinicID).Where("id = ?", id)
	if err := q.First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAllForClinic lists rows owned by the given clinic
func (r *gormClinicRepo[T]) FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	q := byClinic(r.db.WithContext(ctx).Model(new(T)), clinicID)
	q = applyQueryOptions(q, filter, r.opts)
	q = applyPagination(q, filter, r.opts)

	if err := q.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// CountForClinic counts rows owned by the given clinic
func (r *gormClinicRepo[T]) CountForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	q := byClinic(r.db.WithContext(ctx).Model(new(T)), clinicID)
	q = applyQueryOptions(q, filter, r.opts)

	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an entity
func (r *gormClinicRepo[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// gormSharedRepo implements shared.Repository for platform-wide entities
// that all clinics read in full.
type gormSharedRepo[T any] struct {
	db   *gorm.DB
	opts queryOptions
}

func newGormSharedRepo[T any](db *gorm.DB, opts queryOptions) gormSharedRepo[T] {
	if opts.defaultOrder == "" {
		opts.defaultOrder = "created_at"
	}
	if opts.sortFields == nil {
		opts.sortFields = CommonSortFields
	}
	return gormSharedRepo[T]{db: db, opts: opts}
}

// FindByID loads one entity by ID
func (r *gormSharedRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll lists entities matching the filter
func (r *gormSharedRepo[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	q := r.db.WithContext(ctx).Model(new(T))
	q = applyQueryOptions(q, filter, r.opts)
	q = applyPagination(q, filter, r.opts)

	if err := q.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count counts entities matching the filter
func (r *gormSharedRepo[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(new(T))
	q = applyQueryOptions(q, filter, r.opts)

	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an entity
func (r *gormSharedRepo[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete removes an entity by ID
func (r *gormSharedRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
