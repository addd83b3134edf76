package catalog

import (
	"context"
	"errors"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/catalog"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles catalog category operations
type CategoryService struct {
	categories catalog.CategoryRepository
	guard      *guard.Guard
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository, g *guard.Guard) *CategoryService {
	return &CategoryService{categories: categories, guard: g}
}

// List returns a page of categories ordered by sort order
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) (*shared.Paginated[CategoryResponse], error) {
	f := filter.ToFilter()
	if _, err := s.guard.ScopeRead(ctx, isolation.KindCategory, &f); err != nil {
		return nil, err
	}

	categories, err := s.categories.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.categories.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, ToCategoryResponse(&categories[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one category
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindCategory); err != nil {
		return nil, err
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Create adds a category to the catalog
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindCategory); err != nil {
		return nil, err
	}

	if _, err := s.categories.FindBySlug(ctx, req.Slug); err == nil {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A category with this slug already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	category, err := catalog.NewCategory(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	category.Description = req.Description
	category.Icon = req.Icon
	category.SortOrder = req.SortOrder

	if req.ParentID != nil {
		if _, err := s.categories.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PARENT_NOT_FOUND", "The parent category does not exist")
			}
			return nil, err
		}
		category.ParentID = req.ParentID
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update modifies a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindCategory); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, shared.NewDomainError("INVALID_PARENT", "A category cannot be its own parent")
		}
		if _, err := s.categories.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PARENT_NOT_FOUND", "The parent category does not exist")
			}
			return nil, err
		}
		category.ParentID = req.ParentID
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	category.Touch()
	category.IncrementVersion()

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.guard.Resolve(ctx, isolation.KindCategory); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
