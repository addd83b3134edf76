package partner

import (
	"time"

	"github.com/clinisupply/backend/internal/domain/partner"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	CNPJ          string          `json:"cnpj"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	Description   string          `json:"description,omitempty"`
	Website       string          `json:"website,omitempty"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	Rating        int             `json:"rating"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToSupplierResponse maps a supplier aggregate to its API shape
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Slug:          s.Slug,
		CNPJ:          s.CNPJ,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		Description:   s.Description,
		Website:       s.Website,
		MinOrderValue: s.MinOrderValue,
		Rating:        s.Rating,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// CreateSupplierRequest registers a supplier on the platform
type CreateSupplierRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Slug          string          `json:"slug" binding:"required,min=1,max=100"`
	CNPJ          string          `json:"cnpj" binding:"required,max=18"`
	Email         string          `json:"email" binding:"required,email"`
	Phone         string          `json:"phone" binding:"max=50"`
	Address       string          `json:"address"`
	Description   string          `json:"description"`
	Website       string          `json:"website" binding:"omitempty,url,max=500"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
}

// UpdateSupplierRequest modifies a supplier record
type UpdateSupplierRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	Phone         *string          `json:"phone" binding:"omitempty,max=50"`
	Address       *string          `json:"address"`
	Description   *string          `json:"description"`
	Website       *string          `json:"website" binding:"omitempty,url,max=500"`
	MinOrderValue *decimal.Decimal `json:"min_order_value"`
	Rating        *int             `json:"rating" binding:"omitempty,min=0,max=5"`
	Status        *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// SupplierListFilter represents filter options for supplier listing
type SupplierListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f SupplierListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}
