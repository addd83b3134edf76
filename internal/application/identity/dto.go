package identity

import (
	"time"

	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoginRequest carries the credentials for a login attempt
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RegisterRequest creates a new user account
type RegisterRequest struct {
	Username  string     `json:"username" binding:"required,min=3,max=50"`
	Email     string     `json:"email" binding:"required,email"`
	Password  string     `json:"password" binding:"required,min=8"`
	FirstName string     `json:"first_name" binding:"max=100"`
	LastName  string     `json:"last_name" binding:"max=100"`
	Phone     string     `json:"phone" binding:"max=50"`
	ClinicID  *uuid.UUID `json:"clinic_id"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse is the authenticated session returned by login/refresh
type LoginResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID      `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name,omitempty"`
	LastName    string         `json:"last_name,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Role        isolation.Role `json:"role"`
	ClinicID    *uuid.UUID     `json:"clinic_id,omitempty"`
	Status      string         `json:"status"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ToUserResponse maps a user aggregate to its API shape
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Role:        u.Role,
		ClinicID:    u.ClinicID,
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// CreateClinicRequest registers a new clinic on the platform
type CreateClinicRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Slug         string          `json:"slug" binding:"required,min=1,max=100"`
	CNPJ         string          `json:"cnpj" binding:"required,max=18"`
	Email        string          `json:"email" binding:"required,email"`
	Phone        string          `json:"phone" binding:"max=50"`
	Address      string          `json:"address"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms"`
}

// UpdateClinicRequest updates clinic contact and credit data
type UpdateClinicRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email        *string          `json:"email" binding:"omitempty,email"`
	Phone        *string          `json:"phone" binding:"omitempty,max=50"`
	Address      *string          `json:"address"`
	CreditLimit  *decimal.Decimal `json:"credit_limit"`
	PaymentTerms *string          `json:"payment_terms"`
}

// ClinicListFilter represents filter options for clinic listing
type ClinicListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active suspended inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f ClinicListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
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

// ClinicResponse represents a clinic in API responses
type ClinicResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	CNPJ         string          `json:"cnpj"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	Status       string          `json:"status"`
	Balance      decimal.Decimal `json:"balance"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	CreditUsed   decimal.Decimal `json:"credit_used"`
	PaymentTerms string          `json:"payment_terms,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToClinicResponse maps a clinic aggregate to its API shape
func ToClinicResponse(c *identity.Clinic) ClinicResponse {
	return ClinicResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		CNPJ:         c.CNPJ,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		Status:       string(c.Status),
		Balance:      c.Balance,
		CreditLimit:  c.CreditLimit,
		CreditUsed:   c.CreditUsed,
		PaymentTerms: c.PaymentTerms,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
