package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClinicService manages clinic tenants. Non-admin callers can only see
// their own clinic.
type ClinicService struct {
	client *Client
}

// CreateClinicRequest provisions a new clinic tenant.
type CreateClinicRequest struct {
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	CNPJ         string          `json:"cnpj"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms,omitempty"`
}

// UpdateClinicRequest patches clinic fields; nil fields are untouched.
type UpdateClinicRequest struct {
	Name         *string          `json:"name,omitempty"`
	Email        *string          `json:"email,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	CreditLimit  *decimal.Decimal `json:"credit_limit,omitempty"`
	PaymentTerms *string          `json:"payment_terms,omitempty"`
}

// Create provisions a clinic. Admin only.
func (s *ClinicService) Create(ctx context.Context, req CreateClinicRequest) (*Clinic, error) {
	var clinic Clinic
	if err := s.client.post(ctx, "/clinics", req, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// List returns clinics with pagination metadata.
func (s *ClinicService) List(ctx context.Context, opts *ListOptions) ([]Clinic, *Meta, error) {
	var clinics []Clinic
	meta, err := s.client.get(ctx, "/clinics", opts.values(), &clinics)
	if err != nil {
		return nil, nil, err
	}
	return clinics, meta, nil
}

// Get returns a single clinic.
func (s *ClinicService) Get(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	var clinic Clinic
	if _, err := s.client.get(ctx, "/clinics/"+id.String(), nil, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// Update patches a clinic.
func (s *ClinicService) Update(ctx context.Context, id uuid.UUID, req UpdateClinicRequest) (*Clinic, error) {
	var clinic Clinic
	if err := s.client.put(ctx, "/clinics/"+id.String(), nil, req, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// Suspend suspends a clinic. Admin only.
func (s *ClinicService) Suspend(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	var clinic Clinic
	if err := s.client.post(ctx, "/clinics/"+id.String()+"/suspend", nil, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}
