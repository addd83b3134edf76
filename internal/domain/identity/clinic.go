// Package identity holds the tenancy entities: clinics and their users.
package identity

import (
	"regexp"
	"strings"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ClinicStatus represents the status of a clinic
type ClinicStatus string

const (
	ClinicStatusActive    ClinicStatus = "active"
	ClinicStatusSuspended ClinicStatus = "suspended"
	ClinicStatusInactive  ClinicStatus = "inactive"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Clinic is the tenancy boundary. Every clinic-scoped resource instance
// belongs to exactly one clinic.
type Clinic struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null"`
	Slug         string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	CNPJ         string          `gorm:"type:varchar(18);not null;uniqueIndex"`
	Email        string          `gorm:"type:varchar(200);not null"`
	Phone        string          `gorm:"type:varchar(50)"`
	Address      string          `gorm:"type:text"`
	Status       ClinicStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Balance      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreditLimit  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreditUsed   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PaymentTerms string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Clinic) TableName() string {
	return "clinics"
}

// NewClinic creates a new clinic with required fields
func NewClinic(name, slug, cnpj, email string) (*Clinic, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CLINIC_NAME", "Clinic name must be 1-200 characters")
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewDomainError("INVALID_CLINIC_SLUG", "Clinic slug must be lowercase letters, digits and hyphens")
	}
	if strings.TrimSpace(cnpj) == "" {
		return nil, shared.NewDomainError("INVALID_CLINIC_CNPJ", "Clinic CNPJ is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_CLINIC_EMAIL", "Clinic email is required")
	}

	return &Clinic{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		CNPJ:              strings.TrimSpace(cnpj),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Status:            ClinicStatusActive,
		Balance:           decimal.Zero,
		CreditLimit:       decimal.Zero,
		CreditUsed:        decimal.Zero,
	}, nil
}

// IsActive reports whether the clinic may be used for new operations
func (c *Clinic) IsActive() bool {
	return c.Status == ClinicStatusActive
}

// Suspend marks the clinic as suspended
func (c *Clinic) Suspend() {
	c.Status = ClinicStatusSuspended
	c.Touch()
	c.IncrementVersion()
}

// AvailableCredit returns the remaining credit for the clinic
func (c *Clinic) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CreditUsed)
}
