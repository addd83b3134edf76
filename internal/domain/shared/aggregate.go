package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// ClinicAggregateRoot extends BaseAggregateRoot for clinic-owned resources.
// ClinicID identifies the owning clinic; it is set at creation and never
// transferred afterwards.
type ClinicAggregateRoot struct {
	BaseAggregateRoot
	ClinicID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewClinicAggregateRoot creates a new clinic-owned aggregate root
func NewClinicAggregateRoot(clinicID uuid.UUID) ClinicAggregateRoot {
	return ClinicAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		ClinicID:          clinicID,
	}
}

// OwnerClinic returns the owning clinic ID
func (c *ClinicAggregateRoot) OwnerClinic() uuid.UUID {
	return c.ClinicID
}

// AssignClinic sets the owning clinic ID. Call only before the first save.
func (c *ClinicAggregateRoot) AssignClinic(clinicID uuid.UUID) {
	c.ClinicID = clinicID
}
