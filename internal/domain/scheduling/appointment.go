// Package scheduling holds clinic-owned appointments.
package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// Appointment is a scheduled patient visit at a clinic
type Appointment struct {
	shared.ClinicAggregateRoot
	PatientName    string            `gorm:"type:varchar(200);not null"`
	PatientPhone   string            `gorm:"type:varchar(50)"`
	PatientEmail   string            `gorm:"type:varchar(200)"`
	Date           time.Time         `gorm:"not null;index"`
	DurationMin    int               `gorm:"not null;default:30"`
	Procedure      string            `gorm:"type:varchar(200);not null"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
	ProfessionalID *uuid.UUID        `gorm:"type:uuid"`
	EstimatedValue decimal.Decimal   `gorm:"type:numeric(14,2);not null;default:0"`
	Notes          string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment schedules a patient visit at a clinic
func NewAppointment(clinicID uuid.UUID, patientName, procedure string, date time.Time) (*Appointment, error) {
	if strings.TrimSpace(patientName) == "" {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient name is required")
	}
	if strings.TrimSpace(procedure) == "" {
		return nil, shared.NewDomainError("INVALID_PROCEDURE", "Procedure is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Appointment date is required")
	}

	return &Appointment{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		PatientName:         strings.TrimSpace(patientName),
		Procedure:           strings.TrimSpace(procedure),
		Date:                date,
		DurationMin:         30,
		Status:              AppointmentStatusScheduled,
		EstimatedValue:      decimal.Zero,
	}, nil
}

// Confirm moves a scheduled appointment to confirmed
func (a *Appointment) Confirm() error {
	if a.Status != AppointmentStatusScheduled {
		return shared.ErrInvalidState
	}
	a.Status = AppointmentStatusConfirmed
	a.Touch()
	a.IncrementVersion()
	return nil
}

// Cancel cancels an appointment that has not completed
func (a *Appointment) Cancel() error {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled:
		return shared.ErrInvalidState
	}
	a.Status = AppointmentStatusCancelled
	a.Touch()
	a.IncrementVersion()
	return nil
}

// AppointmentRepository provides clinic-keyed access to appointments
type AppointmentRepository interface {
	shared.ClinicRepository[Appointment]
	FindByDateRangeForClinic(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]Appointment, error)
}
