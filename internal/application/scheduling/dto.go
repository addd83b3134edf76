package scheduling

import (
	"time"

	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/scheduling"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	ClinicID       uuid.UUID       `json:"clinic_id"`
	PatientName    string          `json:"patient_name"`
	PatientPhone   string          `json:"patient_phone,omitempty"`
	PatientEmail   string          `json:"patient_email,omitempty"`
	Date           time.Time       `json:"date"`
	DurationMin    int             `json:"duration_min"`
	Procedure      string          `json:"procedure"`
	Status         string          `json:"status"`
	ProfessionalID *uuid.UUID      `json:"professional_id,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToAppointmentResponse maps an appointment aggregate to its API shape
func ToAppointmentResponse(a *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID,
		ClinicID:       a.ClinicID,
		PatientName:    a.PatientName,
		PatientPhone:   a.PatientPhone,
		PatientEmail:   a.PatientEmail,
		Date:           a.Date,
		DurationMin:    a.DurationMin,
		Procedure:      a.Procedure,
		Status:         string(a.Status),
		ProfessionalID: a.ProfessionalID,
		EstimatedValue: a.EstimatedValue,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// CreateAppointmentRequest schedules a patient visit
type CreateAppointmentRequest struct {
	PatientName    string          `json:"patient_name" binding:"required,min=1,max=200"`
	PatientPhone   string          `json:"patient_phone" binding:"max=50"`
	PatientEmail   string          `json:"patient_email" binding:"omitempty,email,max=200"`
	Date           time.Time       `json:"date" binding:"required"`
	DurationMin    int             `json:"duration_min" binding:"omitempty,min=5,max=480"`
	Procedure      string          `json:"procedure" binding:"required,min=1,max=200"`
	ProfessionalID *uuid.UUID      `json:"professional_id"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Notes          string          `json:"notes"`
	ClinicID       *uuid.UUID      `json:"clinic_id"`
}

// UpdateAppointmentRequest reschedules or annotates an appointment
type UpdateAppointmentRequest struct {
	Date           *time.Time       `json:"date"`
	DurationMin    *int             `json:"duration_min" binding:"omitempty,min=5,max=480"`
	ProfessionalID *uuid.UUID       `json:"professional_id"`
	EstimatedValue *decimal.Decimal `json:"estimated_value"`
	Notes          *string          `json:"notes"`
}

// AppointmentListFilter represents filter options for appointment listing
type AppointmentListFilter struct {
	Search         string     `form:"search"`
	Status         string     `form:"status" binding:"omitempty,oneof=scheduled confirmed in_progress completed cancelled no_show"`
	ProfessionalID *uuid.UUID `form:"professional_id"`
	ClinicID       *uuid.UUID `form:"clinic_id"`
	Page           int        `form:"page" binding:"omitempty,min=1"`
	PageSize       int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f AppointmentListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "date"
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
	if f.ProfessionalID != nil {
		filter.Filters["professional_id"] = *f.ProfessionalID
	}
	if f.ClinicID != nil {
		filter.Filters[isolation.ClinicFilterKey] = *f.ClinicID
	}
	return filter
}

// AgendaRequest selects a clinic's appointments inside a date window
type AgendaRequest struct {
	From     time.Time  `form:"from" binding:"required" time_format:"2006-01-02"`
	To       time.Time  `form:"to" binding:"required" time_format:"2006-01-02"`
	ClinicID *uuid.UUID `form:"clinic_id"`
}
