package client

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentService manages clinic appointments.
type AppointmentService struct {
	client *Client
}

// CreateAppointmentRequest schedules a patient visit.
type CreateAppointmentRequest struct {
	PatientName    string          `json:"patient_name"`
	PatientPhone   string          `json:"patient_phone,omitempty"`
	PatientEmail   string          `json:"patient_email,omitempty"`
	Date           time.Time       `json:"date"`
	DurationMin    int             `json:"duration_min,omitempty"`
	Procedure      string          `json:"procedure"`
	ProfessionalID *uuid.UUID      `json:"professional_id,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Notes          string          `json:"notes,omitempty"`
	ClinicID       *uuid.UUID      `json:"clinic_id,omitempty"`
}

// UpdateAppointmentRequest reschedules or annotates an appointment.
// Nil fields are left untouched.
type UpdateAppointmentRequest struct {
	Date           *time.Time       `json:"date,omitempty"`
	DurationMin    *int             `json:"duration_min,omitempty"`
	ProfessionalID *uuid.UUID       `json:"professional_id,omitempty"`
	EstimatedValue *decimal.Decimal `json:"estimated_value,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

// Create schedules an appointment.
func (s *AppointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var appt Appointment
	if err := s.client.post(ctx, "/appointments", req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// List returns appointments with pagination metadata.
func (s *AppointmentService) List(ctx context.Context, opts *ListOptions) ([]Appointment, *Meta, error) {
	var appts []Appointment
	meta, err := s.client.get(ctx, "/appointments", opts.values(), &appts)
	if err != nil {
		return nil, nil, err
	}
	return appts, meta, nil
}

// Agenda returns the clinic's appointments between from and to,
// inclusive. Only the date part of the bounds is sent.
func (s *AppointmentService) Agenda(ctx context.Context, from, to time.Time, opts ...RequestOption) ([]Appointment, error) {
	query := url.Values{}
	query.Set("from", from.Format("2006-01-02"))
	query.Set("to", to.Format("2006-01-02"))
	for _, opt := range opts {
		opt(query)
	}
	var appts []Appointment
	if _, err := s.client.get(ctx, "/appointments/agenda", query, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// Get returns a single appointment.
func (s *AppointmentService) Get(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Appointment, error) {
	var appt Appointment
	if _, err := s.client.get(ctx, "/appointments/"+id.String(), applyOptions(opts), &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Update reschedules or annotates an appointment.
func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, req UpdateAppointmentRequest, opts ...RequestOption) (*Appointment, error) {
	var appt Appointment
	if err := s.client.put(ctx, "/appointments/"+id.String(), applyOptions(opts), req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Confirm marks a scheduled appointment as confirmed.
func (s *AppointmentService) Confirm(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Appointment, error) {
	var appt Appointment
	if err := s.client.postQuery(ctx, "/appointments/"+id.String()+"/confirm", applyOptions(opts), nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Cancel cancels an appointment.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Appointment, error) {
	var appt Appointment
	if err := s.client.postQuery(ctx, "/appointments/"+id.String()+"/cancel", applyOptions(opts), nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}
