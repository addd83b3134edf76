// Package scheduling implements clinic appointment management.
package scheduling

import (
	"context"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/scheduling"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentService handles patient appointment operations
type AppointmentService struct {
	appointments scheduling.AppointmentRepository
	guard        *guard.Guard
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appointments scheduling.AppointmentRepository, g *guard.Guard) *AppointmentService {
	return &AppointmentService{appointments: appointments, guard: g}
}

// Create schedules an appointment for the caller's clinic
func (s *AppointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	clinicSeed := uuid.Nil
	if req.ClinicID != nil {
		clinicSeed = *req.ClinicID
	}
	appointment, err := scheduling.NewAppointment(clinicSeed, req.PatientName, req.Procedure, req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.ScopeWrite(ctx, isolation.KindAppointment, appointment); err != nil {
		return nil, err
	}
	appointment.PatientPhone = req.PatientPhone
	appointment.PatientEmail = req.PatientEmail
	if req.DurationMin > 0 {
		appointment.DurationMin = req.DurationMin
	}
	appointment.ProfessionalID = req.ProfessionalID
	appointment.EstimatedValue = req.EstimatedValue
	appointment.Notes = req.Notes

	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	resp := ToAppointmentResponse(appointment)
	return &resp, nil
}

// List returns a page of the clinic's appointments
func (s *AppointmentService) List(ctx context.Context, filter AppointmentListFilter) (*shared.Paginated[AppointmentResponse], error) {
	f := filter.ToFilter()
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAppointment, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.FindAllForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.appointments.CountForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}

	items := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, ToAppointmentResponse(&appointments[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// Agenda returns the clinic's appointments inside a date window
func (s *AppointmentService) Agenda(ctx context.Context, req AgendaRequest) ([]AppointmentResponse, error) {
	if req.To.Before(req.From) {
		return nil, shared.NewDomainError("INVALID_RANGE", "The end of the window precedes its start")
	}

	f := shared.DefaultFilter()
	if req.ClinicID != nil {
		f.Filters[isolation.ClinicFilterKey] = *req.ClinicID
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAppointment, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.FindByDateRangeForClinic(ctx, clinicID, req.From, req.To)
	if err != nil {
		return nil, err
	}
	items := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, ToAppointmentResponse(&appointments[i]))
	}
	return items, nil
}

// GetByID returns one appointment from the caller's clinic
func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	resp := ToAppointmentResponse(appointment)
	return &resp, nil
}

// Update reschedules or annotates an appointment
func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	appointment, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	switch appointment.Status {
	case scheduling.AppointmentStatusCompleted, scheduling.AppointmentStatusCancelled:
		return nil, shared.ErrInvalidState
	}

	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, shared.NewDomainError("INVALID_DATE", "Appointment date is required")
		}
		appointment.Date = *req.Date
	}
	if req.DurationMin != nil {
		appointment.DurationMin = *req.DurationMin
	}
	if req.ProfessionalID != nil {
		appointment.ProfessionalID = req.ProfessionalID
	}
	if req.EstimatedValue != nil {
		appointment.EstimatedValue = *req.EstimatedValue
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	appointment.Touch()
	appointment.IncrementVersion()

	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	resp := ToAppointmentResponse(appointment)
	return &resp, nil
}

// Confirm moves a scheduled appointment to confirmed
func (s *AppointmentService) Confirm(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*AppointmentResponse, error) {
	return s.transition(ctx, id, clinicHint, (*scheduling.Appointment).Confirm)
}

// Cancel cancels an appointment that has not completed
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*AppointmentResponse, error) {
	return s.transition(ctx, id, clinicHint, (*scheduling.Appointment).Cancel)
}

func (s *AppointmentService) transition(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID, op func(*scheduling.Appointment) error) (*AppointmentResponse, error) {
	appointment, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	if err := op(appointment); err != nil {
		return nil, err
	}
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	resp := ToAppointmentResponse(appointment)
	return &resp, nil
}

func (s *AppointmentService) fetch(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*scheduling.Appointment, error) {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAppointment, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	appointment, err := s.appointments.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindAppointment, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}
