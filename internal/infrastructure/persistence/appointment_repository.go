package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/scheduling"
)

// GormAppointmentRepository implements scheduling.AppointmentRepository
// using GORM. Appointments are clinic-owned.
type GormAppointmentRepository struct {
	gormClinicRepo[scheduling.Appointment]
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{
		gormClinicRepo: newGormClinicRepo[scheduling.Appointment](db, queryOptions{
			sortFields:   AppointmentSortFields,
			defaultOrder: "date",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("patient_name ILIKE ? OR procedure ILIKE ?", term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				if professionalID, ok := filters["professional_id"]; ok {
					q = q.Where("professional_id = ?", professionalID)
				}
				return q
			},
		}),
	}
}

// FindByDateRangeForClinic lists the clinic's appointments within a window
func (r *GormAppointmentRepository) FindByDateRangeForClinic(ctx context.Context, clinicID uuid.UUID, from, to time.Time) ([]scheduling.Appointment, error) {
	var appointments []scheduling.Appointment
	if err := byClinic(r.db.WithContext(ctx), clinicID).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

var _ scheduling.AppointmentRepository = (*GormAppointmentRepository)(nil)
