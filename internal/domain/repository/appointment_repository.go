package repository

import (
	"time"

	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	// FindAll returns appointments ordered by date ascending, optionally
	// restricted to the calendar day of the given instant.
	FindAll(db *gorm.DB, day *time.Time) ([]entity.Appointment, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindByPersonIdentification returns appointments whose patient or doctor
	// carries the given identification.
	FindByPersonIdentification(db *gorm.DB, identification string) ([]entity.Appointment, error)
	// FindScheduledAt returns the SCHEDULED appointment of a doctor at an
	// exact instant, if any.
	FindScheduledAt(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.Appointment, error)
	// FindDuplicate returns the SCHEDULED appointment matching the full
	// (patient, doctor, instant) triple, skipping excludeID when non-nil.
	FindDuplicate(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time, excludeID *uuid.UUID) (*entity.Appointment, error)
	// BusyDoctorIDs returns the ids of doctors holding a SCHEDULED appointment
	// during the calendar day of the given instant.
	BusyDoctorIDs(db *gorm.DB, day time.Time) ([]uuid.UUID, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
