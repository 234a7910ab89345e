package repository

import (
	"errors"
	"time"

	"clinical-office-api/internal/domain/entity"
	domainRepo "clinical-office-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

// startAndEndOfDay returns the local-day bounds [00:00:00.000, 23:59:59.999]
// for the given instant.
func startAndEndOfDay(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindAll(db *gorm.DB, day *time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient").Preload("Doctor")
	if day != nil {
		// Day filter is exclusive at the upper bound, while BusyDoctorIDs is
		// inclusive. The asymmetry is kept on purpose.
		start, end := startAndEndOfDay(*day)
		query = query.Where("date >= ? AND date < ?", start, end)
	}
	err := query.Order("date ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPersonIdentification(db *gorm.DB, identification string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("patients.identification = ? OR doctors.identification = ?", identification, identification).
		Preload("Patient").Preload("Doctor").
		Order("date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindScheduledAt(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Where("doctor_id = ? AND date = ? AND status = ?", doctorID, date, entity.AppointmentStatusScheduled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindDuplicate(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time, excludeID *uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	query := db.Where(
		"patient_id = ? AND doctor_id = ? AND date = ? AND status = ?",
		patientID, doctorID, date, entity.AppointmentStatusScheduled,
	)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	err := query.First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) BusyDoctorIDs(db *gorm.DB, day time.Time) ([]uuid.UUID, error) {
	start, end := startAndEndOfDay(day)
	var ids []uuid.UUID
	err := db.Model(&entity.Appointment{}).
		Where("date >= ? AND date <= ? AND status = ?", start, end, entity.AppointmentStatusScheduled).
		Distinct().
		Pluck("doctor_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
