package repository

import (
	"errors"

	"clinical-office-api/internal/domain/entity"
	domainRepo "clinical-office-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalOrderRepository struct{}

func NewMedicalOrderRepository() domainRepo.MedicalOrderRepository {
	return &medicalOrderRepository{}
}

func (r *medicalOrderRepository) Create(db *gorm.DB, order *entity.MedicalOrder) error {
	return db.Create(order).Error
}

func (r *medicalOrderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalOrder, error) {
	var order entity.MedicalOrder
	err := db.
		Preload("Appointment.Patient").
		Preload("Appointment.Doctor").
		Preload("Medications.Medication").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *medicalOrderRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) ([]entity.MedicalOrder, error) {
	var orders []entity.MedicalOrder
	err := db.
		Preload("Medications.Medication").
		Where("appointment_id = ?", appointmentID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *medicalOrderRepository) AttachMedication(db *gorm.DB, attachment *entity.MedicalOrderMedication) error {
	return db.Create(attachment).Error
}

func (r *medicalOrderRepository) DetachMedication(db *gorm.DB, orderID, medicationID uuid.UUID) (*entity.MedicalOrderMedication, error) {
	attachment, err := r.FindAttachment(db, orderID, medicationID)
	if err != nil {
		return nil, err
	}
	if attachment == nil {
		return nil, nil
	}
	if err := db.Delete(&entity.MedicalOrderMedication{}, "id = ?", attachment.ID).Error; err != nil {
		return nil, err
	}
	return attachment, nil
}

func (r *medicalOrderRepository) FindMedications(db *gorm.DB, orderID uuid.UUID) ([]entity.MedicalOrderMedication, error) {
	var attachments []entity.MedicalOrderMedication
	err := db.
		Joins("JOIN medications ON medications.id = medical_order_medications.medication_id").
		Where("medical_order_medications.medical_order_id = ?", orderID).
		Preload("Medication").
		Order("medications.name ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *medicalOrderRepository) FindAttachment(db *gorm.DB, orderID, medicationID uuid.UUID) (*entity.MedicalOrderMedication, error) {
	var attachment entity.MedicalOrderMedication
	err := db.
		Where("medical_order_id = ? AND medication_id = ?", orderID, medicationID).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attachment, nil
}
