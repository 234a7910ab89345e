package repository

import (
	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalOrderRepository interface {
	Create(db *gorm.DB, order *entity.MedicalOrder) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalOrder, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) ([]entity.MedicalOrder, error)
	AttachMedication(db *gorm.DB, attachment *entity.MedicalOrderMedication) error
	// DetachMedication deletes the attachment for the pair and returns the
	// deleted row, or nil when no attachment existed.
	DetachMedication(db *gorm.DB, orderID, medicationID uuid.UUID) (*entity.MedicalOrderMedication, error)
	// FindMedications returns the order's attachments joined with medication
	// data, ordered by medication name ascending.
	FindMedications(db *gorm.DB, orderID uuid.UUID) ([]entity.MedicalOrderMedication, error)
	FindAttachment(db *gorm.DB, orderID, medicationID uuid.UUID) (*entity.MedicalOrderMedication, error)
}
