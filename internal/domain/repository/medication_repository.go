package repository

import (
	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicationRepository interface {
	Create(db *gorm.DB, medication *entity.Medication) error
	FindAll(db *gorm.DB) ([]entity.Medication, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medication, error)
	FindByName(db *gorm.DB, name string) (*entity.Medication, error)
	FindByDisease(db *gorm.DB, disease string) ([]entity.Medication, error)
	Update(db *gorm.DB, medication *entity.Medication) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	// CountOrderReferences counts how many medical orders reference the
	// medication through attachments.
	CountOrderReferences(db *gorm.DB, id uuid.UUID) (int64, error)
}
