package repository

import (
	"errors"

	"clinical-office-api/internal/domain/entity"
	domainRepo "clinical-office-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) Create(db *gorm.DB, medication *entity.Medication) error {
	return db.Create(medication).Error
}

func (r *medicationRepository) FindAll(db *gorm.DB) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := db.Order("name ASC").Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medication, error) {
	var medication entity.Medication
	err := db.Where("id = ?", id).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

func (r *medicationRepository) FindByName(db *gorm.DB, name string) (*entity.Medication, error) {
	var medication entity.Medication
	err := db.Where("name = ?", name).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

// FindByDisease matches the disease tag case-insensitively.
func (r *medicationRepository) FindByDisease(db *gorm.DB, disease string) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := db.
		Where("LOWER(?) = ANY (SELECT LOWER(unnest(diseases)))", disease).
		Order("name ASC").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) Update(db *gorm.DB, medication *entity.Medication) error {
	return db.Save(medication).Error
}

func (r *medicationRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Medication{})
	return result.RowsAffected, result.Error
}

func (r *medicationRepository) CountOrderReferences(db *gorm.DB, id uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.MedicalOrderMedication{}).
		Where("medication_id = ?", id).
		Count(&count).Error
	return count, err
}
