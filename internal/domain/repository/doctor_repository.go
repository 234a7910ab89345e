package repository

import (
	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByIdentification(db *gorm.DB, identification string) (*entity.Doctor, error)
	FindByIdentificationOrEmail(db *gorm.DB, identification, email string) (*entity.Doctor, error)
	// FindNotIn returns every doctor whose id is not in the given set.
	// An empty set returns all doctors.
	FindNotIn(db *gorm.DB, ids []uuid.UUID) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
