package usecase

import (
	"context"
	"errors"
	"strings"

	"clinical-office-api/internal/converter"
	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"
	"clinical-office-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMedicationNotFound = errors.New("medication not found")
	ErrMedicationExists   = errors.New("a medication with this name already exists")
	ErrMedicationInUse    = errors.New("medication is referenced by medical orders")
	ErrBlankDiseaseFilter = errors.New("disease filter must not be blank")
)

type MedicationUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error)
	GetAll(ctx context.Context) (*dto.MedicationListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicationResponse, error)
	GetByDisease(ctx context.Context, disease string) (*dto.MedicationListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicationUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
}

func NewMedicationUsecase(db *gorm.DB, log *logrus.Logger, medicationRepo repository.MedicationRepository) MedicationUsecase {
	return &medicationUsecase{
		db:             db,
		log:            log,
		medicationRepo: medicationRepo,
	}
}

// Create registers a medication in the catalog. Names are unique.
func (u *medicationUsecase) Create(ctx context.Context, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	existing, err := u.medicationRepo.FindByName(u.db.WithContext(ctx), req.Name)
	if err != nil {
		u.log.Warnf("Failed to check medication name %s: %+v", req.Name, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrMedicationExists
	}

	medication := &entity.Medication{
		Name:        req.Name,
		Description: req.Description,
		Diseases:    req.Diseases,
	}

	if err := u.medicationRepo.Create(u.db.WithContext(ctx), medication); err != nil {
		if isDuplicateKeyError(err, "medications_name") {
			return nil, ErrMedicationExists
		}
		u.log.Errorf("Failed to create medication: %+v", err)
		return nil, err
	}

	u.log.Infof("Medication created: id=%s, name=%s", medication.ID, medication.Name)
	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) GetAll(ctx context.Context) (*dto.MedicationListResponse, error) {
	medications, err := u.medicationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list medications: %+v", err)
		return nil, err
	}

	return &dto.MedicationListResponse{
		Medications: converter.MedicationsToResponses(medications),
		Total:       len(medications),
	}, nil
}

func (u *medicationUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicationResponse, error) {
	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medication %s: %+v", id, err)
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}

	return converter.MedicationToResponse(medication), nil
}

// GetByDisease filters the catalog to medications listing the given disease.
// A blank filter is rejected instead of matching nothing.
func (u *medicationUsecase) GetByDisease(ctx context.Context, disease string) (*dto.MedicationListResponse, error) {
	disease = strings.TrimSpace(disease)
	if disease == "" {
		return nil, ErrBlankDiseaseFilter
	}

	medications, err := u.medicationRepo.FindByDisease(u.db.WithContext(ctx), disease)
	if err != nil {
		u.log.Warnf("Failed to filter medications by disease %s: %+v", disease, err)
		return nil, err
	}

	return &dto.MedicationListResponse{
		Medications: converter.MedicationsToResponses(medications),
		Total:       len(medications),
	}, nil
}

func (u *medicationUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicationRequest) (*dto.MedicationResponse, error) {
	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}

	if req.Name != "" && req.Name != medication.Name {
		existing, err := u.medicationRepo.FindByName(u.db.WithContext(ctx), req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrMedicationExists
		}
		medication.Name = req.Name
	}
	if req.Description != "" {
		medication.Description = req.Description
	}
	if len(req.Diseases) > 0 {
		medication.Diseases = req.Diseases
	}

	if err := u.medicationRepo.Update(u.db.WithContext(ctx), medication); err != nil {
		if isDuplicateKeyError(err, "medications_name") {
			return nil, ErrMedicationExists
		}
		u.log.Errorf("Failed to update medication %s: %+v", id, err)
		return nil, err
	}

	u.log.Infof("Medication updated: id=%s", id)
	return converter.MedicationToResponse(medication), nil
}

// Delete removes a medication unless any medical order still references it.
func (u *medicationUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if medication == nil {
		return ErrMedicationNotFound
	}

	references, err := u.medicationRepo.CountOrderReferences(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if references > 0 {
		return ErrMedicationInUse
	}

	rows, err := u.medicationRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		// An attach can land between the reference count and the delete.
		if isForeignKeyError(err, "medical_order_medications_medication_id") {
			return ErrMedicationInUse
		}
		u.log.Errorf("Failed to delete medication %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrMedicationNotFound
	}

	u.log.Infof("Medication deleted: id=%s, name=%s", id, medication.Name)
	return nil
}
