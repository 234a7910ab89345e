package usecase

import (
	"context"
	"errors"

	"clinical-office-api/internal/converter"
	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"
	"clinical-office-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientExists          = errors.New("a patient with this identification or email already exists")
	ErrPatientHasAppointments = errors.New("patient has appointments and cannot be deleted")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAll(ctx context.Context) (*dto.PatientListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	GetByIdentification(ctx context.Context, identification string) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

// Create registers a patient. Identification and email are both unique.
func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	existing, err := u.patientRepo.FindByIdentificationOrEmail(u.db.WithContext(ctx), req.Identification, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check existing patient: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientExists
	}

	patient := &entity.Patient{
		Identification: req.Identification,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
	}

	if err := u.patientRepo.Create(u.db.WithContext(ctx), patient); err != nil {
		if isDuplicateKeyError(err, "patients_") {
			return nil, ErrPatientExists
		}
		u.log.Errorf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%s, identification=%s", patient.ID, patient.Identification)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAll(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetByIdentification(ctx context.Context, identification string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByIdentification(u.db.WithContext(ctx), identification)
	if err != nil {
		u.log.Warnf("Failed to find patient by identification %s: %+v", identification, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// Update edits a patient's contact data. The identification is immutable.
func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.Email != "" && req.Email != patient.Email {
		existing, err := u.patientRepo.FindByIdentificationOrEmail(u.db.WithContext(ctx), "", req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrPatientExists
		}
		patient.Email = req.Email
	}
	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.City != "" {
		patient.City = req.City
	}

	if err := u.patientRepo.Update(u.db.WithContext(ctx), patient); err != nil {
		if isDuplicateKeyError(err, "patients_") {
			return nil, ErrPatientExists
		}
		u.log.Errorf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	u.log.Infof("Patient updated: id=%s", id)
	return converter.PatientToResponse(patient), nil
}

// Delete removes a patient. The restricting foreign key on appointments
// keeps a patient with history from disappearing.
func (u *patientUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	rows, err := u.patientRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		if isForeignKeyError(err, "appointments_patient_id") {
			return ErrPatientHasAppointments
		}
		u.log.Errorf("Failed to delete patient %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	u.log.Infof("Patient deleted: id=%s, identification=%s", id, patient.Identification)
	return nil
}
