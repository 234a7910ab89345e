package usecase

import (
	"context"
	"errors"
	"time"

	"clinical-office-api/internal/converter"
	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"
	"clinical-office-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorExists          = errors.New("a doctor with this identification, email or professional card already exists")
	ErrDoctorHasAppointments = errors.New("doctor has appointments and cannot be deleted")
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetAll(ctx context.Context) (*dto.DoctorListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetByIdentification(ctx context.Context, identification string) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository) DoctorUsecase {
	return &doctorUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
	}
}

// Create registers a doctor. Identification, email and professional card are
// all unique.
func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	admissionDate, err := parseDateOrInstant(req.AdmissionDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	existing, err := u.doctorRepo.FindByIdentificationOrEmail(u.db.WithContext(ctx), req.Identification, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check existing doctor: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorExists
	}

	doctor := &entity.Doctor{
		Identification:   req.Identification,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		City:             req.City,
		ProfessionalCard: req.ProfessionalCard,
		AdmissionDate:    admissionDate,
	}

	if err := u.doctorRepo.Create(u.db.WithContext(ctx), doctor); err != nil {
		if isDuplicateKeyError(err, "doctors_") {
			return nil, ErrDoctorExists
		}
		u.log.Errorf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor created: id=%s, identification=%s", doctor.ID, doctor.Identification)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAll(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetByIdentification(ctx context.Context, identification string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByIdentification(u.db.WithContext(ctx), identification)
	if err != nil {
		u.log.Warnf("Failed to find doctor by identification %s: %+v", identification, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// Update edits a doctor's data. The identification is immutable.
func (u *doctorUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Email != "" && req.Email != doctor.Email {
		existing, err := u.doctorRepo.FindByIdentificationOrEmail(u.db.WithContext(ctx), "", req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDoctorExists
		}
		doctor.Email = req.Email
	}
	if req.FirstName != "" {
		doctor.FirstName = req.FirstName
	}
	if req.LastName != "" {
		doctor.LastName = req.LastName
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.Address != "" {
		doctor.Address = req.Address
	}
	if req.City != "" {
		doctor.City = req.City
	}
	if req.ProfessionalCard != "" {
		doctor.ProfessionalCard = req.ProfessionalCard
	}
	if req.AdmissionDate != "" {
		admissionDate, err := parseDateOrInstant(req.AdmissionDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		doctor.AdmissionDate = admissionDate
	}

	if err := u.doctorRepo.Update(u.db.WithContext(ctx), doctor); err != nil {
		if isDuplicateKeyError(err, "doctors_") {
			return nil, ErrDoctorExists
		}
		u.log.Errorf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	u.log.Infof("Doctor updated: id=%s", id)
	return converter.DoctorToResponse(doctor), nil
}

// Delete removes a doctor. The restricting foreign key on appointments keeps
// a doctor with history from disappearing.
func (u *doctorUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	rows, err := u.doctorRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		if isForeignKeyError(err, "appointments_doctor_id") {
			return ErrDoctorHasAppointments
		}
		u.log.Errorf("Failed to delete doctor %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}

	u.log.Infof("Doctor deleted: id=%s, identification=%s", id, doctor.Identification)
	return nil
}

// parseDateOrInstant accepts either a calendar date or a full RFC 3339
// instant, since clients send admission dates in both shapes.
func parseDateOrInstant(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
