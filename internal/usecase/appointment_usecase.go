package usecase

import (
	"context"
	"errors"
	"time"

	"clinical-office-api/internal/converter"
	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/delivery/http/middleware"
	"clinical-office-api/internal/domain/entity"
	"clinical-office-api/internal/domain/repository"
	"clinical-office-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrDoctorBusy           = errors.New("doctor already has an appointment at this time")
	ErrDuplicateAppointment = errors.New("an identical appointment already exists")
	ErrInvalidDate          = errors.New("invalid date format")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context, date *time.Time) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetByPersonIdentification(ctx context.Context, identification string) (*dto.AppointmentListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetAvailableDoctors(ctx context.Context, date time.Time) (*dto.AvailableDoctorsResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

// Create schedules a new appointment.
//
// Flow:
// 1. Resolve patient by identification
// 2. Resolve doctor by identification
// 3. Reject if the doctor already has a SCHEDULED appointment at that instant
// 4. Reject if the exact (patient, doctor, instant) triple already exists
// 5. Insert inside a transaction, with an audit entry
//
// The checks run in this exact order so a request with several problems
// always reports the same one first. The partial unique index on
// (doctor_id, date) backs check 3 against concurrent writers.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// Step 1: Resolve patient
	patient, err := u.patientRepo.FindByIdentification(u.db.WithContext(ctx), req.PatientIdentification)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientIdentification, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	// Step 2: Resolve doctor
	doctor, err := u.doctorRepo.FindByIdentification(u.db.WithContext(ctx), req.DoctorIdentification)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorIdentification, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Step 3: Doctor slot check
	busy, err := u.appointmentRepo.FindScheduledAt(u.db.WithContext(ctx), doctor.ID, date)
	if err != nil {
		u.log.Warnf("Failed to check doctor availability: %+v", err)
		return nil, err
	}
	if busy != nil {
		return nil, ErrDoctorBusy
	}

	// Step 4: Exact duplicate check
	duplicate, err := u.appointmentRepo.FindDuplicate(u.db.WithContext(ctx), patient.ID, doctor.ID, date, nil)
	if err != nil {
		u.log.Warnf("Failed to check duplicate appointment: %+v", err)
		return nil, err
	}
	if duplicate != nil {
		return nil, ErrDuplicateAppointment
	}

	appointment := &entity.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      date,
		Status:    entity.AppointmentStatusScheduled,
	}

	// Step 5: Insert + audit in a single transaction
	userID := currentUserID(ctx)
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, userID, entity.AuditActionAppointmentCreate,
			"appointment", appointment.ID.String(), appointment)
	})
	if err != nil {
		// A concurrent writer may win the slot between check 3 and the
		// insert; the idx_doctor_slot index turns that into a conflict.
		if isDuplicateKeyError(err, "idx_doctor_slot") {
			return nil, ErrDoctorBusy
		}
		u.log.Errorf("Failed to create appointment: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment created: id=%s, patient=%s, doctor=%s, date=%s",
		appointment.ID, patient.Identification, doctor.Identification, date.Format(time.RFC3339))
	return converter.AppointmentToResponse(full), nil
}

// GetAll lists appointments, optionally restricted to one calendar day.
func (u *appointmentUsecase) GetAll(ctx context.Context, date *time.Time) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), date)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

// GetByPersonIdentification lists appointments whose patient or doctor
// carries the given identification. An empty result is a not-found: the
// identification matched nobody with appointments.
func (u *appointmentUsecase) GetByPersonIdentification(ctx context.Context, identification string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPersonIdentification(u.db.WithContext(ctx), identification)
	if err != nil {
		u.log.Warnf("Failed to find appointments for identification %s: %+v", identification, err)
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Update reschedules or reassigns an appointment. Every field is optional;
// omitted fields keep their current value. The doctor-slot and duplicate
// checks re-run only when the effective (patient, doctor, date) triple
// actually changed, so a status-only update never trips over itself.
func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldValue := *appointment
	changed := false

	if req.PatientIdentification != "" {
		patient, err := u.patientRepo.FindByIdentification(u.db.WithContext(ctx), req.PatientIdentification)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		if patient.ID != appointment.PatientID {
			appointment.PatientID = patient.ID
			changed = true
		}
	}

	if req.DoctorIdentification != "" {
		doctor, err := u.doctorRepo.FindByIdentification(u.db.WithContext(ctx), req.DoctorIdentification)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		if doctor.ID != appointment.DoctorID {
			appointment.DoctorID = doctor.ID
			changed = true
		}
	}

	if req.Date != "" {
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if !date.Equal(appointment.Date) {
			appointment.Date = date
			changed = true
		}
	}

	if req.Status != "" {
		appointment.Status = req.Status
	}

	if changed {
		busy, err := u.appointmentRepo.FindScheduledAt(u.db.WithContext(ctx), appointment.DoctorID, appointment.Date)
		if err != nil {
			return nil, err
		}
		if busy != nil && busy.ID != appointment.ID {
			return nil, ErrDoctorBusy
		}

		duplicate, err := u.appointmentRepo.FindDuplicate(u.db.WithContext(ctx),
			appointment.PatientID, appointment.DoctorID, appointment.Date, &appointment.ID)
		if err != nil {
			return nil, err
		}
		if duplicate != nil {
			return nil, ErrDuplicateAppointment
		}
	}

	userID := currentUserID(ctx)
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionAppointmentUpdate,
			"appointment", appointment.ID.String(), &oldValue, appointment)
	})
	if err != nil {
		if isDuplicateKeyError(err, "idx_doctor_slot") {
			return nil, ErrDoctorBusy
		}
		u.log.Errorf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment updated: id=%s", appointment.ID)
	return converter.AppointmentToResponse(full), nil
}

// UpdateStatus transitions an appointment's lifecycle state. No scheduling
// checks run here: the slot was validated when the appointment was created.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	userID := currentUserID(ctx)

	var rows int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = u.appointmentRepo.UpdateStatus(tx, id, req.Status)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAppointmentNotFound
		}
		return u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionAppointmentStatus,
			"appointment", id.String(), nil, map[string]interface{}{"status": req.Status})
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		u.log.Errorf("Failed to update appointment status %s: %+v", id, err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if full == nil {
		return nil, ErrAppointmentNotFound
	}

	u.log.Infof("Appointment status updated: id=%s, status=%s", id, req.Status)
	return converter.AppointmentToResponse(full), nil
}

// Delete removes an appointment. Its medical orders go with it through the
// cascading foreign key.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	userID := currentUserID(ctx)
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.appointmentRepo.Delete(tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAppointmentNotFound
		}
		return u.auditService.LogDelete(ctx, tx, userID, entity.AuditActionAppointmentDelete,
			"appointment", id.String(), appointment)
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return err
		}
		u.log.Errorf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	u.log.Infof("Appointment deleted: id=%s", id)
	return nil
}

// GetAvailableDoctors returns the doctors with no SCHEDULED appointment on
// the calendar day of the given instant, computed as the complement of the
// busy set.
func (u *appointmentUsecase) GetAvailableDoctors(ctx context.Context, date time.Time) (*dto.AvailableDoctorsResponse, error) {
	busyIDs, err := u.appointmentRepo.BusyDoctorIDs(u.db.WithContext(ctx), date)
	if err != nil {
		u.log.Warnf("Failed to find busy doctors: %+v", err)
		return nil, err
	}

	doctors, err := u.doctorRepo.FindNotIn(u.db.WithContext(ctx), busyIDs)
	if err != nil {
		u.log.Warnf("Failed to find available doctors: %+v", err)
		return nil, err
	}

	return &dto.AvailableDoctorsResponse{
		Date:    date.Format("2006-01-02"),
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// currentUserID reads the authenticated user's id for audit attribution,
// nil when the context carries none.
func currentUserID(ctx context.Context) *uuid.UUID {
	if id, ok := middleware.GetUserIDFromContext(ctx); ok {
		return &id
	}
	return nil
}
