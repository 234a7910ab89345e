package usecase

import (
	"context"
	"testing"
	"time"

	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureDate() time.Time {
	return time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
}

func scheduledAppointment(patientID, doctorID uuid.UUID, date time.Time) *entity.Appointment {
	return &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Status:    entity.AppointmentStatusScheduled,
	}
}

func TestAppointmentCreate_PatientNotFoundStopsEarly(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	patientRepo := &mockPatientRepo{log: log, patient: nil}
	doctorRepo := &mockDoctorRepo{log: log, doctor: &entity.Doctor{ID: uuid.New()}}
	appointmentRepo := &mockAppointmentRepo{log: log}
	audit := &mockAuditService{log: log}

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo, patientRepo, doctorRepo, audit)

	_, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		Date:                  futureDate().Format(time.RFC3339),
		PatientIdentification: "1000001",
		DoctorIdentification:  "2000001",
	})

	require.ErrorIs(t, err, ErrPatientNotFound)
	// The doctor must never be resolved when the patient is missing.
	assert.False(t, log.has("doctor.FindByIdentification"))
	assert.False(t, log.has("appointment.Create"))
}

func TestAppointmentCreate_DoctorBusyBeforeDuplicateCheck(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	patient := &entity.Patient{ID: uuid.New(), Identification: "1000001"}
	doctor := &entity.Doctor{ID: uuid.New(), Identification: "2000001"}
	date := futureDate()

	patientRepo := &mockPatientRepo{log: log, patient: patient}
	doctorRepo := &mockDoctorRepo{log: log, doctor: doctor}
	appointmentRepo := &mockAppointmentRepo{
		log:       log,
		scheduled: scheduledAppointment(uuid.New(), doctor.ID, date),
	}
	audit := &mockAuditService{log: log}

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo, patientRepo, doctorRepo, audit)

	_, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		Date:                  date.Format(time.RFC3339),
		PatientIdentification: patient.Identification,
		DoctorIdentification:  doctor.Identification,
	})

	require.ErrorIs(t, err, ErrDoctorBusy)
	// The busy check wins over the duplicate check, and nothing is written.
	assert.False(t, log.has("appointment.FindDuplicate"))
	assert.False(t, log.has("appointment.Create"))
}

func TestAppointmentCreate_DuplicateRejected(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	patient := &entity.Patient{ID: uuid.New(), Identification: "1000001"}
	doctor := &entity.Doctor{ID: uuid.New(), Identification: "2000001"}
	date := futureDate()

	patientRepo := &mockPatientRepo{log: log, patient: patient}
	doctorRepo := &mockDoctorRepo{log: log, doctor: doctor}
	appointmentRepo := &mockAppointmentRepo{
		log:       log,
		duplicate: scheduledAppointment(patient.ID, doctor.ID, date),
	}
	audit := &mockAuditService{log: log}

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo, patientRepo, doctorRepo, audit)

	_, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		Date:                  date.Format(time.RFC3339),
		PatientIdentification: patient.Identification,
		DoctorIdentification:  doctor.Identification,
	})

	require.ErrorIs(t, err, ErrDuplicateAppointment)
	assert.False(t, log.has("appointment.Create"))
}

func TestAppointmentCreate_Success(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	patient := &entity.Patient{ID: uuid.New(), Identification: "1000001"}
	doctor := &entity.Doctor{ID: uuid.New(), Identification: "2000001"}
	date := futureDate()

	patientRepo := &mockPatientRepo{log: log, patient: patient}
	doctorRepo := &mockDoctorRepo{log: log, doctor: doctor}
	reloaded := scheduledAppointment(patient.ID, doctor.ID, date)
	reloaded.Patient = *patient
	reloaded.Doctor = *doctor
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: reloaded}
	audit := &mockAuditService{log: log}

	mock.ExpectBegin()
	mock.ExpectCommit()

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo, patientRepo, doctorRepo, audit)

	resp, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		Date:                  date.Format(time.RFC3339),
		PatientIdentification: patient.Identification,
		DoctorIdentification:  doctor.Identification,
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.AppointmentStatusScheduled, resp.Status)
	require.NotNil(t, resp.Patient)
	assert.Equal(t, patient.Identification, resp.Patient.Identification)

	// Checks then write, in order.
	assert.Equal(t, []string{
		"patient.FindByIdentification",
		"doctor.FindByIdentification",
		"appointment.FindScheduledAt",
		"appointment.FindDuplicate",
		"appointment.Create",
		"audit." + entity.AuditActionAppointmentCreate,
		"appointment.FindByID",
	}, log.calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreate_InvalidDate(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	uc := NewAppointmentUsecase(db, testLogger(),
		&mockAppointmentRepo{log: log}, &mockPatientRepo{log: log}, &mockDoctorRepo{log: log},
		&mockAuditService{log: log})

	_, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		Date:                  "not-a-date",
		PatientIdentification: "1000001",
		DoctorIdentification:  "2000001",
	})

	require.ErrorIs(t, err, ErrInvalidDate)
	assert.Empty(t, log.calls)
}

func TestAppointmentUpdateStatus_SkipsSchedulingChecks(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	appointment := scheduledAppointment(uuid.New(), uuid.New(), futureDate())
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: appointment, statusRows: 1}
	audit := &mockAuditService{log: log}

	mock.ExpectBegin()
	mock.ExpectCommit()

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo,
		&mockPatientRepo{log: log}, &mockDoctorRepo{log: log}, audit)

	resp, err := uc.UpdateStatus(context.Background(), appointment.ID, &dto.UpdateAppointmentStatusRequest{
		Status: entity.AppointmentStatusAttended,
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	// A status transition never re-runs slot or duplicate checks.
	assert.False(t, log.has("appointment.FindScheduledAt"))
	assert.False(t, log.has("appointment.FindDuplicate"))
	assert.True(t, log.has("appointment.UpdateStatus"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdateStatus_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	appointmentRepo := &mockAppointmentRepo{log: log, statusRows: 0}

	mock.ExpectBegin()
	mock.ExpectRollback()

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo,
		&mockPatientRepo{log: log}, &mockDoctorRepo{log: log}, &mockAuditService{log: log})

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), &dto.UpdateAppointmentStatusRequest{
		Status: entity.AppointmentStatusMissed,
	})

	require.ErrorIs(t, err, ErrAppointmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdate_StatusOnlySkipsDuplicateCheck(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	appointment := scheduledAppointment(uuid.New(), uuid.New(), futureDate())
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: appointment}
	audit := &mockAuditService{log: log}

	mock.ExpectBegin()
	mock.ExpectCommit()

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo,
		&mockPatientRepo{log: log}, &mockDoctorRepo{log: log}, audit)

	_, err := uc.Update(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{
		Status: entity.AppointmentStatusMissed,
	})

	require.NoError(t, err)
	// Patient, doctor and date are untouched, so no scheduling checks run.
	assert.False(t, log.has("appointment.FindScheduledAt"))
	assert.False(t, log.has("appointment.FindDuplicate"))
	assert.True(t, log.has("appointment.Update"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentUpdate_RescheduleRunsChecks(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	appointment := scheduledAppointment(uuid.New(), uuid.New(), futureDate())
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: appointment}
	audit := &mockAuditService{log: log}

	mock.ExpectBegin()
	mock.ExpectCommit()

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo,
		&mockPatientRepo{log: log}, &mockDoctorRepo{log: log}, audit)

	newDate := futureDate().Add(24 * time.Hour)
	_, err := uc.Update(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{
		Date: newDate.Format(time.RFC3339),
	})

	require.NoError(t, err)
	assert.True(t, log.has("appointment.FindScheduledAt"))
	assert.True(t, log.has("appointment.FindDuplicate"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentGetByIdentification_EmptyIsNotFound(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	appointmentRepo := &mockAppointmentRepo{log: log, list: nil}

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo,
		&mockPatientRepo{log: log}, &mockDoctorRepo{log: log}, &mockAuditService{log: log})

	_, err := uc.GetByPersonIdentification(context.Background(), "9999999")
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetAvailableDoctors_ComplementOfBusySet(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	busyID := uuid.New()
	free := entity.Doctor{ID: uuid.New(), Identification: "2000002", FirstName: "Ana"}

	appointmentRepo := &mockAppointmentRepo{log: log, busyIDs: []uuid.UUID{busyID}}
	doctorRepo := &mockDoctorRepo{log: log, doctors: []entity.Doctor{free}}

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo,
		&mockPatientRepo{log: log}, doctorRepo, &mockAuditService{log: log})

	day := futureDate()
	resp, err := uc.GetAvailableDoctors(context.Background(), day)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{busyID}, doctorRepo.notInArgs)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, free.Identification, resp.Doctors[0].Identification)
	assert.Equal(t, day.Format("2006-01-02"), resp.Date)
}

func TestGetAvailableDoctors_NoBusyDoctorsReturnsAll(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	all := []entity.Doctor{
		{ID: uuid.New(), Identification: "2000001"},
		{ID: uuid.New(), Identification: "2000002"},
	}

	appointmentRepo := &mockAppointmentRepo{log: log, busyIDs: nil}
	doctorRepo := &mockDoctorRepo{log: log, doctors: all}

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo,
		&mockPatientRepo{log: log}, doctorRepo, &mockAuditService{log: log})

	resp, err := uc.GetAvailableDoctors(context.Background(), futureDate())

	require.NoError(t, err)
	assert.Empty(t, doctorRepo.notInArgs)
	assert.Equal(t, 2, resp.Total)
}

func TestAppointmentDelete_NotFound(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: nil}

	uc := NewAppointmentUsecase(db, testLogger(), appointmentRepo,
		&mockPatientRepo{log: log}, &mockDoctorRepo{log: log}, &mockAuditService{log: log})

	err := uc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.False(t, log.has("appointment.Delete"))
}
