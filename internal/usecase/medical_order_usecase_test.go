package usecase

import (
	"context"
	"errors"
	"testing"

	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicalOrderCreate_AppointmentMissing(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: nil}
	orderRepo := &mockMedicalOrderRepo{log: log}

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, appointmentRepo,
		&mockMedicationRepo{log: log}, &mockAuditService{log: log})

	_, err := uc.Create(context.Background(), uuid.New(), &dto.CreateMedicalOrderRequest{
		Description: "Blood panel",
		Specialty:   "Hematology",
	})

	require.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.False(t, log.has("order.Create"))
}

func TestMedicalOrderCreate_Success(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	appointment := scheduledAppointment(uuid.New(), uuid.New(), futureDate())
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: appointment}
	orderRepo := &mockMedicalOrderRepo{log: log}

	mock.ExpectBegin()
	mock.ExpectCommit()

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, appointmentRepo,
		&mockMedicationRepo{log: log}, &mockAuditService{log: log})

	resp, err := uc.Create(context.Background(), appointment.ID, &dto.CreateMedicalOrderRequest{
		Description:    "Blood panel",
		Specialty:      "Hematology",
		ExpirationDate: "2026-12-31",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, appointment.ID, resp.AppointmentID)
	require.NotNil(t, resp.ExpirationDate)
	assert.Equal(t, "2026-12-31", *resp.ExpirationDate)
	assert.True(t, log.has("audit."+entity.AuditActionMedicalOrderCreate))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicalOrderCreate_BadExpirationDate(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	appointment := scheduledAppointment(uuid.New(), uuid.New(), futureDate())
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: appointment}
	orderRepo := &mockMedicalOrderRepo{log: log}

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, appointmentRepo,
		&mockMedicationRepo{log: log}, &mockAuditService{log: log})

	_, err := uc.Create(context.Background(), appointment.ID, &dto.CreateMedicalOrderRequest{
		Description:    "Blood panel",
		Specialty:      "Hematology",
		ExpirationDate: "31-12-2026",
	})

	require.ErrorIs(t, err, ErrInvalidDate)
	assert.False(t, log.has("order.Create"))
}

func TestAttachMedication_AlreadyAttachedNamesMedication(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	order := &entity.MedicalOrder{ID: uuid.New(), AppointmentID: uuid.New()}
	medication := &entity.Medication{ID: uuid.New(), Name: "Amoxicillin"}

	orderRepo := &mockMedicalOrderRepo{
		log:        log,
		order:      order,
		attachment: &entity.MedicalOrderMedication{ID: uuid.New(), MedicalOrderID: order.ID, MedicationID: medication.ID},
	}
	medicationRepo := &mockMedicationRepo{log: log, medication: medication}

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, &mockAppointmentRepo{log: log},
		medicationRepo, &mockAuditService{log: log})

	_, err := uc.AttachMedication(context.Background(), order.ID, medication.ID, &dto.AttachMedicationRequest{})

	var attached *MedicationAttachedError
	require.ErrorAs(t, err, &attached)
	assert.Equal(t, "Amoxicillin", attached.Name)
	assert.False(t, log.has("order.AttachMedication"))
}

func TestAttachMedication_Success(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	order := &entity.MedicalOrder{ID: uuid.New(), AppointmentID: uuid.New()}
	medication := &entity.Medication{ID: uuid.New(), Name: "Ibuprofen"}

	orderRepo := &mockMedicalOrderRepo{log: log, order: order, attachment: nil}
	medicationRepo := &mockMedicationRepo{log: log, medication: medication}

	mock.ExpectBegin()
	mock.ExpectCommit()

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, &mockAppointmentRepo{log: log},
		medicationRepo, &mockAuditService{log: log})

	resp, err := uc.AttachMedication(context.Background(), order.ID, medication.ID, &dto.AttachMedicationRequest{
		Dosage:    "400mg",
		Frequency: "Every 8 hours",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Dosage)
	assert.Equal(t, "400mg", *resp.Dosage)
	require.NotNil(t, resp.Medication)
	assert.Equal(t, "Ibuprofen", resp.Medication.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachMedication_MedicationMissing(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	order := &entity.MedicalOrder{ID: uuid.New(), AppointmentID: uuid.New()}

	orderRepo := &mockMedicalOrderRepo{log: log, order: order}
	medicationRepo := &mockMedicationRepo{log: log, medication: nil}

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, &mockAppointmentRepo{log: log},
		medicationRepo, &mockAuditService{log: log})

	_, err := uc.AttachMedication(context.Background(), order.ID, uuid.New(), &dto.AttachMedicationRequest{})

	require.ErrorIs(t, err, ErrMedicationNotFound)
	assert.False(t, log.has("order.AttachMedication"))
}

func TestDetachMedication_NotAttachedIsNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	order := &entity.MedicalOrder{ID: uuid.New(), AppointmentID: uuid.New()}
	orderRepo := &mockMedicalOrderRepo{log: log, order: order, detached: nil}

	mock.ExpectBegin()
	mock.ExpectRollback()

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, &mockAppointmentRepo{log: log},
		&mockMedicationRepo{log: log}, &mockAuditService{log: log})

	_, err := uc.DetachMedication(context.Background(), order.ID, uuid.New())

	require.ErrorIs(t, err, ErrAttachmentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDetachMedication_Success(t *testing.T) {
	db, mock := newTestDB(t)
	log := &callLog{}
	order := &entity.MedicalOrder{ID: uuid.New(), AppointmentID: uuid.New()}
	dosage := "500mg"
	detached := &entity.MedicalOrderMedication{ID: uuid.New(), MedicalOrderID: order.ID, MedicationID: uuid.New(), Dosage: &dosage}
	orderRepo := &mockMedicalOrderRepo{log: log, order: order, detached: detached}

	mock.ExpectBegin()
	mock.ExpectCommit()

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, &mockAppointmentRepo{log: log},
		&mockMedicationRepo{log: log}, &mockAuditService{log: log})

	resp, err := uc.DetachMedication(context.Background(), order.ID, detached.MedicationID)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, detached.ID, resp.ID)
	assert.Equal(t, detached.MedicationID, resp.MedicationID)
	require.NotNil(t, resp.Dosage)
	assert.Equal(t, "500mg", *resp.Dosage)
	assert.True(t, log.has("audit."+entity.AuditActionMedicationDetach))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMedications_OrderMissing(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	orderRepo := &mockMedicalOrderRepo{log: log, order: nil}

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, &mockAppointmentRepo{log: log},
		&mockMedicationRepo{log: log}, &mockAuditService{log: log})

	_, err := uc.GetMedications(context.Background(), uuid.New())
	require.True(t, errors.Is(err, ErrMedicalOrderNotFound))
}

func TestGetByAppointment_EmptyListIsNotAnError(t *testing.T) {
	db, _ := newTestDB(t)
	log := &callLog{}
	appointment := scheduledAppointment(uuid.New(), uuid.New(), futureDate())
	appointmentRepo := &mockAppointmentRepo{log: log, appointment: appointment}
	orderRepo := &mockMedicalOrderRepo{log: log, orders: nil}

	uc := NewMedicalOrderUsecase(db, testLogger(), orderRepo, appointmentRepo,
		&mockMedicationRepo{log: log}, &mockAuditService{log: log})

	resp, err := uc.GetByAppointment(context.Background(), appointment.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
}
