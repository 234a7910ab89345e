package usecase

import (
	"context"
	"testing"
	"time"

	"clinical-office-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens GORM over a sqlmock connection. The repositories are
// mocked out in these tests, so the connection only backs transaction
// begin/commit calls.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// callLog records repository calls across mocks so ordering can be asserted.
type callLog struct {
	calls []string
}

func (c *callLog) record(name string) {
	c.calls = append(c.calls, name)
}

func (c *callLog) has(name string) bool {
	for _, call := range c.calls {
		if call == name {
			return true
		}
	}
	return false
}

type mockPatientRepo struct {
	log     *callLog
	patient *entity.Patient
	err     error
}

func (m *mockPatientRepo) Create(db *gorm.DB, patient *entity.Patient) error { return m.err }
func (m *mockPatientRepo) FindAll(db *gorm.DB) ([]entity.Patient, error)     { return nil, m.err }
func (m *mockPatientRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	m.log.record("patient.FindByID")
	return m.patient, m.err
}
func (m *mockPatientRepo) FindByIdentification(db *gorm.DB, identification string) (*entity.Patient, error) {
	m.log.record("patient.FindByIdentification")
	return m.patient, m.err
}
func (m *mockPatientRepo) FindByIdentificationOrEmail(db *gorm.DB, identification, email string) (*entity.Patient, error) {
	m.log.record("patient.FindByIdentificationOrEmail")
	return m.patient, m.err
}
func (m *mockPatientRepo) Update(db *gorm.DB, patient *entity.Patient) error { return m.err }
func (m *mockPatientRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error)   { return 1, m.err }

type mockDoctorRepo struct {
	log       *callLog
	doctor    *entity.Doctor
	doctors   []entity.Doctor
	notInArgs []uuid.UUID
	err       error
}

func (m *mockDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error { return m.err }
func (m *mockDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error)    { return m.doctors, m.err }
func (m *mockDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	m.log.record("doctor.FindByID")
	return m.doctor, m.err
}
func (m *mockDoctorRepo) FindByIdentification(db *gorm.DB, identification string) (*entity.Doctor, error) {
	m.log.record("doctor.FindByIdentification")
	return m.doctor, m.err
}
func (m *mockDoctorRepo) FindByIdentificationOrEmail(db *gorm.DB, identification, email string) (*entity.Doctor, error) {
	m.log.record("doctor.FindByIdentificationOrEmail")
	return m.doctor, m.err
}
func (m *mockDoctorRepo) FindNotIn(db *gorm.DB, ids []uuid.UUID) ([]entity.Doctor, error) {
	m.log.record("doctor.FindNotIn")
	m.notInArgs = ids
	return m.doctors, m.err
}
func (m *mockDoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) error { return m.err }
func (m *mockDoctorRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) { return 1, m.err }

type mockAppointmentRepo struct {
	log         *callLog
	appointment *entity.Appointment
	scheduled   *entity.Appointment
	duplicate   *entity.Appointment
	list        []entity.Appointment
	busyIDs     []uuid.UUID
	statusRows  int64
	deleteRows  int64
	createErr   error
	err         error
}

func (m *mockAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	m.log.record("appointment.Create")
	if m.createErr != nil {
		return m.createErr
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	return nil
}
func (m *mockAppointmentRepo) FindAll(db *gorm.DB, day *time.Time) ([]entity.Appointment, error) {
	m.log.record("appointment.FindAll")
	return m.list, m.err
}
func (m *mockAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	m.log.record("appointment.FindByID")
	return m.appointment, m.err
}
func (m *mockAppointmentRepo) FindByPersonIdentification(db *gorm.DB, identification string) ([]entity.Appointment, error) {
	m.log.record("appointment.FindByPersonIdentification")
	return m.list, m.err
}
func (m *mockAppointmentRepo) FindScheduledAt(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.Appointment, error) {
	m.log.record("appointment.FindScheduledAt")
	return m.scheduled, m.err
}
func (m *mockAppointmentRepo) FindDuplicate(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time, excludeID *uuid.UUID) (*entity.Appointment, error) {
	m.log.record("appointment.FindDuplicate")
	return m.duplicate, m.err
}
func (m *mockAppointmentRepo) BusyDoctorIDs(db *gorm.DB, day time.Time) ([]uuid.UUID, error) {
	m.log.record("appointment.BusyDoctorIDs")
	return m.busyIDs, m.err
}
func (m *mockAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	m.log.record("appointment.Update")
	return m.err
}
func (m *mockAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	m.log.record("appointment.UpdateStatus")
	return m.statusRows, m.err
}
func (m *mockAppointmentRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	m.log.record("appointment.Delete")
	return m.deleteRows, m.err
}

type mockMedicalOrderRepo struct {
	log         *callLog
	order       *entity.MedicalOrder
	orders      []entity.MedicalOrder
	attachment  *entity.MedicalOrderMedication
	attachments []entity.MedicalOrderMedication
	detached    *entity.MedicalOrderMedication
	attachErr   error
	err         error
}

func (m *mockMedicalOrderRepo) Create(db *gorm.DB, order *entity.MedicalOrder) error {
	m.log.record("order.Create")
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return m.err
}
func (m *mockMedicalOrderRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalOrder, error) {
	m.log.record("order.FindByID")
	return m.order, m.err
}
func (m *mockMedicalOrderRepo) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) ([]entity.MedicalOrder, error) {
	m.log.record("order.FindByAppointmentID")
	return m.orders, m.err
}
func (m *mockMedicalOrderRepo) AttachMedication(db *gorm.DB, attachment *entity.MedicalOrderMedication) error {
	m.log.record("order.AttachMedication")
	if m.attachErr != nil {
		return m.attachErr
	}
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}
	return nil
}
func (m *mockMedicalOrderRepo) DetachMedication(db *gorm.DB, orderID, medicationID uuid.UUID) (*entity.MedicalOrderMedication, error) {
	m.log.record("order.DetachMedication")
	return m.detached, m.err
}
func (m *mockMedicalOrderRepo) FindMedications(db *gorm.DB, orderID uuid.UUID) ([]entity.MedicalOrderMedication, error) {
	m.log.record("order.FindMedications")
	return m.attachments, m.err
}
func (m *mockMedicalOrderRepo) FindAttachment(db *gorm.DB, orderID, medicationID uuid.UUID) (*entity.MedicalOrderMedication, error) {
	m.log.record("order.FindAttachment")
	return m.attachment, m.err
}
type mockMedicationRepo struct {
	log        *callLog
	medication *entity.Medication
	byName     *entity.Medication
	list       []entity.Medication
	references int64
	deleteRows int64
	err        error
}

func (m *mockMedicationRepo) Create(db *gorm.DB, medication *entity.Medication) error {
	m.log.record("medication.Create")
	if medication.ID == uuid.Nil {
		medication.ID = uuid.New()
	}
	return m.err
}
func (m *mockMedicationRepo) FindAll(db *gorm.DB) ([]entity.Medication, error) {
	m.log.record("medication.FindAll")
	return m.list, m.err
}
func (m *mockMedicationRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medication, error) {
	m.log.record("medication.FindByID")
	return m.medication, m.err
}
func (m *mockMedicationRepo) FindByName(db *gorm.DB, name string) (*entity.Medication, error) {
	m.log.record("medication.FindByName")
	return m.byName, m.err
}
func (m *mockMedicationRepo) FindByDisease(db *gorm.DB, disease string) ([]entity.Medication, error) {
	m.log.record("medication.FindByDisease")
	return m.list, m.err
}
func (m *mockMedicationRepo) Update(db *gorm.DB, medication *entity.Medication) error {
	m.log.record("medication.Update")
	return m.err
}
func (m *mockMedicationRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	m.log.record("medication.Delete")
	return m.deleteRows, m.err
}
func (m *mockMedicationRepo) CountOrderReferences(db *gorm.DB, id uuid.UUID) (int64, error) {
	m.log.record("medication.CountOrderReferences")
	return m.references, m.err
}

type mockUserRepo struct {
	log  *callLog
	user *entity.User
	err  error
}

func (m *mockUserRepo) Create(db *gorm.DB, user *entity.User) error { return m.err }
func (m *mockUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	m.log.record("user.FindByEmail")
	return m.user, m.err
}
func (m *mockUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	m.log.record("user.FindByID")
	return m.user, m.err
}

type mockAuditService struct {
	log *callLog
	err error
}

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	m.log.record("audit." + action)
	return m.err
}
func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	m.log.record("audit." + action)
	return m.err
}
func (m *mockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	m.log.record("audit." + action)
	return m.err
}
