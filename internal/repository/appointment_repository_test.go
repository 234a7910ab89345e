package repository

import (
	"testing"
	"time"

	"clinical-office-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func appointmentColumns() []string {
	return []string{"id", "patient_id", "doctor_id", "date", "status", "created_at", "updated_at"}
}

// The list filter excludes the day's upper bound; see the availability test
// below for the inclusive counterpart.
func TestFindAll_DayFilterExcludesUpperBound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	day := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 14, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE date >= \$1 AND date < \$2 ORDER BY date ASC`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()))

	appointments, err := repo.FindAll(db, &day)

	require.NoError(t, err)
	assert.Empty(t, appointments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAll_NoFilterListsEverything(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	mock.ExpectQuery(`SELECT \* FROM "appointments" ORDER BY date ASC`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()))

	appointments, err := repo.FindAll(db, nil)

	require.NoError(t, err)
	assert.Empty(t, appointments)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Availability includes the day's upper bound, unlike the list filter.
func TestBusyDoctorIDs_DayFilterIncludesUpperBound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	day := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 14, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	busyID := uuid.New()

	mock.ExpectQuery(`SELECT DISTINCT "doctor_id" FROM "appointments" WHERE date >= \$1 AND date <= \$2 AND status = \$3`).
		WithArgs(start, end, string(entity.AppointmentStatusScheduled)).
		WillReturnRows(sqlmock.NewRows([]string{"doctor_id"}).AddRow(busyID.String()))

	ids, err := repo.BusyDoctorIDs(db, day)

	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, busyID, ids[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindScheduledAt_NoRowIsNilNotError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	doctorID := uuid.New()
	date := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE doctor_id = \$1 AND date = \$2 AND status = \$3`).
		WithArgs(doctorID, date, string(entity.AppointmentStatusScheduled), 1).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()))

	appointment, err := repo.FindScheduledAt(db, doctorID, date)

	require.NoError(t, err)
	assert.Nil(t, appointment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDuplicate_ExcludesOwnID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	patientID := uuid.New()
	doctorID := uuid.New()
	ownID := uuid.New()
	date := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "appointments" WHERE \(patient_id = \$1 AND doctor_id = \$2 AND date = \$3 AND status = \$4\) AND id != \$5`).
		WithArgs(patientID, doctorID, date, string(entity.AppointmentStatusScheduled), ownID, 1).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()))

	duplicate, err := repo.FindDuplicate(db, patientID, doctorID, date, &ownID)

	require.NoError(t, err)
	assert.Nil(t, duplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_ReportsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()
	mock.ExpectExec(`UPDATE "appointments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.UpdateStatus(db, id, entity.AppointmentStatusAttended)

	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ZeroRowsForUnknownID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository()

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM "appointments" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.Delete(db, id)

	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	require.NoError(t, mock.ExpectationsWereMet())
}
