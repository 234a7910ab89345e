package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func medicationColumns() []string {
	return []string{"id", "name", "description", "diseases", "created_at", "updated_at"}
}

// Tag matching folds case on both sides, so "Diabetes" and "diabetes" hit
// the same rows.
func TestFindByDisease_MatchesCaseInsensitively(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMedicationRepository()

	mock.ExpectQuery(`SELECT \* FROM "medications" WHERE LOWER\(\$1\) = ANY \(SELECT LOWER\(unnest\(diseases\)\)\) ORDER BY name ASC`).
		WithArgs("Diabetes").
		WillReturnRows(sqlmock.NewRows(medicationColumns()).
			AddRow(uuid.New(), "Metformin", "Biguanide", "{diabetes}", time.Now(), time.Now()))

	medications, err := repo.FindByDisease(db, "Diabetes")

	require.NoError(t, err)
	require.Len(t, medications, 1)
	assert.Equal(t, "Metformin", medications[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
