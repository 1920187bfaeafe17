package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Discard})
	assert.NoError(t, err)
	return gdb, mock
}

func openSessionRows(ids []uuid.UUID, gymID, memberID uuid.UUID, checkIns []time.Time) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "gym_id", "member_id", "check_in", "check_out", "source"})
	for i, id := range ids {
		rows.AddRow(id, gymID, memberID, checkIns[i], nil, SourceQRScan)
	}
	return rows
}

// Reading open sessions twice with no write in between returns the same rows
// in the same order.
func TestRepository_FindOpenSessions_RepeatableRead(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	gymID := uuid.New()
	memberID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	checkIns := []time.Time{
		time.Now().UTC().Add(-10 * time.Minute),
		time.Now().UTC().Add(-2 * time.Hour),
	}

	query := `SELECT (.+) FROM "checkins" WHERE gym_id = (.+) AND member_id = (.+) AND check_out IS NULL(.*)ORDER BY check_in DESC`
	mock.ExpectQuery(query).
		WithArgs(gymID.String(), memberID.String()).
		WillReturnRows(openSessionRows(ids, gymID, memberID, checkIns))
	mock.ExpectQuery(query).
		WithArgs(gymID.String(), memberID.String()).
		WillReturnRows(openSessionRows(ids, gymID, memberID, checkIns))

	first, err := repo.FindOpenSessions(context.Background(), gymID.String(), memberID.String())
	assert.NoError(t, err)
	second, err := repo.FindOpenSessions(context.Background(), gymID.String(), memberID.String())
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
	assert.Equal(t, ids[0], first[0].ID)
	assert.True(t, first[0].CheckIn.After(first[1].CheckIn))

	// Only the two SELECTs ran; no write was issued between the reads.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindOpenSessionsExcluding_SkipsKnownRows(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewRepository(gdb)

	gymID := uuid.New()
	memberID := uuid.New()
	known := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "checkins" WHERE gym_id = (.+) AND member_id = (.+) AND check_out IS NULL AND id NOT IN (.+)ORDER BY check_in DESC`).
		WithArgs(gymID.String(), memberID.String(), known).
		WillReturnRows(openSessionRows(nil, gymID, memberID, nil))

	rows, err := repo.FindOpenSessionsExcluding(context.Background(), gymID.String(), memberID.String(), []uuid.UUID{known})
	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
