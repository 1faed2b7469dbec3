package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB opens gorm's postgres dialector on top of sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	dialector := postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
		DSN:        "sqlmock_db_0",
	})

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open GORM connection: %v", err)
	}
	return conn, mock
}

func TestGetByKey_SQLMock(t *testing.T) {
	conn, mock := setupMockDB(t)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "key", "value"}).
		AddRow(id.String(), "mail.support_address", "support@sandra.app")

	mock.ExpectQuery(`SELECT \* FROM "configs" WHERE key = \$1 AND "configs"\."deleted_at" IS NULL ORDER BY "configs"\."id" LIMIT \$2`).
		WithArgs("mail.support_address", 1).
		WillReturnRows(rows)

	cfg, err := NewConfigRepository(conn).GetByKey("mail.support_address")

	require.NoError(t, err)
	assert.Equal(t, id, cfg.ID)
	assert.Equal(t, "support@sandra.app", cfg.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByKey_NotFound_SQLMock(t *testing.T) {
	conn, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "configs" WHERE key = \$1 AND "configs"\."deleted_at" IS NULL`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value"}))

	_, err := NewConfigRepository(conn).GetByKey("missing")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByPrefix_SQLMock(t *testing.T) {
	conn, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "key", "value"}).
		AddRow(uuid.NewString(), "feature.otp_resend", "true").
		AddRow(uuid.NewString(), "feature.sandra", "false")

	mock.ExpectQuery(`SELECT \* FROM "configs" WHERE key LIKE \$1 AND "configs"\."deleted_at" IS NULL ORDER BY key`).
		WithArgs("feature.%").
		WillReturnRows(rows)

	got, err := NewConfigRepository(conn).ListByPrefix("feature.")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "feature.otp_resend", got[0].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_IsSoft_SQLMock(t *testing.T) {
	conn, mock := setupMockDB(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "configs" SET "deleted_at"=\$1 WHERE id = \$2 AND "configs"\."deleted_at" IS NULL`).
		WithArgs(sqlmock.AnyArg(), id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewConfigRepository(conn).Delete(id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeDeleted_SQLMock(t *testing.T) {
	conn, mock := setupMockDB(t)
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "configs" WHERE deleted_at IS NOT NULL AND deleted_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	purged, err := NewConfigRepository(conn).PurgeDeleted(cutoff)

	require.NoError(t, err)
	assert.EqualValues(t, 3, purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "feature.", escapeLike("feature."))
	assert.Equal(t, `a\_b\%c\\d`, escapeLike(`a_b%c\d`))
}
