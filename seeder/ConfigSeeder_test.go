package seeder

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	conn, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
		DSN:        "sqlmock_db_0",
	}), &gorm.Config{})
	require.NoError(t, err)
	return conn, mock
}

// lookup is the unscoped existence check: soft-deleted rows count as present.
var lookup = regexp.QuoteMeta(`SELECT * FROM "configs" WHERE "configs"."key" = $1 ORDER BY "configs"."id" LIMIT $2`)

func TestSeedConfigs(t *testing.T) {
	conn, mock := setupMockDB(t)
	require.Len(t, DefaultConfigs, 3)

	// first default is live, second was soft-deleted, third never existed
	mock.ExpectQuery(lookup).
		WithArgs(DefaultConfigs[0].Key, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value", "deleted_at"}).
			AddRow(uuid.New().String(), DefaultConfigs[0].Key, "false", nil))
	mock.ExpectQuery(lookup).
		WithArgs(DefaultConfigs[1].Key, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value", "deleted_at"}).
			AddRow(uuid.New().String(), DefaultConfigs[1].Key, "true", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)))
	mock.ExpectQuery(lookup).
		WithArgs(DefaultConfigs[2].Key, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value", "deleted_at"}))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "configs"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	SeedConfigs(conn, zap.NewNop())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedConfigs_DefaultsUntouched(t *testing.T) {
	conn, mock := setupMockDB(t)

	for _, cfg := range DefaultConfigs {
		mock.ExpectQuery(lookup).
			WithArgs(cfg.Key, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "key", "value"}).
				AddRow(uuid.New().String(), cfg.Key, cfg.Value))
	}

	SeedConfigs(conn, zap.NewNop())

	assert.NoError(t, mock.ExpectationsWereMet())
	for _, cfg := range DefaultConfigs {
		assert.Equal(t, uuid.Nil, cfg.ID, "the shared defaults must not pick up ids from the database")
	}
}
