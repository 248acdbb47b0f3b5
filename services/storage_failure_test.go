package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-orders/database"
	"github.com/yeremiapane/restaurant-orders/menu"
	"github.com/yeremiapane/restaurant-orders/testutil"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	testutil.QuietLogs()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), database.GormConfig())
	require.NoError(t, err)
	return db, mock
}

func TestPlaceReportsUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errConnRefused)

	s := NewOrderService(db, menu.Default())
	_, err := s.Place(context.Background(), map[string]int{"pizza": 1}, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, errConnRefused)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).WillReturnError(errConnRefused)
	mock.ExpectRollback()

	s := NewOrderService(db, menu.Default())
	_, err := s.Place(context.Background(), map[string]int{"pizza": 1}, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReportsUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).WillReturnError(errConnRefused)

	s := NewOrderService(db, menu.Default())
	_, err := s.List(context.Background(), nil, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticateReportsUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errConnRefused)

	s := NewUserService(db)
	_, err := s.Authenticate(context.Background(), "a@example.com", "pw")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}
