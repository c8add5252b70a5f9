package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresBackend_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	backend := NewPostgresBackend(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store WHERE key = \\$1").
			WithArgs(KeyVehicles).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"id":"1"}]`)))

		data, err := backend.Get(ctx, KeyVehicles)
		assert.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(data))
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store WHERE key = \\$1").
			WithArgs(KeyRentalRequests).
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, err := backend.Get(ctx, KeyRentalRequests)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBackend_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	a := NewAdapter(NewPostgresBackend(db), 0)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_store").
			WithArgs(KeyVehicles, []byte(`[]`), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.True(t, a.WriteRaw(ctx, KeyVehicles, []byte(`[]`)))
	})

	t.Run("Failure is reported as false", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_store").
			WithArgs(KeyVehicles, []byte(`[]`), sqlmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))

		assert.False(t, a.WriteRaw(ctx, KeyVehicles, []byte(`[]`)))
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM kv_store WHERE key = \\$1").
			WithArgs(KeyCurrentUser).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.True(t, a.Remove(ctx, KeyCurrentUser))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
