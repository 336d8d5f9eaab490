package customer_test

import (
	"context"
	"testing"

	"go-salescrm/internal/customer"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Writes issued through a WithTx-derived repository must land inside the
// caller's transaction. sqlmock verifies ordering: the UPDATE has to appear
// between BEGIN and COMMIT on the single mocked connection, which only
// happens when the session's pool is the tx itself.
func TestRepository_WithTx_RoutesWritesThroughTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	repo := customer.NewRepository(gdb)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "customers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	cust := &customer.Customer{
		ID:      uuid.New(),
		Name:    "PT Maju",
		OwnerID: uuid.New(),
		Status:  customer.StageCall,
	}
	assert.NoError(t, repo.WithTx(tx).Update(ctx, cust))
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A rollback must discard the staged write without a COMMIT ever reaching
// the connection.
func TestRepository_WithTx_RollbackDiscardsWrite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	repo := customer.NewRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "customers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	cust := &customer.Customer{
		ID:      uuid.New(),
		Name:    "PT Maju",
		OwnerID: uuid.New(),
		Status:  customer.StageCall,
	}
	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), cust))
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}
