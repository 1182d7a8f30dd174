package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/spolyakova/book-catalog/internal/models"
)

func newSqlmockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestBookWriteRepository_SaveAll_RollbackOnInsertError(t *testing.T) {
	sqlxDB, mock := newSqlmockDB(t)
	repo := NewBookWriteRepository(sqlxDB)

	batch := []models.BookDB{
		{Title: "Dune", Author: "Frank Herbert", YearPublished: 1965},
		{Title: "Hyperion", Author: "Dan Simmons", YearPublished: 1989},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO books").
		WithArgs("Dune", "Frank Herbert", 1965, int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO books").
		WithArgs("Hyperion", "Dan Simmons", 1989, int64(0)).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	created, err := repo.SaveAll(context.Background(), batch)
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_SaveAll_CommitError(t *testing.T) {
	sqlxDB, mock := newSqlmockDB(t)
	repo := NewBookWriteRepository(sqlxDB)

	batch := []models.BookDB{
		{Title: "Dune", Author: "Frank Herbert", YearPublished: 1965},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO books").
		WithArgs("Dune", "Frank Herbert", 1965, int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	created, err := repo.SaveAll(context.Background(), batch)
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWriteRepository_SaveAll_Success(t *testing.T) {
	sqlxDB, mock := newSqlmockDB(t)
	repo := NewBookWriteRepository(sqlxDB)

	batch := []models.BookDB{
		{Title: "Dune", Author: "Frank Herbert", YearPublished: 1965},
		{Title: "Hyperion", Author: "Dan Simmons", YearPublished: 1989},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO books").
		WithArgs("Dune", "Frank Herbert", 1965, int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO books").
		WithArgs("Hyperion", "Dan Simmons", 1989, int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	created, err := repo.SaveAll(context.Background(), batch)
	assert.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, int64(1), created[0].ID)
	assert.Equal(t, int64(2), created[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
