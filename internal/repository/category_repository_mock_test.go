package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func TestDeleteWithTasks_CommitsBothDeletes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `categories`").
		WithArgs(uint64(3), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `tasks`").
		WithArgs(uint64(3), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	deleted, err := repo.DeleteWithTasks(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithTasks_RollsBackWhenTaskDeleteFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)
	storageErr := errors.New("connection reset")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `categories`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `tasks`").
		WillReturnError(storageErr)
	mock.ExpectRollback()

	_, err := repo.DeleteWithTasks(context.Background(), 3, 1)
	assert.ErrorIs(t, err, storageErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWithTasks_NotFoundRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `categories`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.DeleteWithTasks(context.Background(), 3, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskList_StorageFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	storageErr := errors.New("database is down")

	mock.ExpectQuery("SELECT \\* FROM `tasks`").WillReturnError(storageErr)

	_, err := repo.List(context.Background(), TaskFilter{UserID: 1})
	assert.ErrorIs(t, err, storageErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
