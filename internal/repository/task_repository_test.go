package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewTaskRepository(gormDB), mock
}

func TestTaskRepository_ListByStatus(t *testing.T) {
	repo, mock := setupMockDB(t)

	doneAt := time.Now().Add(-48 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "name", "status", "project_id", "created_by", "is_deleted", "done_at"}).
		AddRow(1, "Ship release", "DONE", 1, 1, false, doneAt).
		AddRow(2, "Write changelog", "DONE", 2, 3, true, doneAt)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `tasks` WHERE status = ?")).
		WithArgs("DONE").
		WillReturnRows(rows)

	tasks, err := repo.ListByStatus(models.TaskStatusDone)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// Soft-deleted tasks are included; the sweeper needs to see them.
	assert.True(t, tasks[1].IsDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// UpdateFields must touch only the columns it is given. In particular it
// must not stamp updated_at, so the sweeper can flip the soft-delete flag
// without disturbing the rest of the row.
func TestTaskRepository_UpdateFields_OnlyGivenColumns(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET `is_deleted`=? WHERE id = ?")).
		WithArgs(true, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateFields(7, map[string]interface{}{
		"is_deleted": true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_RemovesRow(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tasks` WHERE `tasks`.`id` = ?")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
