package sweeper

import (
	"errors"
	"testing"
	"time"

	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSweeperTestDB(t *testing.T) (*gorm.DB, repository.TaskRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, repository.NewTaskRepository(db)
}

func createSweepTask(t *testing.T, db *gorm.DB, name string, status models.TaskStatus, doneAt *time.Time) *models.Task {
	t.Helper()

	task := &models.Task{
		Name:      name,
		Status:    status,
		ProjectID: 1,
		CreatedBy: 1,
		DoneAt:    doneAt,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func taskIsDeleted(t *testing.T, db *gorm.DB, id uint64) bool {
	t.Helper()

	var task models.Task
	require.NoError(t, db.First(&task, id).Error)
	return task.IsDeleted
}

func TestSweepOnce_ExpiredDoneTaskIsSoftDeleted(t *testing.T) {
	db, taskRepo := setupSweeperTestDB(t)

	expired := time.Now().Add(-25 * time.Hour)
	task := createSweepTask(t, db, "Old done task", models.TaskStatusDone, &expired)

	s := New(taskRepo, DefaultInterval, 24*time.Hour)
	s.SweepOnce()

	assert.True(t, taskIsDeleted(t, db, task.ID))
}

func TestSweepOnce_RecentDoneTaskIsKept(t *testing.T) {
	db, taskRepo := setupSweeperTestDB(t)

	recent := time.Now().Add(-1 * time.Hour)
	task := createSweepTask(t, db, "Fresh done task", models.TaskStatusDone, &recent)

	s := New(taskRepo, DefaultInterval, 24*time.Hour)
	s.SweepOnce()

	assert.False(t, taskIsDeleted(t, db, task.ID))
}

// A done task without a recorded done timestamp is never swept, regardless
// of its age.
func TestSweepOnce_DoneTaskWithoutTimestampIsKept(t *testing.T) {
	db, taskRepo := setupSweeperTestDB(t)

	task := createSweepTask(t, db, "No timestamp", models.TaskStatusDone, nil)

	s := New(taskRepo, DefaultInterval, 24*time.Hour)
	s.SweepOnce()

	assert.False(t, taskIsDeleted(t, db, task.ID))
}

func TestSweepOnce_NonDoneTasksAreIgnored(t *testing.T) {
	db, taskRepo := setupSweeperTestDB(t)

	old := time.Now().Add(-48 * time.Hour)
	todo := createSweepTask(t, db, "Todo", models.TaskStatusTodo, &old)
	inProgress := createSweepTask(t, db, "In progress", models.TaskStatusInProgress, &old)

	s := New(taskRepo, DefaultInterval, 24*time.Hour)
	s.SweepOnce()

	assert.False(t, taskIsDeleted(t, db, todo.ID))
	assert.False(t, taskIsDeleted(t, db, inProgress.ID))
}

func TestSweepOnce_AlreadyDeletedTaskStaysDeleted(t *testing.T) {
	db, taskRepo := setupSweeperTestDB(t)

	expired := time.Now().Add(-30 * time.Hour)
	task := createSweepTask(t, db, "Swept twice", models.TaskStatusDone, &expired)

	s := New(taskRepo, DefaultInterval, 24*time.Hour)
	s.SweepOnce()
	s.SweepOnce()

	assert.True(t, taskIsDeleted(t, db, task.ID))
}

func TestNew_NonPositiveDurationsFallBack(t *testing.T) {
	_, taskRepo := setupSweeperTestDB(t)

	s := New(taskRepo, 0, -time.Hour)

	assert.Equal(t, DefaultInterval, s.interval)
	assert.Equal(t, DefaultRetentionWindow, s.retention)
}

func TestStartStop_Terminates(t *testing.T) {
	_, taskRepo := setupSweeperTestDB(t)

	s := New(taskRepo, time.Hour, time.Hour)
	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

// failingTaskRepo returns errors from every operation so the sweeper's
// error handling can be exercised without a database.
type failingTaskRepo struct{}

var errRepoDown = errors.New("repository unavailable")

func (r *failingTaskRepo) Create(*models.Task) error { return errRepoDown }
func (r *failingTaskRepo) FindByID(uint64, ...string) (*models.Task, error) {
	return nil, errRepoDown
}
func (r *failingTaskRepo) ListByProject(uint64) ([]models.Task, error) { return nil, errRepoDown }
func (r *failingTaskRepo) ListByStatus(models.TaskStatus) ([]models.Task, error) {
	return nil, errRepoDown
}
func (r *failingTaskRepo) UpdateFields(uint64, map[string]interface{}) error { return errRepoDown }
func (r *failingTaskRepo) Replace(*models.Task) error                        { return errRepoDown }
func (r *failingTaskRepo) Delete(uint64) error                               { return errRepoDown }

func TestSweepOnce_ListFailureDoesNotPanic(t *testing.T) {
	s := New(&failingTaskRepo{}, DefaultInterval, DefaultRetentionWindow)

	assert.NotPanics(t, func() {
		s.SweepOnce()
	})
}
