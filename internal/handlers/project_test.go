package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-task-api/internal/database"
	"github.com/mizuki-dev/project-task-api/internal/dto"
	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"github.com/mizuki-dev/project-task-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type projectTestEnv struct {
	db      *gorm.DB
	handler *ProjectHandler
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
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

	database.SetDB(db)

	projectRepo := repository.NewProjectRepository(db)
	userRepo := repository.NewUserRepository(db)
	handler := NewProjectHandler(services.NewProjectService(projectRepo, userRepo))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return projectTestEnv{
		db:      db,
		handler: handler,
	}
}

func TestProjectHandler_GetProjectCreator(t *testing.T) {
	env := setupProjectTestEnv(t)

	creator := &models.User{Email: "creator@example.com", PasswordHash: "hashedpassword"}
	require.NoError(t, env.db.Create(creator).Error)
	project := &models.Project{Name: "Project", CreatedBy: creator.ID}
	require.NoError(t, env.db.Create(project).Error)

	r := gin.New()
	r.GET("/projects/:projectId/creator", env.handler.GetProjectCreator)

	req := httptest.NewRequest(http.MethodGet, "/projects/"+strconv.FormatUint(project.ID, 10)+"/creator", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, creator.Email, response.Email)
	require.Equal(t, creator.ID, response.ID)
}

func TestProjectHandler_GetProjectCreator_MissingProjectReturns404(t *testing.T) {
	env := setupProjectTestEnv(t)

	r := gin.New()
	r.GET("/projects/:projectId/creator", env.handler.GetProjectCreator)

	req := httptest.NewRequest(http.MethodGet, "/projects/999/creator", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
