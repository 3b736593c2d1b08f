package repository

import (
	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/utils"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// ListByUserID lists the projects a user is a member of
	ListByUserID(userID uint64) ([]models.Project, error)

	// FindMember finds a user's membership in a project. Duplicate
	// memberships are not prevented elsewhere; the first match wins.
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// AddMember adds a membership record to a project
	AddMember(member *models.ProjectMember) error
}

// MembershipFilter holds filtering options for listing membership records
type MembershipFilter struct {
	ProjectID *uint64
	UserID    *uint64
	Role      *models.ProjectRole
}

// MembershipRepository defines the interface for membership record access
type MembershipRepository interface {
	// Create creates a membership record
	Create(member *models.ProjectMember) error

	// FindByID finds a membership record by ID
	FindByID(id uint64) (*models.ProjectMember, error)

	// List retrieves membership records matching the filter
	List(filter MembershipFilter) ([]models.ProjectMember, error)

	// Count counts membership records matching the filter
	Count(filter MembershipFilter) (int64, error)

	// UpdateFields applies a partial update to a membership record
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Replace overwrites a membership record
	Replace(member *models.ProjectMember) error

	// Delete removes a membership record
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading. Soft-deleted
	// tasks are returned; visibility rules live in the service layer.
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject retrieves a project's tasks, excluding soft-deleted ones
	ListByProject(projectID uint64) ([]models.Task, error)

	// ListByStatus retrieves all tasks in the given status across every
	// project, soft-deleted ones included. Used by the retention sweeper.
	ListByStatus(status models.TaskStatus) ([]models.Task, error)

	// UpdateFields applies a partial update to a task
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Replace overwrites a task record
	Replace(task *models.Task) error

	// Delete permanently removes a task
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination, returning the total count
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// Count counts all users
	Count() (int64, error)

	// UpdateFields applies a partial update to a user record
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Replace overwrites a user record
	Replace(user *models.User) error

	// Delete permanently removes a user
	Delete(id uint64) error
}
