package services

import (
	"errors"
	"fmt"

	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"gorm.io/gorm"
)

var ErrProjectNameRequired = errors.New("project name is required")

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProject creates a project and makes its creator an admin member.
func (s *ProjectService) CreateProject(name string, creatorID uint64) (*models.Project, error) {
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:      name,
		CreatedBy: creatorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    creatorID,
		Role:      models.RoleAdmin,
	}
	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	return project, nil
}

// ListProjects returns the projects the user is a member of.
func (s *ProjectService) ListProjects(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProjectCreator returns the user who created the project.
func (s *ProjectService) GetProjectCreator(projectID uint64) (*models.User, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	creator, err := s.userRepo.FindByID(project.CreatedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find project creator: %w", err)
	}

	return creator, nil
}
