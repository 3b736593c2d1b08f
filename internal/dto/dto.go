package dto

import (
	"time"

	"github.com/mizuki-dev/project-task-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MembershipDTO represents a project membership in API responses
type MembershipDTO struct {
	ID        uint64             `json:"id"`
	ProjectID uint64             `json:"project_id"`
	UserID    uint64             `json:"user_id"`
	Role      models.ProjectRole `json:"role"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64            `json:"id"`
	Name           string            `json:"name"`
	Status         models.TaskStatus `json:"status"`
	ProjectID      uint64            `json:"project_id"`
	CreatedBy      uint64            `json:"created_by"`
	AssigneeID     *uint64           `json:"assignee_id"`
	LinkedTaskID   *uint64           `json:"linked_task_id"`
	CreatedByAdmin bool              `json:"created_by_admin"`
	DoneAt         *time.Time        `json:"done_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Creator        *UserDTO          `json:"creator,omitempty"`
	Assignee       *UserDTO          `json:"assignee,omitempty"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users []UserDTO `json:"users"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:        project.ID,
		Name:      project.Name,
		CreatedBy: project.CreatedBy,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}
}

// ToMembershipDTO converts a ProjectMember model to MembershipDTO
func ToMembershipDTO(member models.ProjectMember) MembershipDTO {
	return MembershipDTO{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		Name:           task.Name,
		Status:         task.Status,
		ProjectID:      task.ProjectID,
		CreatedBy:      task.CreatedBy,
		AssigneeID:     task.AssigneeID,
		LinkedTaskID:   task.LinkedTaskID,
		CreatedByAdmin: task.CreatedByAdmin,
		DoneAt:         task.DoneAt,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	// Include assignee if preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
