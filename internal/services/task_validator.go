package services

import (
	"errors"
	"fmt"

	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrNotProjectMember       = errors.New("user not found in project")
	ErrAssigneeNotMember      = errors.New("assignee not found in project")
	ErrLinkedTaskNotFound     = errors.New("linked task not found")
	ErrLinkedTaskCrossProject = errors.New("linked task not found in project")
	ErrAssignmentForbidden    = errors.New("you can not assign a task to another user")
)

// TaskProposal carries the proposed task fields that need cross-record
// checks. Flows that have no payload (delete) pass the zero value.
type TaskProposal struct {
	AssigneeID   *uint64
	LinkedTaskID *uint64
}

// TaskValidation is returned on success so callers can reuse the lookups
// instead of fetching the project and membership again.
type TaskValidation struct {
	Membership *models.ProjectMember
	Project    *models.Project
}

// TaskValidator checks that a proposed task mutation is consistent with the
// project it targets and that the acting user has standing in that project.
type TaskValidator struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewTaskValidator creates a new TaskValidator
func NewTaskValidator(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *TaskValidator {
	return &TaskValidator{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// ValidateTask runs the validation chain, short-circuiting on the first
// failure:
//  1. the project must exist
//  2. the acting user must be a member of the project
//  3. the assignee, if set, must be a member of the project
//  4. the linked task, if set, must exist and belong to the same project
//  5. a caller with the member role may not set an assignee at all,
//     themselves included
func (v *TaskValidator) ValidateTask(projectID, userID uint64, proposal TaskProposal) (*TaskValidation, error) {
	project, err := v.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	membership, err := v.projectRepo.FindMember(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotProjectMember
		}
		return nil, fmt.Errorf("failed to find project membership: %w", err)
	}

	if proposal.AssigneeID != nil {
		if _, err := v.projectRepo.FindMember(projectID, *proposal.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotMember
			}
			return nil, fmt.Errorf("failed to find assignee membership: %w", err)
		}
	}

	if proposal.LinkedTaskID != nil {
		linked, err := v.taskRepo.FindByID(*proposal.LinkedTaskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLinkedTaskNotFound
			}
			return nil, fmt.Errorf("failed to find linked task: %w", err)
		}
		// Same-project only. Acyclicity is not checked; a link may point
		// at the task itself.
		if linked.ProjectID != projectID {
			return nil, ErrLinkedTaskCrossProject
		}
	}

	if membership.Role == models.RoleMember && proposal.AssigneeID != nil {
		return nil, ErrAssignmentForbidden
	}

	return &TaskValidation{
		Membership: membership,
		Project:    project,
	}, nil
}
