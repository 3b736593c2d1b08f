package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskUnauthorized  = errors.New("you are not authorized to access this resource")
	ErrInvalidTaskStatus = errors.New("invalid task status")
)

// TaskService applies per-operation authorization on top of the validator
// and produces the final mutation to persist.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	validator   *TaskValidator
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		validator:   NewTaskValidator(projectRepo, taskRepo),
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name         string
	AssigneeID   *uint64
	LinkedTaskID *uint64
}

// UpdateTaskInput represents a partial update. Pointer fields are applied
// only when set; the Clear flags distinguish "set to null" from "omitted".
type UpdateTaskInput struct {
	Name            *string
	Status          *models.TaskStatus
	AssigneeID      *uint64
	ClearAssignee   bool
	LinkedTaskID    *uint64
	ClearLinkedTask bool
}

// ReplaceTaskInput represents a full overwrite of a task's mutable fields
type ReplaceTaskInput struct {
	Name         string
	Status       models.TaskStatus
	AssigneeID   *uint64
	LinkedTaskID *uint64
}

// CreateTask validates the payload and persists a new task. The task starts
// in the todo status, and the creator's role at this moment is frozen into
// the created-by-admin flag.
func (s *TaskService) CreateTask(projectID, actorID uint64, input CreateTaskInput) (*models.Task, error) {
	validation, err := s.validator.ValidateTask(projectID, actorID, TaskProposal{
		AssigneeID:   input.AssigneeID,
		LinkedTaskID: input.LinkedTaskID,
	})
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:           input.Name,
		Status:         models.TaskStatusTodo,
		ProjectID:      projectID,
		CreatedBy:      actorID,
		AssigneeID:     input.AssigneeID,
		LinkedTaskID:   input.LinkedTaskID,
		CreatedByAdmin: validation.Membership.Role == models.RoleAdmin,
		IsDeleted:      false,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Assignee")
}

// GetTask returns a single task. A task in another project or a soft-deleted
// task is reported as not found, indistinguishable from true absence. Only
// the creator or the assignee may read it; admins get no override here.
func (s *TaskService) GetTask(projectID, taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.ProjectID != projectID {
		return nil, ErrTaskNotFound
	}
	if task.IsDeleted {
		return nil, ErrTaskNotFound
	}
	if !isCreatorOrAssignee(task, actorID) {
		return nil, ErrTaskUnauthorized
	}

	return task, nil
}

// ListTasks returns the project's tasks visible to the actor. Admins see
// everything; members see tasks they created, tasks assigned to them, and
// tasks not created by an admin. An empty visible set is reported as not
// found rather than an empty collection, matching the existing API contract.
func (s *TaskService) ListTasks(projectID, actorID uint64) ([]models.Task, error) {
	membership, err := s.projectRepo.FindMember(projectID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskUnauthorized
		}
		return nil, fmt.Errorf("failed to find project membership: %w", err)
	}

	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	visible := tasks
	if membership.Role != models.RoleAdmin {
		visible = make([]models.Task, 0, len(tasks))
		for _, task := range tasks {
			if isCreatorOrAssignee(&task, actorID) || !task.CreatedByAdmin {
				visible = append(visible, task)
			}
		}
	}

	if len(visible) == 0 {
		return nil, ErrTaskNotFound
	}

	return visible, nil
}

// UpdateTask applies a partial update. The caller must be the task's
// creator, its assignee, or a project admin. The soft-delete flag is never
// touched: updating a soft-deleted task does not restore it.
func (s *TaskService) UpdateTask(projectID, taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findProjectTask(projectID, taskID)
	if err != nil {
		return nil, err
	}

	validation, err := s.validator.ValidateTask(projectID, actorID, TaskProposal{
		AssigneeID:   input.AssigneeID,
		LinkedTaskID: input.LinkedTaskID,
	})
	if err != nil {
		return nil, err
	}

	if !s.canModify(task, actorID, validation) {
		return nil, ErrTaskUnauthorized
	}

	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.ClearAssignee {
		fields["assignee_id"] = nil
	} else if input.AssigneeID != nil {
		fields["assignee_id"] = *input.AssigneeID
	}
	if input.ClearLinkedTask {
		fields["linked_task_id"] = nil
	} else if input.LinkedTaskID != nil {
		fields["linked_task_id"] = *input.LinkedTaskID
	}
	if input.Status != nil && *input.Status != task.Status {
		fields["status"] = *input.Status
		if *input.Status == models.TaskStatusDone {
			fields["done_at"] = time.Now()
		} else {
			fields["done_at"] = nil
		}
	}

	if err := s.taskRepo.UpdateFields(task.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Assignee")
}

// ReplaceTask overwrites the task's mutable fields. A replace always resets
// the soft-delete flag, so replacing a soft-deleted task restores it.
func (s *TaskService) ReplaceTask(projectID, taskID, actorID uint64, input ReplaceTaskInput) (*models.Task, error) {
	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.findProjectTask(projectID, taskID)
	if err != nil {
		return nil, err
	}

	validation, err := s.validator.ValidateTask(projectID, actorID, TaskProposal{
		AssigneeID:   input.AssigneeID,
		LinkedTaskID: input.LinkedTaskID,
	})
	if err != nil {
		return nil, err
	}

	if !s.canModify(task, actorID, validation) {
		return nil, ErrTaskUnauthorized
	}

	if input.Status == models.TaskStatusDone {
		if task.Status != models.TaskStatusDone || task.DoneAt == nil {
			now := time.Now()
			task.DoneAt = &now
		}
	} else {
		task.DoneAt = nil
	}

	task.Name = input.Name
	task.Status = input.Status
	task.AssigneeID = input.AssigneeID
	task.LinkedTaskID = input.LinkedTaskID
	task.IsDeleted = false
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Replace(task); err != nil {
		return nil, fmt.Errorf("failed to replace task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Assignee")
}

// SoftDeleteTask hides a task from normal reads. Deleting an already
// soft-deleted task is a no-op in effect. The payload-free validation still
// confirms the caller is a legitimate project participant.
func (s *TaskService) SoftDeleteTask(projectID, taskID, actorID uint64) error {
	task, err := s.findProjectTask(projectID, taskID)
	if err != nil {
		return err
	}

	validation, err := s.validator.ValidateTask(projectID, actorID, TaskProposal{})
	if err != nil {
		return err
	}

	if !s.canModify(task, actorID, validation) {
		return ErrTaskUnauthorized
	}

	task.IsDeleted = true
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Replace(task); err != nil {
		return fmt.Errorf("failed to soft delete task: %w", err)
	}

	return nil
}

// ForceDeleteTask permanently removes a task regardless of its state.
func (s *TaskService) ForceDeleteTask(projectID, taskID, actorID uint64) error {
	task, err := s.findProjectTask(projectID, taskID)
	if err != nil {
		return err
	}

	validation, err := s.validator.ValidateTask(projectID, actorID, TaskProposal{})
	if err != nil {
		return err
	}

	if !s.canModify(task, actorID, validation) {
		return ErrTaskUnauthorized
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// findProjectTask fetches a task and hides its existence when it belongs to
// a different project than the one addressed.
func (s *TaskService) findProjectTask(projectID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.ProjectID != projectID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

// canModify reports whether the actor may mutate the task: its creator, its
// assignee, or a project admin.
func (s *TaskService) canModify(task *models.Task, actorID uint64, validation *TaskValidation) bool {
	return isCreatorOrAssignee(task, actorID) || validation.Membership.Role == models.RoleAdmin
}

func isCreatorOrAssignee(task *models.Task, userID uint64) bool {
	if task.CreatedBy == userID {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == userID
}
