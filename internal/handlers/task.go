package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-task-api/internal/dto"
	apierrors "github.com/mizuki-dev/project-task-api/internal/errors"
	"github.com/mizuki-dev/project-task-api/internal/middleware"
	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/services"
)

// TaskHandler serves the project-scoped task endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the project's tasks visible to the caller
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	tasks, err := h.taskService.ListTasks(projectID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDTOs(tasks)})
}

// CreateTask creates a new task in the project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type CreateTaskRequest struct {
		Name         string  `json:"name" binding:"required"`
		AssigneeID   *uint64 `json:"assignee_id"`
		LinkedTaskID *uint64 `json:"linked_task_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(projectID, userID, services.CreateTaskInput{
		Name:         req.Name,
		AssigneeID:   req.AssigneeID,
		LinkedTaskID: req.LinkedTaskID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(projectID, taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	// Parse raw JSON to tell "set to null" apart from "omitted". A field
	// that is present but wrongly typed is rejected, not dropped.
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if name, ok := rawReq["name"]; ok {
		nameStr, ok := name.(string)
		if !ok {
			apierrors.BadRequest(c, "name must be a string")
			return
		}
		input.Name = &nameStr
	}
	if status, ok := rawReq["status"]; ok {
		statusStr, ok := status.(string)
		if !ok {
			apierrors.BadRequest(c, "status must be a string")
			return
		}
		taskStatus := models.TaskStatus(statusStr)
		input.Status = &taskStatus
	}
	if assignee, ok := rawReq["assignee_id"]; ok {
		if assignee == nil {
			input.ClearAssignee = true
		} else {
			id, ok := parseIDValue(assignee)
			if !ok {
				apierrors.BadRequest(c, "assignee_id must be a positive integer or null")
				return
			}
			input.AssigneeID = &id
		}
	}
	if linked, ok := rawReq["linked_task_id"]; ok {
		if linked == nil {
			input.ClearLinkedTask = true
		} else {
			id, ok := parseIDValue(linked)
			if !ok {
				apierrors.BadRequest(c, "linked_task_id must be a positive integer or null")
				return
			}
			input.LinkedTaskID = &id
		}
	}

	task, err := h.taskService.UpdateTask(projectID, taskID, userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ReplaceTask overwrites a task. A replace always restores a soft-deleted
// task to visibility.
func (h *TaskHandler) ReplaceTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type ReplaceTaskRequest struct {
		Name         string            `json:"name" binding:"required"`
		Status       models.TaskStatus `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
		AssigneeID   *uint64           `json:"assignee_id"`
		LinkedTaskID *uint64           `json:"linked_task_id"`
	}

	var req ReplaceTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.ReplaceTask(projectID, taskID, userID, services.ReplaceTaskInput{
		Name:         req.Name,
		Status:       req.Status,
		AssigneeID:   req.AssigneeID,
		LinkedTaskID: req.LinkedTaskID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft-deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.SoftDeleteTask(projectID, taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ForceDeleteTask permanently removes a task
func (h *TaskHandler) ForceDeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.ForceDeleteTask(projectID, taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTaskCreator returns the user who created the task. Read access follows
// the single-task rules.
func (h *TaskHandler) GetTaskCreator(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(projectID, taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(task.Creator))
}

// GetTaskAssignee returns the task's assignee, or 404 when unassigned.
func (h *TaskHandler) GetTaskAssignee(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(projectID, taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	if task.Assignee == nil {
		apierrors.NotFound(c, "task has no assignee")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*task.Assignee))
}

// respondTaskError maps service errors to HTTP responses. Membership and
// payload-consistency failures surface as not-found so that task and
// project existence is not leaked to outsiders.
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAssignmentForbidden),
		errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskUnauthorized):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrNotProjectMember),
		errors.Is(err, services.ErrAssigneeNotMember),
		errors.Is(err, services.ErrLinkedTaskNotFound),
		errors.Is(err, services.ErrLinkedTaskCrossProject),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
