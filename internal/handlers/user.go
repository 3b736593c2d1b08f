package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-task-api/internal/dto"
	apierrors "github.com/mizuki-dev/project-task-api/internal/errors"
	"github.com/mizuki-dev/project-task-api/internal/services"
	"github.com/mizuki-dev/project-task-api/internal/utils"
)

// UserHandler serves user listing endpoints.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

// ListUsers returns a paginated list of users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListUsers(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	dtos := make([]dto.UserDTO, len(users))
	for i, user := range users {
		dtos[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Users: dtos,
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
	})
}

// CountUsers returns the number of users
func (h *UserHandler) CountUsers(c *gin.Context) {
	count, err := h.userService.CountUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to count users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.authService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update to a user record
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateUserInput
	if email, ok := rawReq["email"]; ok {
		emailStr, ok := email.(string)
		if !ok {
			apierrors.BadRequest(c, "email must be a string")
			return
		}
		input.Email = &emailStr
	}
	if password, ok := rawReq["password"]; ok {
		passwordStr, ok := password.(string)
		if !ok {
			apierrors.BadRequest(c, "password must be a string")
			return
		}
		input.Password = &passwordStr
	}

	user, err := h.userService.UpdateUser(id, input)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ReplaceUser overwrites a user record
func (h *UserHandler) ReplaceUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type ReplaceUserRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req ReplaceUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.ReplaceUser(id, services.ReplaceUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser permanently removes a user record
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondUserError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		apierrors.NotFound(c, err.Error())
		return
	}
	apierrors.InternalError(c, "")
}
