package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-task-api/internal/dto"
	apierrors "github.com/mizuki-dev/project-task-api/internal/errors"
	"github.com/mizuki-dev/project-task-api/internal/models"
	"github.com/mizuki-dev/project-task-api/internal/repository"
	"github.com/mizuki-dev/project-task-api/internal/services"
)

// MembershipHandler serves the generic membership CRUD endpoints. These are
// unrestricted beyond authentication; role enforcement happens where
// memberships are consumed.
type MembershipHandler struct {
	membershipService *services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler
func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

func membershipFilterFromQuery(c *gin.Context) repository.MembershipFilter {
	var filter repository.MembershipFilter
	if v := c.Query("project_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.ProjectID = &id
		}
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.UserID = &id
		}
	}
	if v := c.Query("role"); v != "" {
		role := models.ProjectRole(v)
		filter.Role = &role
	}
	return filter
}

// ListMemberships returns membership records matching the query filter
func (h *MembershipHandler) ListMemberships(c *gin.Context) {
	members, err := h.membershipService.ListMemberships(membershipFilterFromQuery(c))
	if err != nil {
		apierrors.InternalError(c, "Failed to list memberships")
		return
	}

	dtos := make([]dto.MembershipDTO, len(members))
	for i, member := range members {
		dtos[i] = dto.ToMembershipDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{"memberships": dtos})
}

// CountMemberships counts membership records matching the query filter
func (h *MembershipHandler) CountMemberships(c *gin.Context) {
	count, err := h.membershipService.CountMemberships(membershipFilterFromQuery(c))
	if err != nil {
		apierrors.InternalError(c, "Failed to count memberships")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetMembership returns a membership record by ID
func (h *MembershipHandler) GetMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	member, err := h.membershipService.GetMembership(id)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipDTO(*member))
}

// CreateMembership creates a membership record
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	type CreateMembershipRequest struct {
		ProjectID uint64             `json:"project_id" binding:"required"`
		UserID    uint64             `json:"user_id" binding:"required"`
		Role      models.ProjectRole `json:"role" binding:"required"`
	}

	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member := &models.ProjectMember{
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
		Role:      req.Role,
	}
	if err := h.membershipService.CreateMembership(member); err != nil {
		apierrors.InternalError(c, "Failed to create membership")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMembershipDTO(*member))
}

// UpdateMembership applies a partial update to a membership record
func (h *MembershipHandler) UpdateMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	fields := map[string]interface{}{}
	if role, ok := rawReq["role"]; ok {
		roleStr, ok := role.(string)
		if !ok {
			apierrors.BadRequest(c, "role must be a string")
			return
		}
		fields["role"] = roleStr
	}
	if len(fields) == 0 {
		apierrors.BadRequest(c, "No updatable fields provided")
		return
	}

	if err := h.membershipService.UpdateMembership(id, fields); err != nil {
		respondMembershipError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReplaceMembership overwrites a membership record
func (h *MembershipHandler) ReplaceMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	type ReplaceMembershipRequest struct {
		ProjectID uint64             `json:"project_id" binding:"required"`
		UserID    uint64             `json:"user_id" binding:"required"`
		Role      models.ProjectRole `json:"role" binding:"required"`
	}

	var req ReplaceMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member := &models.ProjectMember{
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
		Role:      req.Role,
	}
	if err := h.membershipService.ReplaceMembership(id, member); err != nil {
		respondMembershipError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteMembership removes a membership record
func (h *MembershipHandler) DeleteMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	if err := h.membershipService.DeleteMembership(id); err != nil {
		respondMembershipError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondMembershipError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrMembershipNotFound) {
		apierrors.NotFound(c, err.Error())
		return
	}
	apierrors.InternalError(c, "")
}
