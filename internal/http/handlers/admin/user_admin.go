package admin

import (
	"errors"
	"strings"

	"github.com/tijara-next/internal/http/response"
	"github.com/tijara-next/internal/repository"
	"github.com/tijara-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateUserRequest is the admin account patch payload.
type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// SetUserRolesRequest replaces a user's panel role bindings.
type SetUserRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// ListUsers pages through accounts.
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := pagination(c)

	users, total, err := h.UserAuthService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "user list failed", err)
		return
	}
	response.SuccessWithPage(c, users, paginationMeta(page, pageSize, total))
}

// GetUser fetches one account.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUser(id)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, user)
}

// UpdateUser applies an admin patch to an account.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	user, err := h.UserAuthService.UpdateUser(id, service.UpdateUserInput{
		Name:   req.Name,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.SuccessWithMsg(c, "user updated", user)
}

// DeleteUser removes an account.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.DeleteUser(id); err != nil {
		respondUserError(c, err)
		return
	}
	response.SuccessWithMsg(c, "user deleted", nil)
}

// SetUserRoles replaces a user's panel role bindings.
func (h *Handler) SetUserRoles(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SetUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if _, err := h.UserAuthService.GetUser(id); err != nil {
		response.NotFound(c, "user not found")
		return
	}
	if err := h.AuthzService.SetUserRoles(id, req.Roles); err != nil {
		respondError(c, response.CodeInternal, "role update failed", err)
		return
	}
	roles, err := h.AuthzService.GetUserRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "role fetch failed", err)
		return
	}
	response.SuccessWithMsg(c, "roles updated", gin.H{"roles": roles})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "user not found")
	default:
		respondError(c, response.CodeInternal, "user operation failed", err)
	}
}
