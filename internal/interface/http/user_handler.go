package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zagroshq/cmms-api/internal/application/user"
	"github.com/zagroshq/cmms-api/internal/interface/middleware"
	"github.com/zagroshq/cmms-api/pkg/response"
	"github.com/zagroshq/cmms-api/pkg/validation"
)

// UserHandler exposes user administration. Routes are gated behind admin role
// at the router; profile update also serves the authenticated user directly.
type UserHandler struct {
	List          *user.ListHandler
	GetByID       *user.GetByIDHandler
	UpdateProfile *user.UpdateProfileHandler
	SetActive     *user.SetActiveHandler
	ChangeRoles   *user.ChangeRolesHandler
	Delete        *user.DeleteUserHandler
}

func NewUserHandler(list *user.ListHandler, getByID *user.GetByIDHandler, updateProfile *user.UpdateProfileHandler, setActive *user.SetActiveHandler, changeRoles *user.ChangeRolesHandler, del *user.DeleteUserHandler) *UserHandler {
	return &UserHandler{
		List:          list,
		GetByID:       getByID,
		UpdateProfile: updateProfile,
		SetActive:     setActive,
		ChangeRoles:   changeRoles,
		Delete:        del,
	}
}

// ListUsers GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := pagination(c)
	users, err := h.List.Handle(c.Request.Context(), user.ListQuery{Page: page, Limit: limit})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", gin.H{"page": page, "limit": limit})
}

// GetUser GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	dto, err := h.GetByID.Handle(c.Request.Context(), user.GetByIDQuery{UserID: c.Param("id")})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "user", nil)
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// UpdateMyProfile PUT /api/users/me
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	h.updateProfile(c, c.GetString(middleware.CtxUserIDKey))
}

// UpdateUserProfile PUT /api/users/:id
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	h.updateProfile(c, c.Param("id"))
}

func (h *UserHandler) updateProfile(c *gin.Context, userID string) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.UpdateProfile.Handle(c.Request.Context(), user.UpdateProfileCommand{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "profile updated", nil)
}

type setActiveRequest struct {
	Active *bool `json:"is_active" binding:"required"`
}

// SetUserActive PATCH /api/users/:id/active
func (h *UserHandler) SetUserActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	err := h.SetActive.Handle(c.Request.Context(), user.SetActiveCommand{
		UserID: c.Param("id"),
		Active: *req.Active,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"is_active": *req.Active}, "user updated", nil)
}

type changeRolesRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

// ChangeUserRoles PATCH /api/users/:id/roles
// Role changes reach issued access tokens at the next refresh, not instantly.
func (h *UserHandler) ChangeUserRoles(c *gin.Context) {
	var req changeRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	dto, err := h.ChangeRoles.Handle(c.Request.Context(), user.ChangeRolesCommand{
		UserID: c.Param("id"),
		Add:    req.Add,
		Remove: req.Remove,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "roles updated", nil)
}

// DeleteUser DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.Delete.Handle(c.Request.Context(), user.DeleteUserCommand{UserID: c.Param("id")}); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "user deleted", nil)
}
