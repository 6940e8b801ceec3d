package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idrsdev/agile-task/internal/http/dto"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	profile, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "get profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.userService.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err, "list roles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRolesResponse(roles))
}

// AssignRole grants a role to the user in the path (admin only)
func (h *UserHandler) AssignRole(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.AssignRole(c.Request.Context(), userID, model.RoleName(req.Role)); err != nil {
		respondError(c, err, "assign role")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RevokeRole(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	role := model.RoleName(c.Param("role"))
	if !role.IsValid() {
		abort(c, http.StatusBadRequest, dto.CodeValidation, "invalid role")
		return
	}

	if err := h.userService.RevokeRole(c.Request.Context(), userID, role); err != nil {
		respondError(c, err, "revoke role")
		return
	}
	c.Status(http.StatusNoContent)
}
