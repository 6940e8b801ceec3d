package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idrsdev/agile-task/internal/http/dto"
	"github.com/idrsdev/agile-task/internal/model"
	"github.com/idrsdev/agile-task/internal/service"
)

type WorkspaceHandler struct {
	svc service.WorkspaceService
}

func NewWorkspaceHandler(svc service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{svc: svc}
}

// ListAll lists every workspace (admin only)
func (h *WorkspaceHandler) ListAll(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.ListAll(c.Request.Context(), q.ToPageRequest())
	if err != nil {
		respondError(c, err, "list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspacePageResponse(page))
}

// ListMine lists workspaces the caller created
func (h *WorkspaceHandler) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.ListCreatedBy(c.Request.Context(), userID, q.ToPageRequest())
	if err != nil {
		respondError(c, err, "list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspacePageResponse(page))
}

// ListMemberOf lists workspaces the caller joined as a member
func (h *WorkspaceHandler) ListMemberOf(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.svc.ListMemberOf(c.Request.Context(), userID, q.ToPageRequest())
	if err != nil {
		respondError(c, err, "list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspacePageResponse(page))
}

func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "get workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceDetailResponse(detail))
}

func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ws, err := h.svc.Create(c.Request.Context(), req.Name, userID)
	if err != nil {
		respondError(c, err, "create workspace")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ws, err := h.svc.Update(c.Request.Context(), workspaceID, userID, model.WorkspaceUpdate{Name: req.Name})
	if err != nil {
		respondError(c, err, "update workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(ws))
}

func (h *WorkspaceHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), workspaceID, userID); err != nil {
		respondError(c, err, "delete workspace")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.svc.ListMembers(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, dto.MembersResponse{Members: dto.ToUserResponses(members)})
}

func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	change, err := h.svc.AddMember(c.Request.Context(), int64(req.WorkspaceID), int64(req.MemberID), userID)
	if err != nil {
		respondError(c, err, "add member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(change))
}

func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	change, err := h.svc.RemoveMember(c.Request.Context(), int64(req.WorkspaceID), int64(req.MemberID), userID)
	if err != nil {
		respondError(c, err, "remove member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMembershipResponse(change))
}

// ListActivity returns the newest audit records for a workspace
func (h *WorkspaceHandler) ListActivity(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	workspaceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var q dto.ActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	logs, err := h.svc.ListActivity(c.Request.Context(), workspaceID, userID, q.Limit)
	if err != nil {
		respondError(c, err, "list activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(logs))
}
