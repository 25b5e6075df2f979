package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shrinklink/internal/apperrors"
	"shrinklink/internal/auth"
	"shrinklink/internal/dto"
	"shrinklink/internal/i18n"
	"shrinklink/internal/service"
	"shrinklink/response"
)

type GroupHandler struct {
	svc *service.GroupService
}

func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationErrorDefault())
		return
	}

	actor := auth.FromContext(c)
	group, err := h.svc.Create(c.Request.Context(), req, actor)
	if err != nil {
		zap.L().Warn("Group creation failed",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response.OK(group, i18n.T(c.Request.Context(), "msg.group_created")))
}

// List handles GET /api/groups.
func (h *GroupHandler) List(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}

	actor := auth.FromContext(c)
	pageResp, err := h.svc.List(c.Request.Context(), actor, page, size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(pageResp, "success"))
}

// Delete handles DELETE /api/groups/:id with cascade semantics.
func (h *GroupHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	actor := auth.FromContext(c)
	if err := h.svc.Delete(c.Request.Context(), id, actor); err != nil {
		zap.L().Warn("Group deletion failed",
			zap.Error(err),
			zap.Uint("id", id),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(struct{}{}, i18n.T(c.Request.Context(), "msg.group_deleted")))
}
