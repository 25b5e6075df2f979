package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shrinklink/internal/apperrors"
	"shrinklink/internal/auth"
	"shrinklink/internal/dto"
	"shrinklink/internal/i18n"
	"shrinklink/internal/qr"
	"shrinklink/internal/service"
	"shrinklink/response"
)

type LinkHandler struct {
	svc     *service.LinkService
	baseURL string
}

func NewLinkHandler(svc *service.LinkService, baseURL string) *LinkHandler {
	return &LinkHandler{svc: svc, baseURL: strings.TrimRight(baseURL, "/")}
}

// Create handles POST /api/links for both guests and owners.
func (h *LinkHandler) Create(c *gin.Context) {
	var req dto.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(apperrors.ValidationErrorDefault())
		return
	}

	actor := auth.FromContext(c)
	link, err := h.svc.Create(c.Request.Context(), req, actor)
	if err != nil {
		zap.L().Warn("Link creation failed",
			zap.Error(err),
			zap.String("alias", req.Alias),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, response.OK(dto.LinkResponse{
		ID:          link.ID,
		ShortCode:   link.ShortCode,
		ShortURL:    h.baseURL + "/" + link.ShortCode,
		OriginalURL: link.OriginalURL,
		Expiration:  link.Expiration,
	}, i18n.T(c.Request.Context(), "msg.link_created")))
}

// List handles GET /api/links, the paged owner dashboard.
func (h *LinkHandler) List(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}

	var groupID *uint
	if raw := c.Query("groupId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			_ = c.Error(apperrors.ValidationErrorDefault())
			return
		}
		gid := uint(id)
		groupID = &gid
	}

	actor := auth.FromContext(c)
	pageResp, err := h.svc.List(c.Request.Context(), actor, page, size, groupID, c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(pageResp, "success"))
}

// Update handles PATCH /api/links/:id.
func (h *LinkHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(apperrors.ValidationErrorDefault())
		return
	}

	actor := auth.FromContext(c)
	if err := h.svc.Update(c.Request.Context(), id, req, actor); err != nil {
		zap.L().Warn("Link update failed",
			zap.Error(err),
			zap.Uint("id", id),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(struct{}{}, i18n.T(c.Request.Context(), "msg.link_updated")))
}

// Delete handles DELETE /api/links/:id.
func (h *LinkHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	actor := auth.FromContext(c)
	if err := h.svc.Delete(c.Request.Context(), id, actor); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(struct{}{}, i18n.T(c.Request.Context(), "msg.link_deleted")))
}

// QR handles GET /api/links/:id/qr and streams a PNG of the short link.
func (h *LinkHandler) QR(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	actor := auth.FromContext(c)
	link, err := h.svc.Get(c.Request.Context(), id, actor)
	if err != nil {
		_ = c.Error(err)
		return
	}

	png, err := qr.Render(h.baseURL + "/" + link.ShortCode)
	if err != nil {
		zap.L().Error("QR rendering failed",
			zap.Uint("id", id),
			zap.Error(err))
		_ = c.Error(apperrors.PersistenceError(err))
		return
	}

	c.Header("Content-Disposition", `inline; filename="qrcode-`+link.ShortCode+`.png"`)
	c.Data(http.StatusOK, "image/png", png)
}

func idParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(apperrors.ValidationErrorDefault())
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		_ = c.Error(apperrors.ValidationErrorDefault())
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > 100 {
		_ = c.Error(apperrors.ValidationErrorDefault())
		return 0, 0, false
	}
	return page, size, true
}
