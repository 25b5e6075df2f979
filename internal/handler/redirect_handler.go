package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shrinklink/internal/apperrors"
	"shrinklink/internal/i18n"
	"shrinklink/internal/service"
)

type RedirectHandler struct {
	svc *service.LinkService
}

func NewRedirectHandler(svc *service.LinkService) *RedirectHandler {
	return &RedirectHandler{svc: svc}
}

// Redirect resolves GET /<shortCode> and issues the 302. The click increment
// has already been dispatched by the service and is never waited on here.
func (h *RedirectHandler) Redirect(c *gin.Context) {
	shortCode := strings.TrimPrefix(c.Request.URL.Path, "/")
	if shortCode == "" || strings.Contains(shortCode, "/") {
		c.Status(http.StatusNotFound)
		return
	}

	link, err := h.svc.Resolve(c.Request.Context(), shortCode)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindExpired {
			c.Data(http.StatusGone, "text/html; charset=utf-8",
				expiredPage(i18n.T(c.Request.Context(), "error.link_expired")))
			return
		}
		c.Data(http.StatusNotFound, "text/html; charset=utf-8",
			notFoundPage(i18n.T(c.Request.Context(), "error.not_found")))
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, link.OriginalURL)
}

func expiredPage(msg string) []byte {
	return []byte(`<!doctype html><html><body style="font-family:sans-serif;text-align:center;padding-top:20vh"><h1>Link Expired</h1><p>` + msg + `</p></body></html>`)
}

func notFoundPage(msg string) []byte {
	return []byte(`<!doctype html><html><body style="font-family:sans-serif;text-align:center;padding-top:20vh"><h1>404</h1><p>` + msg + `</p></body></html>`)
}
