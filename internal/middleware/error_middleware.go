package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shrinklink/internal/apperrors"
	"shrinklink/internal/i18n"
	"shrinklink/response"
)

// GlobalErrorMiddleware maps AppErrors pushed via c.Error into the JSON
// envelope, localizing keyed messages with the request localizer.
func GlobalErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				var appErr *apperrors.AppError
				if errors.As(err.Err, &appErr) {
					msg := appErr.Message
					if appErr.MessageKey != "" {
						msg = i18n.T(c.Request.Context(), appErr.MessageKey)
					}
					c.AbortWithStatusJSON(appErr.Code, response.ErrorFromAppError(appErr, msg))
					return
				}
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError,
				response.Error(i18n.T(c.Request.Context(), "error.persistence")))
			return
		}
	}
}
