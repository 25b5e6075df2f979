package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"shrinklink/internal/apperrors"
	"shrinklink/internal/auth"
)

// OptionalAuth parses a bearer token when one is present and attaches the
// resulting actor to the context. Requests without a token proceed as
// anonymous; a token that fails verification is rejected rather than
// silently downgraded.
func OptionalAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			auth.IntoContext(c, auth.Actor{ClientKey: c.ClientIP()})
			c.Next()
			return
		}

		actor, err := verify(tokenString, jwtSecret, c.ClientIP())
		if err != nil {
			zap.L().Warn("Bearer token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			_ = c.Error(apperrors.Unauthenticated())
			c.Abort()
			return
		}
		auth.IntoContext(c, actor)
		c.Next()
	}
}

// RequireAuth admits only requests carrying a valid bearer token.
func RequireAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			_ = c.Error(apperrors.Unauthenticated())
			c.Abort()
			return
		}

		actor, err := verify(tokenString, jwtSecret, c.ClientIP())
		if err != nil {
			_ = c.Error(apperrors.Unauthenticated())
			c.Abort()
			return
		}
		auth.IntoContext(c, actor)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func verify(tokenString string, secret []byte, clientIP string) (auth.Actor, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return auth.Actor{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return auth.Actor{}, jwt.ErrTokenInvalidClaims
	}
	return auth.Actor{UserID: claims.Subject, ClientKey: clientIP}, nil
}
