package auth

import (
	"github.com/gin-gonic/gin"
)

const actorContextKey = "auth.Actor"

// Actor identifies the caller of an operation. A zero UserID means the
// caller is anonymous; ClientKey (source IP) is what the rate limiter keys
// on for anonymous submissions.
type Actor struct {
	UserID    string
	ClientKey string
}

func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

// IntoContext stores the actor on the gin context for downstream handlers.
func IntoContext(c *gin.Context, actor Actor) {
	c.Set(actorContextKey, actor)
}

// FromContext returns the actor placed by the auth middleware. Falls back to
// an anonymous actor keyed on the client IP when none is present.
func FromContext(c *gin.Context) Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(Actor); ok {
			return actor
		}
	}
	return Actor{ClientKey: c.ClientIP()}
}
