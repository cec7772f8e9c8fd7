package middleware

import (
	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	actorCtxKey  = contextKey("actor")
)

const requestIDHeader = "X-Request-ID"

// GetActorFromContext retrieves the authenticated actor from the request context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := c.Request.Context().Value(actorCtxKey).(domain.Actor)
	return actor, ok
}
