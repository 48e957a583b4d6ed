package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/constants"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// ViewerID resolves the viewer on routes that do not require auth: the
// session principal when one exists, nil for anonymous requests. Filtering
// ("mine"/"others") and private-task visibility key off this.
func ViewerID(c *gin.Context) *uint64 {
	if id, ok := GetUserID(c); ok {
		return &id
	}

	session := sessions.Default(c)
	raw := session.Get(constants.ContextKeyUserID)
	if raw == nil {
		return nil
	}

	switch v := raw.(type) {
	case uint64:
		return &v
	case uint:
		id := uint64(v)
		return &id
	case int:
		if v < 0 {
			return nil
		}
		id := uint64(v)
		return &id
	default:
		return nil
	}
}
