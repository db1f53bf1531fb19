package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/logger"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

// UserUpserter is the slice of storage.Storage SyncUser needs.
type UserUpserter interface {
	UpsertUser(ctx context.Context, u users.UpsertUser) (*users.User, error)
}

// SyncUser mirrors the request identity into the users table and exposes the
// stored row through CurrentUser. It must run after an auth middleware.
func SyncUser(store UserUpserter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			return
		}

		u, err := store.UpsertUser(c.Request.Context(), id.toUpsert())
		if err != nil {
			logger.FromGin(c).Error("sync user failed", zap.String("user_id", id.UID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "account disabled"})
			return
		}

		c.Set(CtxCurrentUser, u)
		c.Next()
	}
}

// RequireAdmin rejects callers whose stored user is not an administrator.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
			return
		}
		if !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin access required"})
			return
		}
		c.Next()
	}
}
