package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
)

// HeaderIdentity trusts identity headers set by the client.
// Use this ONLY for development/testing.
func HeaderIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing X-User-Id header"})
			return
		}

		id := auth.Identity{
			UID:        uid,
			Email:      c.GetHeader("X-User-Email"),
			PictureURL: c.GetHeader("X-User-Photo"),
		}
		id.FirstName, id.LastName = auth.SplitName(c.GetHeader("X-User-Name"))
		if v := c.GetHeader("X-User-Admin"); v != "" {
			if admin, err := strconv.ParseBool(v); err == nil {
				id.Admin = &admin
			}
		}

		auth.SetIdentity(c, id)
		c.Next()
	}
}
