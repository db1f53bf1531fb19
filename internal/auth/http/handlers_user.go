package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
)

// Handler serves the caller's own account.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/user", h.GetUser)
}

// GetUser returns the user row synced for this request.
func (h *Handler) GetUser(c *gin.Context) {
	u := auth.CurrentUser(c)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}
