// Package http serves the administrator dashboard. Routes must be mounted
// behind auth.RequireAdmin.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/logger"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/storage"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

type Store interface {
	GetAllUsers(ctx context.Context) ([]users.User, error)
	GetAllProjects(ctx context.Context) ([]projects.ProjectWithUser, error)
	GetUserStats(ctx context.Context) (*storage.UserStats, error)
}

type Handler struct {
	store Store
}

func New(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", h.stats)
	rg.GET("/users", h.listUsers)
	rg.GET("/projects", h.listProjects)
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.store.GetUserStats(c.Request.Context())
	if err != nil {
		internalError(c, "get user stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": st})
}

func (h *Handler) listUsers(c *gin.Context) {
	items, err := h.store.GetAllUsers(c.Request.Context())
	if err != nil {
		internalError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "users": items})
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.store.GetAllProjects(c.Request.Context())
	if err != nil {
		internalError(c, "list all projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func internalError(c *gin.Context, op string, err error) {
	logger.FromGin(c).Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
}
