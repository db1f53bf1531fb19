package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/logger"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/projects"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.GetUserProjects(c.Request.Context(), auth.UserID(c))
	if err != nil {
		internalError(c, "list projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		internalError(c, "get project", err)
		return
	}
	// Someone else's project looks exactly like a missing one.
	if p == nil || p.UserID != auth.UserID(c) {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	p, err := h.store.CreateProject(c.Request.Context(), req.input(), auth.UserID(c))
	switch {
	case errors.Is(err, projects.ErrInvalidInput):
		invalidBody(c, err)
		return
	case errors.Is(err, projects.ErrOwnerNotFound):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "user not found"})
		return
	case err != nil:
		internalError(c, "create project", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	in := req.input()
	if in.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "no fields to update"})
		return
	}

	p, err := h.store.UpdateProject(c.Request.Context(), c.Param("id"), auth.UserID(c), in)
	switch {
	case errors.Is(err, projects.ErrInvalidInput):
		invalidBody(c, err)
		return
	case err != nil:
		internalError(c, "update project", err)
		return
	case p == nil:
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.store.DeleteProject(c.Request.Context(), c.Param("id"), auth.UserID(c))
	if err != nil {
		internalError(c, "delete project", err)
		return
	}
	if !ok {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func invalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body", "details": err.Error()})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
}

func internalError(c *gin.Context, op string, err error) {
	logger.FromGin(c).Error(op+" failed",
		zap.String("user_id", auth.UserID(c)),
		zap.String("project_id", c.Param("id")),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
}
