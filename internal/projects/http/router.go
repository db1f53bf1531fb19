package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. write runs
// before every mutating route.
func (h *Handler) Register(rg *gin.RouterGroup, write ...gin.HandlerFunc) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)

	mutate := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), fn)
	}
	rg.POST("", mutate(h.create)...)
	rg.PUT("/:id", mutate(h.update)...)
	rg.PATCH("/:id", mutate(h.update)...)
	rg.DELETE("/:id", mutate(h.delete)...)
}
