package like

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/posts/:postId/likes", h.List)

	protected.POST("/posts/:postId/like", h.Toggle)
}
