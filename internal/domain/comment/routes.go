package comment

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/posts/:postId/comments", h.List)
	public.GET("/comments/:commentId/replies", h.Replies)

	protected.POST("/posts/:postId/comments", h.Create)
	protected.PATCH("/comments/:commentId", h.Update)
	protected.DELETE("/comments/:commentId", h.Delete)
}
