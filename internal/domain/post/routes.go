package post

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts reads on the public group and mutations on the
// authenticated one.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/posts", h.List)
	public.GET("/posts/:postId", h.Get)
	public.GET("/accounts/:accountId/posts", h.ListByCreator)

	protected.POST("/posts", h.Create)
	protected.PATCH("/posts/:postId", h.Update)
	protected.DELETE("/posts/:postId", h.Delete)
}
