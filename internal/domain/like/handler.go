package like

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pronet/internal/middleware"
	"pronet/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Toggle flips the caller's like on a post.
// POST /posts/:postId/like
func (h *Handler) Toggle(c *gin.Context) {
	userID := middleware.AccountID(c)
	if userID == 0 {
		return
	}
	postID := c.Param("postId")

	liked, err := h.service.Toggle(c.Request.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			response.Error(c, http.StatusNotFound, "POST_NOT_FOUND", "post not found")
		case errors.Is(err, ErrConcurrentToggle):
			response.Error(c, http.StatusConflict, "CONCURRENT_TOGGLE", "like changed concurrently, retry")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to toggle like")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"post_id": postID, "liked": liked})
}

// List returns every like on a post.
// GET /posts/:postId/likes
func (h *Handler) List(c *gin.Context) {
	postID := c.Param("postId")

	likes, err := h.service.ListByPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list likes")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"likes": likes, "count": len(likes)})
}
