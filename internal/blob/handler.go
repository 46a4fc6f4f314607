package blob

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pronet/internal/pkg/response"
)

// Handler serves blobs referenced by signed URLs.
type Handler struct {
	store *LocalStore
}

func NewHandler(store *LocalStore) *Handler {
	return &Handler{store: store}
}

// Serve godoc
// @Summary Download a blob via signed URL
// @Tags Files
// @Produce octet-stream
// @Param key path string true "Blob key"
// @Param exp query string true "Expiry (unix seconds)"
// @Param sig query string true "HMAC signature"
// @Success 200
// @Failure 403,404 {object} map[string]interface{}
// @Router /files/{key} [get]
func (h *Handler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	if err := h.store.Verify(key, c.Query("exp"), c.Query("sig")); err != nil {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "invalid or expired link")
		return
	}

	f, err := h.store.Open(key)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "file not found")
		return
	}
	defer f.Close()

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, f)
}

// RegisterRoutes mounts the signed-URL file endpoint. Public: access
// control is the signature itself.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/files/*key", h.Serve)
}
