package comment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pronet/internal/domain/account"
	"pronet/internal/domain/post"
	"pronet/internal/middleware"
	"pronet/internal/pkg/response"
	"pronet/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Content  string  `json:"content" validate:"required,max=2000"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid4"`
}

type updateRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// Create adds a comment or reply to a post.
// POST /posts/:postId/comments
func (h *Handler) Create(c *gin.Context) {
	authorID := middleware.AccountID(c)
	if authorID == 0 {
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid comment payload", errs)
		return
	}

	created, err := h.service.Create(c.Request.Context(), c.Param("postId"), authorID, req.Content, req.ParentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// List returns a post's comments, newest first.
// GET /posts/:postId/comments?page=1&limit=20
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	comments, err := h.service.ListByPost(c.Request.Context(), c.Param("postId"), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comments": comments, "page": page})
}

// Replies returns the direct children of a comment.
// GET /comments/:commentId/replies
func (h *Handler) Replies(c *gin.Context) {
	replies, err := h.service.Replies(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"replies": replies})
}

// Update edits a comment's content. Only the author may edit.
// PATCH /comments/:commentId
func (h *Handler) Update(c *gin.Context) {
	authorID := middleware.AccountID(c)
	if authorID == 0 {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid comment payload", errs)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("commentId"), authorID, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete removes a comment and its replies.
// DELETE /comments/:commentId
func (h *Handler) Delete(c *gin.Context) {
	authorID := middleware.AccountID(c)
	if authorID == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("commentId"), authorID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, post.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "POST_NOT_FOUND", "post not found")
	case errors.Is(err, ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "comment not found")
	case errors.Is(err, ErrParentNotFound):
		response.Error(c, http.StatusNotFound, "PARENT_NOT_FOUND", "parent comment not found")
	case errors.Is(err, account.ErrAccountNotFound):
		response.Error(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "account not found")
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, "EMPTY_CONTENT", "comment content must not be empty")
	case errors.Is(err, ErrContentTooLong):
		response.Error(c, http.StatusBadRequest, "CONTENT_TOO_LONG", "comment content exceeds maximum length")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
	}
}
