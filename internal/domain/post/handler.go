package post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pronet/internal/domain/account"
	"pronet/internal/domain/entitlement"
	"pronet/internal/domain/media"
	"pronet/internal/middleware"
	"pronet/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type updateRequest struct {
	Description string `json:"description"`
}

// Create accepts multipart form data: a "description" field plus any
// number of "files" parts.
// POST /posts
func (h *Handler) Create(c *gin.Context) {
	creatorID := middleware.AccountID(c)
	if creatorID == 0 {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "expected multipart form data")
		return
	}

	description := c.PostForm("description")
	files := form.File["files"]

	view, err := h.service.Create(c.Request.Context(), creatorID, description, files)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// Get returns a single post view.
// GET /posts/:postId
func (h *Handler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("postId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// List returns the global feed, newest first.
// GET /posts?page=1&limit=20
func (h *Handler) List(c *gin.Context) {
	page, limit := pageParams(c)
	views, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": views, "page": page})
}

// ListByCreator returns one account's posts, newest first.
// GET /accounts/:accountId/posts
func (h *Handler) ListByCreator(c *gin.Context) {
	creatorID, err := strconv.ParseInt(c.Param("accountId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ACCOUNT_ID", "account id must be numeric")
		return
	}

	page, limit := pageParams(c)
	views, err := h.service.ListByCreator(c.Request.Context(), creatorID, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": views, "page": page})
}

// Update edits the description. Only the creator may edit.
// PATCH /posts/:postId
func (h *Handler) Update(c *gin.Context) {
	callerID := middleware.AccountID(c)
	if callerID == 0 {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	view, err := h.service.Update(c.Request.Context(), c.Param("postId"), callerID, req.Description)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Delete soft-deletes a post and removes its media.
// DELETE /posts/:postId
func (h *Handler) Delete(c *gin.Context) {
	callerID := middleware.AccountID(c)
	if callerID == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("postId"), callerID); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var limitErr *entitlement.LimitError
	switch {
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "POST_NOT_FOUND", "post not found")
	case errors.Is(err, account.ErrAccountNotFound):
		response.Error(c, http.StatusNotFound, "ACCOUNT_NOT_FOUND", "account not found")
	case errors.As(err, &limitErr):
		response.ErrorWithDetails(c, http.StatusForbidden, "QUOTA_EXCEEDED", "post limit reached", gin.H{
			"current": limitErr.Current,
			"limit":   limitErr.Limit,
		})
	case errors.Is(err, entitlement.ErrQuotaExceeded):
		response.Error(c, http.StatusForbidden, "QUOTA_EXCEEDED", "post limit reached")
	case errors.Is(err, ErrDescriptionTooLong):
		response.Error(c, http.StatusBadRequest, "DESCRIPTION_TOO_LONG", "description exceeds maximum length")
	case errors.Is(err, media.ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "uploaded file is empty")
	case errors.Is(err, media.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds size limit")
	case errors.Is(err, media.ErrMimeNotAllowed):
		response.Error(c, http.StatusBadRequest, "MIME_NOT_ALLOWED", "file type is not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
	}
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}
