package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidtube/vidtube-api/internal/db/models"
	"github.com/vidtube/vidtube-api/internal/db/repository"
	"github.com/vidtube/vidtube-api/internal/middleware"
)

// CommentHandler handles comment requests.
type CommentHandler struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

// NewCommentHandler creates a new CommentHandler instance.
func NewCommentHandler(comments repository.CommentRepository, videos repository.VideoRepository) *CommentHandler {
	return &CommentHandler{comments: comments, videos: videos}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// commentPage is one page of comments with pagination totals.
type commentPage struct {
	Comments      []models.CommentView `json:"comments"`
	TotalComments int                  `json:"totalComments"`
	TotalPages    int                  `json:"totalPages"`
	Page          int                  `json:"page"`
	Limit         int                  `json:"limit"`
}

// ListByVideo returns one page of a video's comments, newest first.
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "videoId")
	if !ok {
		return
	}

	page := pageFromQuery(c)

	comments, total, err := h.comments.ListByVideo(c.Request.Context(), videoID, page)
	if err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	respond(c, http.StatusOK, commentPage{
		Comments:      comments,
		TotalComments: total,
		TotalPages:    page.TotalPages(total),
		Page:          page.Number,
		Limit:         page.Size,
	}, "Comments fetched successfully")
}

// Create adds a comment to a video.
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "videoId")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	// The video must exist before we hang a comment off it.
	if _, err := h.videos.GetByID(c.Request.Context(), videoID); err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	comment := models.NewComment(videoID, middleware.CurrentUserID(c), req.Content)

	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

// Update edits an owned comment's content.
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	if !h.requireOwnedComment(c, commentID) {
		return
	}

	comment, err := h.comments.UpdateContent(c.Request.Context(), commentID, req.Content)
	if err != nil {
		handleStorageError(c, err, "Comment not found")
		return
	}

	respond(c, http.StatusOK, comment, "Comment updated successfully")
}

// Delete removes an owned comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	if !h.requireOwnedComment(c, commentID) {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), commentID); err != nil {
		handleStorageError(c, err, "Comment not found")
		return
	}

	respond(c, http.StatusOK, nil, "Comment deleted successfully")
}

func (h *CommentHandler) requireOwnedComment(c *gin.Context, commentID uuid.UUID) bool {
	comment, err := h.comments.GetByID(c.Request.Context(), commentID)
	if err != nil {
		handleStorageError(c, err, "Comment not found")
		return false
	}

	if comment.OwnerID != middleware.CurrentUserID(c) {
		respondError(c, http.StatusForbidden, "You do not own this comment")
		return false
	}

	return true
}
