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

// TweetHandler handles tweet requests.
type TweetHandler struct {
	tweets repository.TweetRepository
}

// NewTweetHandler creates a new TweetHandler instance.
func NewTweetHandler(tweets repository.TweetRepository) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

type tweetRequest struct {
	Content string `json:"content" binding:"required"`
}

// Feed returns the global tweet feed, newest first, with like counts.
func (h *TweetHandler) Feed(c *gin.Context) {
	tweets, err := h.tweets.Feed(c.Request.Context(), nil)
	if err != nil {
		handleStorageError(c, err, "Tweets not found")
		return
	}

	respond(c, http.StatusOK, tweets, "Tweets fetched successfully")
}

// UserFeed returns one user's tweets, newest first, with like counts.
func (h *TweetHandler) UserFeed(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	tweets, err := h.tweets.Feed(c.Request.Context(), &userID)
	if err != nil {
		handleStorageError(c, err, "Tweets not found")
		return
	}

	respond(c, http.StatusOK, tweets, "Tweets fetched successfully")
}

// Create posts a new tweet.
func (h *TweetHandler) Create(c *gin.Context) {
	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	tweet := models.NewTweet(middleware.CurrentUserID(c), req.Content)

	if err := h.tweets.Create(c.Request.Context(), tweet); err != nil {
		handleStorageError(c, err, "Tweet not found")
		return
	}

	respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

// Update edits an owned tweet's content.
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := parseUUIDParam(c, "tweetId")
	if !ok {
		return
	}

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}

	if !h.requireOwnedTweet(c, tweetID) {
		return
	}

	tweet, err := h.tweets.UpdateContent(c.Request.Context(), tweetID, req.Content)
	if err != nil {
		handleStorageError(c, err, "Tweet not found")
		return
	}

	respond(c, http.StatusOK, tweet, "Tweet updated successfully")
}

// Delete removes an owned tweet.
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := parseUUIDParam(c, "tweetId")
	if !ok {
		return
	}

	if !h.requireOwnedTweet(c, tweetID) {
		return
	}

	if err := h.tweets.Delete(c.Request.Context(), tweetID); err != nil {
		handleStorageError(c, err, "Tweet not found")
		return
	}

	respond(c, http.StatusOK, nil, "Tweet deleted successfully")
}

func (h *TweetHandler) requireOwnedTweet(c *gin.Context, tweetID uuid.UUID) bool {
	tweet, err := h.tweets.GetByID(c.Request.Context(), tweetID)
	if err != nil {
		handleStorageError(c, err, "Tweet not found")
		return false
	}

	if tweet.OwnerID != middleware.CurrentUserID(c) {
		respondError(c, http.StatusForbidden, "You do not own this tweet")
		return false
	}

	return true
}
