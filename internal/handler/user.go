package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vidtube/vidtube-api/internal/auth"
	"github.com/vidtube/vidtube-api/internal/db/models"
	"github.com/vidtube/vidtube-api/internal/db/repository"
	"github.com/vidtube/vidtube-api/internal/media"
	"github.com/vidtube/vidtube-api/internal/middleware"
	"github.com/vidtube/vidtube-api/pkg/logger"
)

// UserHandler handles account registration and sessions.
type UserHandler struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	store  media.Store
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users repository.UserRepository, tokens *auth.TokenManager, store media.Store) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, store: store}
}

type registerRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	FullName string `form:"fullName" json:"fullName" binding:"required"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// Register creates a new account. Multipart requests may carry avatar
// and coverImage files, stored through the media gateway.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.FullName) == "" {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	user := models.NewUser(req.Username, req.Email, req.FullName, hash)

	avatarURL, ok := h.uploadProfileImage(c, "avatar")
	if !ok {
		return
	}
	user.AvatarURL = avatarURL

	coverURL, ok := h.uploadProfileImage(c, "coverImage")
	if !ok {
		return
	}
	user.CoverImageURL = coverURL

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		handleStorageError(c, err, "User not found")
		return
	}

	logger.Log.Info("Registered user",
		zap.String("userId", user.ID.String()),
		zap.String("username", user.Username),
	)

	respond(c, http.StatusCreated, user, "User registered successfully")
}

// Login verifies credentials and issues an access token.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.users.GetByLogin(c.Request.Context(), req.Login)
	if err != nil {
		// A missing account and a bad password read the same to the
		// caller.
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		logger.Log.Error("Failed to issue token", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	c.SetCookie("accessToken", token, 0, "/", "", false, true)

	respond(c, http.StatusOK, sessionResponse{User: user, AccessToken: token}, "Logged in successfully")
}

// Logout clears the session cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", false, true)
	respond(c, http.StatusOK, nil, "Logged out successfully")
}

// uploadProfileImage stores the named multipart file if the request
// carries one. An absent file is fine and yields an empty URL; a failed
// upload writes the error response and reports false.
func (h *UserHandler) uploadProfileImage(c *gin.Context, field string) (string, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", true
	}

	url, err := uploadFile(c, h.store, header)
	if err != nil {
		logger.Log.Error("Failed to upload "+field, zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to upload "+field)
		return "", false
	}

	return url, true
}

// CurrentUser returns the authenticated user's profile.
func (h *UserHandler) CurrentUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleStorageError(c, err, "User not found")
		return
	}

	respond(c, http.StatusOK, user, "Current user fetched successfully")
}
