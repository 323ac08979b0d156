// Package handler provides HTTP request handlers for the API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/pkg/logger"
)

// Response is the envelope wrapping every successful payload.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse is the envelope for failed requests.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

// handleStorageError maps storage errors onto HTTP statuses. notFoundMsg
// names the missing resource for 404 responses.
func handleStorageError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case db.IsNotFound(err):
		respondError(c, http.StatusNotFound, notFoundMsg)
	case db.IsForeignKeyViolation(err):
		// A broken reference means the target resource is gone.
		respondError(c, http.StatusNotFound, notFoundMsg)
	case db.IsDuplicateKey(err):
		respondError(c, http.StatusConflict, "Resource already exists")
	case db.IsCheckViolation(err):
		respondError(c, http.StatusBadRequest, "Invalid request")
	default:
		logger.Log.Error("Unexpected storage error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// parseUUIDParam parses the named path parameter as a UUID. On failure
// it writes a 400 response and reports false.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
