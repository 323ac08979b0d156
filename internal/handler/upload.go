package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/vidtube-api/internal/media"
)

// uploadFile streams a multipart file into the media store and returns
// its public URL.
func uploadFile(c *gin.Context, store media.Store, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	return store.Upload(c.Request.Context(), header.Filename, file, header.Size, contentType)
}
