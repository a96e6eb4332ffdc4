package handlers

import (
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"tourbook/internal/imageprocessor"
	"tourbook/internal/storage"
	"tourbook/pkg/apperrors"
)

// Uploads processes multipart image files into fixed-size JPEGs and persists
// them. Shared by the user and tour handlers.
type Uploads struct {
	processor *imageprocessor.Processor
	store     storage.Storage
}

func NewUploads(processor *imageprocessor.Processor, store storage.Storage) *Uploads {
	return &Uploads{processor: processor, store: store}
}

// SaveImage resizes the upload into size and stores it under dir with the
// given name (extension is always .jpeg). Non-image uploads yield a 415.
func (u *Uploads) SaveImage(c *gin.Context, fh *multipart.FileHeader, size imageprocessor.ImageSize, dir, name string) (string, error) {
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", apperrors.UnsupportedMedia("Not an image! Please upload only images")
	}

	file, err := fh.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer file.Close()

	processed, err := u.processor.Process(file, size)
	if err != nil {
		return "", apperrors.UnsupportedMedia("Not an image! Please upload only images")
	}

	filename := fmt.Sprintf("%s.jpeg", name)
	if err := u.store.Save(c.Request.Context(), path.Join(dir, filename), processed); err != nil {
		return "", apperrors.InternalError(err)
	}
	return filename, nil
}
