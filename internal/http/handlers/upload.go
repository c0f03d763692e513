package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/overair/overair-backend/internal/platform/apierr"
	"github.com/overair/overair-backend/internal/services"
)

var allowedUploadExtensions = []string{".apk", ".ipa", ".zip", ".jsbundle", ".bundle"}

func allowedExtension(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range allowedUploadExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// formUploadFile extracts the single file field of an upload request. A
// missing file yields (nil, noop, nil) so the service can report the
// presence failure in its own precondition order; size and extension
// violations are rejected here, before anything is persisted.
func formUploadFile(c *gin.Context, field string) (*services.UploadFile, func(), error) {
	noop := func() {}
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, noop, apierr.Validation("file too large, max size is 500MB")
		}
		return nil, noop, nil
	}
	if !allowedExtension(header.Filename) {
		_ = file.Close()
		return nil, noop, apierr.Validation("invalid file type, only %s files are allowed",
			strings.Join(allowedUploadExtensions, ", "))
	}
	upload := &services.UploadFile{
		Name:   header.Filename,
		Size:   header.Size,
		Reader: file,
	}
	return upload, func() { _ = file.Close() }, nil
}

func errInvalidBody(err error) error {
	return apierr.Validation("invalid request body: %v", err)
}

func pathUUID(c *gin.Context, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.InvalidID("invalid %s ID format", label)
	}
	return id, nil
}
