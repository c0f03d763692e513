package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/overair/overair-backend/internal/http/response"
	"github.com/overair/overair-backend/internal/platform/logger"
	"github.com/overair/overair-backend/internal/services"
)

type BundleHandler struct {
	log        *logger.Logger
	bundles    services.BundleService
	showErrors bool
}

func NewBundleHandler(log *logger.Logger, bundles services.BundleService, showErrors bool) *BundleHandler {
	return &BundleHandler{
		log:        log.With("handler", "BundleHandler"),
		bundles:    bundles,
		showErrors: showErrors,
	}
}

func (h *BundleHandler) Upload(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	upload, closeFile, err := formUploadFile(c, "bundleFile")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	defer closeFile()

	bundle, err := h.bundles.Upload(c.Request.Context(), projectID, services.BundleUploadInput{
		Platform:    c.PostForm("platform"),
		Version:     c.PostForm("bundleVersion"),
		Hash:        c.PostForm("bundleHash"),
		Description: c.PostForm("description"),
		IsMandatory: strings.EqualFold(c.PostForm("isMandatory"), "true"),
		File:        upload,
	})
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.Created(c, bundle, "Bundle update uploaded successfully.")
}

// latestBundlePayload is the client-facing shape of an update. The stored
// record carries more (storage key), clients only need what it takes to
// fetch and verify the bundle.
type latestBundlePayload struct {
	Version     string    `json:"version"`
	BundleURL   string    `json:"bundleUrl"`
	Hash        string    `json:"hash"`
	Description string    `json:"description"`
	IsMandatory bool      `json:"isMandatory"`
	FileName    string    `json:"fileName"`
	FileSize    string    `json:"fileSize"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *BundleHandler) Latest(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	bundle, err := h.bundles.Latest(
		c.Request.Context(),
		projectID,
		c.Query("platform"),
		c.Query("currentClientBundleVersion"),
	)
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	if bundle == nil {
		response.NoContent(c)
		return
	}
	response.OK(c, latestBundlePayload{
		Version:     bundle.BundleVersion,
		BundleURL:   bundle.BundleURL,
		Hash:        bundle.BundleHash,
		Description: bundle.Description,
		IsMandatory: bundle.IsMandatory,
		FileName:    bundle.FileName,
		FileSize:    bundle.FileSize,
		CreatedAt:   bundle.CreatedAt,
	}, "Success")
}

func (h *BundleHandler) Delete(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	bundleID, err := pathUUID(c, "bundleUpdateId", "bundle")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	if err := h.bundles.Delete(c.Request.Context(), projectID, bundleID); err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.OK(c, nil, "Bundle update deleted successfully.")
}
