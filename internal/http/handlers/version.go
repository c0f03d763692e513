package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/overair/overair-backend/internal/http/response"
	"github.com/overair/overair-backend/internal/platform/logger"
	"github.com/overair/overair-backend/internal/services"
)

type VersionHandler struct {
	log        *logger.Logger
	releases   services.ReleaseService
	showErrors bool
}

func NewVersionHandler(log *logger.Logger, releases services.ReleaseService, showErrors bool) *VersionHandler {
	return &VersionHandler{
		log:        log.With("handler", "VersionHandler"),
		releases:   releases,
		showErrors: showErrors,
	}
}

func (h *VersionHandler) Add(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	upload, closeFile, err := formUploadFile(c, "appFile")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	defer closeFile()

	version, err := h.releases.AddVersion(c.Request.Context(), projectID, services.AddVersionInput{
		Platform:     c.PostForm("platform"),
		VersionName:  c.PostForm("versionName"),
		BuildNumber:  c.PostForm("buildNumber"),
		ReleaseNotes: c.PostForm("releaseNotes"),
		File:         upload,
	})
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.Created(c, version, "App version added successfully.")
}

func (h *VersionHandler) Delete(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	versionID, err := pathUUID(c, "versionId", "version")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	if err := h.releases.DeleteVersion(c.Request.Context(), projectID, versionID); err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.OK(c, nil, "Version deleted successfully.")
}

type updateEnvironmentsRequest struct {
	ActiveEnvironments []string `json:"activeEnvironments"`
}

func (h *VersionHandler) UpdateEnvironments(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	versionID, err := pathUUID(c, "versionId", "version")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	var req updateEnvironmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, errInvalidBody(err), h.showErrors)
		return
	}
	version, err := h.releases.UpdateEnvironments(c.Request.Context(), projectID, versionID, req.ActiveEnvironments)
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.OK(c, version, "Version environments updated successfully.")
}
