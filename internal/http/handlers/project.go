package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/overair/overair-backend/internal/http/response"
	"github.com/overair/overair-backend/internal/platform/logger"
	"github.com/overair/overair-backend/internal/services"
)

type ProjectHandler struct {
	log        *logger.Logger
	projects   services.ProjectService
	showErrors bool
}

func NewProjectHandler(log *logger.Logger, projects services.ProjectService, showErrors bool) *ProjectHandler {
	return &ProjectHandler{
		log:        log.With("handler", "ProjectHandler"),
		projects:   projects,
		showErrors: showErrors,
	}
}

type createProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Platforms   []string `json:"platforms"`
	RNPlatforms []string `json:"rnPlatforms"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, errInvalidBody(err), h.showErrors)
		return
	}
	project, err := h.projects.Create(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Platforms:   req.Platforms,
		RNPlatforms: req.RNPlatforms,
	})
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.Created(c, project, "Project created successfully.")
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.OK(c, projects, "Success")
}

func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	project, err := h.projects.Get(c.Request.Context(), projectID)
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.OK(c, project, "Success")
}

type updateProjectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Platforms   []string `json:"platforms"`
}

func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, errInvalidBody(err), h.showErrors)
		return
	}
	project, err := h.projects.UpdateDetails(c.Request.Context(), projectID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Platforms:   req.Platforms,
	})
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.OK(c, project, "Project details updated successfully.")
}

type updateRNPlatformsRequest struct {
	RNPlatforms []string `json:"rnPlatforms"`
}

func (h *ProjectHandler) UpdateRNPlatforms(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	var req updateRNPlatformsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, errInvalidBody(err), h.showErrors)
		return
	}
	project, err := h.projects.UpdateRNPlatforms(c.Request.Context(), projectID, req.RNPlatforms)
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.OK(c, project, "Project bundle platforms updated successfully.")
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := pathUUID(c, "projectId", "project")
	if err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	if err := h.projects.Delete(c.Request.Context(), projectID); err != nil {
		response.Err(c, err, h.showErrors)
		return
	}
	response.OK(c, nil, "Project and associated files deleted successfully.")
}
