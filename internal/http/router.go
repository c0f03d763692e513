package http

import (
	"fmt"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	httpH "github.com/overair/overair-backend/internal/http/handlers"
	httpMW "github.com/overair/overair-backend/internal/http/middleware"
	"github.com/overair/overair-backend/internal/http/response"
	"github.com/overair/overair-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler  *httpH.HealthHandler
	ProjectHandler *httpH.ProjectHandler
	VersionHandler *httpH.VersionHandler
	BundleHandler  *httpH.BundleHandler

	MaxUploadBytes int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	uploadGate := httpMW.MaxUploadSize(cfg.MaxUploadBytes)

	api := r.Group("/api")
	{
		if cfg.ProjectHandler != nil {
			api.POST("/projects", cfg.ProjectHandler.Create)
			api.GET("/projects", cfg.ProjectHandler.List)
			api.GET("/projects/:projectId", cfg.ProjectHandler.Get)
			api.PUT("/projects/:projectId", cfg.ProjectHandler.Update)
			api.PUT("/projects/:projectId/rn-platforms", cfg.ProjectHandler.UpdateRNPlatforms)
			api.DELETE("/projects/:projectId", cfg.ProjectHandler.Delete)
		}

		if cfg.VersionHandler != nil {
			api.POST("/projects/:projectId/versions", uploadGate, cfg.VersionHandler.Add)
			api.DELETE("/projects/:projectId/versions/:versionId", cfg.VersionHandler.Delete)
			api.PUT("/projects/:projectId/versions/:versionId/environments", cfg.VersionHandler.UpdateEnvironments)
		}

		if cfg.BundleHandler != nil {
			api.POST("/projects/:projectId/bundles", uploadGate, cfg.BundleHandler.Upload)
			api.GET("/projects/:projectId/bundles/latest", cfg.BundleHandler.Latest)
			api.DELETE("/projects/:projectId/bundles/:bundleUpdateId", cfg.BundleHandler.Delete)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(nethttp.StatusNotFound, response.Envelope{
			Success: false,
			Message: fmt.Sprintf("Route not found - %s", c.Request.URL.Path),
		})
	})

	return r
}
