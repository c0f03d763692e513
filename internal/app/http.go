package app

import (
	"gorm.io/gorm"

	apphttp "github.com/overair/overair-backend/internal/http"
	httpH "github.com/overair/overair-backend/internal/http/handlers"
	"github.com/overair/overair-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Project *httpH.ProjectHandler
	Version *httpH.VersionHandler
	Bundle  *httpH.BundleHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	showErrors := !cfg.Production()
	return Handlers{
		Health:  httpH.NewHealthHandler(db),
		Project: httpH.NewProjectHandler(log, serviceset.Project, showErrors),
		Version: httpH.NewVersionHandler(log, serviceset.Release, showErrors),
		Bundle:  httpH.NewBundleHandler(log, serviceset.Bundle, showErrors),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		HealthHandler:  handlers.Health,
		ProjectHandler: handlers.Project,
		VersionHandler: handlers.Version,
		BundleHandler:  handlers.Bundle,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
}
