package app

import (
	"github.com/overair/overair-backend/internal/platform/logger"
	"github.com/overair/overair-backend/internal/services"
)

type Services struct {
	Project services.ProjectService
	Release services.ReleaseService
	Bundle  services.BundleService
}

func wireServices(log *logger.Logger, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Project: services.NewProjectService(log, reposet.Project, clients.Bucket),
		Release: services.NewReleaseService(log, reposet.Project, clients.Bucket),
		Bundle:  services.NewBundleService(log, reposet.Project, clients.Bucket),
	}
}
