package app

import (
	"gorm.io/gorm"

	"github.com/overair/overair-backend/internal/platform/logger"
	"github.com/overair/overair-backend/internal/repos"
)

type Repos struct {
	Project repos.ProjectRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Project: repos.NewProjectRepo(db, log),
	}
}
