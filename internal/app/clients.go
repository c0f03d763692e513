package app

import (
	"fmt"

	"github.com/overair/overair-backend/internal/platform/gcp"
	"github.com/overair/overair-backend/internal/platform/logger"
)

type Clients struct {
	Bucket gcp.BucketService
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")
	bucket, err := gcp.NewBucketService(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init bucket service: %w", err)
	}
	return Clients{Bucket: bucket}, nil
}
