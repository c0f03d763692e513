package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/overair/overair-backend/internal/platform/apierr"
	"github.com/overair/overair-backend/internal/platform/gcp"
	"github.com/overair/overair-backend/internal/platform/logger"
	"github.com/overair/overair-backend/internal/platform/semverutil"
	"github.com/overair/overair-backend/internal/repos"
	"github.com/overair/overair-backend/internal/types"
)

type BundleUploadInput struct {
	Platform    string
	Version     string
	Hash        string
	Description string
	IsMandatory bool
	File        *UploadFile
}

// BundleService ingests OTA bundle updates and resolves the update a client
// should fetch next. Resolution is recency-based: the most recently created
// record for the platform wins, the client's own version is validated but
// never compared. The same policy orders the stored collection, so ingestion
// and resolution can never disagree.
type BundleService interface {
	Upload(ctx context.Context, projectID uuid.UUID, in BundleUploadInput) (*types.BundleUpdate, error)
	Latest(ctx context.Context, projectID uuid.UUID, platform, clientVersion string) (*types.BundleUpdate, error)
	Delete(ctx context.Context, projectID, bundleID uuid.UUID) error
}

type bundleService struct {
	log      *logger.Logger
	projects repos.ProjectRepo
	bucket   gcp.BucketService
}

func NewBundleService(log *logger.Logger, projects repos.ProjectRepo, bucket gcp.BucketService) BundleService {
	return &bundleService{
		log:      log.With("service", "BundleService"),
		projects: projects,
		bucket:   bucket,
	}
}

// Upload checks preconditions in a fixed order, first failure wins. Nothing
// is written anywhere until every check passes; the blob goes out before the
// record so a storage failure leaves the aggregate untouched.
func (s *bundleService) Upload(ctx context.Context, projectID uuid.UUID, in BundleUploadInput) (*types.BundleUpdate, error) {
	if in.File == nil {
		return nil, apierr.Validation("bundle file (.zip or .jsbundle) is required")
	}
	if strings.TrimSpace(in.Platform) == "" || strings.TrimSpace(in.Version) == "" || strings.TrimSpace(in.Hash) == "" {
		return nil, apierr.Validation("platform, bundle version, and bundle hash are required")
	}
	platform := strings.ToLower(strings.TrimSpace(in.Platform))
	if !types.ValidBundlePlatform(platform) {
		return nil, apierr.Validation("unsupported bundle platform: %s", in.Platform)
	}
	hash := strings.TrimSpace(in.Hash)
	if len(hash) < types.MinBundleHashLength {
		return nil, apierr.Validation("bundle hash must be at least %d characters", types.MinBundleHashLength)
	}
	version, err := semverutil.NormalizeValid(in.Version)
	if err != nil {
		return nil, err
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(project.RNPlatforms) == 0 {
		return nil, apierr.Validation("project has no bundle platforms configured, enable them before uploading bundles")
	}
	if !project.HasRNPlatform(platform) {
		return nil, apierr.Validation("project does not support bundle platform: %s", platform)
	}
	if existing := project.FindBundleByHash(platform, hash); existing != nil {
		return nil, apierr.Conflict("a bundle with this content hash already exists for platform %s (version %s)",
			platform, existing.BundleVersion)
	}

	bundleID := uuid.New()
	storageKey := bundleStorageKey(projectID, bundleID, in.File.Name)
	if err := s.bucket.UploadFile(ctx, storageKey, in.File.Reader); err != nil {
		s.log.Error("Bundle blob upload failed", "project_id", projectID, "key", storageKey, "error", err)
		return nil, apierr.Storage(err)
	}

	bundle := types.BundleUpdate{
		ID:            bundleID,
		Platform:      platform,
		BundleVersion: version,
		BundleHash:    hash,
		BundleURL:     s.bucket.GetPublicURL(storageKey),
		FileName:      in.File.Name,
		FileSize:      humanFileSize(in.File.Size),
		StorageKey:    storageKey,
		Description:   strings.TrimSpace(in.Description),
		IsMandatory:   in.IsMandatory,
		CreatedAt:     time.Now().UTC(),
	}

	project.BundleUpdates = append([]types.BundleUpdate{bundle}, project.BundleUpdates...)
	project.SortChildren()

	if err := s.projects.Save(ctx, nil, project); err != nil {
		s.log.Error("Bundle record save failed after blob commit, blob orphaned",
			"project_id", projectID, "bundle_id", bundleID, "key", storageKey, "error", err)
		return nil, apierr.PartialFailure(err)
	}

	s.log.Info("Bundle update ingested",
		"project_id", projectID, "bundle_id", bundleID, "platform", platform, "version", version)
	return &bundle, nil
}

// Latest returns (nil, nil) when there is nothing applicable. That is the
// expected steady state, not an error.
func (s *bundleService) Latest(ctx context.Context, projectID uuid.UUID, platform, clientVersion string) (*types.BundleUpdate, error) {
	if strings.TrimSpace(platform) == "" || strings.TrimSpace(clientVersion) == "" {
		return nil, apierr.Validation("platform and current client bundle version are required query parameters")
	}
	if _, err := semverutil.NormalizeValid(clientVersion); err != nil {
		return nil, err
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	requested := strings.ToLower(strings.TrimSpace(platform))
	project.SortChildren()
	for i := range project.BundleUpdates {
		b := &project.BundleUpdates[i]
		if b.Platform != requested {
			continue
		}
		if b.BundleHash == "" {
			return nil, nil
		}
		return b, nil
	}
	return nil, nil
}

func (s *bundleService) Delete(ctx context.Context, projectID, bundleID uuid.UUID) error {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	idx, bundle := project.FindBundle(bundleID)
	if bundle == nil {
		return apierr.NotFound("bundle update not found in this project")
	}

	project.RemoveBundleAt(idx)
	if err := s.projects.Save(ctx, nil, project); err != nil {
		return apierr.Internal(err)
	}

	// Blob cleanup is best-effort, a stale object behind a dead record is
	// harmless and never surfaces to the caller.
	if err := s.bucket.DeletePrefix(ctx, bundleStoragePrefix(projectID, bundleID)); err != nil {
		s.log.Warn("Failed to delete bundle blob", "project_id", projectID, "bundle_id", bundleID, "error", err)
	}

	s.log.Info("Bundle update deleted", "project_id", projectID, "bundle_id", bundleID)
	return nil
}

func (s *bundleService) getProject(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	project, err := s.projects.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, apierr.NotFound("project not found")
		}
		return nil, apierr.Internal(err)
	}
	return project, nil
}
