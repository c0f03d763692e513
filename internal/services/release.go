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
	"github.com/overair/overair-backend/internal/repos"
	"github.com/overair/overair-backend/internal/types"
)

type AddVersionInput struct {
	Platform     string
	VersionName  string
	BuildNumber  string
	ReleaseNotes string
	File         *UploadFile
}

// ReleaseService ingests and manages native binary releases (APK/IPA).
// Unlike bundle ingestion there is no de-duplication and no version
// normalization: build numbers are opaque and repeats are allowed.
type ReleaseService interface {
	AddVersion(ctx context.Context, projectID uuid.UUID, in AddVersionInput) (*types.AppVersion, error)
	DeleteVersion(ctx context.Context, projectID, versionID uuid.UUID) error
	UpdateEnvironments(ctx context.Context, projectID, versionID uuid.UUID, environments []string) (*types.AppVersion, error)
}

type releaseService struct {
	log      *logger.Logger
	projects repos.ProjectRepo
	bucket   gcp.BucketService
}

func NewReleaseService(log *logger.Logger, projects repos.ProjectRepo, bucket gcp.BucketService) ReleaseService {
	return &releaseService{
		log:      log.With("service", "ReleaseService"),
		projects: projects,
		bucket:   bucket,
	}
}

func (s *releaseService) AddVersion(ctx context.Context, projectID uuid.UUID, in AddVersionInput) (*types.AppVersion, error) {
	if in.File == nil {
		return nil, apierr.Validation("app file is required")
	}
	platform, err := canonicalVersionPlatform(in.Platform)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.VersionName) == "" || strings.TrimSpace(in.BuildNumber) == "" {
		return nil, apierr.Validation("platform, version name, and build number are required")
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasPlatform(strings.ToLower(platform)) {
		return nil, apierr.Validation("platform '%s' is not supported by this project, supported platforms: %s",
			in.Platform, strings.Join(project.Platforms, ", "))
	}

	// Two-phase create: the id is reserved up front so the storage key can
	// embed it, the blob is committed, and only then is the record saved.
	versionID := uuid.New()
	storageKey := versionStorageKey(projectID, versionID, in.File.Name)
	if err := s.bucket.UploadFile(ctx, storageKey, in.File.Reader); err != nil {
		s.log.Error("Version blob upload failed", "project_id", projectID, "key", storageKey, "error", err)
		return nil, apierr.Storage(err)
	}

	downloadURL := s.bucket.GetPublicURL(storageKey)
	version := types.AppVersion{
		ID:                 versionID,
		Platform:           platform,
		VersionName:        strings.TrimSpace(in.VersionName),
		BuildNumber:        strings.TrimSpace(in.BuildNumber),
		FileName:           in.File.Name,
		FileSize:           humanFileSize(in.File.Size),
		StorageKey:         storageKey,
		DownloadURL:        downloadURL,
		QRCodeValue:        downloadURL,
		ReleaseNotes:       strings.TrimSpace(in.ReleaseNotes),
		ActiveEnvironments: []string{},
		UploadDate:         time.Now().UTC(),
	}

	project.Versions = append([]types.AppVersion{version}, project.Versions...)
	project.SortChildren()

	if err := s.projects.Save(ctx, nil, project); err != nil {
		// The blob is committed but unreferenced. Deliberately not rolled
		// back; flag it so cleanup can find it.
		s.log.Error("Version record save failed after blob commit, blob orphaned",
			"project_id", projectID, "version_id", versionID, "key", storageKey, "error", err)
		return nil, apierr.PartialFailure(err)
	}

	s.log.Info("App version added", "project_id", projectID, "version_id", versionID, "platform", platform)
	return &version, nil
}

func (s *releaseService) DeleteVersion(ctx context.Context, projectID, versionID uuid.UUID) error {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	idx, version := project.FindVersion(versionID)
	if version == nil {
		return apierr.NotFound("version not found in this project")
	}

	if err := s.bucket.DeletePrefix(ctx, versionStoragePrefix(projectID, versionID)); err != nil {
		s.log.Error("Failed to delete version blob", "project_id", projectID, "version_id", versionID, "error", err)
		return apierr.Storage(err)
	}

	project.RemoveVersionAt(idx)
	if err := s.projects.Save(ctx, nil, project); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("App version deleted", "project_id", projectID, "version_id", versionID)
	return nil
}

func (s *releaseService) UpdateEnvironments(ctx context.Context, projectID, versionID uuid.UUID, environments []string) (*types.AppVersion, error) {
	if environments == nil {
		return nil, apierr.Validation("activeEnvironments must be an array")
	}
	for _, env := range environments {
		if !types.ValidEnvironment(env) {
			return nil, apierr.Validation("unknown environment: %s", env)
		}
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	_, version := project.FindVersion(versionID)
	if version == nil {
		return nil, apierr.NotFound("version not found in this project")
	}

	version.ActiveEnvironments = environments
	if err := s.projects.Save(ctx, nil, project); err != nil {
		return nil, apierr.Internal(err)
	}
	return version, nil
}

func (s *releaseService) getProject(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	project, err := s.projects.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, apierr.NotFound("project not found")
		}
		return nil, apierr.Internal(err)
	}
	return project, nil
}

func canonicalVersionPlatform(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case types.PlatformAndroid:
		return types.VersionPlatformAndroid, nil
	case types.PlatformIOS:
		return types.VersionPlatformIOS, nil
	case "":
		return "", apierr.Validation("platform, version name, and build number are required")
	default:
		return "", apierr.Validation("unsupported platform: %s", raw)
	}
}
