package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/overair/overair-backend/internal/platform/apierr"
	"github.com/overair/overair-backend/internal/platform/gcp"
	"github.com/overair/overair-backend/internal/platform/logger"
	"github.com/overair/overair-backend/internal/repos"
	"github.com/overair/overair-backend/internal/types"
)

type CreateProjectInput struct {
	Name        string
	Description string
	Platforms   []string
	RNPlatforms []string
}

// UpdateProjectInput uses pointers so absent fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Platforms   []string
}

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*types.Project, error)
	List(ctx context.Context) ([]*types.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Project, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*types.Project, error)
	UpdateRNPlatforms(ctx context.Context, id uuid.UUID, platforms []string) (*types.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	log      *logger.Logger
	projects repos.ProjectRepo
	bucket   gcp.BucketService
}

func NewProjectService(log *logger.Logger, projects repos.ProjectRepo, bucket gcp.BucketService) ProjectService {
	return &projectService{
		log:      log.With("service", "ProjectService"),
		projects: projects,
		bucket:   bucket,
	}
}

func (s *projectService) Create(ctx context.Context, in CreateProjectInput) (*types.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(in.Platforms) == 0 {
		return nil, apierr.Validation("project name and at least one platform are required")
	}
	platforms, err := normalizePlatformSet(in.Platforms)
	if err != nil {
		return nil, err
	}
	rnPlatforms, err := normalizePlatformSet(in.RNPlatforms)
	if err != nil {
		return nil, err
	}

	project := &types.Project{
		ID:            uuid.New(),
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Platforms:     platforms,
		RNPlatforms:   rnPlatforms,
		Versions:      []types.AppVersion{},
		BundleUpdates: []types.BundleUpdate{},
	}
	created, err := s.projects.Create(ctx, nil, project)
	if err != nil {
		s.log.Error("Failed to create project", "error", err)
		return nil, apierr.Internal(err)
	}
	s.log.Info("Project created", "project_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *projectService) List(ctx context.Context) ([]*types.Project, error) {
	projects, err := s.projects.List(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	for _, p := range projects {
		p.SortChildren()
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project.SortChildren()
	return project, nil
}

func (s *projectService) UpdateDetails(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*types.Project, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apierr.Validation("project name cannot be empty")
		}
		project.Name = name
	}
	if in.Description != nil {
		project.Description = strings.TrimSpace(*in.Description)
	}
	if in.Platforms != nil {
		platforms, err := normalizePlatformSet(in.Platforms)
		if err != nil {
			return nil, err
		}
		project.Platforms = platforms
	}
	if err := s.projects.Save(ctx, nil, project); err != nil {
		return nil, apierr.Internal(err)
	}
	return project, nil
}

func (s *projectService) UpdateRNPlatforms(ctx context.Context, id uuid.UUID, platforms []string) (*types.Project, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizePlatformSet(platforms)
	if err != nil {
		return nil, err
	}
	project.RNPlatforms = normalized
	if err := s.projects.Save(ctx, nil, project); err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Project bundle platforms updated", "project_id", id, "rn_platforms", normalized)
	return project, nil
}

// Delete removes every blob under the project's prefix before deleting the
// row, so a storage failure leaves the aggregate intact and retryable.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getProject(ctx, id); err != nil {
		return err
	}
	if err := s.bucket.DeletePrefix(ctx, projectStoragePrefix(id)); err != nil {
		s.log.Error("Failed to delete project blobs", "project_id", id, "error", err)
		return apierr.Storage(err)
	}
	if err := s.projects.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return apierr.NotFound("project not found")
		}
		return apierr.Internal(err)
	}
	s.log.Info("Project deleted", "project_id", id)
	return nil
}

func (s *projectService) getProject(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	project, err := s.projects.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, apierr.NotFound("project not found")
		}
		return nil, apierr.Internal(err)
	}
	return project, nil
}

func normalizePlatformSet(platforms []string) ([]string, error) {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		normalized := strings.ToLower(strings.TrimSpace(p))
		if !types.ValidPlatform(normalized) {
			return nil, apierr.Validation("unsupported platform: %s", p)
		}
		seen := false
		for _, existing := range out {
			if existing == normalized {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, normalized)
		}
	}
	return out, nil
}
