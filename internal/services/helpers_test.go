package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/overair/overair-backend/internal/platform/apierr"
	"github.com/overair/overair-backend/internal/platform/logger"
	"github.com/overair/overair-backend/internal/repos"
	"github.com/overair/overair-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeBucket struct {
	objects         map[string][]byte
	uploadErr       error
	deletePrefixErr error
	deletedPrefixes []string
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (f *fakeBucket) UploadFile(_ context.Context, key string, file io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBucket) DeleteFile(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeBucket) DeletePrefix(_ context.Context, prefix string) error {
	if f.deletePrefixErr != nil {
		return f.deletePrefixErr
	}
	f.deletedPrefixes = append(f.deletedPrefixes, prefix)
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			delete(f.objects, key)
		}
	}
	return nil
}

func (f *fakeBucket) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeProjectRepo struct {
	store   map[uuid.UUID]*types.Project
	saveErr error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{store: map[uuid.UUID]*types.Project{}}
}

func cloneProject(p *types.Project) *types.Project {
	c := *p
	c.Platforms = append([]string(nil), p.Platforms...)
	c.RNPlatforms = append([]string(nil), p.RNPlatforms...)
	c.Versions = append([]types.AppVersion(nil), p.Versions...)
	c.BundleUpdates = append([]types.BundleUpdate(nil), p.BundleUpdates...)
	return &c
}

func (f *fakeProjectRepo) Create(_ context.Context, _ *gorm.DB, project *types.Project) (*types.Project, error) {
	f.store[project.ID] = cloneProject(project)
	return project, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Project, error) {
	p, ok := f.store[id]
	if !ok {
		return nil, repos.ErrNotFound
	}
	return cloneProject(p), nil
}

func (f *fakeProjectRepo) List(_ context.Context, _ *gorm.DB) ([]*types.Project, error) {
	out := make([]*types.Project, 0, len(f.store))
	for _, p := range f.store {
		out = append(out, cloneProject(p))
	}
	return out, nil
}

func (f *fakeProjectRepo) Save(_ context.Context, _ *gorm.DB, project *types.Project) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.store[project.ID] = cloneProject(project)
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	if _, ok := f.store[id]; !ok {
		return repos.ErrNotFound
	}
	delete(f.store, id)
	return nil
}

func seedProject(repo *fakeProjectRepo, platforms, rnPlatforms []string) *types.Project {
	project := &types.Project{
		ID:            uuid.New(),
		Name:          "Demo App",
		Platforms:     platforms,
		RNPlatforms:   rnPlatforms,
		Versions:      []types.AppVersion{},
		BundleUpdates: []types.BundleUpdate{},
	}
	repo.store[project.ID] = project
	return project
}

func uploadFile(name, content string) *UploadFile {
	return &UploadFile{Name: name, Size: int64(len(content)), Reader: strings.NewReader(content)}
}

func wantAPIError(t *testing.T, err error, status int, code string) *apierr.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	ae := apierr.From(err)
	if ae.Status != status || ae.Code != code {
		t.Fatalf("got status=%d code=%q (%v), want status=%d code=%q", ae.Status, ae.Code, err, status, code)
	}
	return ae
}
