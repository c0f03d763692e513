package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/overair/overair-backend/internal/platform/apierr"
)

func newProjectFixture() (ProjectService, *fakeProjectRepo, *fakeBucket) {
	repo := newFakeProjectRepo()
	bucket := newFakeBucket()
	return NewProjectService(testLogger(), repo, bucket), repo, bucket
}

func TestCreateProject(t *testing.T) {
	svc, _, _ := newProjectFixture()
	ctx := context.Background()

	project, err := svc.Create(ctx, CreateProjectInput{
		Name:        "  Demo App  ",
		Platforms:   []string{"Android", "IOS", "android"},
		RNPlatforms: []string{"Android"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.Name != "Demo App" {
		t.Fatalf("name should be trimmed, got %q", project.Name)
	}
	if len(project.Platforms) != 2 || project.Platforms[0] != "android" || project.Platforms[1] != "ios" {
		t.Fatalf("platforms should be lowercased and de-duplicated, got %v", project.Platforms)
	}
	if len(project.RNPlatforms) != 1 || project.RNPlatforms[0] != "android" {
		t.Fatalf("got rn platforms %v", project.RNPlatforms)
	}
	if project.Versions == nil || project.BundleUpdates == nil {
		t.Fatalf("child collections must start as empty arrays, not null")
	}
}

func TestCreateProjectValidation(t *testing.T) {
	svc, _, _ := newProjectFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProjectInput{Name: "", Platforms: []string{"android"}})
	wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)

	_, err = svc.Create(ctx, CreateProjectInput{Name: "Demo"})
	wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)

	_, err = svc.Create(ctx, CreateProjectInput{Name: "Demo", Platforms: []string{"windows"}})
	ae := wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)
	if !strings.Contains(ae.Error(), "windows") {
		t.Fatalf("got %q", ae.Error())
	}
}

func TestUpdateProjectDetails(t *testing.T) {
	svc, repo, _ := newProjectFixture()
	project := seedProject(repo, []string{"android"}, nil)
	ctx := context.Background()

	name := "Renamed"
	updated, err := svc.UpdateDetails(ctx, project.ID, UpdateProjectInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("got %q", updated.Name)
	}

	// Absent fields stay untouched.
	desc := "new description"
	updated, err = svc.UpdateDetails(ctx, project.ID, UpdateProjectInput{Description: &desc})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Renamed" || updated.Description != "new description" {
		t.Fatalf("got %+v", updated)
	}

	empty := "   "
	_, err = svc.UpdateDetails(ctx, project.ID, UpdateProjectInput{Name: &empty})
	wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)
}

func TestUpdateRNPlatforms(t *testing.T) {
	svc, repo, _ := newProjectFixture()
	project := seedProject(repo, []string{"android", "ios"}, nil)
	ctx := context.Background()

	updated, err := svc.UpdateRNPlatforms(ctx, project.ID, []string{"Android", "iOS"})
	if err != nil {
		t.Fatalf("update rn platforms: %v", err)
	}
	if len(updated.RNPlatforms) != 2 {
		t.Fatalf("got %v", updated.RNPlatforms)
	}

	// Clearing the list is a legal configuration state.
	updated, err = svc.UpdateRNPlatforms(ctx, project.ID, []string{})
	if err != nil {
		t.Fatalf("clear rn platforms: %v", err)
	}
	if len(updated.RNPlatforms) != 0 {
		t.Fatalf("got %v", updated.RNPlatforms)
	}

	_, err = svc.UpdateRNPlatforms(ctx, project.ID, []string{"web"})
	wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)

	_, err = svc.UpdateRNPlatforms(ctx, uuid.New(), []string{"android"})
	wantAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound)
}

func TestDeleteProjectClearsBlobPrefix(t *testing.T) {
	svc, repo, bucket := newProjectFixture()
	project := seedProject(repo, []string{"android"}, []string{"android"})
	ctx := context.Background()

	bucket.objects[project.ID.String()+"/versions/v1/app.apk"] = []byte("apk")
	bucket.objects[project.ID.String()+"/bundles/b1/main.jsbundle"] = []byte("js")
	bucket.objects["other-project/versions/v1/app.apk"] = []byte("apk")

	if err := svc.Delete(ctx, project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(bucket.objects) != 1 {
		t.Fatalf("only foreign blobs should survive, got %v", bucket.objects)
	}
	if _, err := repo.GetByID(ctx, nil, project.ID); err == nil {
		t.Fatalf("project row should be gone")
	}

	err := svc.Delete(ctx, project.ID)
	wantAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound)
}

func TestDeleteProjectStorageFailureKeepsRow(t *testing.T) {
	svc, repo, bucket := newProjectFixture()
	project := seedProject(repo, []string{"android"}, nil)
	bucket.deletePrefixErr = errors.New("gcs unavailable")

	err := svc.Delete(context.Background(), project.ID)
	wantAPIError(t, err, http.StatusInternalServerError, apierr.CodeStorage)

	if _, err := repo.GetByID(context.Background(), nil, project.ID); err != nil {
		t.Fatalf("row must survive so the delete can be retried: %v", err)
	}
}
