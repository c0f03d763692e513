package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/overair/overair-backend/internal/platform/apierr"
	"github.com/overair/overair-backend/internal/types"
)

func newReleaseFixture() (ReleaseService, *fakeProjectRepo, *fakeBucket) {
	repo := newFakeProjectRepo()
	bucket := newFakeBucket()
	return NewReleaseService(testLogger(), repo, bucket), repo, bucket
}

func validVersionInput() AddVersionInput {
	return AddVersionInput{
		Platform:    "android",
		VersionName: "1.4.0",
		BuildNumber: "42",
		File:        uploadFile("app-release.apk", "apk-bytes"),
	}
}

func TestAddVersionHappyPath(t *testing.T) {
	svc, repo, bucket := newReleaseFixture()
	project := seedProject(repo, []string{"android", "ios"}, nil)

	version, err := svc.AddVersion(context.Background(), project.ID, validVersionInput())
	if err != nil {
		t.Fatalf("add version: %v", err)
	}
	if version.Platform != types.VersionPlatformAndroid {
		t.Fatalf("got platform %q, want %q", version.Platform, types.VersionPlatformAndroid)
	}
	if version.DownloadURL == "" || version.DownloadURL != version.QRCodeValue {
		t.Fatalf("download url and qr value must match, got %q / %q", version.DownloadURL, version.QRCodeValue)
	}
	if version.ActiveEnvironments == nil || len(version.ActiveEnvironments) != 0 {
		t.Fatalf("new versions start with an empty environment list, got %v", version.ActiveEnvironments)
	}
	if _, ok := bucket.objects[version.StorageKey]; !ok {
		t.Fatalf("blob not committed under %s", version.StorageKey)
	}
	stored, _ := repo.GetByID(context.Background(), nil, project.ID)
	if len(stored.Versions) != 1 {
		t.Fatalf("expected 1 stored version, got %d", len(stored.Versions))
	}
}

func TestAddVersionAllowsRepeatedBuilds(t *testing.T) {
	svc, repo, _ := newReleaseFixture()
	project := seedProject(repo, []string{"android"}, nil)
	ctx := context.Background()

	if _, err := svc.AddVersion(ctx, project.ID, validVersionInput()); err != nil {
		t.Fatalf("first add: %v", err)
	}
	again := validVersionInput()
	again.File = uploadFile("app-release.apk", "apk-bytes")
	if _, err := svc.AddVersion(ctx, project.ID, again); err != nil {
		t.Fatalf("repeat add: %v", err)
	}

	stored, _ := repo.GetByID(ctx, nil, project.ID)
	if len(stored.Versions) != 2 {
		t.Fatalf("duplicate builds are allowed, got %d versions", len(stored.Versions))
	}
}

func TestAddVersionValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		svc, repo, _ := newReleaseFixture()
		project := seedProject(repo, []string{"android"}, nil)
		in := validVersionInput()
		in.File = nil
		_, err := svc.AddVersion(ctx, project.ID, in)
		ae := wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)
		if !strings.Contains(ae.Error(), "app file is required") {
			t.Fatalf("got %q", ae.Error())
		}
	})

	t.Run("unsupported platform value", func(t *testing.T) {
		svc, repo, _ := newReleaseFixture()
		project := seedProject(repo, []string{"android"}, nil)
		in := validVersionInput()
		in.Platform = "web"
		_, err := svc.AddVersion(ctx, project.ID, in)
		wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)
	})

	t.Run("platform not enabled for project", func(t *testing.T) {
		svc, repo, _ := newReleaseFixture()
		project := seedProject(repo, []string{"ios"}, nil)
		_, err := svc.AddVersion(ctx, project.ID, validVersionInput())
		ae := wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)
		if !strings.Contains(ae.Error(), "supported platforms: ios") {
			t.Fatalf("error should list the project's platforms, got %q", ae.Error())
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		svc, _, _ := newReleaseFixture()
		_, err := svc.AddVersion(ctx, uuid.New(), validVersionInput())
		wantAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound)
	})
}

func TestAddVersionSaveFailureIsPartialFailure(t *testing.T) {
	svc, repo, bucket := newReleaseFixture()
	project := seedProject(repo, []string{"android"}, nil)
	repo.saveErr = errors.New("connection reset")

	_, err := svc.AddVersion(context.Background(), project.ID, validVersionInput())
	wantAPIError(t, err, http.StatusInternalServerError, apierr.CodePartialFailure)
	if len(bucket.objects) != 1 {
		t.Fatalf("blob should remain committed, got %d objects", len(bucket.objects))
	}
}

func TestDeleteVersion(t *testing.T) {
	svc, repo, bucket := newReleaseFixture()
	project := seedProject(repo, []string{"android"}, nil)
	ctx := context.Background()

	version, err := svc.AddVersion(ctx, project.ID, validVersionInput())
	if err != nil {
		t.Fatalf("add version: %v", err)
	}

	if err := svc.DeleteVersion(ctx, project.ID, version.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	stored, _ := repo.GetByID(ctx, nil, project.ID)
	if len(stored.Versions) != 0 {
		t.Fatalf("version record should be gone")
	}
	if _, ok := bucket.objects[version.StorageKey]; ok {
		t.Fatalf("blob should be gone")
	}

	err = svc.DeleteVersion(ctx, project.ID, version.ID)
	wantAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound)
}

func TestDeleteVersionBlobFailureKeepsRecord(t *testing.T) {
	svc, repo, bucket := newReleaseFixture()
	project := seedProject(repo, []string{"android"}, nil)
	ctx := context.Background()

	version, err := svc.AddVersion(ctx, project.ID, validVersionInput())
	if err != nil {
		t.Fatalf("add version: %v", err)
	}
	bucket.deletePrefixErr = errors.New("gcs unavailable")

	err = svc.DeleteVersion(ctx, project.ID, version.ID)
	wantAPIError(t, err, http.StatusInternalServerError, apierr.CodeStorage)

	// The record stays so the delete can be retried.
	stored, _ := repo.GetByID(ctx, nil, project.ID)
	if len(stored.Versions) != 1 {
		t.Fatalf("record should survive a storage failure")
	}
}

func TestUpdateEnvironments(t *testing.T) {
	svc, repo, _ := newReleaseFixture()
	project := seedProject(repo, []string{"android"}, nil)
	ctx := context.Background()

	version, err := svc.AddVersion(ctx, project.ID, validVersionInput())
	if err != nil {
		t.Fatalf("add version: %v", err)
	}

	updated, err := svc.UpdateEnvironments(ctx, project.ID, version.ID, []string{types.EnvStaging, types.EnvProduction})
	if err != nil {
		t.Fatalf("update environments: %v", err)
	}
	if len(updated.ActiveEnvironments) != 2 {
		t.Fatalf("got %v", updated.ActiveEnvironments)
	}

	_, err = svc.UpdateEnvironments(ctx, project.ID, version.ID, nil)
	ae := wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)
	if !strings.Contains(ae.Error(), "must be an array") {
		t.Fatalf("got %q", ae.Error())
	}

	_, err = svc.UpdateEnvironments(ctx, project.ID, version.ID, []string{"qa"})
	wantAPIError(t, err, http.StatusBadRequest, apierr.CodeValidation)

	_, err = svc.UpdateEnvironments(ctx, project.ID, uuid.New(), []string{types.EnvStaging})
	wantAPIError(t, err, http.StatusNotFound, apierr.CodeNotFound)
}
