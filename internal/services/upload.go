package services

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// UploadFile carries one multipart file from the HTTP boundary into a
// service. The reader streams straight to blob storage, nothing is staged on
// local disk.
type UploadFile struct {
	Name   string
	Size   int64
	Reader io.Reader
}

func humanFileSize(sizeBytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(sizeBytes)/(1024*1024))
}

// Storage keys embed the pre-reserved record id so the blob can be written
// before the record exists in the document store.
func versionStorageKey(projectID, versionID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/versions/%s/%s", projectID, versionID, fileName)
}

func versionStoragePrefix(projectID, versionID uuid.UUID) string {
	return fmt.Sprintf("%s/versions/%s/", projectID, versionID)
}

func bundleStorageKey(projectID, bundleID uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/bundles/%s/%s", projectID, bundleID, fileName)
}

func bundleStoragePrefix(projectID, bundleID uuid.UUID) string {
	return fmt.Sprintf("%s/bundles/%s/", projectID, bundleID)
}

func projectStoragePrefix(projectID uuid.UUID) string {
	return fmt.Sprintf("%s/", projectID)
}
