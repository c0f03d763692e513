package types

import (
	"time"

	"github.com/google/uuid"
)

// Bundle hashes are opaque integrity tokens. The only check applied is a
// coarse length floor, no format validation.
const MinBundleHashLength = 10

// BundleUpdate is an over-the-air JS bundle release owned by a Project.
// Records are immutable once ingested; uniqueness within a project is on
// (platform, bundleHash), never on the version string.
type BundleUpdate struct {
	ID            uuid.UUID `json:"id"`
	Platform      string    `json:"platform"`
	BundleVersion string    `json:"bundleVersion"`
	BundleHash    string    `json:"bundleHash"`
	BundleURL     string    `json:"bundleUrl"`
	FileName      string    `json:"fileName"`
	FileSize      string    `json:"fileSize"`
	StorageKey    string    `json:"storageKey"`
	Description   string    `json:"description"`
	IsMandatory   bool      `json:"isMandatory"`
	CreatedAt     time.Time `json:"createdAt"`
}

func ValidBundlePlatform(p string) bool {
	return p == PlatformAndroid || p == PlatformIOS
}
