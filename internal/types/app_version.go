package types

import (
	"time"

	"github.com/google/uuid"
)

// Native binary platforms keep the capitalized spelling the mobile tooling
// reports, unlike bundle platforms which are canonical lowercase.
const (
	VersionPlatformAndroid = "Android"
	VersionPlatformIOS     = "iOS"
)

const (
	EnvDevelopment = "Development"
	EnvStaging     = "Staging"
	EnvProduction  = "Production"
)

// AppVersion is a native binary release (APK/IPA) owned by a Project. The ID
// is reserved before the blob write so the storage key can embed it.
type AppVersion struct {
	ID                 uuid.UUID `json:"id"`
	Platform           string    `json:"platform"`
	VersionName        string    `json:"versionName"`
	BuildNumber        string    `json:"buildNumber"`
	FileName           string    `json:"fileName"`
	FileSize           string    `json:"fileSize"`
	StorageKey         string    `json:"storageKey"`
	DownloadURL        string    `json:"downloadUrl"`
	QRCodeValue        string    `json:"qrCodeValue"`
	ReleaseNotes       string    `json:"releaseNotes"`
	ActiveEnvironments []string  `json:"activeEnvironments"`
	UploadDate         time.Time `json:"uploadDate"`
}

func ValidVersionPlatform(p string) bool {
	return p == VersionPlatformAndroid || p == VersionPlatformIOS
}

func ValidEnvironment(e string) bool {
	return e == EnvDevelopment || e == EnvStaging || e == EnvProduction
}
