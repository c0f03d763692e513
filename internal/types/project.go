package types

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Native platforms a project can distribute binaries for.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// Project is the aggregate root. Versions and bundle updates live inside the
// row as JSONB arrays, so every mutation is a whole-document save: children
// have no identity outside their owning project.
type Project struct {
	ID            uuid.UUID                         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string                            `gorm:"column:name;not null" json:"name"`
	Description   string                            `gorm:"column:description" json:"description"`
	Platforms     datatypes.JSONSlice[string]       `gorm:"column:platforms;type:jsonb" json:"platforms"`
	RNPlatforms   datatypes.JSONSlice[string]       `gorm:"column:rn_platforms;type:jsonb" json:"rnPlatforms"`
	Versions      datatypes.JSONSlice[AppVersion]   `gorm:"column:versions;type:jsonb" json:"versions"`
	BundleUpdates datatypes.JSONSlice[BundleUpdate] `gorm:"column:bundle_updates;type:jsonb" json:"bundleUpdates"`
	CreatedAt     time.Time                         `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt     time.Time                         `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Project) TableName() string { return "project" }

func ValidPlatform(p string) bool {
	return p == PlatformIOS || p == PlatformAndroid
}

func (p *Project) HasPlatform(platform string) bool {
	for _, v := range p.Platforms {
		if v == platform {
			return true
		}
	}
	return false
}

func (p *Project) HasRNPlatform(platform string) bool {
	for _, v := range p.RNPlatforms {
		if v == platform {
			return true
		}
	}
	return false
}

// SortChildren orders both child collections newest-first. Ordering is by
// creation time only, never by version value; stable so records sharing a
// timestamp keep insertion order.
func (p *Project) SortChildren() {
	sort.SliceStable(p.Versions, func(i, j int) bool {
		return p.Versions[i].UploadDate.After(p.Versions[j].UploadDate)
	})
	sort.SliceStable(p.BundleUpdates, func(i, j int) bool {
		return p.BundleUpdates[i].CreatedAt.After(p.BundleUpdates[j].CreatedAt)
	})
}

func (p *Project) FindVersion(id uuid.UUID) (int, *AppVersion) {
	for i := range p.Versions {
		if p.Versions[i].ID == id {
			return i, &p.Versions[i]
		}
	}
	return -1, nil
}

func (p *Project) FindBundle(id uuid.UUID) (int, *BundleUpdate) {
	for i := range p.BundleUpdates {
		if p.BundleUpdates[i].ID == id {
			return i, &p.BundleUpdates[i]
		}
	}
	return -1, nil
}

// FindBundleByHash locates a stored bundle sharing the candidate's platform
// and content hash. Version strings are not part of the identity: the same
// content re-tagged under a new version is still a duplicate.
func (p *Project) FindBundleByHash(platform, hash string) *BundleUpdate {
	for i := range p.BundleUpdates {
		if p.BundleUpdates[i].Platform == platform && p.BundleUpdates[i].BundleHash == hash {
			return &p.BundleUpdates[i]
		}
	}
	return nil
}

func (p *Project) RemoveVersionAt(i int) {
	p.Versions = append(p.Versions[:i], p.Versions[i+1:]...)
}

func (p *Project) RemoveBundleAt(i int) {
	p.BundleUpdates = append(p.BundleUpdates[:i], p.BundleUpdates[i+1:]...)
}
