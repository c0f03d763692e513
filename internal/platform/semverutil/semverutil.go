package semverutil

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/overair/overair-backend/internal/platform/apierr"
)

// Normalize expands relaxed version strings into canonical three-component
// form: "2" -> "2.0.0", "2.5" -> "2.5.0". A string that already parses as a
// full semantic version is returned unchanged, as is anything that cannot be
// expanded (it will fail Validate downstream). Normalize is idempotent.
func Normalize(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return v
	}
	if _, err := semver.StrictNewVersion(v); err == nil {
		return v
	}
	parts := strings.Split(v, ".")
	switch len(parts) {
	case 1:
		if isNumeric(parts[0]) {
			return v + ".0.0"
		}
	case 2:
		if isNumeric(parts[0]) && isNumeric(parts[1]) {
			return v + ".0"
		}
	}
	return v
}

// NormalizeValid normalizes raw and validates the result, returning the
// canonical version. The error message always carries the original raw
// string, not the normalized one.
func NormalizeValid(raw string) (string, error) {
	normalized := Normalize(raw)
	if _, err := semver.StrictNewVersion(normalized); err != nil {
		return "", apierr.Validation("invalid version format: %s, use semantic versioning (e.g. 1.0.0)", raw)
	}
	return normalized, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
