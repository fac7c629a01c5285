package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// CheckSchemaCompatibility checks whether a labeled table written with
// fileVersion can be read by a reader supporting readerVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - The file's minor version must not be newer than the reader's
//   - Patch versions can differ
//
// Examples:
//   - Reader 1.2.0, File 1.2.3 -> OK (patch differs)
//   - Reader 1.2.0, File 1.1.0 -> OK (older minor, columns only appended since)
//   - Reader 1.2.0, File 1.3.0 -> ERROR (file has columns the reader does not know)
//   - Reader 2.0.0, File 1.2.0 -> ERROR (major differs)
func CheckSchemaCompatibility(readerVersion, fileVersion string) error {
	readerVersion = strings.TrimPrefix(strings.TrimSpace(readerVersion), "v")
	fileVersion = strings.TrimPrefix(strings.TrimSpace(fileVersion), "v")

	if readerVersion == "main" || fileVersion == "main" {
		return nil
	}

	readerSemver, err := semver.NewVersion(readerVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid reader schema version '%s'", readerVersion)
	}

	fileSemver, err := semver.NewVersion(fileVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid file schema version '%s'", fileVersion)
	}

	if readerSemver.Major() != fileSemver.Major() {
		return errors.Newf(errors.ErrCodeSchemaVersionFailed,
			"major version mismatch: reader supports %d.x.x but file is %d.x.x",
			readerSemver.Major(), fileSemver.Major())
	}

	if fileSemver.Minor() > readerSemver.Minor() {
		return errors.Newf(errors.ErrCodeSchemaVersionFailed,
			"minor version mismatch: reader supports up to %d.%d.x but file is %d.%d.x",
			readerSemver.Major(), readerSemver.Minor(),
			fileSemver.Major(), fileSemver.Minor())
	}

	return nil
}

// CheckSchema checks fileVersion against the current SchemaVersion.
func CheckSchema(fileVersion string) error {
	return CheckSchemaCompatibility(SchemaVersion, fileVersion)
}
