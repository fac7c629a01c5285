package version

// Version is the current version of the argo-dataset tools.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-dataset/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// SchemaVersion is the layout version written into exported labeled tables.
// Bump the minor version when columns are appended, the major version when
// existing columns change meaning.
const SchemaVersion = "1.0.0"

// GetVersion returns the current version of the tools.
func GetVersion() string {
	return Version
}
