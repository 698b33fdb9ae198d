// Package entities defines core domain models and data structures.
package entities

// ArtifactKind classifies a located filesystem artifact.
type ArtifactKind string

const (
	ArtifactDirectory    ArtifactKind = "directory"
	ArtifactConfigFile   ArtifactKind = "config-file"
	ArtifactDatabaseFile ArtifactKind = "database-file"
)

// ArtifactPath is a filesystem location believed to belong to the target
// product. Created during discovery, immutable afterwards; downstream
// scanners reference it by path and never own it.
type ArtifactPath struct {
	Path         string
	Kind         ArtifactKind
	DiscoveredBy string
}
