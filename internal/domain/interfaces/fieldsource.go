package interfaces

import "augclean/internal/domain/entities"

// FieldSource is the capability shared by every backend that can hold
// identity-bearing fields: the structured-format file scanner and the
// registry adapter both implement it, so callers never branch on platform.
// On platforms where a source does not apply it returns empty results and
// treats rewrites as successful no-ops.
type FieldSource interface {
	// DiscoverIdentityFields enumerates identity-bearing fields. Sources
	// that scan files take the candidate paths; sources with fixed
	// well-known locations ignore the argument.
	DiscoverIdentityFields(paths []string) []entities.IdentityRecord

	// RewriteField overwrites one previously discovered field in place.
	// The record's locator must be honored without re-scanning.
	RewriteField(rec entities.IdentityRecord, newValue string) error
}
