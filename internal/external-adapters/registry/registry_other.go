//go:build !windows

package registry

import (
	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

// Adapter is inert on platforms without a registry: discovery finds
// nothing and rewrites succeed without doing anything, so callers need
// no platform branching.
type Adapter struct {
	keyPaths []string
	log      interfaces.Logger
}

func NewAdapter(keyPaths []string, log interfaces.Logger) *Adapter {
	return &Adapter{keyPaths: keyPaths, log: log}
}

func (a *Adapter) DiscoverIdentityFields(paths []string) []entities.IdentityRecord {
	return nil
}

func (a *Adapter) RewriteField(rec entities.IdentityRecord, newValue string) error {
	return nil
}
