//go:build windows

package registry

import (
	"fmt"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
	"golang.org/x/sys/windows/registry"
)

type hive struct {
	name string
	key  registry.Key
}

var hives = []hive{
	{"HKEY_CURRENT_USER", registry.CURRENT_USER},
	{"HKEY_LOCAL_MACHINE", registry.LOCAL_MACHINE},
}

// Adapter reads and rewrites product values under the configured
// registry key paths in both user and machine hives.
type Adapter struct {
	keyPaths []string
	log      interfaces.Logger
}

func NewAdapter(keyPaths []string, log interfaces.Logger) *Adapter {
	return &Adapter{keyPaths: keyPaths, log: log}
}

// DiscoverIdentityFields enumerates every value under the configured key
// paths, one level of subkeys deep. The paths argument is unused here;
// the registry is addressed by key path, not file path.
func (a *Adapter) DiscoverIdentityFields(paths []string) []entities.IdentityRecord {
	var found []entities.IdentityRecord
	for _, h := range hives {
		for _, keyPath := range a.keyPaths {
			found = append(found, a.scanKey(h, keyPath)...)

			k, err := registry.OpenKey(h.key, keyPath, registry.ENUMERATE_SUB_KEYS)
			if err != nil {
				continue
			}
			subkeys, err := k.ReadSubKeyNames(-1)
			k.Close()
			if err != nil {
				continue
			}
			for _, sub := range subkeys {
				found = append(found, a.scanKey(h, keyPath+`\`+sub)...)
			}
		}
	}
	return found
}

func (a *Adapter) scanKey(h hive, keyPath string) []entities.IdentityRecord {
	k, err := registry.OpenKey(h.key, keyPath, registry.QUERY_VALUE)
	if err != nil {
		return nil
	}
	defer k.Close()

	names, err := k.ReadValueNames(-1)
	if err != nil {
		return nil
	}

	var found []entities.IdentityRecord
	for _, name := range names {
		val, valtype, err := k.GetStringValue(name)
		if err != nil {
			// Non-string values carry no identity text.
			continue
		}
		found = append(found, entities.IdentityRecord{
			File:    h.name + `\` + keyPath,
			Format:  entities.FormatRegistry,
			Key:     name,
			Value:   val,
			Pattern: "registry",
			Kind:    entities.KindTelemetryID,
			Registry: &entities.RegistryLocator{
				Hive:      h.name,
				KeyPath:   keyPath,
				ValueName: name,
				ValueType: valtype,
			},
		})
	}
	return found
}

// RewriteField replaces one registry value in place, preserving its
// original value type.
func (a *Adapter) RewriteField(rec entities.IdentityRecord, newValue string) error {
	if rec.Registry == nil {
		return fmt.Errorf("record for %s has no registry locator", rec.File)
	}
	var root registry.Key
	switch rec.Registry.Hive {
	case "HKEY_CURRENT_USER":
		root = registry.CURRENT_USER
	case "HKEY_LOCAL_MACHINE":
		root = registry.LOCAL_MACHINE
	default:
		return fmt.Errorf("unknown hive %q", rec.Registry.Hive)
	}

	k, err := registry.OpenKey(root, rec.Registry.KeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening %s\\%s for writing: %w", rec.Registry.Hive, rec.Registry.KeyPath, err)
	}
	defer k.Close()

	switch rec.Registry.ValueType {
	case registry.EXPAND_SZ:
		err = k.SetExpandStringValue(rec.Registry.ValueName, newValue)
	default:
		err = k.SetStringValue(rec.Registry.ValueName, newValue)
	}
	if err != nil {
		return fmt.Errorf("writing %s under %s\\%s: %w", rec.Registry.ValueName, rec.Registry.Hive, rec.Registry.KeyPath, err)
	}
	return nil
}
