package configscan

import (
	"fmt"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/services"
	"gopkg.in/ini.v1"
)

func (s *Scanner) scanINI(path string, patterns []services.Pattern, accountMode bool) ([]entities.IdentityRecord, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("malformed INI: %w", err)
	}

	var found []entities.IdentityRecord
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			if tag, ok := services.MatchKey(patterns, key.Name()); ok {
				found = append(found, entities.IdentityRecord{
					File:    path,
					Format:  entities.FormatINI,
					Key:     key.Name(),
					Value:   key.Value(),
					Pattern: tag,
					Kind:    classifyKind(accountMode, false),
					INI:     &entities.INILocator{Section: section.Name(), Key: key.Name()},
				})
			}
			if accountMode && services.IsEmail(key.Value()) {
				found = append(found, entities.IdentityRecord{
					File:    path,
					Format:  entities.FormatINI,
					Key:     key.Name(),
					Value:   key.Value(),
					Pattern: "email",
					Kind:    entities.KindEmail,
					INI:     &entities.INILocator{Section: section.Name(), Key: key.Name()},
				})
			}
		}
	}
	return found, nil
}

func (s *Scanner) rewriteINI(rec entities.IdentityRecord, newValue string) error {
	if rec.INI == nil {
		return fmt.Errorf("record for %s has no INI locator", rec.File)
	}
	cfg, err := ini.Load(rec.File)
	if err != nil {
		return fmt.Errorf("malformed INI in %s: %w", rec.File, err)
	}
	section, err := cfg.GetSection(rec.INI.Section)
	if err != nil {
		return fmt.Errorf("section %q not found in %s", rec.INI.Section, rec.File)
	}
	if !section.HasKey(rec.INI.Key) {
		return fmt.Errorf("key %q not found in section %q of %s", rec.INI.Key, rec.INI.Section, rec.File)
	}
	section.Key(rec.INI.Key).SetValue(newValue)
	return cfg.SaveTo(rec.File)
}
