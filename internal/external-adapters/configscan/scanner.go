// Package configscan implements format-aware discovery and in-place
// rewriting of identity-bearing fields in JSON, INI, XML, and plain-text
// files.
package configscan

import (
	"fmt"
	"path/filepath"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
	"augclean/internal/domain/services"
)

// Scanner searches configuration files for key/value pairs and embedded
// strings matching identity patterns, and can rewrite a discovered field
// in place. It implements interfaces.FieldSource for telemetry discovery.
type Scanner struct {
	log interfaces.Logger
}

// NewScanner creates a new scanner
func NewScanner(log interfaces.Logger) *Scanner {
	return &Scanner{log: log}
}

// DiscoverIdentityFields scans the given files for telemetry id fields.
// Parse and access errors skip the affected file and are never fatal.
func (s *Scanner) DiscoverIdentityFields(paths []string) []entities.IdentityRecord {
	return s.scanFiles(paths, services.TelemetryPatterns(), false)
}

// DiscoverAccountFields scans the given files for account fields and
// email-shaped values.
func (s *Scanner) DiscoverAccountFields(paths []string) []entities.IdentityRecord {
	return s.scanFiles(paths, services.AccountPatterns(), true)
}

func (s *Scanner) scanFiles(paths []string, patterns []services.Pattern, accountMode bool) []entities.IdentityRecord {
	var found []entities.IdentityRecord
	for _, path := range paths {
		s.log.Debug("scanning file", interfaces.F("path", path))

		var (
			recs []entities.IdentityRecord
			err  error
		)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			recs, err = s.scanJSON(path, patterns, accountMode)
		case ".ini", ".cfg", ".conf":
			recs, err = s.scanINI(path, patterns, accountMode)
		case ".xml":
			recs, err = s.scanXML(path, patterns, accountMode)
		default:
			recs, err = s.scanText(path, patterns, accountMode)
		}
		if err != nil {
			s.log.Warn("skipping unreadable file",
				interfaces.F("path", path), interfaces.F("error", err))
			continue
		}
		found = append(found, recs...)
	}
	return found
}

// RewriteField overwrites one previously discovered field in place, using
// the record's format-specific locator. The whole file is re-serialized;
// callers must have backed up the original beforehand.
func (s *Scanner) RewriteField(rec entities.IdentityRecord, newValue string) error {
	switch rec.Format {
	case entities.FormatJSON:
		return s.rewriteJSON(rec, newValue)
	case entities.FormatINI:
		return s.rewriteINI(rec, newValue)
	case entities.FormatXML:
		return s.rewriteXML(rec, newValue)
	case entities.FormatText:
		return s.rewriteText(rec, newValue)
	default:
		return fmt.Errorf("unsupported record format %q", rec.Format)
	}
}

func classifyKind(accountMode bool, email bool) entities.DataKind {
	switch {
	case email:
		return entities.KindEmail
	case accountMode:
		return entities.KindAccountField
	default:
		return entities.KindTelemetryID
	}
}
