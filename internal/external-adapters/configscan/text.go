package configscan

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/services"
)

func (s *Scanner) scanText(path string, patterns []services.Pattern, accountMode bool) ([]entities.IdentityRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lineRes := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		lineRes[i] = regexp.MustCompile(`(?i)(` + p.Source + `)\s*[=:]\s*(\S+)`)
	}

	var found []entities.IdentityRecord
	lines := strings.Split(string(data), "\n")
	for n, line := range lines {
		for i, re := range lineRes {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				found = append(found, entities.IdentityRecord{
					File:    path,
					Format:  entities.FormatText,
					Key:     m[1],
					Value:   m[2],
					Pattern: patterns[i].Source,
					Kind:    classifyKind(accountMode, false),
					Text:    &entities.TextLocator{Line: n + 1, FullLine: strings.TrimSpace(line)},
				})
			}
		}
		if accountMode {
			for _, email := range services.EmailRegex.FindAllString(line, -1) {
				found = append(found, entities.IdentityRecord{
					File:    path,
					Format:  entities.FormatText,
					Key:     "email",
					Value:   email,
					Pattern: "email",
					Kind:    entities.KindEmail,
					Text:    &entities.TextLocator{Line: n + 1, FullLine: strings.TrimSpace(line)},
				})
			}
		}
	}
	return found, nil
}

// rewriteText touches only the line the record was found on. The value
// is located through the same key/separator shape the scan matched, so
// spaces around "=" or ":" are honored and an identical value elsewhere
// on the line stays untouched.
func (s *Scanner) rewriteText(rec entities.IdentityRecord, newValue string) error {
	if rec.Text == nil {
		return fmt.Errorf("record for %s has no text locator", rec.File)
	}
	data, err := os.ReadFile(rec.File)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")
	idx := rec.Text.Line - 1
	if idx < 0 || idx >= len(lines) {
		return fmt.Errorf("line %d no longer exists in %s", rec.Text.Line, rec.File)
	}

	line := lines[idx]
	changed := false
	keyed := regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(rec.Key) + `\s*[=:]\s*)` + regexp.QuoteMeta(rec.Value))
	if keyed.MatchString(line) {
		line = keyed.ReplaceAllString(line, "${1}"+newValue)
		changed = true
	}
	if !changed && strings.Contains(line, rec.Value) {
		line = strings.ReplaceAll(line, rec.Value, newValue)
		changed = true
	}
	if !changed {
		return fmt.Errorf("value for %q not found on line %d of %s", rec.Key, rec.Text.Line, rec.File)
	}
	lines[idx] = line
	return os.WriteFile(rec.File, []byte(strings.Join(lines, "\n")), 0o644)
}
