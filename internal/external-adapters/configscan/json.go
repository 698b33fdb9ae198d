package configscan

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/services"
)

func (s *Scanner) scanJSON(path string, patterns []services.Pattern, accountMode bool) ([]entities.IdentityRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}

	var found []entities.IdentityRecord
	walkJSON(doc, "", func(keyPath, key string, value interface{}) {
		if tag, ok := services.MatchKey(patterns, key); ok {
			found = append(found, entities.IdentityRecord{
				File:    path,
				Format:  entities.FormatJSON,
				Key:     key,
				Value:   stringify(value),
				Pattern: tag,
				Kind:    classifyKind(accountMode, false),
				JSON:    &entities.JSONLocator{KeyPath: keyPath},
			})
		}
		if accountMode {
			if str, ok := value.(string); ok && services.IsEmail(str) {
				found = append(found, entities.IdentityRecord{
					File:    path,
					Format:  entities.FormatJSON,
					Key:     key,
					Value:   str,
					Pattern: "email",
					Kind:    entities.KindEmail,
					JSON:    &entities.JSONLocator{KeyPath: keyPath},
				})
			}
		}
	})
	return found, nil
}

// walkJSON visits every key/value pair in the document, carrying the
// dotted/bracketed path from the root.
func walkJSON(node interface{}, path string, visit func(keyPath, key string, value interface{})) {
	switch v := node.(type) {
	case map[string]interface{}:
		for key, value := range v {
			keyPath := key
			if path != "" {
				keyPath = path + "." + key
			}
			visit(keyPath, key, value)
			walkJSON(value, keyPath, visit)
		}
	case []interface{}:
		for i, item := range v {
			walkJSON(item, fmt.Sprintf("%s[%d]", path, i), visit)
		}
	}
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (s *Scanner) rewriteJSON(rec entities.IdentityRecord, newValue string) error {
	if rec.JSON == nil {
		return fmt.Errorf("record for %s has no JSON locator", rec.File)
	}
	data, err := os.ReadFile(rec.File)
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("malformed JSON in %s: %w", rec.File, err)
	}

	segs, err := parseJSONPath(rec.JSON.KeyPath)
	if err != nil {
		return err
	}

	// Navigate to the parent container of the leaf.
	current := doc
	for _, seg := range segs[:len(segs)-1] {
		current, err = descend(current, seg)
		if err != nil {
			return fmt.Errorf("key path %q not found in %s: %w", rec.JSON.KeyPath, rec.File, err)
		}
	}

	leaf := segs[len(segs)-1]
	switch parent := current.(type) {
	case map[string]interface{}:
		if leaf.index >= 0 {
			return fmt.Errorf("key path %q addresses an index inside an object", rec.JSON.KeyPath)
		}
		if _, ok := parent[leaf.key]; !ok {
			return fmt.Errorf("final key %q not found in %s", leaf.key, rec.File)
		}
		parent[leaf.key] = newValue
	case []interface{}:
		if leaf.index < 0 || leaf.index >= len(parent) {
			return fmt.Errorf("index %d out of range in %s", leaf.index, rec.File)
		}
		parent[leaf.index] = newValue
	default:
		return fmt.Errorf("key path %q does not address a container in %s", rec.JSON.KeyPath, rec.File)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rec.File, out, 0o644)
}

type jsonSeg struct {
	key   string
	index int // -1 for object keys
}

// parseJSONPath splits "a.b[2].c" into its object-key and array-index
// segments.
func parseJSONPath(p string) ([]jsonSeg, error) {
	if p == "" {
		return nil, fmt.Errorf("empty key path")
	}
	var segs []jsonSeg
	for _, part := range strings.Split(p, ".") {
		for {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				if part != "" {
					segs = append(segs, jsonSeg{key: part, index: -1})
				}
				break
			}
			if open > 0 {
				segs = append(segs, jsonSeg{key: part[:open], index: -1})
			}
			closeIdx := strings.IndexByte(part, ']')
			if closeIdx < open {
				return nil, fmt.Errorf("malformed key path segment %q", part)
			}
			idx, err := strconv.Atoi(part[open+1 : closeIdx])
			if err != nil {
				return nil, fmt.Errorf("malformed index in key path segment %q", part)
			}
			segs = append(segs, jsonSeg{index: idx})
			part = part[closeIdx+1:]
		}
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("empty key path")
	}
	return segs, nil
}

func descend(node interface{}, seg jsonSeg) (interface{}, error) {
	switch v := node.(type) {
	case map[string]interface{}:
		if seg.index >= 0 {
			return nil, fmt.Errorf("expected key, found index")
		}
		child, ok := v[seg.key]
		if !ok {
			return nil, fmt.Errorf("key %q missing", seg.key)
		}
		return child, nil
	case []interface{}:
		if seg.index < 0 {
			return nil, fmt.Errorf("expected index, found key %q", seg.key)
		}
		if seg.index >= len(v) {
			return nil, fmt.Errorf("index %d out of range", seg.index)
		}
		return v[seg.index], nil
	default:
		return nil, fmt.Errorf("cannot descend into scalar")
	}
}
