package configscan

import (
	"fmt"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/services"
	"github.com/beevik/etree"
)

func (s *Scanner) scanXML(path string, patterns []services.Pattern, accountMode bool) ([]entities.IdentityRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("malformed XML: %w", err)
	}

	var found []entities.IdentityRecord
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	s.walkXML(path, root, root.Tag, nil, patterns, accountMode, &found)
	return found, nil
}

// walkXML carries both the tag path and the chain of child-element
// indexes so a later rewrite can reach this exact element even when
// siblings share a tag or a value.
func (s *Scanner) walkXML(path string, el *etree.Element, tagPath string, indexes []int, patterns []services.Pattern, accountMode bool, found *[]entities.IdentityRecord) {
	text := strings.TrimSpace(el.Text())

	if tag, ok := services.MatchKey(patterns, el.Tag); ok && text != "" {
		*found = append(*found, entities.IdentityRecord{
			File:    path,
			Format:  entities.FormatXML,
			Key:     el.Tag,
			Value:   text,
			Pattern: tag,
			Kind:    classifyKind(accountMode, false),
			XML:     &entities.XMLLocator{Path: tagPath, Indexes: cloneInts(indexes)},
		})
	}
	if accountMode && services.IsEmail(text) {
		*found = append(*found, entities.IdentityRecord{
			File:    path,
			Format:  entities.FormatXML,
			Key:     el.Tag,
			Value:   text,
			Pattern: "email",
			Kind:    entities.KindEmail,
			XML:     &entities.XMLLocator{Path: tagPath, Indexes: cloneInts(indexes)},
		})
	}

	for _, attr := range el.Attr {
		if tag, ok := services.MatchKey(patterns, attr.Key); ok {
			*found = append(*found, entities.IdentityRecord{
				File:    path,
				Format:  entities.FormatXML,
				Key:     attr.Key,
				Value:   attr.Value,
				Pattern: tag,
				Kind:    classifyKind(accountMode, false),
				XML:     &entities.XMLLocator{Path: tagPath, Indexes: cloneInts(indexes), Attribute: attr.Key},
			})
			continue
		}
		if accountMode && services.IsEmail(attr.Value) {
			*found = append(*found, entities.IdentityRecord{
				File:    path,
				Format:  entities.FormatXML,
				Key:     attr.Key,
				Value:   attr.Value,
				Pattern: "email",
				Kind:    entities.KindEmail,
				XML:     &entities.XMLLocator{Path: tagPath, Indexes: cloneInts(indexes), Attribute: attr.Key},
			})
		}
	}

	for i, child := range el.ChildElements() {
		s.walkXML(path, child, tagPath+"/"+child.Tag, append(indexes, i), patterns, accountMode, found)
	}
}

func (s *Scanner) rewriteXML(rec entities.IdentityRecord, newValue string) error {
	if rec.XML == nil {
		return fmt.Errorf("record for %s has no XML locator", rec.File)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(rec.File); err != nil {
		return fmt.Errorf("malformed XML in %s: %w", rec.File, err)
	}
	el := doc.Root()
	if el == nil {
		return fmt.Errorf("no root element in %s", rec.File)
	}
	for _, idx := range rec.XML.Indexes {
		children := el.ChildElements()
		if idx < 0 || idx >= len(children) {
			return fmt.Errorf("element at %s no longer exists in %s", rec.XML.Path, rec.File)
		}
		el = children[idx]
	}
	if rec.XML.Attribute != "" {
		if el.SelectAttr(rec.XML.Attribute) == nil {
			return fmt.Errorf("attribute %q not found at %s in %s", rec.XML.Attribute, rec.XML.Path, rec.File)
		}
		el.CreateAttr(rec.XML.Attribute, newValue)
	} else {
		el.SetText(newValue)
	}
	return doc.WriteToFile(rec.File)
}

func cloneInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}
