// Package yaml provides YAML-based product profile parsing.
package yaml

import (
	"fmt"
	"os"

	"augclean/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlProfile represents the raw YAML structure
type yamlProfile struct {
	ProductName       string   `yaml:"product_name"`
	NameVariants      []string `yaml:"name_variants"`
	Keyword           string   `yaml:"keyword"`
	RedactionToken    string   `yaml:"redaction_token"`
	ProcessIndicators []string `yaml:"process_indicators"`
	RegistryKeyPaths  []string `yaml:"registry_key_paths"`
	WorkspacePatterns []string `yaml:"workspace_patterns"`
	BackupRoot        string   `yaml:"backup_root"`
}

// ProfileParser parses product profiles from YAML files
type ProfileParser struct{}

// NewProfileParser creates a new profile parser
func NewProfileParser() *ProfileParser {
	return &ProfileParser{}
}

// ParseFile reads and parses a profile YAML file, filling any omitted
// fields from the default profile so partial overrides stay valid.
func (p *ProfileParser) ParseFile(filePath string) (*entities.Profile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	return p.Parse(data)
}

// Parse parses profile YAML content.
func (p *ProfileParser) Parse(data []byte) (*entities.Profile, error) {
	var raw yamlProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	profile := DefaultProfile()
	if raw.ProductName != "" {
		profile.ProductName = raw.ProductName
	}
	if len(raw.NameVariants) > 0 {
		profile.NameVariants = raw.NameVariants
	}
	if raw.Keyword != "" {
		profile.Keyword = raw.Keyword
	}
	if raw.RedactionToken != "" {
		profile.RedactionToken = raw.RedactionToken
	}
	if len(raw.ProcessIndicators) > 0 {
		profile.ProcessIndicators = raw.ProcessIndicators
	}
	if len(raw.RegistryKeyPaths) > 0 {
		profile.RegistryKeyPaths = raw.RegistryKeyPaths
	}
	if len(raw.WorkspacePatterns) > 0 {
		profile.WorkspacePatterns = raw.WorkspacePatterns
	}
	if raw.BackupRoot != "" {
		profile.BackupRoot = raw.BackupRoot
	}

	if err := validate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DefaultProfile returns the compiled-in AugmentCode profile.
func DefaultProfile() *entities.Profile {
	return &entities.Profile{
		ProductName: "AugmentCode",
		NameVariants: []string{
			"augmentcode", "AugmentCode", "Augment Code", "augment_code",
			"augment", "Augment",
		},
		Keyword:           "augment",
		RedactionToken:    "[REMOVED]",
		ProcessIndicators: []string{"augment", "augmentcode"},
		RegistryKeyPaths: []string{
			`Software\AugmentCode`,
			`Software\Augment Code`,
			`Software\augmentcode`,
		},
		WorkspacePatterns: []string{
			"workspace", "workspaces", "projects", "documents",
			"files", "data", "storage", "user_data",
		},
	}
}

func validate(profile *entities.Profile) error {
	if profile.ProductName == "" {
		return fmt.Errorf("profile is missing product_name")
	}
	if len(profile.NameVariants) == 0 {
		return fmt.Errorf("profile %s has no name_variants", profile.ProductName)
	}
	if profile.Keyword == "" {
		return fmt.Errorf("profile %s has no keyword", profile.ProductName)
	}
	return nil
}
