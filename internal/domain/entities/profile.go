package entities

// Profile describes the product whose traces are being located and
// scrubbed: the name variants its directories go by, the keyword used for
// database purges, the indicators that mark a host-editor process as
// carrying the product, and so on. A compiled-in default targets
// AugmentCode; a YAML file can override it.
type Profile struct {
	ProductName       string
	NameVariants      []string
	Keyword           string
	RedactionToken    string
	ProcessIndicators []string
	RegistryKeyPaths  []string
	WorkspacePatterns []string
	BackupRoot        string
}
