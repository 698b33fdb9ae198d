package entities

// RecordFormat discriminates the storage format an identity field was
// found in. It selects which locator payload of an IdentityRecord is set.
type RecordFormat string

const (
	FormatJSON     RecordFormat = "json"
	FormatINI      RecordFormat = "ini"
	FormatXML      RecordFormat = "xml"
	FormatText     RecordFormat = "text"
	FormatRegistry RecordFormat = "registry"
	FormatDatabase RecordFormat = "database"
)

// DataKind classifies what kind of identity data a record carries.
type DataKind string

const (
	KindTelemetryID  DataKind = "telemetry-id"
	KindAccountField DataKind = "account-field"
	KindEmail        DataKind = "email"
)

// JSONLocator addresses a leaf inside a JSON document by its dotted and
// bracketed path from the root, e.g. "telemetry.ids[0].deviceId".
type JSONLocator struct {
	KeyPath string
}

// INILocator addresses a key within a named section.
type INILocator struct {
	Section string
	Key     string
}

// XMLLocator addresses an element (or one of its attributes) by the chain
// of child-element indexes walked from the document root. The index chain,
// not the old value, identifies the node at rewrite time, so duplicate
// values elsewhere in the document cannot redirect a write.
type XMLLocator struct {
	Path      string
	Indexes   []int
	Attribute string // empty means the element text
}

// TextLocator addresses a key=value (or key:value) occurrence on one line
// of a plain-text file.
type TextLocator struct {
	Line     int
	FullLine string
}

// RegistryLocator addresses a named value under a registry key path.
type RegistryLocator struct {
	Hive      string
	KeyPath   string
	ValueName string
	ValueType uint32
}

// IdentityRecord is one discovered identity-bearing field. The Format
// discriminant tells which locator payload is populated; that locator must
// be sufficient to perform a targeted in-place rewrite without re-scanning.
// Records live only for the duration of a discovery/cleanup cycle.
type IdentityRecord struct {
	File    string
	Format  RecordFormat
	Key     string
	Value   string
	Pattern string
	Kind    DataKind

	JSON     *JSONLocator
	INI      *INILocator
	XML      *XMLLocator
	Text     *TextLocator
	Registry *RegistryLocator
}
