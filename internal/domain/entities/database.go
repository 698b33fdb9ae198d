package entities

// ColumnInfo describes one column of an inspected table.
type ColumnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	Default    string
	PrimaryKey bool
}

// TableInfo describes an inspected table, with the column subsets the
// cleaner cares about: text-like columns are keyword-searchable, potential
// identifier columns mark the table as a cleanup candidate.
type TableInfo struct {
	Name               string
	Columns            []ColumnInfo
	RowCount           int64
	TextColumns        []string
	PotentialIDColumns []string
}

// DatabaseAnalysis is the result of introspecting one embedded database.
type DatabaseAnalysis struct {
	Path           string
	FileSize       int64
	Tables         []TableInfo
	CleanupTargets []TableInfo
}

// RowMatch is one row matched during a keyword search.
type RowMatch struct {
	Table           string
	RowID           int64
	Values          map[string]string
	MatchingColumns []string
}

// DatabaseCleanResult summarizes the mutations one database clean
// performed. Success stays true only if every attempted statement
// succeeded.
type DatabaseCleanResult struct {
	Success     bool
	RowsDeleted int64
	TablesWiped []string
	EmailsSwept int
	SessionRows int64
}
