package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
	_ "github.com/mattn/go-sqlite3"
)

var idColumnRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^.*id$`),
	regexp.MustCompile(`(?i)^.*_id$`),
	regexp.MustCompile(`(?i)^(device|machine|client|telemetry|session|user|guid|uuid|unique)`),
}

var cleanupTableKeywords = []string{
	"account", "user", "session", "login", "auth",
	"telemetry", "analytics", "log", "history",
	"workspace", "project", "setting", "preference",
}

// Inspector opens embedded SQLite databases read-only and reports their
// structure so a later cleanup knows which tables are worth touching.
type Inspector struct {
	log interfaces.Logger
}

func NewInspector(log interfaces.Logger) *Inspector {
	return &Inspector{log: log}
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return db, nil
}

// Analyze introspects every user table in the database at path.
func (i *Inspector) Analyze(path string) (entities.DatabaseAnalysis, error) {
	analysis := entities.DatabaseAnalysis{Path: path}
	if fi, err := os.Stat(path); err == nil {
		analysis.FileSize = fi.Size()
	}

	db, err := open(path)
	if err != nil {
		return analysis, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return analysis, fmt.Errorf("listing tables in %s: %w", path, err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return analysis, err
		}
		names = append(names, name)
	}
	rows.Close()

	for _, name := range names {
		table, err := i.inspectTable(db, name)
		if err != nil {
			i.log.Warn("skipping table", interfaces.F("table", name), interfaces.F("error", err.Error()))
			continue
		}
		analysis.Tables = append(analysis.Tables, table)
		if isCleanupTarget(table) {
			analysis.CleanupTargets = append(analysis.CleanupTargets, table)
		}
	}
	return analysis, nil
}

func (i *Inspector) inspectTable(db *sql.DB, name string) (entities.TableInfo, error) {
	table := entities.TableInfo{Name: name}

	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", name))
	if err != nil {
		return table, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid     int
			col     entities.ColumnInfo
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dflt, &pk); err != nil {
			return table, err
		}
		col.NotNull = notNull != 0
		col.Default = dflt.String
		col.PrimaryKey = pk != 0
		table.Columns = append(table.Columns, col)

		if isTextType(col.Type) {
			table.TextColumns = append(table.TextColumns, col.Name)
		}
		for _, re := range idColumnRes {
			if re.MatchString(col.Name) {
				table.PotentialIDColumns = append(table.PotentialIDColumns, col.Name)
				break
			}
		}
	}

	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %q", name)).Scan(&table.RowCount); err != nil {
		return table, err
	}
	return table, nil
}

// SearchKeyword finds rows in which any text column contains the keyword,
// case-insensitively, and records which columns matched.
func (i *Inspector) SearchKeyword(path, keyword string, tables []entities.TableInfo) ([]entities.RowMatch, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	needle := strings.ToLower(keyword)
	var matches []entities.RowMatch
	for _, table := range tables {
		if len(table.TextColumns) == 0 {
			continue
		}
		found, err := i.searchTable(db, table, needle)
		if err != nil {
			i.log.Warn("keyword search failed", interfaces.F("table", table.Name), interfaces.F("error", err.Error()))
			continue
		}
		matches = append(matches, found...)
	}
	return matches, nil
}

func (i *Inspector) searchTable(db *sql.DB, table entities.TableInfo, needle string) ([]entities.RowMatch, error) {
	cols := make([]string, 0, len(table.TextColumns)+1)
	cols = append(cols, "rowid")
	conds := make([]string, 0, len(table.TextColumns))
	args := make([]any, 0, len(table.TextColumns))
	for _, c := range table.TextColumns {
		cols = append(cols, fmt.Sprintf("%q", c))
		conds = append(conds, fmt.Sprintf("LOWER(%q) LIKE ?", c))
		args = append(args, "%"+needle+"%")
	}

	query := fmt.Sprintf("SELECT %s FROM %q WHERE %s",
		strings.Join(cols, ", "), table.Name, strings.Join(conds, " OR "))
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []entities.RowMatch
	for rows.Next() {
		dest := make([]any, len(table.TextColumns)+1)
		var rowid int64
		dest[0] = &rowid
		vals := make([]sql.NullString, len(table.TextColumns))
		for n := range vals {
			dest[n+1] = &vals[n]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		match := entities.RowMatch{
			Table:  table.Name,
			RowID:  rowid,
			Values: make(map[string]string, len(table.TextColumns)),
		}
		for n, c := range table.TextColumns {
			match.Values[c] = vals[n].String
			if vals[n].Valid && strings.Contains(strings.ToLower(vals[n].String), needle) {
				match.MatchingColumns = append(match.MatchingColumns, c)
			}
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func isTextType(t string) bool {
	upper := strings.ToUpper(t)
	return strings.Contains(upper, "TEXT") ||
		strings.Contains(upper, "VARCHAR") ||
		strings.Contains(upper, "CHAR")
}

func isCleanupTarget(table entities.TableInfo) bool {
	lower := strings.ToLower(table.Name)
	for _, kw := range cleanupTableKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if len(table.PotentialIDColumns) > 0 {
		return true
	}
	return len(table.TextColumns) > 0 && table.RowCount > 0
}
