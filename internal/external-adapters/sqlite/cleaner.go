package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

var emailColumnNames = []string{"email", "mail", "e_mail"}
var sessionTableNames = []string{"sessions", "session", "user_sessions", "login_sessions"}

// accountTableNames marks the tables whose rows hold account identity.
// Only these are candidates for targeted deletes or a wholesale wipe.
var accountTableNames = []string{
	"account", "user", "profile", "login", "auth",
	"credential", "identity", "member", "person", "contact",
}

// Cleaner mutates one database inside a single transaction. Individual
// statement failures mark the run unsuccessful but do not stop the
// remaining work; only a failure to begin or commit aborts the run.
type Cleaner struct {
	log interfaces.Logger
}

func NewCleaner(log interfaces.Logger) *Cleaner {
	return &Cleaner{log: log}
}

// Clean applies the database categories selected in opts to the database
// at path, then reclaims space with VACUUM.
func (c *Cleaner) Clean(path string, analysis entities.DatabaseAnalysis, keyword string, opts entities.CleanupOptions) (entities.DatabaseCleanResult, error) {
	result := entities.DatabaseCleanResult{Success: true}

	db, err := open(path)
	if err != nil {
		return result, err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return result, fmt.Errorf("beginning transaction on %s: %w", path, err)
	}

	if opts.RemoveKeywordRecords {
		c.purgeKeyword(tx, analysis, keyword, &result)
	}
	if opts.RemoveAccountData {
		c.cleanAccounts(tx, analysis, opts, &result)
	}
	if opts.ClearSessionData {
		c.clearSessions(tx, analysis, &result)
	}
	if opts.RemoveAccountData && opts.TargetEmail != "" {
		c.sweepEmail(tx, analysis, opts.TargetEmail, &result)
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return result, fmt.Errorf("committing changes to %s: %w", path, err)
	}

	if _, err := db.Exec("VACUUM"); err != nil {
		c.log.Warn("vacuum failed", interfaces.F("path", path), interfaces.F("error", err.Error()))
	}
	return result, nil
}

func (c *Cleaner) purgeKeyword(tx *sql.Tx, analysis entities.DatabaseAnalysis, keyword string, result *entities.DatabaseCleanResult) {
	needle := "%" + strings.ToLower(keyword) + "%"
	for _, table := range analysis.CleanupTargets {
		if len(table.TextColumns) == 0 {
			continue
		}
		conds := make([]string, 0, len(table.TextColumns))
		args := make([]any, 0, len(table.TextColumns))
		for _, col := range table.TextColumns {
			conds = append(conds, fmt.Sprintf("LOWER(%q) LIKE ?", col))
			args = append(args, needle)
		}
		query := fmt.Sprintf("DELETE FROM %q WHERE %s", table.Name, strings.Join(conds, " OR "))
		res, err := tx.Exec(query, args...)
		if err != nil {
			c.log.Warn("keyword purge failed", interfaces.F("table", table.Name), interfaces.F("error", err.Error()))
			result.Success = false
			continue
		}
		if n, err := res.RowsAffected(); err == nil {
			result.RowsDeleted += n
		}
	}
}

func (c *Cleaner) cleanAccounts(tx *sql.Tx, analysis entities.DatabaseAnalysis, opts entities.CleanupOptions, result *entities.DatabaseCleanResult) {
	for _, table := range analysis.Tables {
		if !nameContainsAny(table.Name, accountTableNames) {
			continue
		}
		emailCols := columnsNamedLike(table, emailColumnNames)

		if opts.TargetEmail != "" {
			for _, col := range emailCols {
				query := fmt.Sprintf("DELETE FROM %q WHERE %q = ?", table.Name, col)
				res, err := tx.Exec(query, opts.TargetEmail)
				if err != nil {
					c.log.Warn("account row deletion failed", interfaces.F("table", table.Name), interfaces.F("error", err.Error()))
					result.Success = false
					continue
				}
				if n, err := res.RowsAffected(); err == nil {
					result.RowsDeleted += n
				}
			}
			continue
		}

		if opts.RemoveAllAccounts {
			res, err := tx.Exec(fmt.Sprintf("DELETE FROM %q", table.Name))
			if err != nil {
				c.log.Warn("account table wipe failed", interfaces.F("table", table.Name), interfaces.F("error", err.Error()))
				result.Success = false
				continue
			}
			if n, err := res.RowsAffected(); err == nil {
				result.RowsDeleted += n
			}
			result.TablesWiped = append(result.TablesWiped, table.Name)
		}
	}
}

func (c *Cleaner) clearSessions(tx *sql.Tx, analysis entities.DatabaseAnalysis, result *entities.DatabaseCleanResult) {
	present := map[string]bool{}
	for _, table := range analysis.Tables {
		present[strings.ToLower(table.Name)] = true
	}
	for _, name := range sessionTableNames {
		if !present[name] {
			continue
		}
		res, err := tx.Exec(fmt.Sprintf("DELETE FROM %q", name))
		if err != nil {
			c.log.Warn("session table clear failed", interfaces.F("table", name), interfaces.F("error", err.Error()))
			result.Success = false
			continue
		}
		if n, err := res.RowsAffected(); err == nil {
			result.SessionRows += n
		}
	}
}

// sweepEmail deletes every row that references the target address in
// any table. The first row of each table is sampled only to decide
// which columns actually hold text; matching rows in those columns are
// then deleted outright.
func (c *Cleaner) sweepEmail(tx *sql.Tx, analysis entities.DatabaseAnalysis, email string, result *entities.DatabaseCleanResult) {
	for _, table := range analysis.Tables {
		if len(table.Columns) == 0 || table.RowCount == 0 {
			continue
		}
		cols := make([]string, len(table.Columns))
		for n, col := range table.Columns {
			cols[n] = fmt.Sprintf("%q", col.Name)
		}
		row := tx.QueryRow(fmt.Sprintf("SELECT %s FROM %q LIMIT 1", strings.Join(cols, ", "), table.Name))
		vals := make([]any, len(cols))
		dest := make([]any, len(cols))
		for n := range vals {
			dest[n] = &vals[n]
		}
		if err := row.Scan(dest...); err != nil {
			continue
		}
		for n, val := range vals {
			if !isTextValue(val) {
				continue
			}
			col := table.Columns[n].Name
			query := fmt.Sprintf("DELETE FROM %q WHERE %q LIKE ?", table.Name, col)
			res, err := tx.Exec(query, "%"+email+"%")
			if err != nil {
				c.log.Warn("email sweep failed", interfaces.F("table", table.Name), interfaces.F("error", err.Error()))
				result.Success = false
				continue
			}
			if deleted, err := res.RowsAffected(); err == nil {
				result.EmailsSwept += int(deleted)
			}
		}
	}
}

func isTextValue(v any) bool {
	switch v.(type) {
	case string, []byte:
		return true
	}
	return false
}

func nameContainsAny(name string, needles []string) bool {
	lower := strings.ToLower(name)
	for _, needle := range needles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

func columnsNamedLike(table entities.TableInfo, needles []string) []string {
	var cols []string
	for _, col := range table.Columns {
		lower := strings.ToLower(col.Name)
		for _, needle := range needles {
			if strings.Contains(lower, needle) {
				cols = append(cols, col.Name)
				break
			}
		}
	}
	return cols
}
