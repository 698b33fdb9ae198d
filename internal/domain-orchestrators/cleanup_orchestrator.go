package orchestrators

import (
	"fmt"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
	"augclean/internal/domain/services"
	"augclean/internal/external-adapters/backup"
)

// CleanupSummary is the terminal outcome of one cleanup run. Success is
// the AND of every attempted mutation; a run with partial failures
// completes all remaining steps and reports false here.
type CleanupSummary struct {
	Success               bool
	BackupLocation        string
	FieldsRewritten       int
	RowsDeleted           int64
	WorkspaceItemsRemoved int
	AccountFilesCleaned   int
	Errors                []string
}

// CleanupOrchestrator sequences the mutation categories over a prior
// discovery result. Every artifact is backed up before it is touched;
// failures are recorded and the run keeps going.
type CleanupOrchestrator struct {
	configs    interfaces.ConfigScanner
	registry   interfaces.FieldSource
	inspector  interfaces.DatabaseInspector
	dbCleaner  interfaces.DatabaseCleaner
	workspaces interfaces.WorkspaceManager
	backups    *backup.Store
	profile    entities.Profile
	status     *Status
	log        interfaces.Logger
}

func NewCleanupOrchestrator(
	configs interfaces.ConfigScanner,
	registry interfaces.FieldSource,
	inspector interfaces.DatabaseInspector,
	dbCleaner interfaces.DatabaseCleaner,
	workspaces interfaces.WorkspaceManager,
	backups *backup.Store,
	profile entities.Profile,
	status *Status,
	log interfaces.Logger,
) *CleanupOrchestrator {
	return &CleanupOrchestrator{
		configs:    configs,
		registry:   registry,
		inspector:  inspector,
		dbCleaner:  dbCleaner,
		workspaces: workspaces,
		backups:    backups,
		profile:    profile,
		status:     status,
		log:        log,
	}
}

// Cleanup applies the selected categories to what discovery found. The
// step total is fixed up front so progress reporting never moves
// backwards. Only a failure to create the backup run aborts; everything
// after that is attempted regardless of earlier failures.
func (o *CleanupOrchestrator) Cleanup(discovery *entities.DiscoveryResult, opts entities.CleanupOptions) *CleanupSummary {
	summary := &CleanupSummary{Success: true}

	telemetryEnabled := opts.ModifyTelemetryIDs || opts.ModifyConfigFiles || opts.ModifyRegistry
	total := 0
	if opts.BackupEnabled {
		total++
	}
	if telemetryEnabled {
		total++
	}
	if opts.CleanDatabases {
		total += len(discovery.DatabaseFiles)
	}
	if opts.CleanWorkspaces {
		total += len(discovery.Workspaces)
	}
	if opts.CleanAccountData {
		total++
	}
	o.status.begin("cleanup", total)

	var run *backup.Run
	if opts.BackupEnabled {
		o.status.step("creating backup")
		var err error
		run, err = o.backups.CreateRun("cleanup")
		if err != nil {
			msg := fmt.Sprintf("backup run could not be created: %v", err)
			summary.Success = false
			summary.Errors = append(summary.Errors, msg)
			o.status.finish(false, msg)
			return summary
		}
		summary.BackupLocation = run.Location()
	}

	// guard backs a file up exactly once and reports whether mutating it
	// is allowed. A failed backup blocks the mutation of that file.
	backedUp := map[string]bool{}
	guard := func(path string) bool {
		if run == nil || backedUp[path] {
			return true
		}
		if err := run.BackupFile(path); err != nil {
			o.fail(summary, fmt.Sprintf("backup of %s failed, leaving %s untouched: %v", path, path, err))
			return false
		}
		backedUp[path] = true
		return true
	}

	if telemetryEnabled {
		o.status.step("rewriting telemetry identifiers")
		o.rewriteTelemetry(discovery, opts, run, guard, summary)
	}

	if opts.CleanDatabases {
		for _, dbPath := range discovery.DatabaseFiles {
			o.status.step("cleaning database " + dbPath)
			if !guard(dbPath) {
				continue
			}
			o.cleanDatabase(dbPath, opts, summary)
		}
	}

	if opts.CleanWorkspaces {
		for _, ws := range discovery.Workspaces {
			o.status.step("cleaning workspace " + ws.Path)
			if run != nil && opts.BackupWorkspaces {
				if err := run.BackupDirectory(ws.Path); err != nil {
					o.fail(summary, fmt.Sprintf("workspace backup of %s failed, leaving it untouched: %v", ws.Path, err))
					continue
				}
			}
			removed, ok := o.workspaces.Clean(ws, opts)
			summary.WorkspaceItemsRemoved += removed
			if !ok {
				o.fail(summary, fmt.Sprintf("workspace %s was only partially cleaned", ws.Path))
			}
		}
	}

	if opts.CleanAccountData {
		o.status.step("redacting account data")
		o.cleanAccounts(discovery, opts, guard, summary)
	}

	if summary.Success {
		o.status.finish(true, "")
	} else {
		o.status.finish(false, "cleanup completed with errors")
	}
	return summary
}

func (o *CleanupOrchestrator) rewriteTelemetry(discovery *entities.DiscoveryResult, opts entities.CleanupOptions, run *backup.Run, guard func(string) bool, summary *CleanupSummary) {
	ids := services.GenerateIdentitySet()

	if opts.ModifyConfigFiles || opts.ModifyTelemetryIDs {
		for _, rec := range discovery.TelemetryFields {
			if !guard(rec.File) {
				continue
			}
			replacement := ids.ChooseReplacement(rec.Key)
			if err := o.configs.RewriteField(rec, replacement); err != nil {
				o.fail(summary, fmt.Sprintf("rewrite of %s in %s failed: %v", rec.Key, rec.File, err))
				continue
			}
			summary.FieldsRewritten++
		}
	}

	if opts.ModifyRegistry && len(discovery.RegistryFields) > 0 {
		o.backupRegistryFields(discovery.RegistryFields, run, summary)
		for _, rec := range discovery.RegistryFields {
			replacement := ids.ChooseReplacement(rec.Key)
			if err := o.registry.RewriteField(rec, replacement); err != nil {
				o.fail(summary, fmt.Sprintf("registry rewrite of %s failed: %v", rec.Key, err))
				continue
			}
			summary.FieldsRewritten++
		}
	}
}

// backupRegistryFields snapshots each key's values once, before any of
// that key's values are rewritten.
func (o *CleanupOrchestrator) backupRegistryFields(fields []entities.IdentityRecord, run *backup.Run, summary *CleanupSummary) {
	if run == nil {
		return
	}
	byKey := map[string]map[string]string{}
	for _, rec := range fields {
		if rec.Registry == nil {
			continue
		}
		full := rec.Registry.Hive + `\` + rec.Registry.KeyPath
		if byKey[full] == nil {
			byKey[full] = map[string]string{}
		}
		byKey[full][rec.Registry.ValueName] = rec.Value
	}
	for keyPath, values := range byKey {
		if err := run.BackupRegistryKey(keyPath, values); err != nil {
			o.fail(summary, fmt.Sprintf("registry backup of %s failed: %v", keyPath, err))
		}
	}
}

func (o *CleanupOrchestrator) cleanDatabase(path string, opts entities.CleanupOptions, summary *CleanupSummary) {
	analysis, err := o.inspector.Analyze(path)
	if err != nil {
		o.fail(summary, fmt.Sprintf("analysis of %s failed: %v", path, err))
		return
	}
	result, err := o.dbCleaner.Clean(path, analysis, o.profile.Keyword, opts)
	if err != nil {
		o.fail(summary, fmt.Sprintf("cleaning of %s failed: %v", path, err))
		return
	}
	summary.RowsDeleted += result.RowsDeleted + result.SessionRows
	if !result.Success {
		o.fail(summary, fmt.Sprintf("some statements against %s failed", path))
	}
}

func (o *CleanupOrchestrator) cleanAccounts(discovery *entities.DiscoveryResult, opts entities.CleanupOptions, guard func(string) bool, summary *CleanupSummary) {
	for _, af := range discovery.AccountData.Files {
		if !guard(af.Path) {
			continue
		}
		changed, err := o.configs.CleanAccountFile(af.Path, af, opts.TargetEmail, opts.RemoveAllAccounts)
		if err != nil {
			o.fail(summary, fmt.Sprintf("account cleanup of %s failed: %v", af.Path, err))
			continue
		}
		if changed {
			summary.AccountFilesCleaned++
		}
	}
}

func (o *CleanupOrchestrator) fail(summary *CleanupSummary, msg string) {
	summary.Success = false
	summary.Errors = append(summary.Errors, msg)
	o.status.note(msg)
	o.log.Warn(msg)
}
