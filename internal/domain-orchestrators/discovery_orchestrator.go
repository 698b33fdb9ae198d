package orchestrators

import (
	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

const discoveryStepCount = 7

// DiscoveryOrchestrator runs the read-only discovery sequence. It never
// mutates anything it finds; its result feeds the reports and a later
// cleanup run.
type DiscoveryOrchestrator struct {
	locator    interfaces.PathLocator
	configs    interfaces.ConfigScanner
	registry   interfaces.FieldSource
	workspaces interfaces.WorkspaceManager
	editors    interfaces.EditorScanner
	processes  interfaces.ProcessManager
	status     *Status
	log        interfaces.Logger
}

func NewDiscoveryOrchestrator(
	locator interfaces.PathLocator,
	configs interfaces.ConfigScanner,
	registry interfaces.FieldSource,
	workspaces interfaces.WorkspaceManager,
	editors interfaces.EditorScanner,
	processes interfaces.ProcessManager,
	status *Status,
	log interfaces.Logger,
) *DiscoveryOrchestrator {
	return &DiscoveryOrchestrator{
		locator:    locator,
		configs:    configs,
		registry:   registry,
		workspaces: workspaces,
		editors:    editors,
		processes:  processes,
		status:     status,
		log:        log,
	}
}

// Discover runs every discovery stage in order and aggregates the result.
// Stage failures degrade the result instead of aborting it: a source that
// cannot be read contributes nothing.
func (o *DiscoveryOrchestrator) Discover() *entities.DiscoveryResult {
	o.status.begin("discovery", discoveryStepCount)
	result := &entities.DiscoveryResult{}

	o.status.step("locating product data directories")
	result.ProductPaths = o.locator.DiscoverProductPaths()
	o.log.Info("product paths located", interfaces.F("count", len(result.ProductPaths)))

	o.status.step("scanning configuration files for telemetry identifiers")
	configFiles := o.locator.CollectConfigFiles(result.ProductPaths)
	result.TelemetryFields = o.configs.DiscoverIdentityFields(configFiles)

	o.status.step("scanning registry")
	result.RegistryFields = o.registry.DiscoverIdentityFields(nil)

	o.status.step("enumerating embedded databases")
	result.DatabaseFiles = o.locator.CollectDatabaseFiles(result.ProductPaths)

	o.status.step("discovering workspaces")
	result.Workspaces = o.workspaces.DiscoverWorkspaces(result.ProductPaths, configFiles)

	o.status.step("extracting account references")
	result.AccountData = o.discoverAccounts(configFiles)

	o.status.step("scanning host editors")
	running, err := o.processes.ListMatching()
	if err != nil {
		o.log.Warn("process listing failed", interfaces.F("error", err.Error()))
	}
	result.EditorScan = o.editors.Scan(running)

	result.TotalLocations = len(result.ProductPaths) +
		len(result.TelemetryFields) +
		len(result.RegistryFields) +
		len(result.DatabaseFiles) +
		len(result.Workspaces) +
		result.AccountData.TotalReferences()

	o.status.finish(true, "")
	return result
}

// discoverAccounts extracts emails and usernames per file and
// de-duplicates them across the whole set.
func (o *DiscoveryOrchestrator) discoverAccounts(configFiles []string) entities.AccountDiscovery {
	var acc entities.AccountDiscovery
	seenEmail := map[string]bool{}
	seenUser := map[string]bool{}
	for _, file := range configFiles {
		af, err := o.configs.ExtractAccountData(file)
		if err != nil {
			o.log.Debug("account extraction failed", interfaces.F("path", file))
			continue
		}
		if len(af.Emails) == 0 && len(af.Usernames) == 0 {
			continue
		}
		acc.Files = append(acc.Files, af)
		for _, email := range af.Emails {
			if !seenEmail[email] {
				seenEmail[email] = true
				acc.Emails = append(acc.Emails, email)
			}
		}
		for _, name := range af.Usernames {
			if !seenUser[name] {
				seenUser[name] = true
				acc.Usernames = append(acc.Usernames, name)
			}
		}
	}
	return acc
}
