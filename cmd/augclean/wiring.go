package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"augclean/internal/domain-adapters/gateways"
	orchestrators "augclean/internal/domain-orchestrators"
	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
	"augclean/internal/external-adapters/backup"
	"augclean/internal/external-adapters/configscan"
	"augclean/internal/external-adapters/registry"
	"augclean/internal/external-adapters/sqlite"
	"augclean/internal/external-adapters/yaml"
)

// app wires the full stack once per invocation: profile, gateways,
// adapters and orchestrators, sharing one Status for progress display.
type app struct {
	profile   entities.Profile
	log       interfaces.Logger
	status    *orchestrators.Status
	discovery *orchestrators.DiscoveryOrchestrator
	cleanup   *orchestrators.CleanupOrchestrator
	processes *gateways.ProcessGateway
	backups   *backup.Store
}

func newApp(profilePath string, verbose bool) (*app, error) {
	log := interfaces.NewStderrLogger(verbose)

	profile := yaml.DefaultProfile()
	if profilePath != "" {
		parsed, err := yaml.NewProfileParser().ParseFile(profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
		profile = parsed
	}

	status := &orchestrators.Status{}
	locator := gateways.NewLocator(*profile, log)
	configs := configscan.NewScanner(log)
	reg := registry.NewAdapter(profile.RegistryKeyPaths, log)
	workspaces := gateways.NewWorkspaceGateway(*profile, log)
	editors := gateways.NewInstallationScanner(*profile, log)
	processes := gateways.NewProcessGateway(*profile, log)
	backups := backup.NewStore(profile.BackupRoot, log)
	inspector := sqlite.NewInspector(log)
	dbCleaner := sqlite.NewCleaner(log)

	return &app{
		profile: *profile,
		log:     log,
		status:  status,
		discovery: orchestrators.NewDiscoveryOrchestrator(
			locator, configs, reg, workspaces, editors, processes, status, log),
		cleanup: orchestrators.NewCleanupOrchestrator(
			configs, reg, inspector, dbCleaner, workspaces, backups, *profile, status, log),
		processes: processes,
		backups:   backups,
	}, nil
}

// withSpinner runs fn while a spinner shows the current orchestrator
// step on stderr. The spinner is skipped when stdout is not a terminal.
// Only one orchestrated operation may be in flight at a time.
func (a *app) withSpinner(message string, fn func()) {
	if a.status.IsRunning() {
		fmt.Fprintln(os.Stderr, "another operation is already running")
		return
	}
	fi, err := os.Stdout.Stat()
	interactive := err == nil && fi.Mode()&os.ModeCharDevice != 0
	if !interactive {
		fn()
		return
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = " " + message
	sp.Start()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-time.After(150 * time.Millisecond):
				snap := a.status.Snapshot()
				if snap.CurrentStep != "" {
					sp.Suffix = fmt.Sprintf(" [%d/%d] %s", snap.CompletedSteps, snap.TotalSteps, snap.CurrentStep)
				}
			}
		}
	}()
	fn()
	close(done)
	sp.Stop()
}
