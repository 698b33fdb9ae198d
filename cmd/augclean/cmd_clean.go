package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	orchestrators "augclean/internal/domain-orchestrators"
	"augclean/internal/domain/entities"
)

func runClean(args []string) {
	fs := pflag.NewFlagSet("clean", pflag.ExitOnError)
	var (
		profilePath = fs.String("profile", "", "Path to a YAML product profile")
		verbose     = fs.BoolP("verbose", "v", false, "Show debug logging")

		noBackup     = fs.Bool("no-backup", false, "Skip backups (not recommended)")
		noTelemetry  = fs.Bool("no-telemetry", false, "Leave telemetry identifiers alone")
		noRegistry   = fs.Bool("no-registry", false, "Leave the registry alone")
		noDatabases  = fs.Bool("no-databases", false, "Leave embedded databases alone")
		noWorkspaces = fs.Bool("no-workspaces", false, "Leave workspaces alone")
		noAccounts   = fs.Bool("no-accounts", false, "Leave account data alone")

		targetEmail = fs.String("email", "", "Redact only this email address")
		removeAll   = fs.Bool("remove-all-accounts", false, "Remove every discovered account reference (irreversible)")
		clearCache  = fs.Bool("clear-all-cache", false, "Delete every cache folder in discovered workspaces")
		assumeYes   = fs.BoolP("yes", "y", false, "Skip the confirmation prompt")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: augclean clean [options]

Run discovery, back everything up, then rewrite telemetry identifiers,
purge product records from embedded databases, clean workspaces and
redact account data. Every artifact is copied into a timestamped backup
before it is touched.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  augclean clean
  augclean clean --email alice@example.com
  augclean clean --remove-all-accounts --yes
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	opts := entities.DefaultCleanupOptions()
	opts.BackupEnabled = !*noBackup
	opts.BackupWorkspaces = !*noBackup
	if *noTelemetry {
		opts.ModifyTelemetryIDs = false
		opts.ModifyConfigFiles = false
	}
	opts.ModifyRegistry = !*noRegistry
	if *noDatabases {
		opts.CleanDatabases = false
		opts.RemoveKeywordRecords = false
		opts.ClearSessionData = false
	}
	opts.CleanWorkspaces = !*noWorkspaces
	if *noAccounts {
		opts.CleanAccountData = false
	} else {
		opts.RemoveAccountData = true
	}
	opts.TargetEmail = *targetEmail
	opts.RemoveAllAccounts = *removeAll
	opts.ClearAllCache = *clearCache

	if opts.Destructive() && !*assumeYes {
		if !confirm("This removes EVERY discovered account reference and cannot be undone beyond the backup. Continue?") {
			fmt.Println("Aborted.")
			return
		}
	}

	a, err := newApp(*profilePath, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var summary *orchestrators.CleanupSummary
	a.withSpinner("cleaning identity traces", func() {
		discovery := a.discovery.Discover()
		summary = a.cleanup.Cleanup(discovery, opts)
	})

	printSummary(summary)
	if !summary.Success {
		os.Exit(1)
	}
}

func printSummary(summary *orchestrators.CleanupSummary) {
	if summary.BackupLocation != "" {
		fmt.Printf("Backup: %s\n", summary.BackupLocation)
	}
	fmt.Printf("Fields rewritten:        %d\n", summary.FieldsRewritten)
	fmt.Printf("Database rows deleted:   %d\n", summary.RowsDeleted)
	fmt.Printf("Workspace items removed: %d\n", summary.WorkspaceItemsRemoved)
	fmt.Printf("Account files cleaned:   %d\n", summary.AccountFilesCleaned)

	if summary.Success {
		fmt.Println("\nCleanup completed successfully.")
		return
	}
	fmt.Println("\nCleanup completed with errors:")
	for _, e := range summary.Errors {
		fmt.Printf("  - %s\n", e)
	}
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
