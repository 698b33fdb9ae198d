package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/services"
)

func runReport(args []string) {
	fs := pflag.NewFlagSet("report", pflag.ExitOnError)
	var (
		profilePath = fs.String("profile", "", "Path to a YAML product profile")
		verbose     = fs.BoolP("verbose", "v", false, "Show debug logging")
		kind        = fs.String("kind", "all", "Report to print: all, accounts, workspaces, editors")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: augclean report [options]

Run discovery and print one of the detailed reports.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(*profilePath, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var result *entities.DiscoveryResult
	a.withSpinner("discovering identity traces", func() {
		result = a.discovery.Discover()
	})

	switch *kind {
	case "accounts":
		fmt.Print(services.RenderAccountReport(result.AccountData))
	case "workspaces":
		fmt.Print(services.RenderWorkspaceReport(result.Workspaces))
	case "editors":
		fmt.Print(services.RenderEditorReport(result.EditorScan))
	case "all":
		fmt.Print(services.RenderDiscoveryReport(result, a.profile.ProductName))
		fmt.Print(services.RenderAccountReport(result.AccountData))
		fmt.Print(services.RenderWorkspaceReport(result.Workspaces))
		fmt.Print(services.RenderEditorReport(result.EditorScan))
	default:
		fmt.Fprintf(os.Stderr, "Unknown report kind: %s\n", *kind)
		os.Exit(1)
	}
}
