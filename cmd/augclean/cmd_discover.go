package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/services"
)

func runDiscover(args []string) {
	fs := pflag.NewFlagSet("discover", pflag.ExitOnError)
	var (
		profilePath = fs.String("profile", "", "Path to a YAML product profile")
		verbose     = fs.BoolP("verbose", "v", false, "Show debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: augclean discover [options]

Locate every identity trace of the product without modifying anything:
data directories, telemetry identifiers in configuration files and the
registry, embedded databases, workspaces, account references and host
editor installations.

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

	fmt.Print(services.RenderDiscoveryReport(result, a.profile.ProductName))
}
