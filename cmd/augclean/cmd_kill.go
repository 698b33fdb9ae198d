package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func runKill(args []string) {
	fs := pflag.NewFlagSet("kill", pflag.ExitOnError)
	var (
		profilePath = fs.String("profile", "", "Path to a YAML product profile")
		verbose     = fs.BoolP("verbose", "v", false, "Show debug logging")
		force       = fs.BoolP("force", "f", false, "Kill immediately instead of terminating gracefully")
		dryRun      = fs.Bool("dry-run", false, "List matching processes without terminating them")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: augclean kill [options]

Terminate host-editor processes that carry the product. By default each
process gets a graceful terminate and ten seconds to exit before being
killed.

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

	procs, err := a.processes.ListMatching()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(procs) == 0 {
		fmt.Println("No matching processes found.")
		return
	}

	for _, p := range procs {
		fmt.Printf("  %d  %s (%s)\n", p.PID, p.Name, p.Editor)
	}
	if *dryRun {
		return
	}

	result := a.processes.Terminate(procs, *force)
	for _, t := range result.Terminated {
		fmt.Printf("Terminated %d (%s) via %s\n", t.Process.PID, t.Process.Name, t.Method)
	}
	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	for _, f := range result.Failed {
		fmt.Printf("Failed: pid %d: %s\n", f.Process.PID, f.Reason)
	}
	if len(result.Failed) > 0 {
		os.Exit(1)
	}
}
