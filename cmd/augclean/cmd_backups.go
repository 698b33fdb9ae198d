package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/pflag"

	"augclean/internal/domain/services"
)

func runBackups(args []string) {
	fs := pflag.NewFlagSet("backups", pflag.ExitOnError)
	var (
		profilePath = fs.String("profile", "", "Path to a YAML product profile")
		verbose     = fs.BoolP("verbose", "v", false, "Show debug logging")
		deleteName  = fs.String("delete", "", "Delete the named backup run")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: augclean backups [options]

List backup runs, newest first, or delete one by name.

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

	if *deleteName != "" {
		if !confirm(fmt.Sprintf("Delete backup %s permanently?", *deleteName)) {
			fmt.Println("Aborted.")
			return
		}
		if err := a.backups.DeleteRun(*deleteName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s\n", *deleteName)
		return
	}

	runs, err := a.backups.ListRuns()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Printf("No backups under %s\n", a.backups.Root())
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Created", "Items", "Size"})
	for _, run := range runs {
		t.AppendRow(table.Row{run.Name, run.Timestamp, run.ItemCount, services.FormatSize(run.TotalSize)})
	}
	t.Render()
}

func runRestore(args []string) {
	fs := pflag.NewFlagSet("restore", pflag.ExitOnError)
	var (
		profilePath = fs.String("profile", "", "Path to a YAML product profile")
		verbose     = fs.BoolP("verbose", "v", false, "Show debug logging")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: augclean restore <backup-name> [options]

Copy every file and directory of a backup run back to its original
location, overwriting whatever is there now.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	name := fs.Arg(0)

	a, err := newApp(*profilePath, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !confirm(fmt.Sprintf("Restore %s over the current files?", name)) {
		fmt.Println("Aborted.")
		return
	}

	restored, err := a.backups.Restore(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Restored %d items from %s\n", restored, name)
}
