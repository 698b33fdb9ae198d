package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "discover":
		runDiscover(os.Args[2:])
	case "clean":
		runClean(os.Args[2:])
	case "report":
		runReport(os.Args[2:])
	case "backups":
		runBackups(os.Args[2:])
	case "restore":
		runRestore(os.Args[2:])
	case "kill":
		runKill(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`augclean - product identity trace discovery and cleanup

Usage:
  augclean <command> [options]

Commands:
  discover  Locate identity traces without modifying anything
  clean     Back up and remove or rewrite discovered identity traces
  report    Print detailed discovery reports
  backups   List or delete backup runs
  restore   Restore a backup run to its original locations
  kill      Terminate host-editor processes carrying the product

Use "augclean <command> --help" for more information about a command.`)
}
