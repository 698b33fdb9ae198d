package services

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"augclean/internal/domain/entities"
)

// RenderDiscoveryReport produces the human-readable multi-section report
// for one discovery result.
func RenderDiscoveryReport(res *entities.DiscoveryResult, productName string) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString(strings.ToUpper(productName) + " TRACE CLEANER - DISCOVERY REPORT\n")
	b.WriteString(rule + "\n\n")

	b.WriteString(fmt.Sprintf("Operating System: %s\n", strings.ToUpper(runtime.GOOS[:1])+runtime.GOOS[1:]))
	b.WriteString(fmt.Sprintf("Discovery Time: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	b.WriteString(fmt.Sprintf("Product Directories Found: %d\n", len(res.ProductPaths)))
	for i, p := range res.ProductPaths {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p.Path))
	}
	b.WriteString("\n")

	b.WriteString(renderTelemetrySection(res))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Database Files Found: %d\n", len(res.DatabaseFiles)))
	for i, db := range res.DatabaseFiles {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, db))
	}
	b.WriteString("\n")

	if len(res.Workspaces) > 0 {
		b.WriteString(RenderWorkspaceReport(res.Workspaces))
		b.WriteString("\n")
	}
	b.WriteString(RenderAccountReport(res.AccountData))
	if res.EditorScan.TotalInstances > 0 || len(res.EditorScan.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderEditorReport(res.EditorScan))
	}

	return b.String()
}

func renderTelemetrySection(res *entities.DiscoveryResult) string {
	var b strings.Builder
	b.WriteString("=== TELEMETRY DISCOVERY REPORT ===\n\n")
	b.WriteString("Summary:\n")
	b.WriteString(fmt.Sprintf("  Total IDs found: %d\n", len(res.TelemetryFields)))
	b.WriteString(fmt.Sprintf("  Registry values: %d\n\n", len(res.RegistryFields)))

	if len(res.TelemetryFields) > 0 {
		b.WriteString("Found Telemetry IDs:\n")
		for _, rec := range res.TelemetryFields {
			b.WriteString(fmt.Sprintf("  File: %s\n", rec.File))
			b.WriteString(fmt.Sprintf("    Key: %s\n", rec.Key))
			b.WriteString(fmt.Sprintf("    Value: %s\n", rec.Value))
			b.WriteString(fmt.Sprintf("    Pattern: %s\n\n", rec.Pattern))
		}
	}
	if len(res.RegistryFields) > 0 {
		b.WriteString("Registry Values:\n")
		for _, rec := range res.RegistryFields {
			b.WriteString(fmt.Sprintf("  Key: %s\n", rec.Registry.KeyPath))
			b.WriteString(fmt.Sprintf("    %s: %s\n", rec.Key, rec.Value))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderAccountReport produces the account-data section.
func RenderAccountReport(acc entities.AccountDiscovery) string {
	var b strings.Builder
	b.WriteString("=== ACCOUNT DATA DISCOVERY REPORT ===\n\n")
	b.WriteString("Summary:\n")
	b.WriteString(fmt.Sprintf("  Email addresses found: %d\n", len(acc.Emails)))
	b.WriteString(fmt.Sprintf("  User identifiers found: %d\n", len(acc.Usernames)))
	b.WriteString(fmt.Sprintf("  Files containing account data: %d\n\n", len(acc.Files)))

	if len(acc.Emails) > 0 {
		b.WriteString("Found Email Addresses:\n")
		for _, email := range acc.Emails {
			b.WriteString(fmt.Sprintf("  - %s\n", email))
		}
		b.WriteString("\n")
	}
	if len(acc.Usernames) > 0 {
		b.WriteString("Found User Identifiers:\n")
		limit := len(acc.Usernames)
		if limit > 10 {
			limit = 10
		}
		for _, id := range acc.Usernames[:limit] {
			b.WriteString(fmt.Sprintf("  - %s\n", id))
		}
		if len(acc.Usernames) > 10 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", len(acc.Usernames)-10))
		}
		b.WriteString("\n")
	}
	if len(acc.Files) > 0 {
		b.WriteString("Files Containing Account Data:\n")
		for _, f := range acc.Files {
			b.WriteString(fmt.Sprintf("  File: %s\n", f.Path))
			if len(f.Emails) > 0 {
				b.WriteString(fmt.Sprintf("    Emails: %d\n", len(f.Emails)))
			}
			if len(f.Usernames) > 0 {
				b.WriteString(fmt.Sprintf("    User IDs: %d\n", len(f.Usernames)))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderWorkspaceReport produces the workspace section.
func RenderWorkspaceReport(workspaces []entities.WorkspaceDescriptor) string {
	var b strings.Builder
	b.WriteString("=== WORKSPACE DISCOVERY REPORT ===\n\n")
	if len(workspaces) == 0 {
		b.WriteString("No workspace locations found.\n")
		return b.String()
	}

	var totalSize int64
	totalFiles, totalCleanable := 0, 0
	for _, ws := range workspaces {
		totalSize += ws.TotalSize
		totalFiles += ws.FileCount
		totalCleanable += len(ws.CleanableItems)
	}
	b.WriteString("Summary:\n")
	b.WriteString(fmt.Sprintf("  Workspace locations: %d\n", len(workspaces)))
	b.WriteString(fmt.Sprintf("  Total files: %d\n", totalFiles))
	b.WriteString(fmt.Sprintf("  Total size: %s\n", FormatSize(totalSize)))
	b.WriteString(fmt.Sprintf("  Cleanable items: %d\n\n", totalCleanable))

	for i, ws := range workspaces {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, ws.Name))
		b.WriteString(fmt.Sprintf("   Path: %s\n", ws.Path))
		b.WriteString(fmt.Sprintf("   Size: %s\n", FormatSize(ws.TotalSize)))
		b.WriteString(fmt.Sprintf("   Files: %d\n", ws.FileCount))
		b.WriteString(fmt.Sprintf("   Cleanable items: %d\n", len(ws.CleanableItems)))
		if len(ws.CleanableItems) > 0 {
			b.WriteString("   Cleanable:\n")
			limit := len(ws.CleanableItems)
			if limit > 5 {
				limit = 5
			}
			for _, item := range ws.CleanableItems[:limit] {
				b.WriteString(fmt.Sprintf("     - %s (%s)\n", item.Description, FormatSize(item.SizeEstimate)))
			}
			if len(ws.CleanableItems) > 5 {
				b.WriteString(fmt.Sprintf("     ... and %d more items\n", len(ws.CleanableItems)-5))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderEditorReport produces the host-editor scan section.
func RenderEditorReport(scan entities.EditorScanResult) string {
	var b strings.Builder
	b.WriteString("=== HOST EDITOR SCAN REPORT ===\n\n")
	b.WriteString(fmt.Sprintf("Total product instances: %d\n", scan.TotalInstances))
	b.WriteString(fmt.Sprintf("Running processes: %d\n\n", len(scan.RunningProcesses)))

	for _, proc := range scan.RunningProcesses {
		b.WriteString(fmt.Sprintf("  Running: %s (PID %d) %s\n", proc.Editor, proc.PID, proc.Name))
	}
	if len(scan.RunningProcesses) > 0 {
		b.WriteString("\n")
	}

	for editor, installs := range scan.Installations {
		if len(installs) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("Editor: %s\n", editor))
		for _, inst := range installs {
			b.WriteString(fmt.Sprintf("  Path: %s\n", inst.Path))
			b.WriteString(fmt.Sprintf("    Extensions: %d\n", len(inst.Data.ExtensionDirs)))
			b.WriteString(fmt.Sprintf("    Config files: %d\n", len(inst.Data.ConfigFiles)))
			b.WriteString(fmt.Sprintf("    Workspace files: %d\n", len(inst.Data.WorkspaceFiles)))
			b.WriteString(fmt.Sprintf("    Cache files: %d\n", len(inst.Data.CacheFiles)))
		}
	}

	if len(scan.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for i, rec := range scan.Recommendations {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
	}
	if len(scan.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range scan.Warnings {
			b.WriteString(fmt.Sprintf("  - %s\n", w))
		}
	}
	return b.String()
}
