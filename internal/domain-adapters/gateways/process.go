package gateways

import (
	"fmt"
	"strings"
	"time"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
	"github.com/shirou/gopsutil/v4/process"
)

const (
	terminateTimeout = 10 * time.Second
	terminatePoll    = 200 * time.Millisecond
)

// editorProcessNames maps editor keys to the executable names their
// processes go by across platforms.
var editorProcessNames = map[string][]string{
	"vscode":   {"code", "code.exe", "code - insiders"},
	"vscodium": {"codium", "codium.exe", "vscodium"},
	"cursor":   {"cursor", "cursor.exe"},
	"windsurf": {"windsurf", "windsurf.exe"},
}

var editorDisplayNames = map[string]string{
	"vscode":   "Visual Studio Code",
	"vscodium": "VSCodium",
	"cursor":   "Cursor",
	"windsurf": "Windsurf",
}

// ProcessGateway finds host-editor processes that carry the product and
// terminates them, gracefully first.
type ProcessGateway struct {
	profile entities.Profile
	log     interfaces.Logger

	// gracePeriod bounds the wait between a graceful terminate and the
	// forced kill. Tests shorten it.
	gracePeriod time.Duration
}

func NewProcessGateway(profile entities.Profile, log interfaces.Logger) *ProcessGateway {
	return &ProcessGateway{profile: profile, log: log, gracePeriod: terminateTimeout}
}

// ListMatching returns editor processes whose command line or open files
// mention one of the profile's process indicators. A bare editor process
// with no indicator hit is not a match.
func (g *ProcessGateway) ListMatching() ([]entities.ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	var matched []entities.ProcessInfo
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		editorKey := matchEditor(name)
		if editorKey == "" {
			continue
		}

		cmdline, _ := p.Cmdline()
		if !g.hasIndicator(p, cmdline) {
			continue
		}

		exe, _ := p.Exe()
		matched = append(matched, entities.ProcessInfo{
			PID:       p.Pid,
			Name:      name,
			Exe:       exe,
			Cmdline:   cmdline,
			EditorKey: editorKey,
			Editor:    editorDisplayNames[editorKey],
		})
	}
	return matched, nil
}

func (g *ProcessGateway) hasIndicator(p *process.Process, cmdline string) bool {
	lower := strings.ToLower(cmdline)
	for _, ind := range g.profile.ProcessIndicators {
		if strings.Contains(lower, strings.ToLower(ind)) {
			return true
		}
	}
	files, err := p.OpenFiles()
	if err != nil {
		return false
	}
	for _, f := range files {
		lowerPath := strings.ToLower(f.Path)
		for _, ind := range g.profile.ProcessIndicators {
			if strings.Contains(lowerPath, strings.ToLower(ind)) {
				return true
			}
		}
	}
	return false
}

// Terminate ends the given processes. With force unset each process gets
// a graceful terminate and up to ten seconds to exit before being
// killed; with force set they are killed outright.
func (g *ProcessGateway) Terminate(targets []entities.ProcessInfo, force bool) entities.TerminationResult {
	var result entities.TerminationResult
	for _, target := range targets {
		p, err := process.NewProcess(target.PID)
		if err != nil {
			result.Terminated = append(result.Terminated, entities.TerminatedProcess{
				Process: target, Method: entities.TermAlreadyGone,
			})
			continue
		}

		if force {
			if err := p.Kill(); err != nil {
				result.Failed = append(result.Failed, failedTermination(target, err))
				continue
			}
			result.Terminated = append(result.Terminated, entities.TerminatedProcess{
				Process: target, Method: entities.TermForced,
			})
			continue
		}

		if err := p.Terminate(); err != nil {
			result.Failed = append(result.Failed, failedTermination(target, err))
			continue
		}
		if g.waitForExit(p) {
			result.Terminated = append(result.Terminated, entities.TerminatedProcess{
				Process: target, Method: entities.TermGraceful,
			})
			continue
		}

		if err := p.Kill(); err != nil {
			result.Failed = append(result.Failed, failedTermination(target, err))
			continue
		}
		result.Terminated = append(result.Terminated, entities.TerminatedProcess{
			Process: target, Method: entities.TermForcedAfterWait,
		})
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s (pid %d) ignored the graceful request and was killed", target.Name, target.PID))
	}
	return result
}

func (g *ProcessGateway) waitForExit(p *process.Process) bool {
	deadline := time.Now().Add(g.gracePeriod)
	for time.Now().Before(deadline) {
		running, err := p.IsRunning()
		if err != nil || !running {
			return true
		}
		time.Sleep(terminatePoll)
	}
	return false
}

func failedTermination(target entities.ProcessInfo, err error) entities.FailedTermination {
	reason := err.Error()
	if strings.Contains(strings.ToLower(reason), "permission") ||
		strings.Contains(strings.ToLower(reason), "access is denied") {
		reason = fmt.Sprintf("insufficient privileges to end pid %d; re-run elevated or close %s manually", target.PID, target.Editor)
	}
	return entities.FailedTermination{Process: target, Reason: reason}
}

func matchEditor(name string) string {
	lower := strings.ToLower(name)
	for key, names := range editorProcessNames {
		for _, candidate := range names {
			if lower == candidate {
				return key
			}
		}
	}
	return ""
}
