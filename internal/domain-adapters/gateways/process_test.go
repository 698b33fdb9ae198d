//go:build !windows

package gateways

import (
	"os/exec"
	"testing"
	"time"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/interfaces"
)

func startSleeper(t *testing.T) *exec.Cmd {
	t.Helper()
	cmd := exec.Command("sleep", "60")
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting helper process: %v", err)
	}
	// Reap immediately on exit so the child never lingers as a zombie.
	go func() { _ = cmd.Wait() }()
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
	})
	return cmd
}

func TestProcessGateway_TerminateGraceful(t *testing.T) {
	cmd := startSleeper(t)
	g := NewProcessGateway(testProfile(), &interfaces.NoOpLogger{})

	target := entities.ProcessInfo{PID: int32(cmd.Process.Pid), Name: "sleep"}
	result := g.Terminate([]entities.ProcessInfo{target}, false)

	if len(result.Failed) != 0 {
		t.Fatalf("Failed = %v, want none", result.Failed)
	}
	if len(result.Terminated) != 1 {
		t.Fatalf("Terminated = %d, want 1", len(result.Terminated))
	}
	if result.Terminated[0].Method != entities.TermGraceful {
		t.Errorf("method = %q, want %q", result.Terminated[0].Method, entities.TermGraceful)
	}
}

func TestProcessGateway_TerminateForced(t *testing.T) {
	cmd := startSleeper(t)
	g := NewProcessGateway(testProfile(), &interfaces.NoOpLogger{})

	target := entities.ProcessInfo{PID: int32(cmd.Process.Pid), Name: "sleep"}
	result := g.Terminate([]entities.ProcessInfo{target}, true)

	if len(result.Terminated) != 1 {
		t.Fatalf("Terminated = %d, want 1", len(result.Terminated))
	}
	if result.Terminated[0].Method != entities.TermForced {
		t.Errorf("method = %q, want %q", result.Terminated[0].Method, entities.TermForced)
	}
}

// A process that ignores the graceful request must be killed once the
// grace period runs out, reported with the escalated method and a
// warning.
func TestProcessGateway_TerminateEscalatesAfterWait(t *testing.T) {
	cmd := exec.Command("sh", "-c", `trap "" TERM; while true; do sleep 1; done`)
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting helper process: %v", err)
	}
	go func() { _ = cmd.Wait() }()
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
	})
	// Let the shell install its trap before signalling it.
	time.Sleep(200 * time.Millisecond)

	g := NewProcessGateway(testProfile(), &interfaces.NoOpLogger{})
	g.gracePeriod = 1 * time.Second

	target := entities.ProcessInfo{PID: int32(cmd.Process.Pid), Name: "sh"}
	result := g.Terminate([]entities.ProcessInfo{target}, false)

	if len(result.Failed) != 0 {
		t.Fatalf("Failed = %v, want none", result.Failed)
	}
	if len(result.Terminated) != 1 || result.Terminated[0].Method != entities.TermForcedAfterWait {
		t.Fatalf("result = %+v, want method %q", result.Terminated, entities.TermForcedAfterWait)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one escalation warning", result.Warnings)
	}
}

func TestProcessGateway_AlreadyGone(t *testing.T) {
	cmd := startSleeper(t)
	pid := int32(cmd.Process.Pid)
	_ = cmd.Process.Kill()
	// Give the reaper goroutine a moment to collect the exit status.
	time.Sleep(200 * time.Millisecond)

	g := NewProcessGateway(testProfile(), &interfaces.NoOpLogger{})
	target := entities.ProcessInfo{PID: pid, Name: "sleep"}
	result := g.Terminate([]entities.ProcessInfo{target}, false)

	if len(result.Failed) != 0 {
		t.Fatalf("Failed = %v, want none for an exited process", result.Failed)
	}
	if len(result.Terminated) != 1 || result.Terminated[0].Method != entities.TermAlreadyGone {
		t.Errorf("result = %+v, want already_gone", result.Terminated)
	}
}
