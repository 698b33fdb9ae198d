// Package orchestrators sequences discovery and cleanup across the
// gateways and adapters, tracking progress and aggregating success.
package orchestrators

import (
	"fmt"
	"sync"
)

// Status tracks the progress of a long-running operation. A single
// writer (the orchestrator) advances it; any reader may snapshot it
// concurrently, which is how the interactive shell drives its spinner.
type Status struct {
	mu             sync.Mutex
	operation      string
	currentStep    string
	completedSteps int
	totalSteps     int
	running        bool
	success        bool
	failure        string
	lines          []string
}

// StatusSnapshot is a point-in-time copy of a Status.
type StatusSnapshot struct {
	Operation      string
	CurrentStep    string
	CompletedSteps int
	TotalSteps     int
	Running        bool
	Success        bool
	Failure        string
	Lines          []string
}

func (s *Status) begin(operation string, totalSteps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operation = operation
	s.currentStep = ""
	s.completedSteps = 0
	s.totalSteps = totalSteps
	s.running = true
	s.success = false
	s.failure = ""
	s.lines = nil
}

func (s *Status) step(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = description
	s.completedSteps++
	s.lines = append(s.lines, fmt.Sprintf("[%d/%d] %s", s.completedSteps, s.totalSteps, description))
}

func (s *Status) note(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

func (s *Status) finish(success bool, failure string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.success = success
	s.failure = failure
}

// Snapshot returns a copy safe to read while the operation runs.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]string, len(s.lines))
	copy(lines, s.lines)
	return StatusSnapshot{
		Operation:      s.operation,
		CurrentStep:    s.currentStep,
		CompletedSteps: s.completedSteps,
		TotalSteps:     s.totalSteps,
		Running:        s.running,
		Success:        s.success,
		Failure:        s.failure,
		Lines:          lines,
	}
}

// IsRunning reports whether an operation is in flight.
func (s *Status) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
