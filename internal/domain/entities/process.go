package entities

// ProcessInfo identifies one running host-editor process that carries the
// product, as established by name matching plus an indicator hit in its
// command line or open files.
type ProcessInfo struct {
	PID       int32
	Name      string
	Exe       string
	Cmdline   string
	EditorKey string
	Editor    string
}

// Termination methods reported in TerminationResult.
const (
	TermGraceful        = "terminate"
	TermForced          = "kill"
	TermForcedAfterWait = "force_kill_after_timeout"
	TermAlreadyGone     = "already_gone"
)

// TerminatedProcess pairs a process with the method that ended it.
type TerminatedProcess struct {
	Process ProcessInfo
	Method  string
}

// FailedTermination pairs a process with the reason it could not be ended.
type FailedTermination struct {
	Process ProcessInfo
	Reason  string
}

// TerminationResult aggregates the outcome of terminating a set of
// processes.
type TerminationResult struct {
	Terminated []TerminatedProcess
	Failed     []FailedTermination
	Warnings   []string
}
