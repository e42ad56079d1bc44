package types

// DependencyKind is the category of a declared dependency in a manifest.
type DependencyKind string

const (
	DependencyKindNone      DependencyKind = "none"
	DependencyKindExec      DependencyKind = "exec"
	DependencyKindBuild     DependencyKind = "build"
	DependencyKindBuildtool DependencyKind = "buildtool"
)

type CollapsibleState int

const (
	CollapsibleStateNone CollapsibleState = iota
	CollapsibleStateCollapsed
	CollapsibleStateExpanded
)

func (s CollapsibleState) String() string {
	switch s {
	case CollapsibleStateCollapsed:
		return "collapsed"
	case CollapsibleStateExpanded:
		return "expanded"
	default:
		return "none"
	}
}

// TerminalState tracks a task terminal through a single run.
type TerminalState string

const (
	TerminalStateCreated   TerminalState = "created"
	TerminalStateOpened    TerminalState = "opened"
	TerminalStateRunning   TerminalState = "running"
	TerminalStateCompleted TerminalState = "completed"
	TerminalStateFailed    TerminalState = "failed"
)

// Finished reports whether the run has emitted its close signal.
func (s TerminalState) Finished() bool {
	return s == TerminalStateCompleted || s == TerminalStateFailed
}

type ExecutorKind string

const (
	ExecutorKindShell ExecutorKind = "shell"
	ExecutorKindPTY   ExecutorKind = "pty"
)
