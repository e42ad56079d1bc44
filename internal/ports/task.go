package ports

import (
	"context"
	"io"

	"ros2ws/internal/types"
)

// Pseudoterminal is the virtual console a task writes to. The host calls
// Open once and Close when the user dismisses the terminal.
type Pseudoterminal interface {
	Open(ctx context.Context)
	Close()
	OnDidWrite(listener func(data string)) func()
	OnDidClose(listener func(code int)) func()
}

// CommandExecutorPort runs one command line in a directory and captures
// its output. A command that starts and exits non-zero returns a result and
// a nil error; the error is reserved for spawn failures.
type CommandExecutorPort interface {
	Run(ctx context.Context, dir string, commandLine string) (types.CommandResult, error)
}

// WatcherPort is a live file-watch resource.
type WatcherPort interface {
	io.Closer
	Events() <-chan string
}

// TaskDefinitionPort loads task definitions persisted by the host.
type TaskDefinitionPort interface {
	LoadDefinitions(path string) ([]types.TaskDefinition, error)
}
