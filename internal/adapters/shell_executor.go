package adapters

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

// ShellExecutor interprets a command line with the built-in POSIX shell
// and captures stdout and stderr separately.
type ShellExecutor struct {
	// Env overrides the process environment when non-nil.
	Env []string
}

func NewShellExecutor() ShellExecutor {
	return ShellExecutor{}
}

func (e ShellExecutor) Run(ctx context.Context, dir string, commandLine string) (types.CommandResult, error) {
	if strings.TrimSpace(commandLine) == "" {
		return types.CommandResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("command line is empty")
	}
	prog, err := syntax.NewParser().Parse(strings.NewReader(commandLine), "task")
	if err != nil {
		return types.CommandResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse command line").
			WithCause(err)
	}

	env := e.Env
	if env == nil {
		env = os.Environ()
	}
	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, &stdout, &stderr),
	)
	if err != nil {
		return types.CommandResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to start command").
			WithCause(err)
	}

	result := types.CommandResult{}
	err = runner.Run(ctx, prog)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	if err != nil {
		var status interp.ExitStatus
		if !errors.As(err, &status) {
			return result, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("command failed").
				WithCause(err)
		}
		result.ExitCode = int(status)
	}
	return result, nil
}

var _ ports.CommandExecutorPort = ShellExecutor{}
