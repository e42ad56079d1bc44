package adapters

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/creack/pty"

	"ros2ws/internal/ports"
	"ros2ws/internal/shared"
	"ros2ws/internal/types"
)

// PTYExecutor runs a command line through sh on a pseudo-terminal so tools
// that detect a TTY keep their colored, line-buffered output. Stdout and
// stderr share the terminal, so CommandResult.Stderr is always empty.
type PTYExecutor struct {
	Shell string
}

func NewPTYExecutor() PTYExecutor {
	return PTYExecutor{Shell: "sh"}
}

func (e PTYExecutor) Run(ctx context.Context, dir string, commandLine string) (types.CommandResult, error) {
	if strings.TrimSpace(commandLine) == "" {
		return types.CommandResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("command line is empty")
	}
	shell := e.Shell
	if shell == "" {
		shell = "sh"
	}
	cmd := exec.CommandContext(ctx, shell, "-c", commandLine)
	cmd.Dir = dir
	tty, err := pty.Start(cmd)
	if err != nil {
		return types.CommandResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to start command on pty").
			WithCause(err)
	}
	defer tty.Close()

	var output bytes.Buffer
	if _, err := io.Copy(&output, tty); err != nil && !isPTYClosed(err) {
		_ = cmd.Wait()
		return types.CommandResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read pty output").
			WithCause(err)
	}

	result := types.CommandResult{
		Stdout: strings.ReplaceAll(output.String(), "\r\n", "\n"),
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return result, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("command failed").
				WithCause(shared.CommandError(output.Bytes(), err))
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result, nil
}

// isPTYClosed reports the EIO the Linux pty master returns once the child
// side has been closed.
func isPTYClosed(err error) bool {
	return errors.Is(err, syscall.EIO)
}

var _ ports.CommandExecutorPort = PTYExecutor{}
