package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros2ws/internal/ports"
	"ros2ws/internal/shared"
	"ros2ws/internal/types"
)

const (
	startMessage    = "Starting build...\r\n"
	completeMessage = "Build complete.\r\n\r\n"
)

type TerminalConfig struct {
	Verb     string
	Dir      string
	Commands CommandMap
	Executor ports.CommandExecutorPort
	Watch    WatchFactory
}

// TaskTerminal runs the command mapped to one verb and streams its output
// as terminal lines. Every run ends in exactly one close signal: 0 when the
// command succeeded, the exit code (or 1) when it failed.
type TaskTerminal struct {
	cfg TerminalConfig

	mu       sync.Mutex
	state    types.TerminalState
	exitCode int
	watcher  ports.WatcherPort
	done     chan struct{}
	forward  sync.WaitGroup

	writeMu sync.Mutex
	writes  Emitter[string]
	closes  Emitter[int]
}

func NewTaskTerminal(cfg TerminalConfig) *TaskTerminal {
	return &TaskTerminal{
		cfg:   cfg,
		state: types.TerminalStateCreated,
		done:  make(chan struct{}),
	}
}

func (t *TaskTerminal) OnDidWrite(listener func(data string)) func() {
	return t.writes.Subscribe(listener)
}

func (t *TaskTerminal) OnDidClose(listener func(code int)) func() {
	return t.closes.Subscribe(listener)
}

func (t *TaskTerminal) State() types.TerminalState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ExitCode is meaningful once Done is closed.
func (t *TaskTerminal) ExitCode() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.exitCode
}

// Done is closed after the close signal has been delivered.
func (t *TaskTerminal) Done() <-chan struct{} {
	return t.done
}

// Open starts the run. The command executes on its own goroutine; ctx is
// handed to the executor but the terminal never cancels it. Calling Open
// more than once has no effect.
func (t *TaskTerminal) Open(ctx context.Context) {
	t.mu.Lock()
	if t.state != types.TerminalStateCreated {
		t.mu.Unlock()
		log.Ctx(ctx).Warn().Str("verb", t.cfg.Verb).Msg("task terminal already opened")
		return
	}
	t.state = types.TerminalStateOpened
	t.mu.Unlock()
	log.Ctx(ctx).Debug().Str("verb", t.cfg.Verb).Msg("task terminal opened")

	if t.cfg.Watch != nil {
		watcher, err := t.cfg.Watch()
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("task terminal runs without file watch")
		} else {
			t.mu.Lock()
			t.watcher = watcher
			t.mu.Unlock()
			t.forward.Add(1)
			go t.forwardWatch(watcher)
		}
	}

	t.setState(types.TerminalStateRunning)
	go t.run(ctx)
}

// Close releases the file watch and returns once no further change notices
// can be written. An in-flight command keeps running and still delivers its
// close signal.
func (t *TaskTerminal) Close() {
	t.mu.Lock()
	watcher := t.watcher
	t.watcher = nil
	t.mu.Unlock()
	if watcher != nil {
		if err := watcher.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to release file watch")
		}
	}
	t.forward.Wait()
}

func (t *TaskTerminal) run(ctx context.Context) {
	t.write(startMessage)

	line, ok := t.cfg.Commands.Lookup(t.cfg.Verb)
	if !ok {
		err := errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("no command configured for verb: " + t.cfg.Verb)
		t.fail(ctx, err, 1)
		return
	}
	log.Ctx(ctx).Debug().Str("verb", t.cfg.Verb).Str("command", line).Msg("running task command")

	result, err := t.cfg.Executor.Run(ctx, t.cfg.Dir, line)
	if err != nil {
		t.fail(ctx, err, result.ExitCode)
		return
	}
	if result.ExitCode != 0 {
		err := errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(commandFailedMessage(line, result))
		t.fail(ctx, err, result.ExitCode)
		return
	}
	if result.Stderr != "" {
		t.write("stderr: " + terminalText(result.Stderr) + "\r\n")
		t.finish(ctx, types.TerminalStateFailed, 1)
		return
	}

	for _, out := range shared.TerminalLines(result.Stdout) {
		t.write(out)
	}
	t.write(completeMessage)
	t.finish(ctx, types.TerminalStateCompleted, 0)
}

func (t *TaskTerminal) fail(ctx context.Context, err error, code int) {
	t.write("Error: " + terminalText(errorText(err)) + "\r\n")
	if code == 0 {
		code = 1
	}
	t.finish(ctx, types.TerminalStateFailed, code)
}

func (t *TaskTerminal) finish(ctx context.Context, state types.TerminalState, code int) {
	// Holding writeMu orders the state change after any change notice that
	// is already being written.
	t.writeMu.Lock()
	t.mu.Lock()
	t.state = state
	t.exitCode = code
	t.mu.Unlock()
	t.writeMu.Unlock()
	log.Ctx(ctx).Debug().
		Str("verb", t.cfg.Verb).
		Str("state", string(state)).
		Int("code", code).
		Msg("task terminal finished")
	t.closes.Fire(code)
	close(t.done)
}

func (t *TaskTerminal) setState(state types.TerminalState) {
	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
}

func (t *TaskTerminal) write(data string) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	t.writes.Fire(data)
}

// forwardWatch writes a change notice only while the command runs. The
// state check and the write happen under writeMu so nothing is written
// once finish has recorded the final state.
func (t *TaskTerminal) forwardWatch(watcher ports.WatcherPort) {
	defer t.forward.Done()
	for path := range watcher.Events() {
		t.writeMu.Lock()
		if t.State() == types.TerminalStateRunning {
			t.writes.Fire("Manifest changed: " + path + "\r\n")
		}
		t.writeMu.Unlock()
	}
}

func commandFailedMessage(line string, result types.CommandResult) string {
	msg := fmt.Sprintf("Command failed: %s (exit code %d)", line, result.ExitCode)
	if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

// errorText renders an error as the single diagnostic line. Coded errors
// show their message followed by the cause, if any.
func errorText(err error) string {
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) || strings.TrimSpace(builder.Msg) == "" {
		return err.Error()
	}
	msg := builder.Msg
	if cause := errors.Unwrap(builder); cause != nil && cause.Error() != msg {
		return msg + ": " + cause.Error()
	}
	return msg
}

// terminalText converts embedded newlines to the "\r\n" a terminal expects.
func terminalText(text string) string {
	text = strings.TrimRight(text, "\r\n")
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", "\r\n")
}

var _ ports.Pseudoterminal = (*TaskTerminal)(nil)
