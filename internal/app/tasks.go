package app

import (
	"context"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros2ws/internal/core"
	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

// Tasks lists the predefined tasks followed by any persisted definitions,
// with the command line each one would run.
func (s Service) Tasks(ctx context.Context, cfg TaskConfig) (TasksResult, error) {
	provider, err := s.taskProvider(cfg)
	if err != nil {
		return TasksResult{}, err
	}
	tasks := append([]core.Task(nil), provider.ProvideTasks()...)

	definitions, err := s.loadDefinitions(ctx, cfg.DefinitionsFile)
	if err != nil {
		return TasksResult{}, err
	}
	for _, def := range definitions {
		task, ok := provider.ResolveTask(def)
		if !ok {
			log.Ctx(ctx).Debug().Str("file", cfg.DefinitionsFile).Msg("skipping task definition without verb")
			continue
		}
		tasks = append(tasks, task)
	}

	result := TasksResult{}
	for _, task := range tasks {
		command, _ := provider.Commands.Lookup(task.Definition.Verb)
		result.Tasks = append(result.Tasks, TaskSummary{
			Name:    task.Name,
			Verb:    task.Definition.Verb,
			Source:  task.Source,
			Command: command,
		})
	}
	return result, nil
}

// RunTask resolves the verb into a task, runs it on a fresh terminal and
// waits for the close signal.
func (s Service) RunTask(ctx context.Context, req RunTaskRequest) (RunTaskResult, error) {
	provider, err := s.taskProvider(req.TaskConfig)
	if err != nil {
		return RunTaskResult{}, err
	}
	if req.Watch && s.NewWatcher != nil {
		workspace := req.Workspace
		provider.Watch = func() (ports.WatcherPort, error) {
			return s.NewWatcher(workspace)
		}
	}
	task, ok := provider.ResolveTask(types.TaskDefinition{Type: types.TaskType, Verb: req.Verb})
	if !ok {
		return RunTaskResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("task verb is required")
	}

	output := req.Output
	if output == nil {
		output = io.Discard
	}
	terminal := task.Execute()
	terminal.OnDidWrite(func(data string) {
		_, _ = io.WriteString(output, data)
	})
	terminal.Open(ctx)
	defer terminal.Close()

	select {
	case <-terminal.Done():
	case <-ctx.Done():
		return RunTaskResult{Name: task.Name, State: terminal.State()}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("task interrupted: " + task.Name).
			WithCause(ctx.Err())
	}
	return RunTaskResult{
		Name:     task.Name,
		State:    terminal.State(),
		ExitCode: terminal.ExitCode(),
	}, nil
}

func (s Service) taskProvider(cfg TaskConfig) (*core.TaskProvider, error) {
	kind := cfg.Executor
	if kind == "" {
		kind = types.ExecutorKindShell
	}
	executor, ok := s.Executors[kind]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown task executor: " + string(kind))
	}
	dir := strings.TrimSpace(cfg.Directory)
	if dir == "" {
		dir = strings.TrimSpace(cfg.Workspace)
	}
	if dir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("task directory is required")
	}
	return core.NewTaskProvider(dir, core.NewCommandMap(cfg.Commands, cfg.DefaultCommand), executor), nil
}

func (s Service) loadDefinitions(ctx context.Context, path string) ([]types.TaskDefinition, error) {
	path = strings.TrimSpace(path)
	if path == "" || s.Definitions == nil {
		return nil, nil
	}
	definitions, err := s.Definitions.LoadDefinitions(path)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			log.Ctx(ctx).Debug().Str("file", path).Msg("no persisted task definitions")
			return nil, nil
		}
		return nil, err
	}
	return definitions, nil
}
