package core

import (
	"strings"

	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

// WatchFactory opens the file-watch resource a terminal holds while open.
type WatchFactory func() (ports.WatcherPort, error)

// Task is a runnable unit bound to one verb.
type Task struct {
	Definition types.TaskDefinition
	Name       string
	Source     string
	Scope      string

	provider *TaskProvider
}

// Execute creates a fresh terminal for one run of the task.
func (t Task) Execute() *TaskTerminal {
	return NewTaskTerminal(TerminalConfig{
		Verb:     t.Definition.Verb,
		Dir:      t.provider.Dir,
		Commands: t.provider.Commands,
		Executor: t.provider.Executor,
		Watch:    t.provider.Watch,
	})
}

// TaskProvider offers the predefined colcon tasks and resolves persisted
// task definitions into runnable tasks.
type TaskProvider struct {
	Dir      string
	Commands CommandMap
	Executor ports.CommandExecutorPort
	Watch    WatchFactory

	tasks Cache[[]Task]
}

func NewTaskProvider(dir string, commands CommandMap, executor ports.CommandExecutorPort) *TaskProvider {
	return &TaskProvider{
		Dir:      dir,
		Commands: commands,
		Executor: executor,
	}
}

// ProvideTasks returns one task per predefined verb. The list is computed
// once and kept until Invalidate.
func (p *TaskProvider) ProvideTasks() []Task {
	if cached, ok := p.tasks.Get(); ok {
		return cached
	}
	tasks := make([]Task, 0, len(types.PredefinedVerbs))
	for _, verb := range types.PredefinedVerbs {
		tasks = append(tasks, p.newTask(types.TaskDefinition{Type: types.TaskType, Verb: verb}))
	}
	p.tasks.Set(tasks)
	return tasks
}

func (p *TaskProvider) Invalidate() {
	p.tasks.Invalidate()
}

// ResolveTask binds a definition to a task. It reports false when the
// definition carries no verb.
func (p *TaskProvider) ResolveTask(definition types.TaskDefinition) (Task, bool) {
	verb := strings.TrimSpace(definition.Verb)
	if verb == "" {
		return Task{}, false
	}
	if definition.Type == "" {
		definition.Type = types.TaskType
	}
	definition.Verb = verb
	return p.newTask(definition), true
}

func (p *TaskProvider) newTask(definition types.TaskDefinition) Task {
	return Task{
		Definition: definition,
		Name:       definition.Type + " " + definition.Verb,
		Source:     types.TaskType,
		Scope:      types.TaskScopeWorkspace,
		provider:   p,
	}
}
