package types

const (
	// TaskType is the task-type identifier registered with the host.
	TaskType = "colcon"

	TaskScopeWorkspace = "workspace"
)

// PredefinedVerbs are the verbs offered without any persisted definition.
var PredefinedVerbs = []string{"build", "test", "build --symlink-install"}

// TaskDefinition is the persisted form of a task, as stored by the host.
type TaskDefinition struct {
	Type string `yaml:"type" json:"type"`
	Verb string `yaml:"verb" json:"verb"`
}

// TaskDefinitionsFile is the on-disk list of persisted task definitions.
type TaskDefinitionsFile struct {
	Tasks []TaskDefinition `yaml:"tasks"`
}

// CommandResult is the captured outcome of one external command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}
