package app

import (
	"io"

	"ros2ws/internal/types"
)

type PackagesRequest struct {
	Workspace string
}

type PackagesResult struct {
	Packages []types.Package
}

type DependenciesRequest struct {
	// ManifestPath selects the manifest directly. When empty, PackageName
	// is looked up among the packages of Workspace.
	ManifestPath string
	Workspace    string
	PackageName  string
}

type DependenciesResult struct {
	Package      types.Package
	Dependencies []types.Package
}

type TreeRequest struct {
	Workspace string
}

type TreeNode struct {
	Item     types.TreeItem
	Children []types.TreeItem
}

type TreeResult struct {
	Nodes []TreeNode
}

type TaskConfig struct {
	Workspace       string
	Directory       string
	Commands        map[string]string
	DefaultCommand  string
	Executor        types.ExecutorKind
	DefinitionsFile string
}

type TaskSummary struct {
	Name    string
	Verb    string
	Source  string
	Command string
}

type TasksResult struct {
	Tasks []TaskSummary
}

type RunTaskRequest struct {
	TaskConfig
	Verb  string
	Watch bool
	// Output receives the terminal stream.
	Output io.Writer
}

type RunTaskResult struct {
	Name     string
	State    types.TerminalState
	ExitCode int
}
