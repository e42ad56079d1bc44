package app

import (
	"ros2ws/internal/adapters"
	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

type Service struct {
	Workspace   ports.WorkspacePort
	Manifest    ports.ManifestPort
	Definitions ports.TaskDefinitionPort
	Executors   map[types.ExecutorKind]ports.CommandExecutorPort
	NewWatcher  func(root string) (ports.WatcherPort, error)
}

func NewService() Service {
	return Service{
		Workspace:   adapters.NewWorkspaceAdapter(),
		Manifest:    adapters.NewPackageXMLAdapter(),
		Definitions: adapters.NewTaskFileAdapter(),
		Executors: map[types.ExecutorKind]ports.CommandExecutorPort{
			types.ExecutorKindShell: adapters.NewShellExecutor(),
			types.ExecutorKindPTY:   adapters.NewPTYExecutor(),
		},
		NewWatcher: func(root string) (ports.WatcherPort, error) {
			return adapters.NewManifestWatcher(root)
		},
	}
}
