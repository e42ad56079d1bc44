package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

// TaskFileAdapter loads persisted task definitions from a yaml file:
//
//	tasks:
//	  - type: colcon
//	    verb: build --packages-select demo
type TaskFileAdapter struct{}

func NewTaskFileAdapter() TaskFileAdapter {
	return TaskFileAdapter{}
}

func (a TaskFileAdapter) LoadDefinitions(path string) ([]types.TaskDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("task definitions file not found").
			WithCause(err)
	}
	var file types.TaskDefinitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse task definitions yaml").
			WithCause(err)
	}
	var definitions []types.TaskDefinition
	for _, def := range file.Tasks {
		// Definitions for other task types belong to other providers.
		if def.Type != "" && def.Type != types.TaskType {
			continue
		}
		definitions = append(definitions, types.TaskDefinition{
			Type: types.TaskType,
			Verb: strings.TrimSpace(def.Verb),
		})
	}
	return definitions, nil
}

var _ ports.TaskDefinitionPort = TaskFileAdapter{}
