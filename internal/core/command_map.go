package core

import "strings"

// DefaultCommand is run for verbs that have no explicit mapping.
const DefaultCommand = "ls -la"

// CommandMap maps task verbs to the command lines that implement them. It
// is supplied by configuration; verbs are never translated implicitly.
type CommandMap struct {
	Commands map[string]string
	Default  string
}

func NewCommandMap(commands map[string]string, fallback string) CommandMap {
	normalized := make(map[string]string, len(commands))
	for verb, line := range commands {
		verb = strings.TrimSpace(verb)
		line = strings.TrimSpace(line)
		if verb == "" || line == "" {
			continue
		}
		normalized[verb] = line
	}
	return CommandMap{Commands: normalized, Default: strings.TrimSpace(fallback)}
}

// Lookup returns the command line for verb, falling back to Default.
func (m CommandMap) Lookup(verb string) (string, bool) {
	if line, ok := m.Commands[strings.TrimSpace(verb)]; ok {
		return line, true
	}
	if m.Default != "" {
		return m.Default, true
	}
	return "", false
}
