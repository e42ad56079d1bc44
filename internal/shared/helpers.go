// Package shared provides common utility functions used across multiple
// packages in the ros2ws codebase.
package shared

import (
	"fmt"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}

// TerminalLines splits output on '\n' and terminates every piece with
// "\r\n" for a virtual console. A trailing newline in the input produces a
// final empty line, matching what a terminal shows.
func TerminalLines(output string) []string {
	parts := strings.Split(output, "\n")
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		lines = append(lines, part+"\r\n")
	}
	return lines
}
