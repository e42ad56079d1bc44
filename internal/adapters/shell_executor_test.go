package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellExecutorRun(t *testing.T) {
	tests := []struct {
		name       string
		command    string
		wantStdout string
		wantStderr string
		wantCode   int
	}{
		{
			name:       "stdout only",
			command:    "echo hello; echo world",
			wantStdout: "hello\nworld\n",
		},
		{
			name:       "stderr is captured separately",
			command:    "echo out; echo oops >&2",
			wantStdout: "out\n",
			wantStderr: "oops\n",
		},
		{
			name:     "exit status",
			command:  "exit 3",
			wantCode: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewShellExecutor().Run(t.Context(), t.TempDir(), tt.command)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStdout, result.Stdout)
			assert.Equal(t, tt.wantStderr, result.Stderr)
			assert.Equal(t, tt.wantCode, result.ExitCode)
		})
	}
}

func TestShellExecutorRunsInDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), []byte("found"), 0644))

	result, err := NewShellExecutor().Run(t.Context(), dir, `test -f marker && echo yes`)
	require.NoError(t, err)
	assert.Equal(t, "yes\n", result.Stdout)
}

func TestShellExecutorErrors(t *testing.T) {
	executor := NewShellExecutor()

	_, err := executor.Run(t.Context(), t.TempDir(), "   ")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = executor.Run(t.Context(), t.TempDir(), "echo 'unterminated")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = executor.Run(t.Context(), filepath.Join(t.TempDir(), "missing"), "echo hi")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}
