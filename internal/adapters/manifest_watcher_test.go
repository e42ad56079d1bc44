package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, events <-chan string, want string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case path, ok := <-events:
			require.True(t, ok, "events channel closed")
			if path == want {
				return
			}
		case <-timeout:
			t.Fatalf("no event for %s", want)
		}
	}
}

func TestManifestWatcherReportsManifestChanges(t *testing.T) {
	root := t.TempDir()
	pkg := filepath.Join(root, "src", "pkg_a")
	require.NoError(t, os.MkdirAll(pkg, 0755))
	manifest := filepath.Join(pkg, "package.xml")
	require.NoError(t, os.WriteFile(manifest, []byte("<package/>"), 0644))

	watcher, err := NewManifestWatcher(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(pkg, "CMakeLists.txt"), []byte("cmake"), 0644))
	require.NoError(t, os.WriteFile(manifest, []byte("<package><name>a</name></package>"), 0644))
	waitForEvent(t, watcher.Events(), manifest)
}

func TestManifestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))

	watcher, err := NewManifestWatcher(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Close() })

	pkg := filepath.Join(root, "src", "pkg_new")
	require.NoError(t, os.Mkdir(pkg, 0755))
	manifest := filepath.Join(pkg, "package.xml")
	// The directory is registered asynchronously; keep touching the file
	// until the watcher sees it.
	deadline := time.Now().Add(5 * time.Second)
	for {
		require.NoError(t, os.WriteFile(manifest, []byte("<package/>"), 0644))
		select {
		case path := <-watcher.Events():
			if path == manifest {
				return
			}
		case <-time.After(100 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			t.Fatal("no event for manifest in new directory")
		}
	}
}

func TestManifestWatcherClose(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))

	watcher, err := NewManifestWatcher(root)
	require.NoError(t, err)
	require.NoError(t, watcher.Close())
	assert.NoError(t, watcher.Close())

	_, ok := <-watcher.Events()
	assert.False(t, ok)
}

func TestManifestWatcherRequiresSrc(t *testing.T) {
	_, err := NewManifestWatcher(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	_, err = NewManifestWatcher("")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
