// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleManifest is a package.xml with one executable and one build
// dependency.
const SampleManifest = `<?xml version="1.0"?>
<package format="3">
  <name>pkg_a</name>
  <version>0.1.0</version>
  <description>Package A</description>
  <build_depend>ament_cmake</build_depend>
  <exec_depend>rclcpp</exec_depend>
</package>
`

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteManifest writes content as <root>/src/<rel>/package.xml and returns
// the manifest path.
func WriteManifest(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	dir := filepath.Join(root, "src", rel)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "package.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
