package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ros2ws/internal/adapters"
	"ros2ws/internal/types"
)

const pkgAManifest = `<?xml version="1.0"?>
<package format="3">
  <name>pkg_a</name>
  <version>0.1.0</version>
  <description>Package A</description>
  <build_depend>ament_cmake</build_depend>
  <exec_depend>rclcpp</exec_depend>
</package>
`

func writePackage(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	dir := filepath.Join(root, "src", rel)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "package.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestTree(root string) *PackageTree {
	return NewPackageTree(root, adapters.NewWorkspaceAdapter(), adapters.NewPackageXMLAdapter())
}

func TestPackageTreeSingleManifestScenario(t *testing.T) {
	root := t.TempDir()
	manifest := writePackage(t, root, "pkg_a", pkgAManifest)
	tree := newTestTree(root)

	roots, err := tree.ListRootPackages(t.Context(), root)
	require.NoError(t, err)
	wantRoots := []types.Package{{
		Name:           "pkg_a",
		Version:        "0.1.0",
		Description:    "Package A",
		DependencyKind: types.DependencyKindNone,
		Expandable:     true,
		ManifestPath:   manifest,
		Dependencies:   []string{},
	}}
	if diff := cmp.Diff(wantRoots, roots); diff != "" {
		t.Fatalf("unexpected roots (-want +got):\n%s", diff)
	}

	deps, err := tree.ListDependencies(t.Context(), manifest)
	require.NoError(t, err)
	wantDeps := []types.Package{
		{
			Name:           "rclcpp",
			Version:        "0.0.0",
			Description:    "An executable dependency",
			DependencyKind: types.DependencyKindExec,
			ManifestPath:   manifest,
			Dependencies:   []string{},
		},
		{
			Name:           "ament_cmake",
			Version:        "0.0.0",
			Description:    "A build dependency",
			DependencyKind: types.DependencyKindBuild,
			ManifestPath:   manifest,
			Dependencies:   []string{},
		},
	}
	if diff := cmp.Diff(wantDeps, deps); diff != "" {
		t.Fatalf("unexpected dependencies (-want +got):\n%s", diff)
	}
}

func TestListRootPackagesSentinels(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "bare", `<package><name>foo</name><version>1.2.3</version></package>`)
	writePackage(t, root, "nameless", `<package></package>`)
	tree := newTestTree(root)

	roots, err := tree.ListRootPackages(t.Context(), root)
	require.NoError(t, err)
	require.Len(t, roots, 2)

	byDir := map[string]types.Package{}
	for _, pkg := range roots {
		byDir[filepath.Base(filepath.Dir(pkg.ManifestPath))] = pkg
	}
	assert.Equal(t, "foo", byDir["bare"].Name)
	assert.Equal(t, "1.2.3", byDir["bare"].Version)
	assert.Equal(t, "No description", byDir["bare"].Description)

	assert.Equal(t, "package.xml", byDir["nameless"].Name)
	assert.Equal(t, "unknown", byDir["nameless"].Version)
	assert.Equal(t, "No description", byDir["nameless"].Description)
}

func TestListRootPackagesWithoutSrc(t *testing.T) {
	root := t.TempDir()
	tree := newTestTree(root)

	roots, err := tree.ListRootPackages(t.Context(), root)
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestListRootPackagesNestedDepth(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "a", `<package><name>a</name></package>`)
	writePackage(t, root, "group/b", `<package><name>b</name></package>`)
	writePackage(t, root, "group/deeper/c", `<package><name>c</name></package>`)

	roots, err := newTestTree(root).ListRootPackages(t.Context(), root)
	require.NoError(t, err)
	var names []string
	for _, pkg := range roots {
		names = append(names, pkg.Name)
		assert.True(t, pkg.Expandable)
		assert.Equal(t, types.DependencyKindNone, pkg.DependencyKind)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)
}

func TestListRootPackagesMalformedManifestPropagates(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "broken", `<package><name>x</package>`)

	_, err := newTestTree(root).ListRootPackages(t.Context(), root)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestListDependenciesCategoryOrder(t *testing.T) {
	root := t.TempDir()
	manifest := writePackage(t, root, "mixed", `<package>
  <buildtool_depend>tool_1</buildtool_depend>
  <build_depend>build_1</build_depend>
  <exec_depend>exec_1</exec_depend>
  <buildtool_depend>tool_2</buildtool_depend>
  <exec_depend>exec_2</exec_depend>
  <build_depend>build_2</build_depend>
</package>`)

	deps, err := newTestTree(root).ListDependencies(t.Context(), manifest)
	require.NoError(t, err)

	type entry struct {
		Name string
		Kind types.DependencyKind
	}
	var got []entry
	for _, dep := range deps {
		got = append(got, entry{dep.Name, dep.DependencyKind})
		assert.False(t, dep.Expandable)
		assert.Equal(t, manifest, dep.ManifestPath)
	}
	want := []entry{
		{"exec_1", types.DependencyKindExec},
		{"exec_2", types.DependencyKindExec},
		{"build_1", types.DependencyKindBuild},
		{"build_2", types.DependencyKindBuild},
		{"tool_1", types.DependencyKindBuildtool},
		{"tool_2", types.DependencyKindBuildtool},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestListDependenciesMissingCategory(t *testing.T) {
	root := t.TempDir()
	manifest := writePackage(t, root, "exec_only", `<package><exec_depend>rclpy</exec_depend></package>`)

	deps, err := newTestTree(root).ListDependencies(t.Context(), manifest)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, types.DependencyKindExec, deps[0].DependencyKind)
	assert.Equal(t, "An executable dependency", deps[0].Description)
}

func TestListDependenciesIdempotent(t *testing.T) {
	root := t.TempDir()
	manifest := writePackage(t, root, "pkg_a", pkgAManifest)
	tree := newTestTree(root)

	first, err := tree.ListDependencies(t.Context(), manifest)
	require.NoError(t, err)
	second, err := tree.ListDependencies(t.Context(), manifest)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("dependency lists differ (-first +second):\n%s", diff)
	}
}

func TestListDependenciesMissingManifest(t *testing.T) {
	tree := newTestTree(t.TempDir())

	deps, err := tree.ListDependencies(t.Context(), filepath.Join(t.TempDir(), "package.xml"))
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestListDependenciesMalformedTagPropagates(t *testing.T) {
	root := t.TempDir()
	manifest := writePackage(t, root, "bad", `<package><name>bad</name><build_depend></build_depend></package>`)

	_, err := newTestTree(root).ListDependencies(t.Context(), manifest)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestListRootPackagesToleratesDependencyTagWithoutText(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "good", `<package><name>good</name></package>`)
	bad := writePackage(t, root, "bad", `<package><name>bad</name><exec_depend>rclcpp</exec_depend><exec_depend/></package>`)
	tree := newTestTree(root)

	roots, err := tree.ListRootPackages(t.Context(), root)
	require.NoError(t, err)
	var names []string
	for _, pkg := range roots {
		names = append(names, pkg.Name)
	}
	assert.ElementsMatch(t, []string{"good", "bad"}, names)

	_, err = tree.ListDependencies(t.Context(), bad)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "<exec_depend> #2 has no text")
}

func TestListDependenciesWhitespaceOnlyTagIsMalformed(t *testing.T) {
	root := t.TempDir()
	manifest := writePackage(t, root, "blank", "<package><buildtool_depend> \n </buildtool_depend></package>")

	_, err := newTestTree(root).ListDependencies(t.Context(), manifest)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "<buildtool_depend> #1 has no text")
}

func TestRootPackageWhitespaceDescriptionFallsBack(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "spaced", "<package><name> spaced </name><description>   </description></package>")

	roots, err := newTestTree(root).ListRootPackages(t.Context(), root)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "spaced", roots[0].Name)
	assert.Equal(t, "No description", roots[0].Description)
}

type vanishingManifest struct {
	missing string
}

func (v vanishingManifest) ReadManifest(path string) (types.Manifest, error) {
	if path == v.missing {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package.xml not found")
	}
	return types.Manifest{Path: path, Name: filepath.Base(filepath.Dir(path))}, nil
}

type fixedWorkspace []string

func (w fixedWorkspace) FindPackageXML(string) ([]string, error) {
	return w, nil
}

func TestListRootPackagesSkipsManifestRemovedDuringScan(t *testing.T) {
	tree := NewPackageTree("/ws",
		fixedWorkspace{"/ws/src/a/package.xml", "/ws/src/b/package.xml"},
		vanishingManifest{missing: "/ws/src/a/package.xml"},
	)

	roots, err := tree.ListRootPackages(t.Context(), "/ws")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "b", roots[0].Name)
}

func TestGetChildren(t *testing.T) {
	root := t.TempDir()
	manifest := writePackage(t, root, "pkg_a", pkgAManifest)
	tree := newTestTree(root)

	roots, err := tree.GetChildren(t.Context(), nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	deps, err := tree.GetChildren(t.Context(), &roots[0])
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, manifest, deps[0].ManifestPath)

	leafChildren, err := tree.GetChildren(t.Context(), &deps[0])
	require.NoError(t, err)
	assert.Empty(t, leafChildren)
}

func TestGetChildrenWithoutWorkspace(t *testing.T) {
	tree := newTestTree("")
	roots, err := tree.GetChildren(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestGetChildrenCachesRootsUntilRefresh(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "pkg_a", pkgAManifest)
	tree := newTestTree(root)

	events := 0
	unsubscribe := tree.OnDidChangeTreeData(func() { events++ })
	defer unsubscribe()

	roots, err := tree.GetChildren(t.Context(), nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	writePackage(t, root, "pkg_b", `<package><name>pkg_b</name></package>`)
	cached, err := tree.GetChildren(t.Context(), nil)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	tree.Refresh()
	assert.Equal(t, 1, events)
	refreshed, err := tree.GetChildren(t.Context(), nil)
	require.NoError(t, err)
	assert.Len(t, refreshed, 2)

	// Refresh fires even when nothing changed.
	tree.Refresh()
	assert.Equal(t, 2, events)
}

func TestGetTreeItem(t *testing.T) {
	tree := newTestTree("/ws")

	root := types.RootPackage(types.Manifest{Path: "/ws/src/a/package.xml", Name: "a", Version: "1.0.0"}, "package.xml")
	item := tree.GetTreeItem(root)
	assert.Equal(t, types.TreeItem{
		Label:            "a",
		Description:      "No description",
		Tooltip:          "a-1.0.0",
		CollapsibleState: types.CollapsibleStateCollapsed,
		ContextValue:     types.ContextValuePackage,
		ResourcePath:     "/ws/src/a/package.xml",
	}, item)

	leaf := types.DependencyPackage("rclcpp", types.DependencyKindBuildtool, "/ws/src/a/package.xml")
	item = tree.GetTreeItem(leaf)
	assert.Equal(t, "rclcpp-0.0.0", item.Tooltip)
	assert.Equal(t, "A build tool dependency", item.Description)
	assert.Equal(t, types.CollapsibleStateNone, item.CollapsibleState)
	assert.Equal(t, types.ContextValueDepend, item.ContextValue)
}
