package core

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

// PackageTree scans a workspace for manifests and resolves their direct
// dependencies on demand. Only the root listing is cached; dependency
// lists are read from disk on every call.
type PackageTree struct {
	Root      string
	Workspace ports.WorkspacePort
	Manifest  ports.ManifestPort

	roots   Cache[[]types.Package]
	changed Emitter[struct{}]
}

func NewPackageTree(root string, workspace ports.WorkspacePort, manifest ports.ManifestPort) *PackageTree {
	return &PackageTree{
		Root:      root,
		Workspace: workspace,
		Manifest:  manifest,
	}
}

// ListRootPackages returns one expandable Package per package.xml found
// under <root>/src. A missing src directory yields an empty result.
func (t *PackageTree) ListRootPackages(ctx context.Context, root string) ([]types.Package, error) {
	paths, err := t.Workspace.FindPackageXML(root)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}

	var packages []types.Package
	for _, path := range paths {
		manifest, err := t.Manifest.ReadManifest(path)
		if err != nil {
			if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
				log.Ctx(ctx).Debug().Str("path", path).Msg("manifest disappeared during scan")
				continue
			}
			return nil, err
		}
		assert.NotEmpty(ctx, manifest.Path, "manifest path must be set")
		packages = append(packages, types.RootPackage(manifest, filepath.Base(path)))
	}

	log.Ctx(ctx).Debug().
		Str("root", root).
		Int("packages", len(packages)).
		Msg("workspace scanned")
	return packages, nil
}

// ListDependencies re-reads one manifest and returns its exec, build and
// buildtool dependencies, in that order. A manifest that no longer exists
// yields an empty result; a malformed one returns the parse error.
func (t *PackageTree) ListDependencies(ctx context.Context, manifestPath string) ([]types.Package, error) {
	manifest, err := t.Manifest.ReadManifest(manifestPath)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			log.Ctx(ctx).Debug().Str("path", manifestPath).Msg("manifest not found")
			return nil, nil
		}
		return nil, err
	}

	var deps []types.Package
	categories := []struct {
		kind  types.DependencyKind
		names []string
	}{
		{types.DependencyKindExec, manifest.ExecDepends},
		{types.DependencyKindBuild, manifest.BuildDepends},
		{types.DependencyKindBuildtool, manifest.BuildtoolDepends},
	}
	for _, category := range categories {
		for i, name := range category.names {
			if name == "" {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("<%s> #%d has no text in %s", category.kind.Tag(), i+1, manifestPath))
			}
			deps = append(deps, types.DependencyPackage(name, category.kind, manifestPath))
		}
	}

	log.Ctx(ctx).Debug().
		Str("path", manifestPath).
		Int("dependencies", len(deps)).
		Msg("manifest dependencies resolved")
	return deps, nil
}

// GetChildren returns the root packages for a nil node, the dependencies of
// an expandable node, and nothing for a leaf.
func (t *PackageTree) GetChildren(ctx context.Context, node *types.Package) ([]types.Package, error) {
	if t.Root == "" {
		log.Ctx(ctx).Info().Msg("No workspace found")
		return nil, nil
	}
	if node != nil {
		if !node.Expandable {
			return nil, nil
		}
		return t.ListDependencies(ctx, node.ManifestPath)
	}
	if cached, ok := t.roots.Get(); ok {
		return slices.Clone(cached), nil
	}
	packages, err := t.ListRootPackages(ctx, t.Root)
	if err != nil {
		return nil, err
	}
	t.roots.Set(packages)
	return slices.Clone(packages), nil
}

func (t *PackageTree) GetTreeItem(node types.Package) types.TreeItem {
	item := types.TreeItem{
		Label:            node.Name,
		Description:      node.Description,
		Tooltip:          node.Tooltip(),
		CollapsibleState: types.CollapsibleStateNone,
		ContextValue:     types.ContextValueDepend,
		ResourcePath:     node.ManifestPath,
	}
	if node.Expandable {
		item.CollapsibleState = types.CollapsibleStateCollapsed
		item.ContextValue = types.ContextValuePackage
	}
	return item
}

func (t *PackageTree) OnDidChangeTreeData(listener func()) func() {
	return t.changed.Subscribe(func(struct{}) { listener() })
}

// Refresh drops the cached root listing and tells listeners to re-render
// the whole tree.
func (t *PackageTree) Refresh() {
	t.roots.Invalidate()
	t.changed.Fire(struct{}{})
}

var _ ports.TreeDataSource = (*PackageTree)(nil)
