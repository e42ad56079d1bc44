package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ros2ws/internal/core"
)

// NewTree builds the tree data source for a workspace.
func (s Service) NewTree(workspace string) *core.PackageTree {
	return core.NewPackageTree(strings.TrimSpace(workspace), s.Workspace, s.Manifest)
}

func (s Service) Packages(ctx context.Context, req PackagesRequest) (PackagesResult, error) {
	workspace, err := requireWorkspace(req.Workspace)
	if err != nil {
		return PackagesResult{}, err
	}
	packages, err := s.NewTree(workspace).ListRootPackages(ctx, workspace)
	if err != nil {
		return PackagesResult{}, err
	}
	return PackagesResult{Packages: packages}, nil
}

func (s Service) Dependencies(ctx context.Context, req DependenciesRequest) (DependenciesResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	tree := s.NewTree(req.Workspace)
	result := DependenciesResult{}

	if manifestPath == "" {
		name := strings.TrimSpace(req.PackageName)
		if name == "" {
			return DependenciesResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("manifest path or package name is required")
		}
		workspace, err := requireWorkspace(req.Workspace)
		if err != nil {
			return DependenciesResult{}, err
		}
		packages, err := tree.ListRootPackages(ctx, workspace)
		if err != nil {
			return DependenciesResult{}, err
		}
		for _, pkg := range packages {
			if pkg.Name == name {
				result.Package = pkg
				manifestPath = pkg.ManifestPath
				break
			}
		}
		if manifestPath == "" {
			return DependenciesResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("package not found in workspace: " + name)
		}
	}

	deps, err := tree.ListDependencies(ctx, manifestPath)
	if err != nil {
		return DependenciesResult{}, err
	}
	if result.Package.ManifestPath == "" {
		result.Package.Name = filepath.Base(filepath.Dir(manifestPath))
		result.Package.ManifestPath = manifestPath
	}
	result.Dependencies = deps
	return result, nil
}

// Tree expands every root package one level, the way the tree view does
// when each node is opened.
func (s Service) Tree(ctx context.Context, req TreeRequest) (TreeResult, error) {
	workspace, err := requireWorkspace(req.Workspace)
	if err != nil {
		return TreeResult{}, err
	}
	tree := s.NewTree(workspace)
	roots, err := tree.GetChildren(ctx, nil)
	if err != nil {
		return TreeResult{}, err
	}
	result := TreeResult{}
	for i := range roots {
		children, err := tree.GetChildren(ctx, &roots[i])
		if err != nil {
			return TreeResult{}, err
		}
		node := TreeNode{Item: tree.GetTreeItem(roots[i])}
		for _, child := range children {
			node.Children = append(node.Children, tree.GetTreeItem(child))
		}
		result.Nodes = append(result.Nodes, node)
	}
	return result, nil
}

func requireWorkspace(workspace string) (string, error) {
	workspace = strings.TrimSpace(workspace)
	if workspace == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is required")
	}
	return workspace, nil
}
