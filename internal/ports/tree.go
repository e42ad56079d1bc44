package ports

import (
	"context"

	"ros2ws/internal/types"
)

// TreeDataSource is the tree view contract consumed by the host UI.
type TreeDataSource interface {
	GetChildren(ctx context.Context, node *types.Package) ([]types.Package, error)
	GetTreeItem(node types.Package) types.TreeItem
	// OnDidChangeTreeData registers a full-tree invalidation listener and
	// returns a function that removes it.
	OnDidChangeTreeData(listener func()) func()
}
