package ports

import "ros2ws/internal/types"

// ManifestPort reads package.xml files.
type ManifestPort interface {
	// ReadManifest decodes one manifest. A missing or unreadable file is
	// reported with errbuilder.CodeNotFound; malformed XML and dependency
	// tags without text with errbuilder.CodeInvalidArgument.
	ReadManifest(path string) (types.Manifest, error)
}

// WorkspacePort discovers package.xml files within a workspace.
type WorkspacePort interface {
	// FindPackageXML walks <root>/src and returns every regular file named
	// package.xml, depth first. A missing src directory yields no paths.
	FindPackageXML(root string) ([]string, error)
}
