package types

const (
	ManifestFileName = "package.xml"

	UnknownVersion      = "unknown"
	DependencyVersion   = "0.0.0"
	NoDescription       = "No description"
	ContextValuePackage = "package"
	ContextValueDepend  = "dependency"
)

// Package is either a manifest discovered in the workspace or one
// dependency declared by such a manifest.
type Package struct {
	Name           string         `json:"name"`
	Version        string         `json:"version"`
	Description    string         `json:"description"`
	DependencyKind DependencyKind `json:"dependency_kind"`
	Expandable     bool           `json:"expandable"`
	ManifestPath   string         `json:"manifest_path"`

	// Dependencies is always empty for manifest-root packages; children are
	// resolved lazily from ManifestPath.
	Dependencies []string `json:"dependencies"`
}

// Manifest is the identity and dependency tags read from one package.xml.
// Identity fields are empty when the element is absent. Dependency entries
// are empty strings for tags that carry no text.
type Manifest struct {
	Path             string
	Name             string
	Version          string
	Description      string
	ExecDepends      []string
	BuildDepends     []string
	BuildtoolDepends []string
}

// RootPackage builds the expandable tree node for a manifest, applying the
// sentinel fallbacks for missing identity elements.
func RootPackage(m Manifest, fallbackName string) Package {
	pkg := Package{
		Name:           m.Name,
		Version:        m.Version,
		Description:    m.Description,
		DependencyKind: DependencyKindNone,
		Expandable:     true,
		ManifestPath:   m.Path,
		Dependencies:   []string{},
	}
	if pkg.Name == "" {
		pkg.Name = fallbackName
	}
	if pkg.Version == "" {
		pkg.Version = UnknownVersion
	}
	if pkg.Description == "" {
		pkg.Description = NoDescription
	}
	return pkg
}

// DependencyPackage builds a leaf node for one declared dependency.
func DependencyPackage(name string, kind DependencyKind, manifestPath string) Package {
	return Package{
		Name:           name,
		Version:        DependencyVersion,
		Description:    kind.Description(),
		DependencyKind: kind,
		Expandable:     false,
		ManifestPath:   manifestPath,
		Dependencies:   []string{},
	}
}

// Description is the label shown for synthesized dependency entries.
func (k DependencyKind) Description() string {
	switch k {
	case DependencyKindExec:
		return "An executable dependency"
	case DependencyKindBuild:
		return "A build dependency"
	case DependencyKindBuildtool:
		return "A build tool dependency"
	default:
		return NoDescription
	}
}

// Tag is the package.xml element that declares this kind of dependency.
func (k DependencyKind) Tag() string {
	switch k {
	case DependencyKindExec:
		return "exec_depend"
	case DependencyKindBuild:
		return "build_depend"
	case DependencyKindBuildtool:
		return "buildtool_depend"
	default:
		return ""
	}
}

func (p Package) Tooltip() string {
	return p.Name + "-" + p.Version
}
