package adapters

import (
	"encoding/xml"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

// PackageXMLAdapter decodes package.xml manifests. It holds no cache; every
// call reads the file again.
type PackageXMLAdapter struct{}

func NewPackageXMLAdapter() PackageXMLAdapter {
	return PackageXMLAdapter{}
}

type packageXML struct {
	Name        []textElement `xml:"name"`
	Version     []textElement `xml:"version"`
	Description []textElement `xml:"description"`

	ExecDepend      []textElement `xml:"exec_depend"`
	BuildDepend     []textElement `xml:"build_depend"`
	BuildtoolDepend []textElement `xml:"buildtool_depend"`
}

type textElement struct {
	Value string `xml:",chardata"`
}

func (a PackageXMLAdapter) ReadManifest(path string) (types.Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package.xml not found").
			WithCause(err)
	}
	if !info.Mode().IsRegular() {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package.xml is not a regular file: " + path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.xml").
			WithCause(err)
	}
	var pkg packageXML
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package.xml: " + path).
			WithCause(err)
	}

	manifest := types.Manifest{
		Path:        path,
		Name:        firstText(pkg.Name),
		Version:     firstText(pkg.Version),
		Description: firstText(pkg.Description),
	}
	manifest.ExecDepends = dependencyTexts(pkg.ExecDepend)
	manifest.BuildDepends = dependencyTexts(pkg.BuildDepend)
	manifest.BuildtoolDepends = dependencyTexts(pkg.BuildtoolDepend)
	return manifest, nil
}

// firstText returns the text of the first element, or "" when there is no
// such element or it carries no text. Later duplicates are ignored.
func firstText(elements []textElement) string {
	if len(elements) == 0 {
		return ""
	}
	return strings.TrimSpace(elements[0].Value)
}

// dependencyTexts keeps document order. A tag without text yields an
// empty entry; rejecting it is left to the dependency listing so that a bad
// tag never hides the package itself.
func dependencyTexts(elements []textElement) []string {
	var values []string
	for _, element := range elements {
		values = append(values, strings.TrimSpace(element.Value))
	}
	return values
}

var _ ports.ManifestPort = PackageXMLAdapter{}
