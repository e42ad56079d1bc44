package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros2ws/internal/ports"
	"ros2ws/internal/types"
)

const sourceDir = "src"

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

func (a WorkspaceAdapter) FindPackageXML(root string) ([]string, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	srcPath := filepath.Join(root, sourceDir)
	info, err := os.Stat(srcPath)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	var paths []string
	err = filepath.WalkDir(srcPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable directory, src included, contributes nothing.
			if d != nil && d.IsDir() {
				log.Debug().Err(err).Str("path", path).Msg("skipping unreadable directory")
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		// Symlinks are not followed and never match, even when they point
		// at a manifest.
		if d.Type().IsRegular() && d.Name() == types.ManifestFileName {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, fs.ErrPermission) {
			code = errbuilder.CodePermissionDenied
		}
		return nil, errbuilder.New().
			WithCode(code).
			WithMsg("failed to scan workspace").
			WithCause(err)
	}
	return paths, nil
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
