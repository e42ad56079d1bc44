package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ros2ws/internal/types"
)

type packagesOptions struct {
	JSON  bool
	Watch bool
}

func newPackagesCommand() *cobra.Command {
	opts := packagesOptions{}
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List the packages found under <workspace>/src",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackages(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print packages as JSON")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-scan and print again whenever a package.xml changes")
	return cmd
}

func runPackages(ctx context.Context, out io.Writer, opts packagesOptions) error {
	service := newAppService()
	tree := service.NewTree(workspaceRoot())

	render := func() error {
		packages, err := tree.GetChildren(ctx, nil)
		if err != nil {
			return err
		}
		return printPackages(out, packages, opts.JSON)
	}
	if err := render(); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	watcher, err := service.NewWatcher(workspaceRoot())
	if err != nil {
		// Without src there is nothing to watch; the empty listing stands.
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			log.Ctx(ctx).Info().Err(err).Msg("nothing to watch")
			return nil
		}
		return err
	}
	defer watcher.Close()

	// A manifest caught mid-save may not parse; keep watching for the next
	// change instead of giving up.
	unsubscribe := tree.OnDidChangeTreeData(func() {
		if err := render(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to refresh packages")
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-watcher.Events():
			if !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("file watcher stopped")
			}
			log.Ctx(ctx).Info().Str("path", path).Msg("manifest changed, refreshing")
			tree.Refresh()
		}
	}
}

func printPackages(out io.Writer, packages []types.Package, asJSON bool) error {
	if asJSON {
		if packages == nil {
			packages = []types.Package{}
		}
		return writeJSON(out, packages)
	}
	if len(packages) == 0 {
		_, err := fmt.Fprintln(out, "no packages found")
		return err
	}
	t := newTable(out, "NAME", "VERSION", "DESCRIPTION", "MANIFEST")
	for _, pkg := range packages {
		t.row(pkg.Name, pkg.Version, pkg.Description, pkg.ManifestPath)
	}
	return t.flush()
}
