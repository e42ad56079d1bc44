package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ros2ws/internal/app"
)

type depsOptions struct {
	Package string
	JSON    bool
}

func newDepsCommand() *cobra.Command {
	opts := depsOptions{}
	cmd := &cobra.Command{
		Use:   "deps [package.xml]",
		Short: "List the direct dependencies declared by one package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest := ""
			if len(args) == 1 {
				manifest = args[0]
			}
			return runDeps(cmd.Context(), cmd.OutOrStdout(), manifest, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Package, "package", "", "Package name to look up in the workspace")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print dependencies as JSON")
	return cmd
}

func runDeps(ctx context.Context, out io.Writer, manifest string, opts depsOptions) error {
	service := newAppService()
	result, err := service.Dependencies(ctx, app.DependenciesRequest{
		ManifestPath: manifest,
		Workspace:    workspaceRoot(),
		PackageName:  opts.Package,
	})
	if err != nil {
		return err
	}
	if opts.JSON {
		return printPackages(out, result.Dependencies, true)
	}
	if len(result.Dependencies) == 0 {
		_, err := fmt.Fprintf(out, "%s has no dependencies\n", result.Package.Name)
		return err
	}
	t := newTable(out, "NAME", "KIND", "DESCRIPTION")
	for _, dep := range result.Dependencies {
		t.row(dep.Name, dep.DependencyKind, dep.Description)
	}
	return t.flush()
}
