package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ros2ws/internal/app"
)

func newTreeCommand() *cobra.Command {
	asJSON := false
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print every package with its direct dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTree(cmd.Context(), cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tree as JSON")
	return cmd
}

func runTree(ctx context.Context, out io.Writer, asJSON bool) error {
	service := newAppService()
	result, err := service.Tree(ctx, app.TreeRequest{Workspace: workspaceRoot()})
	if err != nil {
		return err
	}
	if asJSON {
		nodes := result.Nodes
		if nodes == nil {
			nodes = []app.TreeNode{}
		}
		return writeJSON(out, nodes)
	}
	for _, node := range result.Nodes {
		if _, err := fmt.Fprintf(out, "%s (%s)\n", node.Item.Label, node.Item.Tooltip); err != nil {
			return err
		}
		for i, child := range node.Children {
			branch := "├──"
			if i == len(node.Children)-1 {
				branch = "└──"
			}
			if _, err := fmt.Fprintf(out, "  %s %s [%s]\n", branch, child.Label, child.Description); err != nil {
				return err
			}
		}
	}
	return nil
}
