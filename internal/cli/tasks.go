package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ros2ws/internal/app"
	"ros2ws/internal/types"
)

const defaultDefinitionsFile = ".ros2ws/tasks.yaml"

// taskExitError carries a non-zero task exit code out to the process.
type taskExitError struct {
	name string
	code int
}

func (e taskExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.name, e.code)
}

type taskOptions struct {
	Directory string
	Executor  string
	Watch     bool
}

func newTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and run colcon tasks",
	}
	cmd.AddCommand(newTasksListCommand())
	cmd.AddCommand(newTasksRunCommand())
	return cmd
}

func newTasksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List predefined and persisted tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasksList(cmd.Context(), cmd.OutOrStdout(), taskConfig(cmd, taskOptions{}))
		},
	}
}

func newTasksRunCommand() *cobra.Command {
	opts := taskOptions{}
	cmd := &cobra.Command{
		Use:   "run <verb>...",
		Short: "Run the command mapped to a task verb",
		Long: "Run the command mapped to a task verb. Everything after the first\n" +
			"argument is part of the verb, e.g. `ros2ws tasks run build --symlink-install`.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd.Context(), cmd, cmd.OutOrStdout(), strings.Join(args, " "), opts)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&opts.Directory, "dir", "", "Working directory for the task command")
	cmd.Flags().StringVar(&opts.Executor, "executor", string(types.ExecutorKindShell), "Task executor (shell|pty)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Report package.xml changes while the task runs")
	_ = viper.BindPFlag("tasks.directory", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("tasks.executor", cmd.Flags().Lookup("executor"))
	_ = viper.BindPFlag("tasks.watch", cmd.Flags().Lookup("watch"))
	return cmd
}

func runTasksList(ctx context.Context, out io.Writer, cfg app.TaskConfig) error {
	service := newAppService()
	result, err := service.Tasks(ctx, cfg)
	if err != nil {
		return err
	}
	t := newTable(out, "NAME", "VERB", "SOURCE", "COMMAND")
	for _, task := range result.Tasks {
		t.row(task.Name, task.Verb, task.Source, task.Command)
	}
	return t.flush()
}

func runTask(ctx context.Context, cmd *cobra.Command, out io.Writer, verb string, opts taskOptions) error {
	service := newAppService()
	result, err := service.RunTask(ctx, app.RunTaskRequest{
		TaskConfig: taskConfig(cmd, opts),
		Verb:       verb,
		Watch:      resolveBool(cmd, opts.Watch, "tasks.watch", "watch"),
		Output:     out,
	})
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return taskExitError{name: result.Name, code: result.ExitCode}
	}
	return nil
}

func taskConfig(cmd *cobra.Command, opts taskOptions) app.TaskConfig {
	workspace := workspaceRoot()
	definitions := viper.GetString("tasks.definitions_file")
	if definitions != "" && !filepath.IsAbs(definitions) {
		definitions = filepath.Join(workspace, definitions)
	}
	return app.TaskConfig{
		Workspace:       workspace,
		Directory:       resolveString(cmd, opts.Directory, "tasks.directory", "dir"),
		Commands:        viper.GetStringMapString("tasks.commands"),
		DefaultCommand:  viper.GetString("tasks.default_command"),
		Executor:        types.ExecutorKind(resolveString(cmd, opts.Executor, "tasks.executor", "executor")),
		DefinitionsFile: definitions,
	}
}
