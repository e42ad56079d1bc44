package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ros2ws/internal/core"
	"ros2ws/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "ROS2WS"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	Workspace  string
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	root := newRootCommand()
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(err)
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "ros2ws",
		Short:         "ROS2 workspace package browser and colcon task runner",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.Workspace, "workspace", ".", "Workspace root")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("workspace", cmd.PersistentFlags().Lookup("workspace"))

	cmd.AddCommand(newPackagesCommand())
	cmd.AddCommand(newDepsCommand())
	cmd.AddCommand(newTreeCommand())
	cmd.AddCommand(newTasksCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setConfigDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("ros2ws")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/ros2ws")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setConfigDefaults() {
	viper.SetDefault("tasks.default_command", core.DefaultCommand)
	viper.SetDefault("tasks.executor", string(types.ExecutorKindShell))
	viper.SetDefault("tasks.definitions_file", defaultDefinitionsFile)
}

// setupLogging sends logs to stderr so command output on stdout stays
// parseable.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.DefaultContextLogger = &log.Logger
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	var taskErr taskExitError
	if errors.As(err, &taskErr) {
		return taskErr.code
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

// reportError logs a failed command. Task failures were already shown on
// the task terminal and only set the exit code.
func reportError(err error) {
	var taskErr taskExitError
	if errors.As(err, &taskErr) {
		return
	}
	event := log.Error()
	if cause := errors.Unwrap(err); cause != nil {
		event = event.Err(cause)
	}
	event.Msg(errorMessage(err))
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
