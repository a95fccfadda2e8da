package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/scenarigo/smartclone/cmd/smartclone/cmd/config"
	"github.com/scenarigo/smartclone/color"
	"github.com/scenarigo/smartclone/object"
)

const appName = "smartclone"

var verbose bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.ConfigPath, "config", "c", "", fmt.Sprintf("specify the configuration file path (default: %s)", config.DefaultConfigFilename))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: fmt.Sprintf("%s deep-copies YAML object graphs with cycles and parents.", appName),
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// env is what every subcommand derives from the configuration.
type env struct {
	cfg    *config.Config
	logger *log.Logger
	color  *color.Config
	realm  *object.Realm
}

func newEnv(cmd *cobra.Command, flags *config.Config) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		flags.Verbose = true
	}
	cfg, err = config.Merge(cfg, flags)
	if err != nil {
		return nil, err
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = runtime.NumCPU()
	}

	level := log.WarnLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: appName,
		Level:  level,
	})

	colorConfig := color.New()
	if cfg.Color != nil {
		colorConfig.SetEnabled(*cfg.Color)
	}

	logger.Debug("configured", "parallel", cfg.Parallel, "omitIntrinsics", cfg.OmitIntrinsics, "color", colorConfig.IsEnabled())
	return &env{
		cfg:    cfg,
		logger: logger,
		color:  colorConfig,
		realm:  object.NewRealm(object.WithoutIntrinsics(cfg.OmitIntrinsics...)),
	}, nil
}
