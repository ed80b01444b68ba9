// Package cli wires the sheetgrip commands: the interactive demo and the
// config and policy helpers around it.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheetgrip/internal/config"
	"sheetgrip/internal/eventbus"
)

var version = "dev"

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

// app carries what every command shares
type app struct {
	settings *viper.Viper
}

// NewRootCommand builds the command tree. Flags can also be set from the
// environment with a SHEETGRIP_ prefix, e.g. SHEETGRIP_CONFIG.
func NewRootCommand() *cobra.Command {
	a := &app{settings: viper.New()}

	root := &cobra.Command{
		Use:   "sheetgrip",
		Short: "Interactive bottom sheet for the terminal",
		Long: `sheetgrip presents a bottom sheet that rests at detents, follows mouse and
keyboard drags, and settles with a spring when released.

Run without a subcommand to start the interactive demo.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runSheet,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is ./"+config.FileName+")")
	flags.Bool("debug", false, "log at debug level")
	root.Flags().Bool("reduce-motion", false, "jump to every detent without animating")

	a.settings.SetEnvPrefix("SHEETGRIP")
	a.settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.settings.AutomaticEnv()
	_ = a.settings.BindPFlag("config", flags.Lookup("config"))
	_ = a.settings.BindPFlag("debug", flags.Lookup("debug"))
	_ = a.settings.BindPFlag("reduce-motion", root.Flags().Lookup("reduce-motion"))

	root.AddCommand(
		a.newInitCommand(),
		a.newResolveCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) configPath() string {
	return a.settings.GetString("config")
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist
func (a *app) loadConfig(bus eventbus.EventBus) (*config.Config, error) {
	var svc config.ConfigService
	if bus != nil {
		svc = config.NewConfigServiceWithBus(a.configPath(), bus)
	} else {
		svc = config.NewConfigService(a.configPath())
	}
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// setupLogging points the default logger at the configured log file. The
// terminal belongs to the sheet, so nothing is logged to stderr.
func (a *app) setupLogging(cfg *config.Config) (func(), error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	if a.settings.GetBool("debug") {
		level = slog.LevelDebug
	}

	var out io.Writer = io.Discard
	closeLog := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return closeLog, nil
}
