package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"patrimony-engine/internal/config"
	"patrimony-engine/internal/logging"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

// now returns the pinned valuation date when configured, else the clock.
func (a *app) now() func() time.Time {
	pinned, err := a.cfg.Valuation()
	if err != nil || pinned.IsZero() {
		return time.Now
	}
	return func() time.Time { return pinned }
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configName string
		configDir  string
		a          = &app{}
	)

	cmd := &cobra.Command{
		Use:          "patsim",
		Short:        "Synthetic household patrimony generator",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithEnv(configName, configDir, "config", "../config")
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Env.Log)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configName, "config", "config", "config file name, without .yaml")
	cmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "extra directory searched for the config file")

	cmd.AddCommand(serveCmd(a), generateCmd(a), pipelineCmd(a))
	return cmd
}
