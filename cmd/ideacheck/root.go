package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/ideacheck/internal/bootstrap"
	"github.com/bryanwahyu/ideacheck/internal/config"
	"github.com/bryanwahyu/ideacheck/internal/logging"
)

const defaultIdeasFile = "ideas.txt"

// rootOptions holds the persistent flags and the lazily built App.
type rootOptions struct {
	configPath string
	verbose    bool

	logger *zap.Logger
	app    *bootstrap.App
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ideacheck",
		Short: "Validate startup ideas against trends, pain points and originality",
		Long: `ideacheck runs every idea through three analyzers (market trend check,
pain point matcher, uniqueness scorer) and keeps the results in a store.

Run without arguments to start the interactive prompt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewConsole(o.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			o.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.app != nil {
				o.app.Close()
			}
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runInteractive(cmd)
		},
	}

	defaultConfig := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", defaultConfig, "path to config.yaml")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newInteractiveCmd(o),
		newValidateCmd(o),
		newBatchCmd(o),
		newHistoryCmd(o),
		newAdviseCmd(o),
		newArchiveCmd(o),
		newSummaryCmd(),
	)
	return cmd
}

// loadApp reads config and wires services on first use.
func (o *rootOptions) loadApp(ctx context.Context) (*bootstrap.App, error) {
	if o.app != nil {
		return o.app, nil
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app, err := bootstrap.New(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	o.app = app
	return app, nil
}
