package cmd

import (
	"fmt"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/portfolio-backend/cmd/utils"
	"github.com/stellar/portfolio-backend/internal/serve"
)

type serveCmd struct{}

func (c *serveCmd) Command() *cobra.Command {
	cfg := serve.Configs{}

	var sentryDSN string
	var environment string
	cfgOpts := config.ConfigOptions{
		utils.DatabaseURLOption(&cfg.DatabaseURL),
		utils.LogLevelOption(&cfg.LogLevel),
		utils.PortOption(&cfg.Port),
		utils.SentryDSNOption(&sentryDSN),
		utils.EnvironmentOption(&environment),
		utils.BcryptCostOption(&cfg.BcryptCost),
		utils.MaxConcurrentTasksOption(&cfg.MaxConcurrentTasks),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio API server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.DefaultPersistentPreRunE(cfgOpts)(cmd, args); err != nil {
				return err
			}

			appTracker, err := utils.NewAppTracker(sentryDSN, environment, Version)
			if err != nil {
				return fmt.Errorf("initializing App Tracker: %w", err)
			}
			cfg.AppTracker = appTracker

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.Run(cfg)
		},
	}

	if err := cfgOpts.Init(cmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return cmd
}

func (c *serveCmd) Run(cfg serve.Configs) error {
	err := serve.Serve(cfg)
	if err != nil {
		return fmt.Errorf("running serve: %w", err)
	}
	return nil
}
