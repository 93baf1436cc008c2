package utils

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/apptracker/logtracker"
	"github.com/stellar/portfolio-backend/internal/apptracker/sentry"
)

const sentryFlushFrequency = 5

func DefaultPersistentPreRunE(cfgOpts config.ConfigOptions) func(_ *cobra.Command, _ []string) error {
	return func(_ *cobra.Command, _ []string) error {
		if err := cfgOpts.RequireE(); err != nil {
			return fmt.Errorf("requiring values of config options: %w", err)
		}
		if err := cfgOpts.SetValues(); err != nil {
			return fmt.Errorf("setting values of config options: %w", err)
		}
		return nil
	}
}

// NewAppTracker reports to Sentry when a DSN is configured and to the logs otherwise.
func NewAppTracker(sentryDSN, environment, release string) (apptracker.AppTracker, error) {
	if sentryDSN == "" {
		log.Warn("No Sentry DSN configured, unexpected errors will only be logged")
		return logtracker.LogTracker{}, nil
	}

	tracker, err := sentry.NewSentryTracker(sentryDSN, environment, release, sentryFlushFrequency)
	if err != nil {
		return nil, fmt.Errorf("initializing sentry tracker: %w", err)
	}
	return tracker, nil
}
