// Package logtracker reports tracked errors to the process log. It is used when no sentry DSN is configured.
package logtracker

import (
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/portfolio-backend/internal/apptracker"
)

type LogTracker struct{}

var _ apptracker.AppTracker = (*LogTracker)(nil)

func (LogTracker) CaptureMessage(message string) {
	log.WithField("tracker", "log").Warn(message)
}

func (LogTracker) CaptureException(exception error) {
	log.WithField("tracker", "log").WithError(exception).Error("unexpected error")
}

func (LogTracker) Flush() {}
