package sentry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/stellar/portfolio-backend/internal/apptracker"
)

// Package level sentry functions are swapped in tests.
var (
	captureMessageFunc   = sentry.CaptureMessage
	captureExceptionFunc = sentry.CaptureException
	InitFunc             = sentry.Init
	FlushFunc            = sentry.Flush
	RecoverFunc          = sentry.Recover
)

type sentryTracker struct {
	flushTimeout time.Duration
}

var _ apptracker.AppTracker = (*sentryTracker)(nil)

func (s *sentryTracker) CaptureMessage(message string) {
	captureMessageFunc(message)
}

func (s *sentryTracker) CaptureException(exception error) {
	captureExceptionFunc(exception)
}

func (s *sentryTracker) Flush() {
	FlushFunc(s.flushTimeout)
}

// NewSentryTracker initializes the global sentry hub. Events are flushed for up to flushFreq seconds.
func NewSentryTracker(dsn, env, release string, flushFreq int) (*sentryTracker, error) {
	if err := InitFunc(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return nil, fmt.Errorf("unable to initialize sentry: %w", err)
	}
	tracker := &sentryTracker{flushTimeout: time.Second * time.Duration(flushFreq)}
	defer tracker.Flush()
	defer RecoverFunc()
	return tracker, nil
}
