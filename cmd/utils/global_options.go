package utils

import (
	"go/types"

	"github.com/sirupsen/logrus"
	"github.com/stellar/go-stellar-sdk/support/config"
	"golang.org/x/crypto/bcrypt"
)

func DatabaseURLOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "database-url",
		Usage:       "Database connection URL.",
		OptType:     types.String,
		ConfigKey:   configKey,
		FlagDefault: "postgres://postgres@localhost:5432/portfolio-backend?sslmode=disable",
		Required:    true,
	}
}

func LogLevelOption(configKey *logrus.Level) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "log-level",
		Usage:          `The log level used in this project. Options: "TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL", or "PANIC".`,
		OptType:        types.String,
		FlagDefault:    "INFO",
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionLogLevel,
		Required:       false,
	}
}

func PortOption(configKey *int) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "port",
		Usage:       "Port to listen and serve on",
		OptType:     types.Int,
		ConfigKey:   configKey,
		FlagDefault: 4242,
		Required:    false,
	}
}

// SentryDSNOption is optional. Without a DSN unexpected errors are only logged.
func SentryDSNOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:      "sentry-dsn",
		Usage:     "The Sentry DSN. When empty, errors are reported to the logs only.",
		OptType:   types.String,
		ConfigKey: configKey,
		Required:  false,
	}
}

func EnvironmentOption(configKey *string) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "environment",
		Usage:       "The deployment environment reported along with tracked errors.",
		OptType:     types.String,
		ConfigKey:   configKey,
		FlagDefault: "development",
		Required:    false,
	}
}

func BcryptCostOption(configKey *int) *config.ConfigOption {
	return &config.ConfigOption{
		Name:           "bcrypt-cost",
		Usage:          "The bcrypt cost used to hash user passwords.",
		OptType:        types.Int,
		ConfigKey:      configKey,
		CustomSetValue: SetConfigOptionBcryptCost,
		FlagDefault:    bcrypt.DefaultCost,
		Required:       false,
	}
}

func MaxConcurrentTasksOption(configKey *int) *config.ConfigOption {
	return &config.ConfigOption{
		Name:        "max-concurrent-tasks",
		Usage:       "The maximum number of async queries running at the same time.",
		OptType:     types.Int,
		ConfigKey:   configKey,
		FlagDefault: 4,
		Required:    false,
	}
}
