package utils

import (
	"go/types"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// customSetterTestCase is a test case to test a custom_set_value function.
type customSetterTestCase[T comparable] struct {
	name            string
	args            []string
	envValue        string
	wantErrContains string
	wantResult      T
}

// customSetterTester tests a custom_set_value function, according with the customSetterTestCase provided.
func customSetterTester[T comparable](t *testing.T, tc customSetterTestCase[T], co config.ConfigOption) {
	t.Helper()
	ClearTestEnvironment(t)
	if tc.envValue != "" {
		envName := strings.ToUpper(co.Name)
		envName = strings.ReplaceAll(envName, "-", "_")
		t.Setenv(envName, tc.envValue)
	}

	testCmd := cobra.Command{
		RunE: func(cmd *cobra.Command, args []string) error {
			co.Require()
			return co.SetValue()
		},
	}
	buf := new(strings.Builder)
	testCmd.SetOut(buf)

	err := co.Init(&testCmd)
	require.NoError(t, err)

	// a non nil slice keeps cobra from reading the test binary's os.Args
	testCmd.SetArgs(append([]string{}, tc.args...))
	err = testCmd.Execute()

	if tc.wantErrContains != "" {
		assert.Error(t, err)
		assert.Contains(t, err.Error(), tc.wantErrContains)
	} else {
		assert.NoError(t, err)
	}

	var zero T
	if tc.wantResult != zero {
		destPointer, ok := co.ConfigKey.(*T)
		require.True(t, ok)
		assert.Equal(t, tc.wantResult, *destPointer)
	}
}

// ClearTestEnvironment removes all envs from the test environment. It's useful
// to make tests independent from the localhost environment variables.
func ClearTestEnvironment(t *testing.T) {
	t.Helper()

	for _, env := range os.Environ() {
		key := env[:strings.Index(env, "=")]
		t.Setenv(key, "")
	}
}

func Test_SetConfigOptionLogLevel(t *testing.T) {
	opts := struct{ logrusLevel logrus.Level }{}

	co := config.ConfigOption{
		Name:           "log-level",
		OptType:        types.String,
		CustomSetValue: SetConfigOptionLogLevel,
		ConfigKey:      &opts.logrusLevel,
	}

	testCases := []customSetterTestCase[logrus.Level]{
		{
			name:            "returns an error if the log level is empty",
			args:            []string{},
			wantErrContains: `couldn't parse log level in log-level: not a valid logrus Level: ""`,
		},
		{
			name:            "returns an error if the log level is invalid",
			args:            []string{"--log-level", "test"},
			wantErrContains: `couldn't parse log level in log-level: not a valid logrus Level: "test"`,
		},
		{
			name:       "handles log level TRACE (through CLI args)",
			args:       []string{"--log-level", "TRACE"},
			wantResult: logrus.TraceLevel,
		},
		{
			name:       "handles log level TRACE (through ENV vars)",
			envValue:   "TRACE",
			wantResult: logrus.TraceLevel,
		},
		{
			name:       "handles log level INFO (through CLI args)",
			args:       []string{"--log-level", "iNfO"},
			wantResult: logrus.InfoLevel,
		},
		{
			name:       "handles log level INFO (through ENV vars)",
			envValue:   "INFO",
			wantResult: logrus.InfoLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.logrusLevel = 0
			customSetterTester(t, tc, co)
		})
	}
}

func Test_SetConfigOptionBcryptCost(t *testing.T) {
	opts := struct{ cost int }{}

	co := config.ConfigOption{
		Name:           "bcrypt-cost",
		OptType:        types.Int,
		CustomSetValue: SetConfigOptionBcryptCost,
		ConfigKey:      &opts.cost,
	}

	testCases := []customSetterTestCase[int]{
		{
			name:            "returns an error if the cost is too low",
			args:            []string{"--bcrypt-cost", "2"},
			wantErrContains: "bcrypt cost in bcrypt-cost must be between 4 and 31, got 2",
		},
		{
			name:            "returns an error if the cost is too high",
			envValue:        "40",
			wantErrContains: "bcrypt cost in bcrypt-cost must be between 4 and 31, got 40",
		},
		{
			name:       "handles cost through CLI args",
			args:       []string{"--bcrypt-cost", "12"},
			wantResult: 12,
		},
		{
			name:       "handles cost through ENV vars",
			envValue:   "6",
			wantResult: 6,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.cost = 0
			customSetterTester(t, tc, co)
		})
	}
}
