package utils

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers the prompts with the given entries in order.
func scriptedPrompter(t *testing.T, confirmLabel string, entries ...string) (*userPasswordPrompter, *bytes.Buffer) {
	t.Helper()
	stdout := &bytes.Buffer{}
	pp, err := NewUserPasswordPrompter("Password:", confirmLabel, os.Stdin, stdout)
	require.NoError(t, err)
	pp.readPassword = func() ([]byte, error) {
		if len(entries) == 0 {
			return nil, errors.New("no tty")
		}
		entry := entries[0]
		entries = entries[1:]
		return []byte(entry), nil
	}
	return pp, stdout
}

func TestNewUserPasswordPrompter(t *testing.T) {
	_, err := NewUserPasswordPrompter("Password:", "", nil, &bytes.Buffer{})
	assert.EqualError(t, err, "stdin cannot be nil")

	_, err = NewUserPasswordPrompter("Password:", "", os.Stdin, nil)
	assert.EqualError(t, err, "stdout cannot be nil")

	_, err = NewUserPasswordPrompter("  ", "", os.Stdin, &bytes.Buffer{})
	assert.EqualError(t, err, "input label text cannot be empty")
}

func TestUserPasswordPrompter_Run(t *testing.T) {
	t.Run("without_confirmation", func(t *testing.T) {
		pp, stdout := scriptedPrompter(t, "", "s3cret")
		password, err := pp.Run()
		require.NoError(t, err)
		assert.Equal(t, "s3cret", password)
		assert.Equal(t, "Password: \n", stdout.String())
	})

	t.Run("confirmed", func(t *testing.T) {
		pp, stdout := scriptedPrompter(t, "Confirm password:", "s3cret", "s3cret")
		password, err := pp.Run()
		require.NoError(t, err)
		assert.Equal(t, "s3cret", password)
		assert.Equal(t, "Password: \nConfirm password: \n", stdout.String())
	})

	t.Run("empty_password", func(t *testing.T) {
		pp, stdout := scriptedPrompter(t, "Confirm password:", "")
		_, err := pp.Run()
		assert.ErrorIs(t, err, ErrEmptyPassword)
		assert.NotContains(t, stdout.String(), "Confirm")
	})

	t.Run("mismatched_confirmation", func(t *testing.T) {
		pp, _ := scriptedPrompter(t, "Confirm password:", "s3cret", "other")
		_, err := pp.Run()
		assert.ErrorIs(t, err, ErrPasswordsDoNotMatch)
	})

	t.Run("read_error", func(t *testing.T) {
		pp, _ := scriptedPrompter(t, "")
		_, err := pp.Run()
		assert.EqualError(t, err, "reading password: no tty")
	})

	t.Run("confirmation_read_error", func(t *testing.T) {
		pp, _ := scriptedPrompter(t, "Confirm password:", "s3cret")
		_, err := pp.Run()
		assert.EqualError(t, err, "reading password confirmation: no tty")
	})
}
