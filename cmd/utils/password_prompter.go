package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordsDoNotMatch = errors.New("passwords do not match")
)

type PasswordPrompter interface {
	Run() (string, error)
}

// userPasswordPrompter reads a new user password from the terminal without echoing it. With a
// confirmation label it asks a second time and both entries must match.
type userPasswordPrompter struct {
	labels       []string
	stdout       io.Writer
	readPassword func() ([]byte, error)
}

var _ PasswordPrompter = (*userPasswordPrompter)(nil)

func (pp *userPasswordPrompter) Run() (string, error) {
	password, err := pp.read(pp.labels[0])
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if password == "" {
		return "", ErrEmptyPassword
	}

	for _, label := range pp.labels[1:] {
		confirmation, err := pp.read(label)
		if err != nil {
			return "", fmt.Errorf("reading password confirmation: %w", err)
		}
		if confirmation != password {
			return "", ErrPasswordsDoNotMatch
		}
	}
	return password, nil
}

func (pp *userPasswordPrompter) read(label string) (string, error) {
	if _, err := fmt.Fprint(pp.stdout, label, " "); err != nil {
		return "", fmt.Errorf("writing input label text: %w", err)
	}
	password, err := pp.readPassword()
	if err != nil {
		return "", err
	}
	if _, err := fmt.Fprintln(pp.stdout); err != nil {
		return "", fmt.Errorf("writing newline: %w", err)
	}
	return string(password), nil
}

// NewUserPasswordPrompter prompts with inputLabelText and, when confirmLabelText is not empty,
// asks for the password again with it.
func NewUserPasswordPrompter(inputLabelText, confirmLabelText string, stdin *os.File, stdout io.Writer) (*userPasswordPrompter, error) {
	if stdin == nil {
		return nil, fmt.Errorf("stdin cannot be nil")
	}

	if stdout == nil {
		return nil, fmt.Errorf("stdout cannot be nil")
	}

	inputLabelText = strings.TrimSpace(inputLabelText)
	if inputLabelText == "" {
		return nil, fmt.Errorf("input label text cannot be empty")
	}
	labels := []string{inputLabelText}
	if confirmLabelText = strings.TrimSpace(confirmLabelText); confirmLabelText != "" {
		labels = append(labels, confirmLabelText)
	}

	return &userPasswordPrompter{
		labels: labels,
		stdout: stdout,
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(int(stdin.Fd()))
		},
	}, nil
}
