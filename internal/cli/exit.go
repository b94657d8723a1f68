package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/toolshelf/internal/client"
)

// Exit codes returned by toolshelfctl.
const (
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// exitFor maps a client error to an ExitError.
func exitFor(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrNotFound) {
		return &ExitError{Code: ExitNotFound, Message: err.Error()}
	}
	if errors.Is(err, client.ErrInvalidForm) || errors.Is(err, client.ErrNotConfirmed) {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return &ExitError{Code: ExitFailure, Message: err.Error()}
}

// Run executes the root command and returns the process exit code.
func Run(args []string, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(stderr, exitErr.Message)
			}
			return exitErr.Code
		}
		fmt.Fprintln(stderr, err.Error())
		return ExitFailure
	}
	return 0
}
