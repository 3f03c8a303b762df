// Package launcher hands the current process over to the target command.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// ErrNoTarget is returned when there is no command to run.
var ErrNoTarget = errors.New("no command specified")

// Shell-convention exit codes for a command that could not be started.
const (
	ExitCannotExecute = 126
	ExitNotFound      = 127
	ExitFailure       = 1
)

// StartError reports why target could not replace the current process.
type StartError struct {
	Target string
	Err    error
}

func (e *StartError) Error() string {
	switch {
	case e.Target == "":
		return e.Err.Error()
	case IsNotFound(e.Err):
		return "command not found: " + e.Target
	case IsPermissionDenied(e.Err):
		return "permission denied: " + e.Target
	}
	return fmt.Sprintf("exec %s: %v", e.Target, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// Exec resolves target on PATH and execs it with args and environ.
// On success it never returns; every returned error is a *StartError.
func Exec(target string, args []string, environ []string) error {
	if target == "" {
		return &StartError{Err: ErrNoTarget}
	}

	path, err := exec.LookPath(target)
	if err != nil {
		return &StartError{Target: target, Err: err}
	}

	argv := make([]string, 0, len(args)+1)
	argv = append(argv, target)
	argv = append(argv, args...)
	if err := syscall.Exec(path, argv, environ); err != nil {
		return &StartError{Target: target, Err: err}
	}
	return nil
}

// ExitCode maps an Exec failure to the code a shell would report.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsNotFound(err):
		return ExitNotFound
	case IsPermissionDenied(err):
		return ExitCannotExecute
	}
	return ExitFailure
}

// IsNotFound reports whether the command does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}

// IsPermissionDenied reports whether the command exists but may not be executed.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
