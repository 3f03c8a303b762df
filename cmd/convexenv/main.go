package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"convexenv/internal/config"
	"convexenv/internal/launcher"
	"convexenv/internal/logger"
)

// Exit codes
const (
	exitOK               = 0
	exitFailure          = 1
	exitSchemaError      = 3
	exitPermissionDenied = launcher.ExitCannotExecute
	exitNotFound         = launcher.ExitNotFound
)

func main() {
	exitCode := run(os.Args[1:], os.Environ(), ".", os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run executes the command line and returns the exit code.
// It is separated from main() to enable testing.
func run(args []string, environ []string, dir string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(environ)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}

	a := &app{
		cfg:     cfg,
		log:     logger.Configure(stderr, cfg.LogLevel, cfg.LogFormat),
		environ: environ,
		dir:     dir,
		stdout:  stdout,
		stderr:  stderr,
	}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			if ee.msg != "" {
				fmt.Fprintln(stderr, ee.msg)
			}
			return ee.code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}
	return exitOK
}

// exitError carries an exit code out of a command. msg is printed to
// stderr when non-empty; commands that already reported leave it blank.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func exitf(code int, format string, args ...any) error {
	return &exitError{code: code, msg: fmt.Sprintf(format, args...)}
}
