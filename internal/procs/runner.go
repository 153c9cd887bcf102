// Package procs runs the system process-status tool and extracts the PIDs
// whose command lines match user queries.
package procs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/oakwood-commons/psfit/pkg/logger"
)

// DefaultPath is the process-status binary resolved through $PATH.
const DefaultPath = "ps"

// ErrInvalidOutput is returned when ps writes output that is not UTF-8.
var ErrInvalidOutput = errors.New("ps output is not valid UTF-8")

// Runner executes ps with the given arguments and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Exec runs a ps binary as a subprocess.
type Exec struct {
	path string
}

// NewExec returns a Runner for the ps binary at path. An empty path means
// DefaultPath.
func NewExec(path string) *Exec {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Exec{path: path}
}

// Path returns the binary this runner invokes.
func (e *Exec) Path() string {
	return e.path
}

// Run executes ps and returns its stdout as text.
//
// A non-zero exit is tolerated as long as ps produced output; ps exits 1 on
// some platforms when a listed process vanished mid-scan.
func (e *Exec) Run(ctx context.Context, args ...string) (string, error) {
	lgr := logger.FromContext(ctx)
	lgr.V(1).Info("running ps", "path", e.path, "args", args)

	cmd := exec.CommandContext(ctx, e.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || stdout.Len() == 0 {
			return "", &Error{
				Path:   e.path,
				Args:   args,
				Stderr: strings.TrimSpace(stderr.String()),
				Err:    err,
			}
		}
		lgr.V(1).Info("ps exited non-zero; using captured output", "exit_code", exitErr.ExitCode())
	}

	return decode(stdout.Bytes())
}

func decode(out []byte) (string, error) {
	if !utf8.Valid(out) {
		return "", ErrInvalidOutput
	}
	return string(out), nil
}

// Error reports a ps invocation that could not produce output.
type Error struct {
	Path   string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Path, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
