package cmd

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/psfit/internal/layout"
)

// optionError reports a dash-prefixed argument that is not a known flag.
type optionError struct {
	Option string
}

func (e optionError) Error() string {
	return "Unrecognized option: " + e.Option
}

// usageError wraps any other flag parsing or validation failure.
type usageError struct {
	Err error
}

func (e usageError) Error() string { return e.Err.Error() }
func (e usageError) Unwrap() error { return e.Err }

// isUsageError reports whether err came from bad command-line usage rather
// than an environment failure.
func isUsageError(err error) bool {
	var oe optionError
	var ue usageError
	return errors.As(err, &oe) || errors.As(err, &ue)
}

// flagError turns pflag's unknown-flag errors into optionError carrying the
// token as the user typed it.
func (o *options) flagError(_ *cobra.Command, err error) error {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown flag: "):
		// "unknown flag: --foo"; pflag drops any "=value".
		name := strings.TrimPrefix(msg, "unknown flag: ")
		return optionError{Option: rawToken(o.argv, name, func(arg string) bool {
			return arg == name || strings.HasPrefix(arg, name+"=")
		})}
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		// "unknown shorthand flag: 'z' in -z"; pflag reports only the
		// shorthands left after the known ones in the group.
		if i := strings.LastIndex(msg, " in -"); i >= 0 {
			rest := msg[i+len(" in -"):]
			return optionError{Option: rawToken(o.argv, "-"+rest, func(arg string) bool {
				return !strings.HasPrefix(arg, "--") && strings.HasPrefix(arg, "-") && strings.HasSuffix(arg, rest)
			})}
		}
	}
	return usageError{Err: err}
}

// rawToken returns the first argument before "--" accepted by match, or
// fallback when none is.
func rawToken(argv []string, fallback string, match func(string) bool) string {
	for _, arg := range argv {
		if arg == "--" {
			break
		}
		if match(arg) {
			return arg
		}
	}
	return fallback
}

// checkBareDash rejects a lone "-" before "--". pflag treats it as a
// positional argument.
func checkBareDash(args []string, argsLenAtDash int) error {
	for i, a := range args {
		if argsLenAtDash >= 0 && i >= argsLenAtDash {
			break
		}
		if a == "-" {
			return optionError{Option: a}
		}
	}
	return nil
}

// modeFlag is a boolean flag that selects a layout mode. Several modeFlags
// share one target, so the last one given on the command line wins.
type modeFlag struct {
	target *layout.Mode
	mode   layout.Mode
}

var _ pflag.Value = (*modeFlag)(nil)

func (f *modeFlag) String() string {
	return strconv.FormatBool(f.target != nil && *f.target == f.mode)
}

func (f *modeFlag) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	switch {
	case on:
		*f.target = f.mode
	case *f.target == f.mode:
		*f.target = ""
	}
	return nil
}

func (f *modeFlag) Type() string { return "bool" }
