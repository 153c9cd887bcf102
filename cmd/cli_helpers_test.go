package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/psfit/internal/layout"
)

func TestFlagError(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		in       string
		want     string
		isOptErr bool
	}{
		{name: "long", argv: []string{"--bogus"}, in: "unknown flag: --bogus", want: "Unrecognized option: --bogus", isOptErr: true},
		{name: "long with value", argv: []string{"nginx", "--foo=bar"}, in: "unknown flag: --foo", want: "Unrecognized option: --foo=bar", isOptErr: true},
		{name: "long prefix is not a match", argv: []string{"--foobar", "--foo"}, in: "unknown flag: --foo", want: "Unrecognized option: --foo", isOptErr: true},
		{name: "short", argv: []string{"-x"}, in: "unknown shorthand flag: 'x' in -x", want: "Unrecognized option: -x", isOptErr: true},
		{name: "short after known shorthand", argv: []string{"-dz"}, in: "unknown shorthand flag: 'z' in -z", want: "Unrecognized option: -dz", isOptErr: true},
		{name: "short group", argv: []string{"-l", "-xyz"}, in: "unknown shorthand flag: 'x' in -xyz", want: "Unrecognized option: -xyz", isOptErr: true},
		{name: "token after terminator ignored", argv: []string{"--", "--foo=bar"}, in: "unknown flag: --foo", want: "Unrecognized option: --foo", isOptErr: true},
		{name: "no argv", in: "unknown flag: --bogus", want: "Unrecognized option: --bogus", isOptErr: true},
		{name: "other parse error", in: `invalid argument "abc" for "--width" flag`, want: `invalid argument "abc" for "--width" flag`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &options{argv: tt.argv}
			err := opts.flagError(nil, errors.New(tt.in))
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.True(t, isUsageError(err))

			var oe optionError
			assert.Equal(t, tt.isOptErr, errors.As(err, &oe))
		})
	}
}

func TestisUsageError(t *testing.T) {
	assert.False(t, isUsageError(nil))
	assert.False(t, isUsageError(errors.New("ps failed")))
	assert.True(t, isUsageError(fmt.Errorf("wrapped: %w", optionError{Option: "-q"})))

	inner := errors.New("--tail must be non-negative, got -1")
	err := usageError{Err: inner}
	assert.True(t, isUsageError(err))
	assert.ErrorIs(t, err, inner)
}

func TestCheckBareDash(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		atDash int
		want   error
	}{
		{name: "no args", args: nil, atDash: -1},
		{name: "queries only", args: []string{"nginx", "ssh"}, atDash: -1},
		{name: "bare dash", args: []string{"nginx", "-"}, atDash: -1, want: optionError{Option: "-"}},
		{name: "dash after terminator", args: []string{"-"}, atDash: 0},
		{name: "dash before terminator", args: []string{"-", "x"}, atDash: 1, want: optionError{Option: "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkBareDash(tt.args, tt.atDash))
		})
	}
}

func TestModeFlag(t *testing.T) {
	var mode layout.Mode
	detail := &modeFlag{target: &mode, mode: layout.ModeDetail}
	long := &modeFlag{target: &mode, mode: layout.ModeLong}

	assert.Equal(t, "bool", detail.Type())
	assert.Equal(t, "false", detail.String())

	require.NoError(t, detail.Set("true"))
	assert.Equal(t, layout.ModeDetail, mode)
	assert.Equal(t, "true", detail.String())

	require.NoError(t, long.Set("true"))
	assert.Equal(t, layout.ModeLong, mode)
	assert.Equal(t, "false", detail.String())

	// Clearing a mode that is not selected leaves the other alone.
	require.NoError(t, detail.Set("false"))
	assert.Equal(t, layout.ModeLong, mode)

	require.NoError(t, long.Set("false"))
	assert.Equal(t, layout.Mode(""), mode)

	assert.Error(t, long.Set("maybe"))
}
