package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/psfit/internal/config"
	"github.com/oakwood-commons/psfit/internal/layout"
	"github.com/oakwood-commons/psfit/internal/limiter"
	"github.com/oakwood-commons/psfit/internal/procs"
	"github.com/oakwood-commons/psfit/internal/render"
	"github.com/oakwood-commons/psfit/pkg/logger"
	"github.com/oakwood-commons/psfit/pkg/settings"
)

var (
	termGetSize = term.GetSize
	newRunner   = func(path string) procs.Runner { return procs.NewExec(path) }
)

// options holds the parsed flags of one command instance.
type options struct {
	argv          []string
	mode          layout.Mode
	width         int
	noColor       bool
	debug         bool
	configFile    string
	showConfig    bool
	limitRecords  int
	offsetRecords int
	tailRecords   int
}

const longHelp = `psfit lists every process in tree order with as many ps columns as fit the
terminal. The command line column absorbs whatever width is left over.

Any argument that is not a flag is a query: processes whose "PID ARGS" line
contains it are highlighted, and a summary of the matches is printed last.
Several queries match if any of them does. Use -- to pass a query that
starts with a dash.`

var rootCmd = newRootCmd(os.Args[1:])

// newRootCmd builds the command for args. The raw args are kept so that
// unknown options are reported exactly as typed.
func newRootCmd(args []string) *cobra.Command {
	if args == nil {
		args = []string{}
	}
	opts := &options{argv: args}

	cmd := &cobra.Command{
		Use:           settings.CliBinaryName + " [flags] [--] [query...]",
		Short:         "Show ps output fitted to the terminal, highlighting matching processes",
		Long:          longHelp,
		Example:       "\n  psfit\n  psfit -d nginx\n  psfit -l -- -bash\n  psfit --tail 20 python\n",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.VarPF(&modeFlag{target: &opts.mode, mode: layout.ModeDetail}, "detail", "d",
		"compact command column so more columns fit").NoOptDefVal = "true"
	flags.VarPF(&modeFlag{target: &opts.mode, mode: layout.ModeLong}, "long", "l",
		"give the command column nearly the whole line").NoOptDefVal = "true"
	flags.IntVar(&opts.width, "width", 0, "output width in columns (default: terminal width)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable highlighting")
	flags.BoolVar(&opts.debug, "debug", false, "log layout and ps invocations to stderr")
	flags.StringVar(&opts.configFile, "config-file", "", "path to a YAML or TOML config file")
	flags.BoolVar(&opts.showConfig, "show-config", false, "print the merged config and exit")
	flags.IntVar(&opts.limitRecords, "limit", 0, "limit the number of process rows printed")
	flags.IntVar(&opts.offsetRecords, "offset", 0, "skip the first N process rows")
	flags.IntVar(&opts.tailRecords, "tail", 0, "print only the last N process rows (mutually exclusive with --limit)")

	cmd.SetFlagErrorFunc(opts.flagError)
	cmd.Version = cliVersionString()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetArgs(args)
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if err := checkBareDash(args, cmd.ArgsLenAtDash()); err != nil {
		return err
	}

	rows := limiter.Config{Limit: opts.limitRecords, Offset: opts.offsetRecords, Tail: opts.tailRecords}
	if err := rows.Validate(); err != nil {
		return usageError{Err: err}
	}
	if opts.width < 0 {
		return usageError{Err: fmt.Errorf("--width must be non-negative, got %d", opts.width)}
	}

	cfgPath := resolveConfigPath(opts.configFile)
	cfg, err := loadMergedConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	out := cmd.OutOrStdout()
	if opts.showConfig {
		text, err := marshalConfig(cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, text)
		return err
	}

	rs := resolveRun(opts, cfg, args)
	ctx := withRunLogger(settings.IntoContext(cmd.Context(), rs), rs)
	logger.FromContext(ctx).V(1).Info("resolved settings", "config", cfgPath, "width", rs.Width, "reserve", rs.Reserve)

	return list(ctx, out, newRunner(cfg.PS.Path), cfg, rows)
}

// withRunLogger attaches the process logger at the level the run settings
// ask for.
func withRunLogger(ctx context.Context, rs *settings.Run) context.Context {
	lgr := logger.Get(rs.MinLogLevel)
	lgr = logger.WithValues(lgr, logger.CommandKey, settings.CliBinaryName)
	return logger.WithLogger(ctx, lgr)
}

// list runs the query pass and prints the fitted table for the run settings
// carried by ctx.
func list(ctx context.Context, out io.Writer, runner procs.Runner, cfg config.Config, rows limiter.Config) error {
	rs, ok := settings.FromContext(ctx)
	if !ok {
		return errors.New("run settings missing from context")
	}
	lgr := logger.FromContext(ctx)

	pids, err := procs.Collect(ctx, runner, procs.NewPIDSet(), rs.Queries)
	if err != nil {
		return err
	}

	plan := layout.Build(rs.Width, rs.Reserve)
	lgr.V(1).Info("planned layout", "spec", plan.Spec())

	r := render.New(runner, out, renderOptions(cfg, rs.Width, rs.NoColor, rows))
	if err := r.Render(ctx, plan, pids); err != nil {
		return err
	}

	if rs.HasQueries() {
		return render.Summary(out, pids)
	}
	return nil
}

// resolveRun layers flags over config to produce the settings of this run.
func resolveRun(opts *options, cfg config.Config, queries []string) *settings.Run {
	rs := settings.NewCliParams()
	// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
	if opts.debug {
		rs.MinLogLevel = -1
	}

	rs.Width = opts.width
	if rs.Width == 0 {
		rs.Width = detectTerminalWidth(config.IntOr(cfg.Layout.FallbackWidth, layout.DefaultWidth))
	}

	mode := opts.mode
	if mode == "" {
		mode = layout.Mode(cfg.Layout.Mode)
	}
	rs.Reserve = layout.ReserveFor(mode, rs.Width, config.IntOr(cfg.Layout.DetailReserve, layout.DefaultDetailReserve))

	rs.Queries = append([]string(nil), queries...)
	rs.NoColor = colorDisabled(opts.noColor, cfg)
	return rs
}

// cliVersionString builds the --version output.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

// Execute runs the root command against os.Args.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the base context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
