// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"degen/internal/config"
	"degen/internal/logging"
	"degen/internal/version"
	"degen/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags, arguments or input files
	ExitIO       = 3 // output could not be written
	ExitCanceled = 130
)

// exitError carries the exit code a failure maps to.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error { return &exitError{code: ExitUsage, err: err} }
func ioErr(err error) error    { return &exitError{code: ExitIO, err: err} }

// env is the state shared by every subcommand of one run.
type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer // raw streams; out buffers stdout
	out            *bufio.Writer

	cfgPath  string
	logLevel string
	quiet    bool

	cfg config.Config
	log *slog.Logger
	tp  trace.TracerProvider // set by newDesigner
}

func newRoot(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "degen",
		Short: "degen – degenerate codon design toolkit",
		Long: `degen – degenerate codon design toolkit

Finds the shortest IUPAC degenerate codon pattern whose expansion encodes a
set of amino acids while excluding others and every stop codon.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}
	root.SetVersionTemplate("degen version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&e.cfgPath, "config", "", "YAML config file")
	pf.StringVar(&e.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
	pf.BoolVarP(&e.quiet, "quiet", "q", false, "only log errors")

	root.AddCommand(
		newComputeCmd(e),
		newExpandCmd(e),
		newTableCmd(e),
		newBatchCmd(e),
		newServeCmd(e),
		newVersionCmd(e),
	)
	return root
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.cfgPath)
	if err != nil {
		return usageErr(err)
	}
	if e.logLevel != "" {
		cfg.Log.Level = e.logLevel
	}
	log, err := logging.New(e.stderr, cfg.Log, e.quiet)
	if err != nil {
		return usageErr(err)
	}
	e.cfg, e.log = cfg, log
	return nil
}

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(e.out, "degen version %s\n", version.Version)
			return err
		},
	}
}

// RunIO runs one degen invocation with explicit streams and returns its exit code.
func RunIO(parent context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr, out: outw, log: logging.Discard()}

	root := newRoot(e)
	root.SetArgs(argv)
	root.SetIn(stdin)
	root.SetOut(outw)
	root.SetErr(stderr)

	err := root.ExecuteContext(parent)
	if ferr := outw.Flush(); err == nil && ferr != nil {
		err = ioErr(ferr)
	}
	return e.exitCode(parent, err)
}

// RunContext is RunIO reading from os.Stdin.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunIO(parent, argv, os.Stdin, stdout, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func (e *env) exitCode(ctx context.Context, err error) int {
	if err == nil || writers.IsBrokenPipe(err) {
		return ExitOK
	}
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return ExitCanceled
	}
	_, _ = fmt.Fprintln(e.stderr, "error:", err)
	var xe *exitError
	if errors.As(err, &xe) {
		return xe.code
	}
	return ExitUsage
}
