// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the shape of app.RunIO.
type RunFunc func(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int

// Main runs fn with the process streams, canceling its context on SIGINT or
// SIGTERM, and exits with its code. No arguments means -h.
func Main(fn RunFunc) {
	os.Exit(run(fn, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(fn RunFunc, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := fn(ctx, argv, stdin, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
