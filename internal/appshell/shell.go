// Package appshell adapts a RunContext-style entry point to a process:
// signal-driven cancellation, os.Args and os.Exit.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the signature shared by app.RunContext and tests.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Exec runs fn with a context cancelled on SIGINT or SIGTERM and returns its
// exit code. A run interrupted after reporting success exits 130.
func Exec(fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}

func Main(fn RunFunc) {
	os.Exit(Exec(fn, os.Args[1:], os.Stdout, os.Stderr))
}
