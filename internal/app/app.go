// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"graphseed/internal/appcore"
	"graphseed/internal/cli"
	"graphseed/internal/version"
	"graphseed/internal/writers"
)

const name = "graphseed"

// flushCode flushes w and maps the result to an exit code.
func flushCode(w *bufio.Writer, stderr io.Writer, code int) int {
	if e := w.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func usage(fs *flag.FlagSet, w *bufio.Writer) {
	fs.SetOutput(w)
	fs.Usage()
	_, _ = fmt.Fprintln(w)
	cli.PrintExamples(w, name)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		usage(fs, outw)
		return flushCode(outw, stderr, 0)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(fs, outw)
			return flushCode(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		usage(fs, outw)
		return flushCode(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flushCode(outw, stderr, 0)
	}

	coreOpts := appcore.Options{
		GraphFile: opts.GraphFile, ReadFiles: opts.ReadFiles, AllowTruncated: opts.AllowTruncated,
		MinLength: opts.MinLength, Sparsity: opts.Sparsity, IndexDir: opts.IndexDir,
		Threads: opts.Threads, Sort: opts.Sort,
		Quiet: opts.Quiet, NoMatchExitCode: opts.NoMatchExitCode,
	}
	wf := appcore.NewSeedWriterFactory(opts.Output, opts.Header, opts.NodeSeqs, opts.Labels)
	return appcore.Run(parent, stdout, stderr, coreOpts, wf)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
