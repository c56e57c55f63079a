// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"graphseed/core/essa"
	"graphseed/internal/cliutil"
	"graphseed/internal/output"
	"graphseed/internal/version"
)

// Defaults.
const (
	DefaultMinLength       = 20
	DefaultSparsity        = 1
	DefaultNoMatchExitCode = 1
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	GraphFile      string
	ReadFiles      []string
	AllowTruncated bool

	// Seeding
	MinLength int
	Sparsity  int
	IndexDir  string

	// Performance
	Threads int

	// Output
	Output          string // text|json|jsonl|fasta
	Sort            bool
	Header          bool // true unless --no-header
	NodeSeqs        bool
	Labels          bool
	NoMatchExitCode int

	// Misc
	Quiet   bool
	Version bool
}

// sliceValue appends each value to a *[]string (for --reads/-r)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		_, _ = fmt.Fprintf(out, "%s: graph seed finder\n\nVersion: %s\n\n", name, version.Version)
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] --graph graph.txt reads.fq [more.fa ...]\n\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, noHeader bool

	// Inputs
	fs.StringVar(&o.GraphFile, "graph", "", "graph file: 4-line node records (gzip or '-') [required]")
	fs.StringVar(&o.GraphFile, "g", "", "alias of --graph")
	readVal := &sliceValue{dst: &o.ReadFiles}
	fs.Var(readVal, "reads", "FASTA/FASTQ read file(s) (repeatable) or '-'")
	fs.Var(readVal, "r", "alias of --reads")
	fs.BoolVar(&o.AllowTruncated, "allow-truncated", false, "treat a truncated last graph record as end of input [false]")

	// Seeding
	fs.IntVar(&o.MinLength, "min-length", DefaultMinLength, fmt.Sprintf("minimum seed (MEM) length [%d]", DefaultMinLength))
	fs.IntVar(&o.MinLength, "l", DefaultMinLength, "alias of --min-length")
	fs.IntVar(&o.Sparsity, "sparsity", DefaultSparsity, fmt.Sprintf("suffix array sparsity k; needs min-length >= k [%d]", DefaultSparsity))
	fs.IntVar(&o.Sparsity, "k", DefaultSparsity, "alias of --sparsity")
	fs.StringVar(&o.IndexDir, "index-dir", "", "cache directory for the index (empty = no cache)")

	// Performance
	fs.IntVar(&o.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.IntVar(&o.Threads, "t", 0, "alias of --threads")

	// Output
	fs.StringVar(&o.Output, "output", output.FormatText, "output: text | json | jsonl | fasta [text]")
	fs.StringVar(&o.Output, "o", output.FormatText, "alias of --output")
	fs.BoolVar(&o.Sort, "sort", false, "emit reads in input order [false]")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")
	fs.BoolVar(&o.NodeSeqs, "node-seqs", false, "attach seeded node sequences (json/jsonl) [false]")
	fs.BoolVar(&o.Labels, "labels", false, "attach node labels from the graph file [false]")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", DefaultNoMatchExitCode, "exit code when no seeds are found [1]")

	// Misc
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress non-essential messages [false]")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&o.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&o.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	o.Header = !noHeader

	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return o, err
		}
		o.ReadFiles = append(o.ReadFiles, exp...)
	}
	return o, Validate(&o)
}

// Validate applies CLI invariants.
func Validate(o *Options) error {
	if o.GraphFile == "" {
		return errors.New("--graph is required")
	}
	if len(o.ReadFiles) == 0 {
		return errors.New("at least one read file is required")
	}
	if o.GraphFile == "-" {
		for _, r := range o.ReadFiles {
			if r == "-" {
				return errors.New("--graph and reads cannot both be stdin")
			}
		}
	}
	if o.Sparsity < 1 {
		return errors.New("--sparsity must be ≥ 1")
	}
	if err := essa.CheckMinLength(o.MinLength, o.Sparsity); err != nil {
		return err
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	switch o.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL, output.FormatFASTA:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return nil
}

// PrintExamples prints a tiny quickstart.
func PrintExamples(out io.Writer, name string) {
	_, _ = fmt.Fprintln(out, "Example:")
	_, _ = fmt.Fprintf(out, "  %s --graph dbg.txt --min-length 19 -k 2 --index-dir .cache reads.fq.gz\n", name)
}
