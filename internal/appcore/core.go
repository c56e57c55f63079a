// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"graphseed/core/essa"
	"graphseed/core/graph"
	"graphseed/core/reference"
	"graphseed/core/seeds"
	"graphseed/internal/cmdutil"
	"graphseed/internal/output"
	"graphseed/internal/pipeline"
	"graphseed/internal/writers"
	"graphseed/pkg/api"
)

type Options struct {
	GraphFile      string
	ReadFiles      []string
	AllowTruncated bool

	MinLength int
	Sparsity  int
	IndexDir  string

	Threads int
	Sort    bool

	Quiet           bool
	NoMatchExitCode int
}

// Run loads the graph, gets an index for it and streams every read's seeds
// to the writer. The returned value is the process exit code.
func Run(
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	wf SeedWriterFactory,
) int {
	outw := bufio.NewWriter(stdout)
	logf := cmdutil.Logf(stderr, o.Quiet)

	if err := essa.CheckMinLength(o.MinLength, o.Sparsity); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logf("reading graph from file %q", o.GraphFile)
	ref, err := reference.Load(o.GraphFile, graph.Options{AllowTruncated: o.AllowTruncated})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if ref.Truncated() {
		cmdutil.Warnf(stderr, o.Quiet, "graph %s ends in a truncated record; it was ignored", o.GraphFile)
	}
	logf("%d nodes, reference length %d", ref.NodeCount(), ref.Len())

	idx, err := essa.LoadOrBuild(
		essa.Store{Dir: o.IndexDir},
		essa.CacheKey(o.GraphFile, o.Sparsity),
		ref.Seq(),
		essa.Options{Sparsity: o.Sparsity, Separator: reference.Sentinel},
		logf,
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	ex := seeds.NewExtractor(ref, idx, o.MinLength)

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	conv := output.Options{Ref: ref, Labels: wf.NeedLabels(), NodeSeqs: wf.NeedNodeSeqs()}
	visit := func(r pipeline.Result) (bool, api.ReadSeedsV1, error) {
		if r.Seeds.Count == 0 {
			return false, api.ReadSeedsV1{}, nil
		}
		v, err := output.ToAPIRead(r.Read, r.Seeds, conv)
		return err == nil, v, err
	}

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	st, _, perr := cmdutil.RunStream[api.ReadSeedsV1](
		ctx,
		pipeline.Config{Threads: thr, Ordered: o.Sort},
		o.ReadFiles,
		ex,
		visit,
		func(x api.ReadSeedsV1) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}

	sum := Summarize(st)
	cmdutil.Infof(stderr, o.Quiet, "%d reads, %d with seeds, %d seeds, %d distinct nodes",
		sum.Reads, sum.ReadsWithSeeds, sum.Seeds, sum.Nodes)
	if sum.Seeds == 0 {
		return o.NoMatchExitCode
	}
	return 0
}

// Summarize converts pipeline totals to the wire summary.
func Summarize(st pipeline.Stats) api.SummaryV1 {
	return api.SummaryV1{
		Reads:          st.Reads,
		ReadsWithSeeds: st.ReadsWithSeeds,
		Seeds:          st.Seeds,
		Nodes:          st.Nodes,
	}
}
