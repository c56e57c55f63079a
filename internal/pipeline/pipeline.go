// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"graphseed/core/reference"
	"graphseed/core/seeds"
	"graphseed/internal/reads"
)

// Config controls the read pipeline.
type Config struct {
	Threads int  // number of worker goroutines (>=1)
	Ordered bool // deliver results in input order
}

// Result pairs a read with its seeds.
type Result struct {
	Read  reads.Record
	Seeds *seeds.Result
}

// Stats summarizes a run.
type Stats struct {
	Reads          int
	ReadsWithSeeds int
	Seeds          int
	Nodes          int // distinct signed node ids across all reads
}

// ForEachRead streams reads from paths, collects seeds for each on
// cfg.Threads workers and calls visit from a single goroutine. A collector
// error stops the run; it is returned wrapped with the read's id, as is the
// first visit or input error, or the context's error.
func ForEachRead(
	ctx context.Context,
	cfg Config,
	paths []string,
	col Collector,
	visit func(Result) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan reads.Record, cfg.Threads*2)
	results := make(chan Result, cfg.Threads*2)

	var (
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case rec, ok := <-jobs:
					if !ok {
						return
					}
					res, err := col.Collect(rec.Seq)
					if err != nil {
						fail(fmt.Errorf("read %q (%s #%d): %w", rec.ID, rec.SourceFile, rec.Index+1, err))
						return
					}
					select {
					case results <- Result{Read: rec, Seeds: res}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector (+ reorder buffer when Ordered)
	var (
		st    Stats
		cwg   sync.WaitGroup
		nodes = make(map[reference.NodeID]struct{}, 1<<10)
	)
	deliver := func(r Result) {
		st.Reads++
		if r.Seeds.Count > 0 {
			st.ReadsWithSeeds++
		}
		st.Seeds += r.Seeds.Count
		for _, id := range r.Seeds.Nodes {
			nodes[id] = struct{}{}
		}
		if err := visit(r); err != nil {
			fail(err)
		}
	}
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := map[int]Result{}
		next := 0
		for r := range results {
			if ctx.Err() != nil {
				continue
			}
			if !cfg.Ordered {
				deliver(r)
				continue
			}
			pending[r.Read.Index] = r
			for {
				p, ok := pending[next]
				if !ok || ctx.Err() != nil {
					break
				}
				delete(pending, next)
				next++
				deliver(p)
			}
		}
	}()

	// Feed work
	_, ferr := reads.Stream(ctx, paths, func(rec reads.Record) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case jobs <- rec:
			return nil
		}
	})

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()
	st.Nodes = len(nodes)

	if firstErr != nil {
		return st, firstErr
	}
	if ferr != nil {
		return st, ferr
	}
	return st, ctx.Err()
}
