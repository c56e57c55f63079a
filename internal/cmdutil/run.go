package cmdutil

import (
	"context"

	"graphseed/internal/pipeline"
)

// RunStream runs the read pipeline, applies a visitor, and streams results via send.
// It returns the pipeline stats, the number of kept outputs and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	readFiles []string,
	col pipeline.Collector,
	visit func(pipeline.Result) (bool, T, error),
	send func(T) error,
) (pipeline.Stats, int, error) {
	total := 0
	st, err := pipeline.ForEachRead(ctx, cfg, readFiles, col, func(r pipeline.Result) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return st, total, err
}
