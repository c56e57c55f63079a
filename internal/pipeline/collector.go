// internal/pipeline/collector.go
package pipeline

import "graphseed/core/seeds"

// Collector is the minimal capability the pipeline needs.
// *seeds.Extractor satisfies it; tests use fakes.
type Collector interface {
	Collect(read []byte) (*seeds.Result, error)
}
