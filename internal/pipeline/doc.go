// Package pipeline streams reads through a seed Collector on a pool of
// workers and hands each read's seeds to a visit callback.
//
// The only contract to implement is Collector. The reference and index
// behind it are shared read-only; every read gets its own result.
package pipeline
