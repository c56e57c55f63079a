// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"graphseed/internal/output"
	"graphseed/pkg/api"
)

// StreamFunc consumes records from in until it is closed.
type StreamFunc func(w io.Writer, in <-chan api.ReadSeedsV1, header bool) error

var registry = map[string]StreamFunc{}

// Register adds a format (idempotent, last wins).
func Register(format string, fn StreamFunc) { registry[format] = fn }

// Formats lists registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func init() {
	Register(output.FormatText, output.StreamText)
	Register(output.FormatJSON, func(w io.Writer, in <-chan api.ReadSeedsV1, _ bool) error {
		var buf []api.ReadSeedsV1
		for r := range in {
			buf = append(buf, r)
		}
		return output.WriteJSON(w, buf)
	})
	Register(output.FormatJSONL, func(w io.Writer, in <-chan api.ReadSeedsV1, _ bool) error {
		return streamJSONL(w, in)
	})
	Register(output.FormatFASTA, func(w io.Writer, in <-chan api.ReadSeedsV1, _ bool) error {
		return output.StreamFASTA(w, in)
	})
}

// Start spins up a writer goroutine for format. Close the returned channel
// when done, then wait on the error channel. Input is always drained, so
// senders never block on a failed writer.
func Start(out io.Writer, format string, header bool, bufSize int) (chan<- api.ReadSeedsV1, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.ReadSeedsV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		fn, ok := registry[format]
		if !ok {
			for range in {
			}
			errCh <- fmt.Errorf("unknown output format %q (no writer registered)", format)
			return
		}
		err := fn(out, in, header)
		// keep senders unblocked after an early failure
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
