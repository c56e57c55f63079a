package appcore

import (
	"io"

	"graphseed/internal/output"
	"graphseed/internal/writers"
	"graphseed/pkg/api"
)

// SeedWriterFactory picks a registered writer and says what the visitor must
// attach to each record for it.
type SeedWriterFactory struct {
	Format   string
	Header   bool
	NodeSeqs bool
	Labels   bool
}

func NewSeedWriterFactory(format string, header, nodeSeqs, labels bool) SeedWriterFactory {
	return SeedWriterFactory{Format: format, Header: header, NodeSeqs: nodeSeqs, Labels: labels}
}

// NeedNodeSeqs reports whether records must carry node sequences.
// FASTA writes them as its records.
func (w SeedWriterFactory) NeedNodeSeqs() bool {
	return w.NodeSeqs || w.Format == output.FormatFASTA
}

// NeedLabels reports whether seeds must carry graph labels.
func (w SeedWriterFactory) NeedLabels() bool {
	return w.Labels && w.Format != output.FormatFASTA
}

func (w SeedWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.ReadSeedsV1, <-chan error) {
	return writers.Start(out, w.Format, w.Header, bufSize)
}
