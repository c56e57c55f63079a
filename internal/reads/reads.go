// internal/reads/reads.go
package reads

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"

	"graphseed/core/dna"
	"graphseed/core/seqfile"
)

// ErrUnknownFormat is returned for input that is neither FASTA nor FASTQ.
var ErrUnknownFormat = errors.New("reads: input is neither FASTA nor FASTQ")

// Record is one read. Index is its 0-based position across all streamed
// files, used to restore input order downstream.
type Record struct {
	Index      int
	ID         string
	Seq        []byte
	SourceFile string
}

// newReader picks a biogo reader from the first non-blank byte.
func newReader(br *bufio.Reader) (seqio.Reader, error) {
	for {
		b, err := br.Peek(1)
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = br.ReadByte()
			continue
		case '>':
			return fasta.NewReader(br, linear.NewSeq("", nil, alphabet.DNA)), nil
		case '@':
			return fastq.NewReader(br, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger)), nil
		default:
			return nil, fmt.Errorf("%w (starts with %q)", ErrUnknownFormat, b[0])
		}
	}
}

func letters(s seq.Sequence) ([]byte, error) {
	var out []byte
	switch v := s.(type) {
	case *linear.Seq:
		out = make([]byte, 0, len(v.Seq))
		for _, l := range v.Seq {
			out = append(out, byte(l))
		}
	case *linear.QSeq:
		out = make([]byte, 0, len(v.Seq))
		for _, ql := range v.Seq {
			out = append(out, byte(ql.L))
		}
	default:
		return nil, fmt.Errorf("reads: unexpected sequence type %T", s)
	}
	return dna.Upper(out), nil
}

// StreamReader parses reads from r and calls emit for each. Numbering
// starts at first. It returns the number of reads emitted.
func StreamReader(ctx context.Context, r io.Reader, source string, first int, emit func(Record) error) (int, error) {
	rd, err := newReader(bufio.NewReaderSize(r, 1<<16))
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", source, err)
	}
	sc := seqio.NewScanner(rd)
	n := 0
	for sc.Next() {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		default:
		}
		s := sc.Seq()
		b, err := letters(s)
		if err != nil {
			return n, err
		}
		if err := emit(Record{Index: first + n, ID: s.Name(), Seq: b, SourceFile: source}); err != nil {
			return n, err
		}
		n++
	}
	if err := sc.Error(); err != nil {
		return n, fmt.Errorf("%s: read %d: %w", source, n+1, err)
	}
	return n, nil
}

// Stream opens each path in turn ("-" = stdin, gzip aware) and emits its
// reads, numbering them continuously across files.
func Stream(ctx context.Context, paths []string, emit func(Record) error) (int, error) {
	total := 0
	for _, p := range paths {
		rc, err := seqfile.Open(p)
		if err != nil {
			return total, fmt.Errorf("open reads: %w", err)
		}
		n, err := StreamReader(ctx, rc, p, total, emit)
		_ = rc.Close()
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
