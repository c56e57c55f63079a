// Package reference flattens a node-list graph into one string suitable for
// an exact-match index and maps offsets in that string back to graph nodes.
//
// Layout: for each node in order, seq + Sentinel, then revcomp(seq) + Sentinel.
// Bounds holds the cumulative segment ends with a leading 0, so segment i
// spans [Bounds[i], Bounds[i+1]). Even segments are forward strands, odd
// segments are reverse complements; node n owns segments 2(n-1) and 2(n-1)+1.
package reference

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"graphseed/core/dna"
	"graphseed/core/graph"
	"graphseed/core/seqfile"
)

// Sentinel separates segments. It is outside the nucleotide alphabet.
const Sentinel = graph.Separator

var (
	ErrOffsetOutOfRange = errors.New("offset outside reference")
	ErrInvalidNode      = errors.New("invalid node id")
)

// NodeID is a signed node identifier: magnitude is the 1-based node number,
// a negative value selects the reverse-complement strand.
type NodeID int

// Num returns the 1-based node number.
func (id NodeID) Num() int {
	if id < 0 {
		return int(-id)
	}
	return int(id)
}

// Reverse reports whether id names the reverse-complement strand.
func (id NodeID) Reverse() bool { return id < 0 }

// Strand returns '+' or '-'.
func (id NodeID) Strand() byte {
	if id < 0 {
		return '-'
	}
	return '+'
}

// Reference is the flattened sequence plus its segment table. It is
// read-only after Build and safe for concurrent use.
type Reference struct {
	seq    []byte
	bounds []int
	labels []string

	truncated bool
}

// Builder accumulates nodes.
type Builder struct {
	seq    []byte
	bounds []int
	labels []string
}

func NewBuilder() *Builder {
	return &Builder{bounds: []int{0}}
}

// Add appends one node's forward and reverse-complement segments and returns
// its node number. A sequence containing Sentinel is rejected with
// graph.ErrBadSequence and leaves the builder unchanged.
func (b *Builder) Add(label string, seq []byte) (int, error) {
	if bytes.IndexByte(seq, Sentinel) >= 0 {
		return 0, fmt.Errorf("%w: node %q contains %q", graph.ErrBadSequence, label, Sentinel)
	}
	start := len(b.seq)
	b.seq = append(b.seq, seq...)
	dna.Upper(b.seq[start:])
	fwd := b.seq[start:len(b.seq)]
	b.seq = append(b.seq, Sentinel)
	b.bounds = append(b.bounds, len(b.seq))

	b.seq = dna.AppendRevComp(b.seq, fwd)
	b.seq = append(b.seq, Sentinel)
	b.bounds = append(b.bounds, len(b.seq))

	b.labels = append(b.labels, label)
	return len(b.labels), nil
}

// Reference finalizes the builder. The builder must not be used afterwards.
func (b *Builder) Reference() *Reference {
	r := &Reference{seq: b.seq, bounds: b.bounds, labels: b.labels}
	b.seq, b.bounds, b.labels = nil, nil, nil
	return r
}

// FromNodes builds a reference from nodes in slice order.
func FromNodes(nodes []graph.Node) (*Reference, error) {
	b := NewBuilder()
	for _, n := range nodes {
		if _, err := b.Add(n.Label, n.Seq); err != nil {
			return nil, err
		}
	}
	return b.Reference(), nil
}

// Read builds a reference from a graph stream. A read error aborts the
// build; no partial reference is returned.
func Read(r io.Reader, opt graph.Options) (*Reference, error) {
	gr := graph.NewReader(r, opt)
	b := NewBuilder()
	for {
		n, err := gr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if _, err := b.Add(n.Label, n.Seq); err != nil {
			return nil, err
		}
	}
	ref := b.Reference()
	ref.truncated = gr.Truncated()
	return ref, nil
}

// Load opens path (gzip and "-" aware) and builds a reference from it.
func Load(path string, opt graph.Options) (*Reference, error) {
	rc, err := seqfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer rc.Close()
	ref, err := Read(rc, opt)
	if err != nil {
		return nil, fmt.Errorf("read graph %s: %w", path, err)
	}
	return ref, nil
}

// Seq returns the flattened sequence. Callers must not modify it; an index
// built over it borrows the slice for its whole lifetime.
func (r *Reference) Seq() []byte { return r.seq }

// Len is the total flattened length.
func (r *Reference) Len() int { return len(r.seq) }

// NodeCount is the number of graph nodes.
func (r *Reference) NodeCount() int { return len(r.labels) }

// Bounds returns a copy of the segment table.
func (r *Reference) Bounds() []int { return append([]int(nil), r.bounds...) }

// Truncated reports whether the graph ended in a partial record that was
// dropped under graph.Options.AllowTruncated.
func (r *Reference) Truncated() bool { return r.truncated }

// Label returns the identifier line recorded for a node.
func (r *Reference) Label(id NodeID) (string, error) {
	if _, err := r.segment(id); err != nil {
		return "", err
	}
	return r.labels[id.Num()-1], nil
}
