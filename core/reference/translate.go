// core/reference/translate.go
package reference

import (
	"fmt"
	"sort"
)

// segment maps a signed node id to its index in the bounds table.
func (r *Reference) segment(id NodeID) (int, error) {
	n := id.Num()
	if n < 1 || n > len(r.labels) {
		return 0, fmt.Errorf("%w: %d (have %d nodes)", ErrInvalidNode, id, len(r.labels))
	}
	i := 2 * (n - 1)
	if id.Reverse() {
		i++
	}
	return i, nil
}

func idForSegment(i int) NodeID {
	id := NodeID(i/2 + 1)
	if i%2 == 1 {
		return -id
	}
	return id
}

// Translate returns the node whose segment contains offset o. Segments are
// closed-open, so a boundary offset belongs to the segment starting there.
func (r *Reference) Translate(o int) (NodeID, error) {
	if o < 0 || o >= len(r.seq) {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrOffsetOutOfRange, o, len(r.seq))
	}
	// first bound strictly greater than o, minus one
	left := sort.Search(len(r.bounds), func(i int) bool { return r.bounds[i] > o }) - 1
	return idForSegment(left), nil
}

// Locate translates o and also returns its offset within the node segment.
func (r *Reference) Locate(o int) (NodeID, int, error) {
	id, err := r.Translate(o)
	if err != nil {
		return 0, 0, err
	}
	off, err := r.OffsetInNode(id, o)
	if err != nil {
		return 0, 0, err
	}
	return id, off, nil
}

// OffsetInNode converts an absolute offset to one relative to the start of
// id's segment.
func (r *Reference) OffsetInNode(id NodeID, o int) (int, error) {
	i, err := r.segment(id)
	if err != nil {
		return 0, err
	}
	start, end := r.bounds[i], r.bounds[i+1]
	if o < start || o >= end {
		return 0, fmt.Errorf("%w: %d not in node %d segment [%d,%d)", ErrOffsetOutOfRange, o, id, start, end)
	}
	return o - start, nil
}

// Start returns the absolute offset where id's segment begins.
func (r *Reference) Start(id NodeID) (int, error) {
	i, err := r.segment(id)
	if err != nil {
		return 0, err
	}
	return r.bounds[i], nil
}

// Node returns the sequence of id's segment without the sentinel: the
// forward sequence for positive ids, the reverse complement for negative.
// The returned slice aliases the reference.
func (r *Reference) Node(id NodeID) ([]byte, error) {
	i, err := r.segment(id)
	if err != nil {
		return nil, err
	}
	pos, end := r.bounds[i], r.bounds[i+1]-1
	return r.seq[pos:end:end], nil
}

// NodeLen returns the sequence length of node n.
func (r *Reference) NodeLen(id NodeID) (int, error) {
	i, err := r.segment(id)
	if err != nil {
		return 0, err
	}
	return r.bounds[i+1] - r.bounds[i] - 1, nil
}
