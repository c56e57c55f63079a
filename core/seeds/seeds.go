// Package seeds turns raw index matches between a read and the flattened
// reference into graph-relative seeds.
package seeds

import (
	"errors"
	"fmt"

	"graphseed/core/essa"
	"graphseed/core/reference"
)

// ErrBadMatch reports a match record that does not translate into the
// reference. It means the index and the reference disagree; the read is
// abandoned rather than silently under-counted.
var ErrBadMatch = errors.New("match outside reference")

// Seed is one exact match in graph coordinates.
type Seed struct {
	Node       reference.NodeID
	NodeOffset int
	ReadOffset int
	Length     int
}

// Matcher finds maximal exact matches of at least minLen between query and
// the indexed reference. *essa.Index satisfies it.
type Matcher interface {
	MEMs(query []byte, minLen int) ([]essa.Match, error)
}

// Result holds the per-read seed collection.
type Result struct {
	ByNode     map[reference.NodeID][]Seed
	LengthHist []int              // LengthHist[l] = number of seeds of length l
	Nodes      []reference.NodeID // distinct nodes in first-seen order
	Count      int

	seen map[reference.NodeID]struct{}
}

func newResult() *Result {
	return &Result{
		ByNode: make(map[reference.NodeID][]Seed),
		seen:   make(map[reference.NodeID]struct{}),
	}
}

func (r *Result) add(s Seed) {
	r.ByNode[s.Node] = append(r.ByNode[s.Node], s)
	for len(r.LengthHist) <= s.Length {
		r.LengthHist = append(r.LengthHist, 0)
	}
	r.LengthHist[s.Length]++
	r.Count++
	if _, ok := r.seen[s.Node]; !ok {
		r.seen[s.Node] = struct{}{}
		r.Nodes = append(r.Nodes, s.Node)
	}
}

// Seeds flattens ByNode, grouped by node in first-seen order.
func (r *Result) Seeds() []Seed {
	out := make([]Seed, 0, r.Count)
	for _, id := range r.Nodes {
		out = append(out, r.ByNode[id]...)
	}
	return out
}

// Extractor is safe for concurrent use: the reference and matcher are only
// read, and every Collect call owns its Result.
type Extractor struct {
	ref    *reference.Reference
	index  Matcher
	minLen int
}

func NewExtractor(ref *reference.Reference, index Matcher, minLen int) *Extractor {
	return &Extractor{ref: ref, index: index, minLen: minLen}
}

// MinLength returns the seed length threshold.
func (e *Extractor) MinLength() int { return e.minLen }

// Reference returns the reference seeds are translated against.
func (e *Extractor) Reference() *reference.Reference { return e.ref }

// Collect finds all seeds of at least MinLength between read and the graph.
func (e *Extractor) Collect(read []byte) (*Result, error) {
	matches, err := e.index.MEMs(read, e.minLen)
	if err != nil {
		return nil, err
	}
	res := newResult()
	for _, m := range matches {
		id, off, err := e.ref.Locate(m.Ref)
		if err != nil {
			return nil, fmt.Errorf("%w: ref=%d query=%d len=%d: %v", ErrBadMatch, m.Ref, m.Query, m.Len, err)
		}
		if m.Query < 0 || m.Len < 1 || m.Query+m.Len > len(read) {
			return nil, fmt.Errorf("%w: query span [%d,%d) outside read of length %d", ErrBadMatch, m.Query, m.Query+m.Len, len(read))
		}
		res.add(Seed{Node: id, NodeOffset: off, ReadOffset: m.Query, Length: m.Len})
	}
	return res, nil
}
