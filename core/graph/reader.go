// core/graph/reader.go
package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Separator is reserved for the flattened reference and cannot appear in a
// node sequence.
const Separator = '#'

var (
	// ErrTruncatedRecord reports a node record cut short by end of input.
	ErrTruncatedRecord = errors.New("truncated node record")
	// ErrBadSequence reports a node sequence containing Separator.
	ErrBadSequence = errors.New("bad node sequence")
)

// Node is one graph vertex. ID is assigned sequentially from 1 in file order;
// Label is the identifier line exactly as written in the file.
type Node struct {
	ID    int
	Label string
	Seq   []byte
}

// Options tunes Reader behavior.
type Options struct {
	// AllowTruncated turns a trailing record with fewer than four lines into
	// a clean end of input instead of ErrTruncatedRecord.
	AllowTruncated bool
}

// Reader scans 4-line node records: identifier, sequence, incoming edges,
// outgoing edges. Edge lines are skipped.
type Reader struct {
	sc   *bufio.Scanner
	opt  Options
	line int
	next int

	truncated bool
}

func NewReader(r io.Reader, opt Options) *Reader {
	sc := bufio.NewScanner(r)
	const maxLine = 256 * 1024 * 1024 // node sequences sit on a single line
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Reader{sc: sc, opt: opt, next: 1}
}

// Truncated reports whether the scan stopped at a truncated record under
// AllowTruncated.
func (r *Reader) Truncated() bool { return r.truncated }

func (r *Reader) scanLine() (string, bool, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", false, fmt.Errorf("graph scan: %w", err)
		}
		return "", false, nil
	}
	r.line++
	return strings.TrimRight(r.sc.Text(), "\r"), true, nil
}

// Read returns the next node, or io.EOF once input ends before an
// identifier line.
func (r *Reader) Read() (Node, error) {
	label, ok, err := r.scanLine()
	if err != nil {
		return Node{}, err
	}
	if !ok {
		return Node{}, io.EOF
	}
	start := r.line

	var fields [3]string
	for i := range fields {
		s, ok, err := r.scanLine()
		if err != nil {
			return Node{}, err
		}
		if !ok {
			if i == 0 && strings.TrimSpace(label) == "" {
				// trailing blank line
				return Node{}, io.EOF
			}
			if r.opt.AllowTruncated {
				r.truncated = true
				return Node{}, io.EOF
			}
			return Node{}, fmt.Errorf("%w: record at line %d has %d of 4 lines", ErrTruncatedRecord, start, i+1)
		}
		fields[i] = s
	}

	seq := strings.TrimSpace(fields[0])
	if i := strings.IndexByte(seq, Separator); i >= 0 {
		return Node{}, fmt.Errorf("%w: record at line %d has %q at column %d", ErrBadSequence, start, Separator, i+1)
	}
	n := Node{ID: r.next, Label: strings.TrimSpace(label), Seq: []byte(seq)}
	r.next++
	return n, nil
}

// ReadAll drains r.
func ReadAll(r *Reader) ([]Node, error) {
	var nodes []Node
	for {
		n, err := r.Read()
		if err == io.EOF {
			return nodes, nil
		}
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, n)
	}
}
