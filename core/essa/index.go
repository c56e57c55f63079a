// Package essa is a sparse suffix array over a borrowed text, answering
// maximal exact match (MEM) queries.
//
// The index keeps only every k-th suffix (k = sparsity). It never copies the
// text: the caller must keep the slice alive and unmodified for as long as
// the index is in use.
package essa

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrMinLength = errors.New("minimum match length below sparsity")
	ErrTooLarge  = errors.New("text too large for index")
	ErrBadIndex  = errors.New("not a valid index file")
)

// Match is one maximal exact match: query[Query:Query+Len] equals
// text[Ref:Ref+Len] and cannot be extended in either direction.
type Match struct {
	Ref   int
	Query int
	Len   int
}

// Options configures Build.
type Options struct {
	Sparsity  int  // keep every k-th suffix; <1 means 1
	Separator byte // never matched, even against itself
}

// Index is immutable after Build and safe for concurrent queries.
type Index struct {
	text []byte
	k    int
	sep  byte
	sa   []uint32
}

// Build sorts the sampled suffixes of text.
func Build(text []byte, opt Options) (*Index, error) {
	k := opt.Sparsity
	if k < 1 {
		k = 1
	}
	if uint64(len(text)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(text))
	}
	sa := make([]uint32, 0, (len(text)+k-1)/k)
	for p := 0; p < len(text); p += k {
		sa = append(sa, uint32(p))
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(text[sa[i]:], text[sa[j]:]) < 0
	})
	return &Index{text: text, k: k, sep: opt.Separator, sa: sa}, nil
}

// CheckMinLength reports ErrMinLength unless minLen is at least 1 and at
// least the sparsity.
func CheckMinLength(minLen, sparsity int) error {
	if minLen < 1 || minLen < sparsity {
		return fmt.Errorf("%w: length %d, sparsity %d", ErrMinLength, minLen, sparsity)
	}
	return nil
}

// Sparsity returns k.
func (x *Index) Sparsity() int { return x.k }

// Len is the number of sampled suffixes.
func (x *Index) Len() int { return len(x.sa) }

// SizeBytes approximates the memory held by the index, excluding the text.
func (x *Index) SizeBytes() int64 { return int64(len(x.sa)) * 4 }

// cmpPrefix compares the suffix at p, truncated to len(pat), with pat.
func (x *Index) cmpPrefix(p uint32, pat []byte) int {
	s := x.text[p:]
	if len(s) > len(pat) {
		s = s[:len(pat)]
	}
	return bytes.Compare(s, pat)
}

// interval returns the half-open SA range of suffixes starting with pat.
func (x *Index) interval(pat []byte) (int, int) {
	lo := sort.Search(len(x.sa), func(i int) bool { return x.cmpPrefix(x.sa[i], pat) >= 0 })
	hi := lo + sort.Search(len(x.sa)-lo, func(i int) bool { return x.cmpPrefix(x.sa[lo+i], pat) > 0 })
	return lo, hi
}

// MEMs returns every maximal exact match of at least minLen between query
// and the text, forward strand only, ordered by query then text offset.
//
// Every MEM starting at text offset s covers the sampled suffix at
// ceil(s/k)*k within its first k bases, so it is reported exactly once from
// that anchor. This needs minLen >= k.
func (x *Index) MEMs(query []byte, minLen int) ([]Match, error) {
	if err := CheckMinLength(minLen, x.k); err != nil {
		return nil, err
	}
	m := minLen - x.k + 1
	var out []Match
	for j := 0; j+m <= len(query); j++ {
		pat := query[j : j+m]
		if bytes.IndexByte(pat, x.sep) >= 0 {
			continue
		}
		lo, hi := x.interval(pat)
		for s := lo; s < hi; s++ {
			r := int(x.sa[s])

			t := 0
			for t < x.k && j-t > 0 && r-t > 0 && query[j-t-1] == x.text[r-t-1] && query[j-t-1] != x.sep {
				t++
			}
			if t == x.k {
				// an earlier sampled suffix anchors this match
				continue
			}

			e := m
			for j+e < len(query) && r+e < len(x.text) && query[j+e] == x.text[r+e] && query[j+e] != x.sep {
				e++
			}
			if t+e < minLen {
				continue
			}
			out = append(out, Match{Ref: r - t, Query: j - t, Len: t + e})
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Query != out[b].Query {
			return out[a].Query < out[b].Query
		}
		return out[a].Ref < out[b].Ref
	})
	return out, nil
}
