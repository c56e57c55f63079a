package essa

import (
	"bytes"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveMEMs enumerates every left- and right-maximal match of at least
// minLen, treating sep as a mismatch.
func naiveMEMs(text, query []byte, minLen int, sep byte) []Match {
	var out []Match
	for q := range query {
		for r := range text {
			if q > 0 && r > 0 && query[q-1] == text[r-1] && query[q-1] != sep {
				continue
			}
			l := 0
			for q+l < len(query) && r+l < len(text) && query[q+l] == text[r+l] && query[q+l] != sep {
				l++
			}
			if l >= minLen {
				out = append(out, Match{Ref: r, Query: q, Len: l})
			}
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Query != out[b].Query {
			return out[a].Query < out[b].Query
		}
		return out[a].Ref < out[b].Ref
	})
	return out
}

func randSeq(rng *rand.Rand, n int, alphabet string) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return b
}

func TestMEMsMatchNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 40; trial++ {
		text := randSeq(rng, 200+rng.Intn(200), "ACGT#")
		query := randSeq(rng, 30+rng.Intn(40), "ACGT")
		// plant a copy of a text window so long matches exist
		if n := 25; len(text) > n {
			off := rng.Intn(len(text) - n)
			copy(query[5:], text[off:off+n])
		}
		for k := 1; k <= 4; k++ {
			x, err := Build(text, Options{Sparsity: k, Separator: '#'})
			require.NoError(t, err)
			for _, minLen := range []int{k, 4, 8} {
				if minLen < k {
					continue
				}
				got, err := x.MEMs(query, minLen)
				require.NoError(t, err)
				want := naiveMEMs(text, query, minLen, '#')
				if len(want) == 0 {
					assert.Empty(t, got, "trial %d k=%d L=%d", trial, k, minLen)
					continue
				}
				assert.Equal(t, want, got, "trial %d k=%d L=%d", trial, k, minLen)
			}
		}
	}
}

func TestSeparatorNeverMatches(t *testing.T) {
	text := []byte("ACGT#ACGT#")
	x, err := Build(text, Options{Sparsity: 1, Separator: '#'})
	require.NoError(t, err)
	got, err := x.MEMs([]byte("ACGT#ACGT"), 3)
	require.NoError(t, err)
	for _, m := range got {
		assert.Equal(t, 4, m.Len)
		assert.NotContains(t, string(text[m.Ref:m.Ref+m.Len]), "#")
	}
	assert.Len(t, got, 4)
}

func TestMinLengthBelowSparsity(t *testing.T) {
	x, err := Build([]byte("ACGTACGT"), Options{Sparsity: 4})
	require.NoError(t, err)
	_, err = x.MEMs([]byte("ACGT"), 3)
	assert.True(t, errors.Is(err, ErrMinLength))
	_, err = x.MEMs([]byte("ACGT"), 0)
	assert.True(t, errors.Is(err, ErrMinLength))
}

func TestBuildDefaults(t *testing.T) {
	x, err := Build([]byte("GATTACA"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, x.Sparsity())
	assert.Equal(t, 7, x.Len())
	assert.Equal(t, int64(28), x.SizeBytes())

	sparse, err := Build([]byte("GATTACA"), Options{Sparsity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, sparse.Len())
}

func TestSuffixOrder(t *testing.T) {
	text := []byte("BANANA")
	x, err := Build(text, Options{})
	require.NoError(t, err)
	for i := 1; i < len(x.sa); i++ {
		assert.Negative(t, bytes.Compare(text[x.sa[i-1]:], text[x.sa[i]:]))
	}
}
