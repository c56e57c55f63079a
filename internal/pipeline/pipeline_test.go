package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphseed/core/essa"
	"graphseed/core/reference"
	"graphseed/core/seeds"
)

// Compile-time check: the concrete extractor satisfies the minimal contract.
var _ Collector = (*seeds.Extractor)(nil)

type fakeCol struct{ failOn string }

func (f fakeCol) Collect(read []byte) (*seeds.Result, error) {
	if f.failOn != "" && string(read) == f.failOn {
		return nil, seeds.ErrBadMatch
	}
	ref := reference.NewBuilder()
	ref.Add("1", read)
	m := fakeMatches{{Ref: 0, Query: 0, Len: len(read)}}
	return seeds.NewExtractor(ref.Reference(), m, 1).Collect(read)
}

type fakeMatches []essa.Match

func (f fakeMatches) MEMs([]byte, int) ([]essa.Match, error) { return f, nil }

func writeReads(t *testing.T, n int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, ">r%d\n%s\n", i, strings.Repeat("ACGT", i%5+1))
	}
	fn := filepath.Join(t.TempDir(), "reads.fa")
	require.NoError(t, os.WriteFile(fn, []byte(b.String()), 0o644))
	return fn
}

func TestForEachReadOrdered(t *testing.T) {
	fn := writeReads(t, 50)
	var ids []string
	st, err := ForEachRead(context.Background(), Config{Threads: 4, Ordered: true}, []string{fn}, fakeCol{}, func(r Result) error {
		ids = append(ids, r.Read.ID)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, ids, 50)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("r%d", i), id)
	}
	assert.Equal(t, 50, st.Reads)
	assert.Equal(t, 50, st.Seeds)
	assert.Equal(t, 50, st.ReadsWithSeeds)
	assert.Equal(t, 1, st.Nodes)
}

func TestForEachReadUnorderedSeesAll(t *testing.T) {
	fn := writeReads(t, 30)
	seen := map[int]bool{}
	_, err := ForEachRead(context.Background(), Config{Threads: 3}, []string{fn}, fakeCol{}, func(r Result) error {
		seen[r.Read.Index] = true
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 30)
}

func TestForEachReadCollectorErrorStops(t *testing.T) {
	fn := writeReads(t, 20)
	_, err := ForEachRead(context.Background(), Config{Threads: 2}, []string{fn}, fakeCol{failOn: "ACGTACGT"}, func(Result) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.Is(err, seeds.ErrBadMatch))
	assert.Regexp(t, `read "r\d+"`, err.Error())
}

func TestForEachReadVisitError(t *testing.T) {
	fn := writeReads(t, 20)
	stop := errors.New("stop")
	_, err := ForEachRead(context.Background(), Config{Threads: 2}, []string{fn}, fakeCol{}, func(Result) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestForEachReadMissingInput(t *testing.T) {
	_, err := ForEachRead(context.Background(), Config{}, []string{filepath.Join(t.TempDir(), "nope.fa")}, fakeCol{}, func(Result) error { return nil })
	assert.Error(t, err)
}

func TestForEachReadCancelled(t *testing.T) {
	fn := writeReads(t, 20)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ForEachRead(ctx, Config{Threads: 2}, []string{fn}, fakeCol{}, func(Result) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
