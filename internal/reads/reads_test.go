package reads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, in string) []Record {
	t.Helper()
	var got []Record
	_, err := StreamReader(context.Background(), strings.NewReader(in), "mem", 0, func(r Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestFASTA(t *testing.T) {
	got := collect(t, ">r1 first read\nacgt\nACGG\n>r2\nTTTT\n")
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "ACGTACGG", string(got[0].Seq))
	assert.Equal(t, 1, got[1].Index)
	assert.Equal(t, "mem", got[1].SourceFile)
}

func TestFASTQ(t *testing.T) {
	got := collect(t, "@q1\nACGTN\n+\nIIIII\n@q2\nggcc\n+\nIIII\n")
	require.Len(t, got, 2)
	assert.Equal(t, "q1", got[0].ID)
	assert.Equal(t, "ACGTN", string(got[0].Seq))
	assert.Equal(t, "GGCC", string(got[1].Seq))
}

func TestEmptyAndUnknown(t *testing.T) {
	assert.Empty(t, collect(t, "\n\n"))

	_, err := StreamReader(context.Background(), strings.NewReader("ACGT\n"), "mem", 0, func(Record) error { return nil })
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestStreamNumbersAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fq")
	require.NoError(t, os.WriteFile(a, []byte(">a1\nAC\n>a2\nGT\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("@b1\nTT\n+\nII\n"), 0o644))

	var got []Record
	n, err := Stream(context.Background(), []string{a, b}, func(r Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Index, got[1].Index, got[2].Index})
	assert.Equal(t, b, got[2].SourceFile)

	_, err = Stream(context.Background(), []string{filepath.Join(dir, "missing")}, func(Record) error { return nil })
	assert.Error(t, err)
}

func TestStreamStopsOnEmitError(t *testing.T) {
	stop := errors.New("stop")
	n, err := StreamReader(context.Background(), strings.NewReader(">a\nA\n>b\nC\n"), "mem", 0, func(Record) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 0, n)
}
