package appcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedWriterFactoryNeeds(t *testing.T) {
	w := NewSeedWriterFactory("text", true, false, true)
	assert.False(t, w.NeedNodeSeqs())
	assert.True(t, w.NeedLabels())

	w = NewSeedWriterFactory("fasta", false, false, true)
	assert.True(t, w.NeedNodeSeqs(), "fasta always needs node sequences")
	assert.False(t, w.NeedLabels())

	w = NewSeedWriterFactory("jsonl", false, true, false)
	assert.True(t, w.NeedNodeSeqs())
	assert.False(t, w.NeedLabels())
}
