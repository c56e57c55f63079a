// core/essa/io.go
package essa

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

var magic = [8]byte{'G', 'S', 'E', 'E', 'D', 'S', 'A', '1'}

type header struct {
	Magic       [8]byte
	Sparsity    uint32
	Separator   uint32
	TextLen     uint64
	Fingerprint [blake2b.Size256]byte
	Entries     uint64
}

// Fingerprint hashes the indexed text. Stored indexes carry it so a cache
// built over different text is never reused.
func Fingerprint(text []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(text)
}

// WriteTo serializes the suffix array. The text itself is not written.
func (x *Index) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriterSize(w, 1<<20)
	h := header{
		Magic:       magic,
		Sparsity:    uint32(x.k),
		Separator:   uint32(x.sep),
		TextLen:     uint64(len(x.text)),
		Fingerprint: Fingerprint(x.text),
		Entries:     uint64(len(x.sa)),
	}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return 0, err
	}
	if err := binary.Write(bw, binary.LittleEndian, x.sa); err != nil {
		return 0, err
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return int64(binary.Size(h)) + int64(len(x.sa))*4, nil
}

// ErrStale reports a readable index that was built over different text or
// with different options.
var ErrStale = fmt.Errorf("%w: stale", ErrBadIndex)

// ReadIndex loads an index written by WriteTo and binds it to text. It fails
// with ErrStale when text or opt no longer match the stored header.
func ReadIndex(r io.Reader, text []byte, opt Options) (*Index, error) {
	k := opt.Sparsity
	if k < 1 {
		k = 1
	}
	br := bufio.NewReaderSize(r, 1<<20)
	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadIndex, err)
	}
	if h.Magic != magic {
		return nil, ErrBadIndex
	}
	if int(h.Sparsity) != k || byte(h.Separator) != opt.Separator {
		return nil, fmt.Errorf("%w: options k=%d sep=%q, want k=%d sep=%q", ErrStale, h.Sparsity, byte(h.Separator), k, opt.Separator)
	}
	if h.TextLen != uint64(len(text)) || h.Fingerprint != Fingerprint(text) {
		return nil, fmt.Errorf("%w: text fingerprint differs", ErrStale)
	}
	want := (uint64(len(text)) + uint64(k) - 1) / uint64(k)
	if h.Entries != want {
		return nil, fmt.Errorf("%w: %d entries, want %d", ErrBadIndex, h.Entries, want)
	}
	sa := make([]uint32, h.Entries)
	if err := binary.Read(br, binary.LittleEndian, sa); err != nil {
		return nil, fmt.Errorf("%w: entries: %v", ErrBadIndex, err)
	}
	for _, p := range sa {
		if uint64(p) >= h.TextLen || int(p)%k != 0 {
			return nil, fmt.Errorf("%w: entry %d out of range", ErrBadIndex, p)
		}
	}
	return &Index{text: text, k: k, sep: opt.Separator, sa: sa}, nil
}
