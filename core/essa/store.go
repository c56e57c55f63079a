// core/essa/store.go
package essa

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store persists indexes as files under Dir, one per key.
type Store struct {
	Dir string
}

// CacheKey derives a deterministic key from the text's source name and the
// sparsity: base name without extension, then "_k".
func CacheKey(source string, sparsity int) string {
	base := filepath.Base(source)
	if base == "-" || base == "." || base == string(filepath.Separator) {
		base = "stdin"
	}
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if sparsity < 1 {
		sparsity = 1
	}
	return base + "_" + strconv.Itoa(sparsity)
}

// Path is the file backing key.
func (s Store) Path(key string) string {
	return filepath.Join(s.Dir, key+".essa")
}

// Save writes x under key, replacing any previous file atomically.
func (s Store) Save(key string, x *Index) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("index dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := x.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("save index: %w", err)
	}
	return nil
}

// Load reads the index stored under key and binds it to text. ok is false
// when nothing usable is stored: the file is absent or stale. Other failures
// (unreadable or corrupt file) are returned as errors.
func (s Store) Load(key string, text []byte, opt Options) (x *Index, ok bool, err error) {
	fh, err := os.Open(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load index: %w", err)
	}
	defer fh.Close()
	x, err = ReadIndex(fh, text, opt)
	if errors.Is(err, ErrStale) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load index %s: %w", s.Path(key), err)
	}
	return x, true, nil
}

// LoadOrBuild returns the stored index for key if it matches text, and
// otherwise builds one and saves it. An empty Dir disables persistence.
// logf may be nil.
func LoadOrBuild(s Store, key string, text []byte, opt Options, logf func(string, ...any)) (*Index, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if s.Dir != "" {
		x, ok, err := s.Load(key, text, opt)
		switch {
		case err != nil:
			logf("ignoring unusable index: %v", err)
		case ok:
			logf("loaded index %s (%d bytes)", s.Path(key), x.SizeBytes())
			return x, nil
		}
	}
	x, err := Build(text, opt)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	logf("built index over %d bases, k=%d (%d bytes)", len(text), x.Sparsity(), x.SizeBytes())
	if s.Dir != "" {
		if err := s.Save(key, x); err != nil {
			return nil, err
		}
	}
	return x, nil
}
