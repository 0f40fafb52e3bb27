// internal/lexicon/source.go
//
// Word sources for the lexicon loader.
//
// A Source is anything that can be opened as a line-oriented text stream
// with one word per line. Sources are opened once per load and read to
// completion; nothing is retained between loads unless the caller asks
// for it with Preload.
//
// Resolution (Resolve):
//   - empty path   → the embedded default list from the assets package
//   - otherwise    → the file at that path
package lexicon

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/evilhangman/assets"
)

// Source yields a readable word list.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Open returns a fresh reader positioned at the first line.
	Open() (io.ReadCloser, error)
}

// fileSource reads words from a file on disk.
type fileSource struct{ path string }

// File returns a Source backed by the file at path.
func File(path string) Source { return fileSource{path: path} }

func (f fileSource) Name() string { return f.path }

func (f fileSource) Open() (io.ReadCloser, error) { return os.Open(f.path) }

// memSource serves an in-memory copy of a word list.
type memSource struct {
	name string
	data []byte
}

// FromBytes returns a Source that serves data as the word list.
func FromBytes(name string, data []byte) Source {
	return memSource{name: name, data: data}
}

// FromWords returns a Source with one line per word, in the given order.
func FromWords(name string, words ...string) Source {
	return FromBytes(name, []byte(strings.Join(words, "\n")))
}

func (m memSource) Name() string { return m.name }

func (m memSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

// Embedded returns the default word list compiled into the binary.
func Embedded() Source {
	return FromBytes("embedded:lexicon.txt", assets.Lexicon())
}

// Resolve picks the file at path, or the embedded list when path is empty.
func Resolve(path string) Source {
	if path == "" {
		return Embedded()
	}
	return File(path)
}

// Preload reads src once and returns an in-memory Source with the same
// contents, so repeated loads do not touch the underlying resource.
func Preload(src Source) (Source, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, unavailable(src, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, unavailable(src, err)
	}
	return FromBytes(src.Name(), data), nil
}
