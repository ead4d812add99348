// Package codec decodes catalog files that ship compressed. Codecs register
// themselves by file extension; Open picks one from the path.
package codec

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Codec is a reversible stream transformation keyed by file extension.
type Codec interface {
	// Name returns the human-readable name
	Name() string

	// Extension returns the file extension handled, including the dot
	Extension() string

	// Compress wraps w so that writes are encoded
	Compress(w io.Writer) (io.WriteCloser, error)

	// Decompress wraps r so that reads are decoded
	Decompress(r io.Reader) (io.ReadCloser, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Codec)
)

// Register registers a codec implementation
func Register(c Codec) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(c.Extension())] = c
}

// ForPath returns the codec registered for the path's extension.
func ForPath(path string) (Codec, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := registry[strings.ToLower(filepath.Ext(path))]
	return c, ok
}

// Names lists the registered codec names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for _, c := range registry {
		names = append(names, c.Name())
	}
	return names
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for reading, decoding it when a codec matches its
// extension. Plain files are returned as-is.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	c, ok := ForPath(path)
	if !ok {
		return f, nil
	}
	dec, err := c.Decompress(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s stream %s: %w", c.Name(), path, err)
	}
	return &stackedCloser{Reader: dec, closers: []io.Closer{dec, f}}, nil
}

type stackedWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (s *stackedWriteCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Create creates path for writing, encoding through the codec matching its
// extension. Plain paths are written as-is.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	c, ok := ForPath(path)
	if !ok {
		return f, nil
	}
	enc, err := c.Compress(f)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("creating %s stream %s: %w", c.Name(), path, err)
	}
	return &stackedWriteCloser{Writer: enc, closers: []io.Closer{enc, f}}, nil
}

// Transcode copies src to dst, decoding and encoding each side by its
// extension. It returns the number of decoded bytes copied.
func Transcode(src, dst string) (int64, error) {
	r, err := Open(src)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	w, err := Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, r)
	if err != nil {
		w.Close()
		os.Remove(dst)
		return n, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := w.Close(); err != nil {
		os.Remove(dst)
		return n, err
	}
	return n, nil
}
