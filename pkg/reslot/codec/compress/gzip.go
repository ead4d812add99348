package compress

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/provide-io/reslot/pkg/reslot/codec"
)

func init() {
	codec.Register(NewGzip())
}

// Gzip implements GZIP decoding for ".gz" catalog files
type Gzip struct{}

// NewGzip creates a new GZIP codec
func NewGzip() *Gzip { return &Gzip{} }

func (*Gzip) Name() string      { return "GZIP" }
func (*Gzip) Extension() string { return ".gz" }

// Compress returns a GZIP writer at the best compression level
func (*Gzip) Compress(w io.Writer) (io.WriteCloser, error) {
	gw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating gzip writer: %w", err)
	}
	return gw, nil
}

// Decompress returns a GZIP reader
func (*Gzip) Decompress(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	return gr, nil
}
