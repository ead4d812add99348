package compress

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/provide-io/reslot/pkg/reslot/codec"
)

func init() {
	codec.Register(NewBzip2())
}

// Bzip2 implements BZIP2 decoding for ".bz2" catalog files
type Bzip2 struct{}

// NewBzip2 creates a new BZIP2 codec
func NewBzip2() *Bzip2 { return &Bzip2{} }

func (*Bzip2) Name() string      { return "BZIP2" }
func (*Bzip2) Extension() string { return ".bz2" }

// Compress returns a BZIP2 writer
func (*Bzip2) Compress(w io.Writer) (io.WriteCloser, error) {
	bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: 9})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 writer: %w", err)
	}
	return bw, nil
}

// Decompress returns a BZIP2 reader
func (*Bzip2) Decompress(r io.Reader) (io.ReadCloser, error) {
	br, err := bzip2.NewReader(r, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 reader: %w", err)
	}
	return br, nil
}
