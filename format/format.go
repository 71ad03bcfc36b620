// Package format serializes documentation modules.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/dhamidi/symdoc/model"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(m *model.Module) error
}

// Names lists the formats accepted by New.
var Names = []string{"json", "line"}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

// Compress wraps w so everything written is zstd compressed. The returned
// writer must be closed to flush the final frame.
func Compress(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return enc, nil
}

// Decompress reads a stream written through Compress.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	return dec.IOReadCloser(), nil
}
