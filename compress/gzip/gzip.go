// Package gzip implements the GZIP parquet compression codec.
package gzip

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/segmentio/parquet-arrow/compress"
	"github.com/segmentio/parquet-arrow/format"
)

const (
	NoCompression      = gzip.NoCompression
	BestSpeed          = gzip.BestSpeed
	BestCompression    = gzip.BestCompression
	DefaultCompression = gzip.DefaultCompression
	HuffmanOnly        = gzip.HuffmanOnly
)

type Codec struct {
	// Compression level, zero means DefaultCompression.
	Level int

	r compress.Decompressor
	w compress.Compressor
}

func (c *Codec) String() string {
	return "GZIP"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Gzip
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.w.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		z, err := gzip.NewWriterLevel(w, c.level())
		if err != nil {
			return nil, err
		}
		return z, nil
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.r.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return z, nil
	})
}

func (c *Codec) level() int {
	if c.Level != 0 {
		return c.Level
	}
	return DefaultCompression
}
