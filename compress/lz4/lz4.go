// Package lz4 implements the LZ4_RAW parquet compression codec.
package lz4

import (
	"github.com/pierrec/lz4/v4"
	"github.com/segmentio/parquet-arrow/format"
)

type Level = lz4.CompressionLevel

const (
	Fast   = lz4.Fast
	Level1 = lz4.Level1
	Level2 = lz4.Level2
	Level3 = lz4.Level3
	Level4 = lz4.Level4
	Level5 = lz4.Level5
	Level6 = lz4.Level6
	Level7 = lz4.Level7
	Level8 = lz4.Level8
	Level9 = lz4.Level9
)

const (
	DefaultLevel = Fast
)

type Codec struct {
	Level Level
}

func (c *Codec) String() string {
	return "LZ4_RAW"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Lz4Raw
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	dst = reserveAtLeast(dst, lz4.CompressBlockBound(len(src)))

	var n int
	var err error
	switch c.Level {
	case Fast:
		compressor := lz4.Compressor{}
		n, err = compressor.CompressBlock(src, dst)
	default:
		compressor := lz4.CompressorHC{Level: c.Level}
		n, err = compressor.CompressBlock(src, dst)
	}
	return dst[:n], err
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	// 3x seems like a common compression ratio, so we optimistically size the
	// output buffer to that size.
	dst = reserveAtLeast(dst, 3*len(src))

	for {
		n, err := lz4.UncompressBlock(src, dst)
		// The only error the block decoder reports for valid input is a short
		// output buffer, so grow it until the page fits or the expansion ratio
		// becomes unreasonable.
		if err != nil && len(dst) < (100*len(src)) {
			dst = make([]byte, 2*len(dst))
		} else {
			return dst[:n], err
		}
	}
}

func reserveAtLeast(b []byte, size int) []byte {
	if cap(b) < size {
		return make([]byte, size)
	}
	return b[:cap(b)]
}
