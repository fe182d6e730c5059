// Package snappy implements the SNAPPY parquet compression codec.
package snappy

import (
	"github.com/klauspost/compress/snappy"
	"github.com/segmentio/parquet-arrow/format"
)

type Codec struct {
}

// The snappy.Reader and snappy.Writer implement snappy encoding/decoding with
// a framing protocol, but parquet requires the raw snappy block encoding. This
// is why the codec uses snappy.Encode/snappy.Decode rather than the pooled
// streaming helpers of the compress package.

func (c *Codec) String() string {
	return "SNAPPY"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Snappy
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return snappy.Encode(dst[:cap(dst)], src), nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return snappy.Decode(dst[:cap(dst)], src)
}
