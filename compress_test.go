package parquet_test

import (
	"errors"
	"testing"

	"github.com/segmentio/parquet-arrow"
	"github.com/segmentio/parquet-arrow/format"
)

func TestLookupCompressionCodec(t *testing.T) {
	for _, codec := range []format.CompressionCodec{
		format.Uncompressed,
		format.Snappy,
		format.Gzip,
		format.Brotli,
		format.Zstd,
		format.Lz4Raw,
	} {
		c := parquet.LookupCompressionCodec(codec)
		if c.CompressionCodec() != codec {
			t.Errorf("%s: wrong codec returned: %s", codec, c.CompressionCodec())
		}
		if c.String() != codec.String() {
			t.Errorf("%s: wrong codec name: %s", codec, c)
		}
	}
}

func TestLookupUnsupportedCompressionCodec(t *testing.T) {
	for _, codec := range []format.CompressionCodec{format.LZO, format.Lz4, -1, 42} {
		c := parquet.LookupCompressionCodec(codec)
		if c == nil {
			t.Fatalf("%s: nil codec", codec)
		}
		if c.CompressionCodec() != codec {
			t.Errorf("%s: wrong codec returned: %s", codec, c.CompressionCodec())
		}
		if _, err := c.Encode(nil, []byte("hello")); !errors.Is(err, parquet.ErrUnsupportedCodec) {
			t.Errorf("%s: wrong encode error: %v", codec, err)
		}
		if _, err := c.Decode(nil, []byte("hello")); !errors.Is(err, parquet.ErrUnsupportedCodec) {
			t.Errorf("%s: wrong decode error: %v", codec, err)
		}
	}
}
