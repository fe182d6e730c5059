// Package plain implements the PLAIN parquet encoding for fixed-width values.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#plain-plain--0
package plain

import (
	"encoding/binary"
	"slices"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/segmentio/parquet-arrow/encoding"
	"github.com/segmentio/parquet-arrow/format"
	"github.com/segmentio/parquet-arrow/internal/unsafecast"
)

// Type is the set of Go types which have a fixed-width little-endian PLAIN
// representation.
type Type interface {
	~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

type Encoding struct{}

func (e *Encoding) String() string {
	return "PLAIN"
}

func (e *Encoding) Encoding() format.Encoding {
	return format.Plain
}

// Size returns the size in bytes of values of type T.
func Size[T Type]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// AppendInt32 appends the little-endian representation of v to b.
func AppendInt32(b []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(v))
}

// PutInt32 writes the little-endian representation of v to the first 4 bytes
// of b.
func PutInt32(b []byte, v int32) {
	binary.LittleEndian.PutUint32(b, uint32(v))
}

// Int32 reads a little-endian int32 from the first 4 bytes of b.
func Int32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

// AppendValues appends the PLAIN encoding of values to dst and returns it.
func AppendValues[T Type](dst []byte, values []T) []byte {
	offset := len(dst)
	dst = append(dst, unsafecast.Bytes(values)...)
	if cpu.IsBigEndian {
		swapBytes(dst[offset:], Size[T]())
	}
	return dst
}

// DecodeValues decodes the PLAIN encoded values in src and appends them to
// dst. The length of src must be a multiple of the size of T.
func DecodeValues[T Type](dst []T, src []byte) ([]T, error) {
	size := Size[T]()
	if (len(src) % size) != 0 {
		return dst, encoding.Errorf(&Encoding{}, "cannot decode %d bytes values from input of size %d: %w", size, len(src), encoding.ErrInvalidArgument)
	}
	offset := len(dst)
	count := len(src) / size
	dst = slices.Grow(dst, count)[:offset+count]
	out := unsafecast.Bytes(dst[offset:])
	copy(out, src)
	if cpu.IsBigEndian {
		swapBytes(out, size)
	}
	return dst, nil
}

func swapBytes(b []byte, size int) {
	for i := 0; i+size <= len(b); i += size {
		slices.Reverse(b[i : i+size])
	}
}
