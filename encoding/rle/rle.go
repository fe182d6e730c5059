// Package rle implements the hybrid RLE/Bit-Packed encoding employed in
// repetition and definition levels.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#run-length-encoding--bit-packing-hybrid-rle--3
package rle

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/segmentio/parquet-arrow/encoding"
	"github.com/segmentio/parquet-arrow/format"
)

const (
	// MaxBitWidth is the largest bit width supported for levels.
	MaxBitWidth = 8

	// Bit-packed runs are limited to 63 groups of 8 values so their header
	// always fits in a single byte, which is what the reference java
	// implementation expects.
	maxBitPackGroups = 63

	// Runs shorter than this are bit-packed instead.
	minRunLength = 8
)

// Encoding implements the hybrid RLE/Bit-Packed encoding of levels for a given
// bit width.
type Encoding struct {
	BitWidth int
}

func (e *Encoding) String() string {
	return "RLE"
}

func (e *Encoding) Encoding() format.Encoding {
	return format.RLE
}

func (e *Encoding) EncodeLevels(dst []byte, src []uint8) ([]byte, error) {
	dst, err := EncodeLevels(dst, src, uint(e.BitWidth))
	return dst, e.wrap(err)
}

func (e *Encoding) DecodeLevels(dst []uint8, src []byte, numValues int) ([]uint8, error) {
	dst, err := DecodeLevels(dst, src, uint(e.BitWidth), numValues)
	return dst, e.wrap(err)
}

func (e *Encoding) wrap(err error) error {
	if err != nil {
		err = encoding.Error(e, err)
	}
	return err
}

// EncodeLevels appends the hybrid encoding of levels to dst and returns it.
//
// The function errors if the bit width is outside of [1:8] or if one of the
// levels does not fit in the bit width.
func EncodeLevels(dst []byte, levels []uint8, bitWidth uint) ([]byte, error) {
	if bitWidth == 0 || bitWidth > MaxBitWidth {
		return dst, fmt.Errorf("level bit width out of range: %d: %w", bitWidth, encoding.ErrInvalidArgument)
	}
	maxLevel := uint8(1<<bitWidth - 1)
	for i, level := range levels {
		if level > maxLevel {
			return dst, fmt.Errorf("level at index %d does not fit in %d bits: %d: %w", i, bitWidth, level, encoding.ErrInvalidArgument)
		}
	}
	return encode(dst, len(levels), bitWidth, func(i int) byte { return levels[i] }), nil
}

// EncodeBitmap appends the hybrid encoding of length bits read from bitmap,
// starting at the bit offset, using a bit width of one. Bits are read in
// least-significant bit order, which is how arrow lays out validity bitmaps.
//
// A nil bitmap represents a sequence where all bits are set.
func EncodeBitmap(dst, bitmap []byte, offset, length int) []byte {
	if bitmap == nil {
		if length > 0 {
			dst = appendRunLength(dst, length, 1)
		}
		return dst
	}
	return encode(dst, length, 1, func(i int) byte {
		i += offset
		return (bitmap[i>>3] >> uint(i&7)) & 1
	})
}

func encode(dst []byte, n int, bitWidth uint, at func(int) byte) []byte {
	for i := 0; i < n; {
		if r := runLength(i, n, n, at); r >= minRunLength {
			dst = appendRunLength(dst, r, at(i))
			i += r
			continue
		}

		// Extend the bit-packed run one group at a time until a long enough
		// run of repeated values starts at the group boundary. Only the last
		// group of the sequence may be partial, it gets padded with zeros.
		j := i + 8
		for j < n && (j-i) < 8*maxBitPackGroups && runLength(j, n, minRunLength, at) < minRunLength {
			j += 8
		}
		dst = appendBitPack(dst, i, j, n, bitWidth, at)
		i = j
	}
	return dst
}

func runLength(i, n, limit int, at func(int) byte) int {
	v, j := at(i), i+1
	for j < n && (j-i) < limit && at(j) == v {
		j++
	}
	return j - i
}

// For bit widths up to 8 the repeated value always fits in one byte.
func appendRunLength(dst []byte, count int, value byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(count)<<1)
	return append(dst, value)
}

func appendBitPack(dst []byte, i, j, n int, bitWidth uint, at func(int) byte) []byte {
	groups := (j - i) / 8
	dst = binary.AppendUvarint(dst, uint64(groups)<<1|1)

	offset := len(dst)
	size := groups * int(bitWidth)
	dst = append(dst, make([]byte, size)...)
	packed := dst[offset:]

	for k := 0; k < (j-i) && (i+k) < n; k++ {
		v := uint(at(i + k))
		bitOffset := uint(k) * bitWidth
		index, shift := bitOffset/8, bitOffset%8
		packed[index] |= byte(v << shift)
		if shift+bitWidth > 8 {
			packed[index+1] |= byte(v >> (8 - shift))
		}
	}
	return dst
}

// DecodeLevels decodes numValues levels from src and appends them to dst.
//
// Bit-packed runs may carry padding values beyond numValues, those are
// discarded.
func DecodeLevels(dst []uint8, src []byte, bitWidth uint, numValues int) ([]uint8, error) {
	if bitWidth == 0 || bitWidth > MaxBitWidth {
		return dst, fmt.Errorf("level bit width out of range: %d: %w", bitWidth, encoding.ErrInvalidArgument)
	}
	if numValues < 0 {
		return dst, fmt.Errorf("negative number of levels: %d: %w", numValues, encoding.ErrInvalidArgument)
	}

	maxLevel := uint8(1<<bitWidth - 1)
	offset := len(src)

	for remain := numValues; remain > 0; {
		if len(src) == 0 {
			return dst, fmt.Errorf("decoding run header: %d levels missing: %w", remain, io.ErrUnexpectedEOF)
		}

		u, n := binary.Uvarint(src)
		if n <= 0 {
			return dst, fmt.Errorf("decoding run header at offset %d: %w", offset-len(src), encoding.ErrCorrupted)
		}
		src = src[n:]

		if (u & 1) == 0 {
			if len(src) < 1 {
				return dst, fmt.Errorf("decoding repeated value after count=%d: %w", u>>1, io.ErrUnexpectedEOF)
			}
			value := src[0]
			src = src[1:]
			if value > maxLevel {
				return dst, fmt.Errorf("repeated level does not fit in %d bits: %d: %w", bitWidth, value, encoding.ErrCorrupted)
			}
			count := remain
			if u>>1 < uint64(remain) {
				count = int(u >> 1)
			}
			for k := 0; k < count; k++ {
				dst = append(dst, value)
			}
			remain -= count
		} else {
			groups := u >> 1
			if groups > uint64(len(src)) {
				return dst, fmt.Errorf("decoding bit-packed run of %d groups: %w", groups, io.ErrUnexpectedEOF)
			}
			size := int(groups) * int(bitWidth)
			if len(src) < size {
				return dst, fmt.Errorf("decoding bit-packed run of %d groups: %w", groups, io.ErrUnexpectedEOF)
			}
			count := int(groups) * 8
			if count > remain {
				count = remain
			}
			dst = unpack(dst, src[:size], count, bitWidth)
			src = src[size:]
			remain -= count
		}
	}

	return dst, nil
}

func unpack(dst []uint8, src []byte, count int, bitWidth uint) []uint8 {
	mask := uint(1<<bitWidth - 1)
	for k := 0; k < count; k++ {
		bitOffset := uint(k) * bitWidth
		index, shift := bitOffset/8, bitOffset%8
		v := uint(src[index]) >> shift
		if shift+bitWidth > 8 {
			v |= uint(src[index+1]) << (8 - shift)
		}
		dst = append(dst, uint8(v&mask))
	}
	return dst
}
