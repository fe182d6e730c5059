package parquet

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/segmentio/parquet-arrow/encoding/plain"
	"github.com/segmentio/parquet-arrow/encoding/rle"
	"github.com/segmentio/parquet-arrow/internal/debug"
	"github.com/segmentio/parquet-arrow/internal/unsafecast"
)

// DecodePage reconstructs the arrow array that page was produced from.
//
// The data type must be one that maps to the physical type of the page
// values, it may differ from the type of the original array as long as the
// physical types match (e.g. pages of INT64 values may be decoded as
// TIMESTAMP arrays).
//
// The returned array is allocated with the allocator set by the Allocator
// option, the program must call its Release method when done with it.
func DecodePage(page *Page, dataType arrow.DataType, options ...PageOption) (arrow.Array, error) {
	config, err := NewPageConfig(options...)
	if err != nil {
		return nil, err
	}

	switch dataType.ID() {
	case arrow.INT32, arrow.DATE32, arrow.TIME32:
		return decodePage[int32](page, dataType, config)
	case arrow.UINT32:
		return decodePage[uint32](page, dataType, config)
	case arrow.INT64, arrow.DATE64, arrow.TIME64, arrow.TIMESTAMP, arrow.DURATION:
		return decodePage[int64](page, dataType, config)
	case arrow.UINT64:
		return decodePage[uint64](page, dataType, config)
	case arrow.FLOAT32:
		return decodePage[float32](page, dataType, config)
	case arrow.FLOAT64:
		return decodePage[float64](page, dataType, config)
	default:
		return nil, fmt.Errorf("decoding data page: %s: %w", dataType, ErrUnsupportedType)
	}
}

func decodePage[T plain.Type](page *Page, dataType arrow.DataType, config *PageConfig) (arrow.Array, error) {
	typ, _ := PhysicalType(dataType)
	if page.Type != typ {
		return nil, fmt.Errorf("decoding %s page as %s: %w", page.Type, dataType, ErrMalformedPage)
	}

	buffer, err := decompressPage(page)
	if err != nil {
		return nil, err
	}
	if len(buffer) != page.UncompressedPageSize {
		return nil, fmt.Errorf("page size mismatch: uncompressed size is %d but the header says %d: %w",
			len(buffer), page.UncompressedPageSize, ErrMalformedPage)
	}
	if len(buffer) < levelsLengthSize {
		return nil, fmt.Errorf("page of %d bytes is too short to hold the definition levels length: %w", len(buffer), ErrMalformedPage)
	}

	numValues := page.NumValues()
	if numValues < 0 {
		return nil, fmt.Errorf("negative number of values in page: %d: %w", numValues, ErrMalformedPage)
	}

	levelsLength := int(uint32(plain.Int32(buffer)))
	buffer = buffer[levelsLengthSize:]
	if levelsLength > len(buffer) {
		return nil, fmt.Errorf("definition levels length exceeds the page size: %d > %d: %w", levelsLength, len(buffer), ErrMalformedPage)
	}

	// Pages of arrays without nulls may have their levels elided, levels stay
	// nil in that case and all the values are present.
	var levels []uint8
	if levelsLength > 0 || numValues == 0 {
		levels, err = rle.DecodeLevels(make([]uint8, 0, numValues), buffer[:levelsLength], definitionLevelBitWidth, numValues)
		if err != nil {
			return nil, fmt.Errorf("decoding definition levels: %w", err)
		}
	}

	numNulls := 0
	for _, level := range levels {
		if level == 0 {
			numNulls++
		}
	}

	values, err := plain.DecodeValues[T](make([]T, 0, numValues-numNulls), buffer[levelsLength:])
	if err != nil {
		return nil, fmt.Errorf("decoding values: %w", err)
	}
	if len(values) != numValues-numNulls {
		return nil, fmt.Errorf("page holds %d values but its definition levels have %d non-null slots: %w",
			len(values), numValues-numNulls, ErrMalformedPage)
	}

	debug.Format("decoded %d %s values (%d nulls) from a page of %d bytes", numValues, dataType, numNulls, len(page.Buffer))
	return newArray(config.Allocator, dataType, values, levels, numNulls), nil
}

func decompressPage(page *Page) ([]byte, error) {
	if !page.IsCompressed() {
		return page.Buffer, nil
	}
	codec := LookupCompressionCodec(page.Compression)
	buffer, err := codec.Decode(make([]byte, 0, page.UncompressedPageSize), page.Buffer)
	if err != nil {
		return nil, &CompressionError{
			Codec:      page.Compression,
			Size:       len(page.Buffer),
			Decompress: true,
			Err:        err,
		}
	}
	return buffer, nil
}

// newArray builds an array of the given data type placing the present values
// in the slots where the definition level is one. A nil levels slice means
// that all values are present.
func newArray[T plain.Type](mem memory.Allocator, dataType arrow.DataType, values []T, levels []uint8, numNulls int) arrow.Array {
	numValues := len(values) + numNulls

	data := memory.NewResizableBuffer(mem)
	defer data.Release()
	data.Resize(numValues * plain.Size[T]())
	slots := unsafecast.Slice[T](data.Bytes())

	var bitmap *memory.Buffer
	if numNulls > 0 {
		bitmap = memory.NewResizableBuffer(mem)
		defer bitmap.Release()
		bitmap.Resize(int(bitutil.BytesForBits(int64(numValues))))
		memory.Set(bitmap.Bytes(), 0)

		bits := bitmap.Bytes()
		j := 0
		for i, level := range levels {
			if level != 0 {
				bitutil.SetBit(bits, i)
				slots[i] = values[j]
				j++
			} else {
				slots[i] = 0
			}
		}
	} else {
		copy(slots, values)
	}

	arrayData := array.NewData(dataType, numValues, []*memory.Buffer{bitmap, data}, nil, numNulls, 0)
	defer arrayData.Release()
	return array.MakeFromData(arrayData)
}
