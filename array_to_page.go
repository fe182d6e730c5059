package parquet

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/segmentio/parquet-arrow/compress"
	"github.com/segmentio/parquet-arrow/encoding/plain"
	"github.com/segmentio/parquet-arrow/encoding/rle"
	"github.com/segmentio/parquet-arrow/format"
	"github.com/segmentio/parquet-arrow/internal/debug"
)

const (
	// Size of the length prefix of the definition levels.
	levelsLengthSize = 4

	// Definition levels of flat optional columns are either 0 or 1.
	definitionLevelBitWidth = 1
)

// ArrayToPage encodes all the slots of column into a single version 1 data
// page compressed with codec. A nil codec, or the UNCOMPRESSED codec, leaves
// the page buffer uncompressed.
//
// The column is only read, it may be retained and released by the caller
// independently of the returned page.
//
// When the column has no nulls, an all-present definition level stream is
// still written, unless the ElideDefinitionLevels option is set.
//
// Errors are either of type *EncodingError, which wrap ErrUnsupportedType or
// ErrTooManyValues, or of type *CompressionError.
func ArrayToPage(column arrow.Array, codec compress.Codec, options ...PageOption) (*Page, error) {
	config, err := NewPageConfig(options...)
	if err != nil {
		return nil, err
	}

	switch a := column.(type) {
	case *array.Int32:
		return arrayToPage(a, a.Int32Values(), format.Int32, codec, config)
	case *array.Uint32:
		return arrayToPage(a, a.Uint32Values(), format.Int32, codec, config)
	case *array.Date32:
		return arrayToPage(a, a.Date32Values(), format.Int32, codec, config)
	case *array.Time32:
		return arrayToPage(a, a.Time32Values(), format.Int32, codec, config)
	case *array.Int64:
		return arrayToPage(a, a.Int64Values(), format.Int64, codec, config)
	case *array.Uint64:
		return arrayToPage(a, a.Uint64Values(), format.Int64, codec, config)
	case *array.Date64:
		return arrayToPage(a, a.Date64Values(), format.Int64, codec, config)
	case *array.Time64:
		return arrayToPage(a, a.Time64Values(), format.Int64, codec, config)
	case *array.Timestamp:
		return arrayToPage(a, a.TimestampValues(), format.Int64, codec, config)
	case *array.Duration:
		return arrayToPage(a, a.DurationValues(), format.Int64, codec, config)
	case *array.Float32:
		return arrayToPage(a, a.Float32Values(), format.Float, codec, config)
	case *array.Float64:
		return arrayToPage(a, a.Float64Values(), format.Double, codec, config)
	default:
		return nil, &EncodingError{Type: column.DataType(), Err: ErrUnsupportedType}
	}
}

func arrayToPage[T plain.Type](column arrow.Array, values []T, typ format.Type, codec compress.Codec, config *PageConfig) (*Page, error) {
	numValues := column.Len()
	if numValues > math.MaxInt32 {
		return nil, &EncodingError{Type: column.DataType(), Err: ErrTooManyValues}
	}

	// Arrays without nulls are treated as having no validity bitmap, even if
	// one was allocated.
	numNulls := column.NullN()
	bitmap := column.NullBitmapBytes()
	if numNulls == 0 {
		bitmap = nil
	}
	offset := column.Data().Offset()

	buffer := make([]byte, levelsLengthSize, pageBufferSize(numValues, numNulls, plain.Size[T]()))

	if bitmap != nil || !config.ElideDefinitionLevels {
		buffer = rle.EncodeBitmap(buffer, bitmap, offset, numValues)
	}
	levelsLength := len(buffer) - levelsLengthSize
	plain.PutInt32(buffer, int32(levelsLength))

	if bitmap == nil {
		buffer = plain.AppendValues(buffer, values)
	} else {
		buffer = appendPresentValues(buffer, values, bitmap, offset)
	}

	page := &Page{
		Header: format.DataPageHeader{
			NumValues:               int32(numValues),
			Encoding:                format.Plain,
			DefinitionLevelEncoding: format.RLE,
			RepetitionLevelEncoding: format.RLE,
		},
		Compression:          format.Uncompressed,
		UncompressedPageSize: len(buffer),
		Type:                 typ,
		NumNulls:             numNulls,
	}

	if !config.Statistics.IsZero() {
		stats := config.Statistics
		page.Header.Statistics = stats
		page.Statistics = &stats
	}

	if codec != nil && codec.CompressionCodec() != format.Uncompressed {
		compressed, err := codec.Encode(nil, buffer)
		if err != nil {
			return nil, &CompressionError{
				Codec: codec.CompressionCodec(),
				Size:  len(buffer),
				Err:   err,
			}
		}
		buffer, page.Compression = compressed, codec.CompressionCodec()
	}

	page.Buffer = buffer

	debug.Format("encoded %d %s values (%d nulls) in a page of %d bytes, %d bytes of definition levels, %d bytes after %s compression",
		numValues, typ, numNulls, page.UncompressedPageSize, levelsLength, len(page.Buffer), page.Compression)
	return page, nil
}

// appendPresentValues appends the PLAIN encoding of the values whose bit is
// set in the validity bitmap, copying runs of consecutive present values at
// once.
func appendPresentValues[T plain.Type](dst []byte, values []T, bitmap []byte, offset int) []byte {
	for i, n := 0, len(values); i < n; {
		if !bitutil.BitIsSet(bitmap, offset+i) {
			i++
			continue
		}
		j := i + 1
		for j < n && bitutil.BitIsSet(bitmap, offset+j) {
			j++
		}
		dst = plain.AppendValues(dst, values[i:j])
		i = j
	}
	return dst
}

// pageBufferSize returns the capacity to allocate for the uncompressed page
// buffer. The levels are bounded by one byte per group of 8 slots plus the
// run headers, which are estimated generously since append grows the buffer
// if needed.
func pageBufferSize(numValues, numNulls, valueSize int) int {
	numGroups := (numValues + 7) / 8
	return levelsLengthSize + numGroups + 2*(numGroups/63+1) + (numValues-numNulls)*valueSize
}
