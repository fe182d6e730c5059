package parquet

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/segmentio/parquet-arrow/format"
)

var (
	// ErrEncoding is the error matched by errors.Is for all errors of type
	// *EncodingError.
	ErrEncoding = errors.New("page encoding failure")

	// ErrCompression is the error matched by errors.Is for all errors of type
	// *CompressionError.
	ErrCompression = errors.New("page compression failure")

	// ErrUnsupportedType is returned when attempting to convert arrays of a
	// type which has no fixed-width parquet physical type.
	ErrUnsupportedType = errors.New("unsupported arrow data type")

	// ErrTooManyValues is returned when an array has more slots than a page
	// header can count.
	ErrTooManyValues = errors.New("too many values in page")

	// ErrUnsupportedCodec is returned by the compression codecs which have no
	// implementation in this package, LZO for example.
	ErrUnsupportedCodec = errors.New("unsupported compression codec")

	// ErrMalformedPage is returned when a page header or buffer holds values
	// that are inconsistent with each other.
	ErrMalformedPage = errors.New("malformed page")

	// ErrChecksumMismatch is returned by ReadPage when the CRC32 checksum in a
	// page header does not match the page content.
	ErrChecksumMismatch = errors.New("page checksum mismatch")
)

// EncodingError is returned when the values of an array cannot be encoded in
// a page. No page is produced when this error occurs.
//
// Use errors.Is(err, ErrEncoding) to test for this kind of errors without
// depending on the concrete type.
type EncodingError struct {
	Type arrow.DataType
	Err  error
}

func (e *EncodingError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("encoding data page: %v", e.Err)
	}
	return fmt.Sprintf("encoding data page of %s values: %v", e.Type, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

// CompressionError is returned when the compression codec selected for a page
// fails to process the page buffer.
//
// Use errors.Is(err, ErrCompression) to test for this kind of errors without
// depending on the concrete type.
type CompressionError struct {
	// The codec which reported the error.
	Codec format.CompressionCodec
	// Size of the input given to the codec.
	Size int
	// Set when the error happened while decompressing.
	Decompress bool
	Err        error
}

func (e *CompressionError) Error() string {
	op := "compressing"
	if e.Decompress {
		op = "decompressing"
	}
	return fmt.Sprintf("%s %d bytes page with %s: %v", op, e.Size, e.Codec, e.Err)
}

func (e *CompressionError) Unwrap() error { return e.Err }

func (e *CompressionError) Is(target error) bool { return target == ErrCompression }
