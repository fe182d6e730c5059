// Package encoding provides the generic APIs implemented by parquet encodings
// in its sub-packages.
package encoding

import (
	"errors"
	"fmt"

	"github.com/segmentio/parquet-arrow/format"
)

var (
	// ErrInvalidArgument is an error returned when one or more arguments passed
	// to the encoding functions are incorrect.
	//
	// This error may be wrapped with specific information about the problem
	// and applications are expected to use errors.Is for comparisons.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCorrupted is returned by decoders when the input does not hold a
	// valid encoded sequence.
	ErrCorrupted = errors.New("corrupted input")
)

// The Encoding interface is implemented by types representing parquet column
// encodings.
type Encoding interface {
	// Returns a human-readable name for the encoding.
	String() string

	// Returns the parquet code representing the encoding.
	Encoding() format.Encoding
}

// LevelEncoding is implemented by encodings that can represent repetition
// and definition levels.
type LevelEncoding interface {
	Encoding

	// Appends the encoded levels of src to dst and returns it.
	EncodeLevels(dst []byte, src []uint8) ([]byte, error)

	// Decodes numValues levels from src and appends them to dst.
	DecodeLevels(dst []uint8, src []byte, numValues int) ([]uint8, error)
}

// Error constructs an error which wraps err and indicates that it originated
// from the given encoding.
func Error(e Encoding, err error) error {
	return fmt.Errorf("%s: %w", e, err)
}

// Errorf is like Error but constructs the error message from the given format
// and arguments.
func Errorf(e Encoding, msg string, args ...interface{}) error {
	return Error(e, fmt.Errorf(msg, args...))
}
