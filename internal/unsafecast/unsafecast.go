// Package unsafecast exposes functions to bypass the Go type system and perform
// conversions between types that would otherwise not be possible.
//
// The functions of this package are mostly useful as optimizations to avoid
// memory copies when converting between compatible memory layouts; for
// example, casting a []int32 to a []byte to write its little-endian
// representation on a host which uses the same byte order.
//
// Programs using this package should be careful to only use the converted
// values while the source is kept alive, the returned slices share the same
// backing array.
package unsafecast

import "unsafe"

// Slice converts the data slice of type []From to a slice of type []To sharing
// the same backing array. The length and capacity of the returned slice are
// scaled according to the size difference between the source and destination
// types.
//
// Note that the function does not perform any checks to ensure that the memory
// layouts of the types are compatible.
func Slice[To, From any](data []From) []To {
	var zf From
	var zt To
	sizeOfFrom := int(unsafe.Sizeof(zf))
	sizeOfTo := int(unsafe.Sizeof(zt))

	ptr := unsafe.SliceData(data)
	if ptr == nil {
		return nil
	}
	length := (len(data) * sizeOfFrom) / sizeOfTo
	capacity := (cap(data) * sizeOfFrom) / sizeOfTo
	return unsafe.Slice((*To)(unsafe.Pointer(ptr)), capacity)[:length]
}

// Bytes returns the memory of data as a byte slice.
func Bytes[T any](data []T) []byte {
	return Slice[byte](data)
}
