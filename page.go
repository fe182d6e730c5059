package parquet

import (
	"fmt"

	"github.com/segmentio/parquet-arrow/format"
)

// Page represents a version 1 parquet data page.
//
// Pages are produced by ArrayToPage or read back from their framed
// representation with ReadPage. A Page is never modified after it was
// constructed; programs must treat the Buffer as immutable.
type Page struct {
	// The content of the page, compressed with the Compression codec.
	//
	// Once decompressed, the buffer starts with the 4 bytes little-endian
	// length of the definition levels, followed by the levels and the PLAIN
	// encoding of the non-null values.
	Buffer []byte

	// The data page header describing the content of Buffer. NumValues counts
	// all slots of the page, including nulls.
	Header format.DataPageHeader

	// The codec that Buffer was compressed with.
	Compression format.CompressionCodec

	// Size of the page buffer before compression.
	UncompressedPageSize int

	// Always nil, pages are never dictionary encoded.
	Dictionary *DictionaryPage

	// Statistics given with the PageStatistics option, or read from the page
	// header. Statistics are never computed by the encoder.
	Statistics *format.Statistics

	// Physical type of the values.
	Type format.Type

	// Number of null values in the page. Pages read with ReadPage only know
	// it when their header carried statistics.
	NumNulls int
}

// DictionaryPage is the representation of dictionary pages referenced by data
// pages using dictionary encodings.
type DictionaryPage struct {
	Buffer    []byte
	NumValues int
	Encoding  format.Encoding
}

// NumValues returns the number of values in the page, including nulls.
func (p *Page) NumValues() int { return int(p.Header.NumValues) }

// Size returns the size of the page buffer.
func (p *Page) Size() int64 { return int64(len(p.Buffer)) }

// IsCompressed reports whether the page buffer was compressed.
func (p *Page) IsCompressed() bool { return p.Compression != format.Uncompressed }

func (p *Page) String() string {
	return fmt.Sprintf("DATA_PAGE{Type=%s,Compression=%s,UncompressedPageSize=%d,CompressedPageSize=%d,%s}",
		p.Type,
		p.Compression,
		p.UncompressedPageSize,
		len(p.Buffer),
		&p.Header)
}
