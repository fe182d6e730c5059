package parquet

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/parquet-arrow/format"
)

// PageReader reads sequences of framed data pages, as written by PageWriter
// or Page.WriteTo.
//
// Like in parquet column chunks, the physical type and the compression codec
// of pages are not recorded in the page headers, they must be known to the
// reader.
type PageReader struct {
	reader   *bufio.Reader
	protocol thrift.CompactProtocol
	decoder  *thrift.Decoder
	typ      format.Type
	codec    format.CompressionCodec
}

// NewPageReader constructs a reader of the framed pages of values of type typ
// compressed with codec that are read from r.
func NewPageReader(r io.Reader, typ format.Type, codec format.CompressionCodec) *PageReader {
	pr := &PageReader{
		reader: bufio.NewReader(r),
		typ:    typ,
		codec:  codec,
	}
	pr.decoder = thrift.NewDecoder(pr.protocol.NewReader(pr.reader))
	return pr
}

// ReadPage reads the next page. The method returns io.EOF when there are no
// more pages to read.
//
// When the header carries a non-zero CRC32 checksum, the page buffer is
// verified against it, mismatches are reported with errors wrapping
// ErrChecksumMismatch.
func (pr *PageReader) ReadPage() (*Page, error) {
	if _, err := pr.reader.Peek(1); err != nil {
		return nil, err
	}

	header := new(format.PageHeader)
	if err := pr.decoder.Decode(header); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("decoding page header: %w", err)
	}

	if err := checkPageHeader(header); err != nil {
		return nil, err
	}

	buffer := make([]byte, header.CompressedPageSize)
	if _, err := io.ReadFull(pr.reader, buffer); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading page of %d bytes: %w", len(buffer), err)
	}

	if header.CRC != 0 {
		headerChecksum := uint32(header.CRC)
		bufferChecksum := crc32.ChecksumIEEE(buffer)
		if headerChecksum != bufferChecksum {
			return nil, fmt.Errorf("crc32 checksum mismatch: 0x%08X != 0x%08X: %w", headerChecksum, bufferChecksum, ErrChecksumMismatch)
		}
	}

	page := &Page{
		Buffer:               buffer,
		Header:               *header.DataPageHeader,
		Compression:          pr.codec,
		UncompressedPageSize: int(header.UncompressedPageSize),
		Type:                 pr.typ,
	}

	if stats := page.Header.Statistics; !stats.IsZero() {
		page.Statistics = &stats
		page.NumNulls = int(stats.NullCount)
	}

	if !page.IsCompressed() && page.UncompressedPageSize != len(page.Buffer) {
		return nil, fmt.Errorf("uncompressed page sizes differ: %d != %d: %w", page.UncompressedPageSize, len(page.Buffer), ErrMalformedPage)
	}
	return page, nil
}

// ReadPage reads a single framed page from r.
func ReadPage(r io.Reader, typ format.Type, codec format.CompressionCodec) (*Page, error) {
	page, err := NewPageReader(r, typ, codec).ReadPage()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return page, err
}

func checkPageHeader(header *format.PageHeader) error {
	switch {
	case header.Type != format.DataPage:
		return fmt.Errorf("unsupported page type: %s: %w", header.Type, ErrMalformedPage)
	case header.DataPageHeader == nil:
		return fmt.Errorf("data page header is missing: %w", ErrMalformedPage)
	case header.CompressedPageSize < 0:
		return fmt.Errorf("negative compressed page size: %d: %w", header.CompressedPageSize, ErrMalformedPage)
	case header.UncompressedPageSize < 0:
		return fmt.Errorf("negative uncompressed page size: %d: %w", header.UncompressedPageSize, ErrMalformedPage)
	case header.DataPageHeader.NumValues < 0:
		return fmt.Errorf("negative number of values: %d: %w", header.DataPageHeader.NumValues, ErrMalformedPage)
	}
	return nil
}
