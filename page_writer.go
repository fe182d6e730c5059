package parquet

import (
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/parquet-arrow/format"
)

// PageHeader returns the thrift page header describing p, as written before
// the page buffer in column chunks.
//
// The CRC field holds the checksum of the page buffer as stored, after
// compression.
func (p *Page) PageHeader() *format.PageHeader {
	header := p.Header
	return &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: int32(p.UncompressedPageSize),
		CompressedPageSize:   int32(len(p.Buffer)),
		CRC:                  int32(crc32.ChecksumIEEE(p.Buffer)),
		DataPageHeader:       &header,
	}
}

// WriteTo writes the thrift compact encoding of the page header to w,
// followed by the page buffer.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	if err := p.checkFrameSize(); err != nil {
		return 0, err
	}

	header, err := thrift.Marshal(new(thrift.CompactProtocol), p.PageHeader())
	if err != nil {
		return 0, fmt.Errorf("encoding page header: %w", err)
	}

	n1, err := w.Write(header)
	if err != nil {
		return int64(n1), err
	}
	n2, err := w.Write(p.Buffer)
	return int64(n1) + int64(n2), err
}

// Page headers store sizes as 32 bits signed integers.
func (p *Page) checkFrameSize() error {
	if p.UncompressedPageSize > math.MaxInt32 || len(p.Buffer) > math.MaxInt32 {
		return fmt.Errorf("page of %d bytes (%d uncompressed) is too large to be framed: %w",
			len(p.Buffer), p.UncompressedPageSize, ErrMalformedPage)
	}
	return nil
}

// PageWriter writes sequences of framed pages to an underlying io.Writer.
type PageWriter struct {
	writer   io.Writer
	protocol thrift.CompactProtocol
	encoder  *thrift.Encoder
	pages    int64
}

// NewPageWriter constructs a writer of framed pages to w.
func NewPageWriter(w io.Writer) *PageWriter {
	pw := &PageWriter{writer: w}
	pw.encoder = thrift.NewEncoder(pw.protocol.NewWriter(w))
	return pw
}

// WritePage writes the header and buffer of page to the underlying writer.
func (pw *PageWriter) WritePage(page *Page) error {
	if err := page.checkFrameSize(); err != nil {
		return err
	}
	if err := pw.encoder.Encode(page.PageHeader()); err != nil {
		return fmt.Errorf("writing page header: %w", err)
	}
	if _, err := pw.writer.Write(page.Buffer); err != nil {
		return err
	}
	pw.pages++
	return nil
}

// NumPages returns the number of pages written so far.
func (pw *PageWriter) NumPages() int64 { return pw.pages }
