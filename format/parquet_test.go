package format_test

import (
	"reflect"
	"testing"

	"github.com/segmentio/encoding/thrift"
	"github.com/segmentio/parquet-arrow/format"
)

func TestMarshalUnmarshalPageHeader(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	header := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: 42,
		CompressedPageSize:   24,
		CRC:                  -1234,
		DataPageHeader: &format.DataPageHeader{
			NumValues:               3,
			Encoding:                format.Plain,
			DefinitionLevelEncoding: format.RLE,
			RepetitionLevelEncoding: format.RLE,
			Statistics: format.Statistics{
				NullCount: 1,
			},
		},
	}

	b, err := thrift.Marshal(protocol, header)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.PageHeader{}
	if err := thrift.Unmarshal(protocol, b, decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(header, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", header)
		t.Logf("found:\n%#v", decoded)
	}
}

func TestTypeSize(t *testing.T) {
	for _, test := range []struct {
		typ  format.Type
		size int
	}{
		{format.Boolean, 0},
		{format.Int32, 4},
		{format.Int64, 8},
		{format.Int96, 12},
		{format.Float, 4},
		{format.Double, 8},
		{format.ByteArray, 0},
	} {
		if size := test.typ.Size(); size != test.size {
			t.Errorf("%s: size mismatch: want=%d got=%d", test.typ, test.size, size)
		}
	}
}

func TestStatisticsIsZero(t *testing.T) {
	if s := (format.Statistics{}); !s.IsZero() {
		t.Error("empty statistics must be zero")
	}
	if s := (format.Statistics{NullCount: 1}); s.IsZero() {
		t.Error("statistics with a null count must not be zero")
	}
}
