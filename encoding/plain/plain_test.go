package plain_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/segmentio/parquet-arrow/encoding"
	"github.com/segmentio/parquet-arrow/encoding/plain"
	"github.com/segmentio/parquet-arrow/internal/quick"
)

func TestAppendValues(t *testing.T) {
	tests := []struct {
		scenario string
		encode   func([]byte) []byte
		expected []byte
	}{
		{
			scenario: "int32",
			encode:   func(b []byte) []byte { return plain.AppendValues(b, []int32{1, -1}) },
			expected: []byte{1, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			scenario: "uint32",
			encode:   func(b []byte) []byte { return plain.AppendValues(b, []uint32{0x01020304}) },
			expected: []byte{4, 3, 2, 1},
		},
		{
			scenario: "int64",
			encode:   func(b []byte) []byte { return plain.AppendValues(b, []int64{0x0102030405060708}) },
			expected: []byte{8, 7, 6, 5, 4, 3, 2, 1},
		},
		{
			scenario: "float32",
			encode:   func(b []byte) []byte { return plain.AppendValues(b, []float32{1}) },
			expected: []byte{0x00, 0x00, 0x80, 0x3F},
		},
		{
			scenario: "float64",
			encode:   func(b []byte) []byte { return plain.AppendValues(b, []float64{math.Inf(-1)}) },
			expected: []byte{0, 0, 0, 0, 0, 0, 0xF0, 0xFF},
		},
		{
			scenario: "empty",
			encode:   func(b []byte) []byte { return plain.AppendValues(b, []int64{}) },
			expected: []byte{},
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			prefix := []byte{0xAB}
			encoded := test.encode(prefix)
			if encoded[0] != 0xAB {
				t.Fatal("existing content of the output buffer was overwritten")
			}
			if !bytes.Equal(encoded[1:], test.expected) {
				t.Errorf("encoded values mismatch:\nwant = %#v\ngot  = %#v", test.expected, encoded[1:])
			}
		})
	}
}

func TestAppendInt32(t *testing.T) {
	b := plain.AppendInt32(nil, 0x01020304)
	if !bytes.Equal(b, []byte{4, 3, 2, 1}) {
		t.Errorf("wrong encoding: %#v", b)
	}
	plain.PutInt32(b, 7)
	if v := plain.Int32(b); v != 7 {
		t.Errorf("wrong value: want=7 got=%d", v)
	}
}

func TestDecodeValues(t *testing.T) {
	err := quick.Check(func(values []float64) bool {
		encoded := plain.AppendValues(nil, values)
		if len(encoded) != 8*len(values) {
			t.Errorf("wrong encoded size: want=%d got=%d", 8*len(values), len(encoded))
			return false
		}
		decoded, err := plain.DecodeValues[float64](nil, encoded)
		if err != nil {
			t.Error(err)
			return false
		}
		if len(decoded) != len(values) {
			t.Errorf("wrong number of values: want=%d got=%d", len(values), len(decoded))
			return false
		}
		for i := range values {
			if decoded[i] != values[i] {
				t.Errorf("wrong value at index %d: want=%v got=%v", i, values[i], decoded[i])
				return false
			}
		}
		return true
	})
	if err != nil {
		t.Error(err)
	}
}

func TestDecodeValuesInvalidSize(t *testing.T) {
	_, err := plain.DecodeValues[int32](nil, []byte{1, 2, 3})
	if !errors.Is(err, encoding.ErrInvalidArgument) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestSize(t *testing.T) {
	if n := plain.Size[int32](); n != 4 {
		t.Errorf("int32: want=4 got=%d", n)
	}
	if n := plain.Size[uint64](); n != 8 {
		t.Errorf("uint64: want=8 got=%d", n)
	}
}
