package encoding_test

import (
	"bytes"
	"testing"

	"github.com/segmentio/parquet-arrow/encoding"
	"github.com/segmentio/parquet-arrow/encoding/rle"
)

func fuzzLevelEncoding(fuzz func(e encoding.LevelEncoding, maxLevel uint8)) {
	for bitWidth := 1; bitWidth <= rle.MaxBitWidth; bitWidth++ {
		fuzz(&rle.Encoding{BitWidth: bitWidth}, uint8(1<<bitWidth-1))
	}
}

func FuzzEncodeLevels(f *testing.F) {
	f.Add([]byte{1, 0, 1})
	f.Add(bytes.Repeat([]byte{1}, 100))
	f.Add([]byte{0, 1, 0, 1, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzLevelEncoding(func(e encoding.LevelEncoding, maxLevel uint8) {
			levels := make([]uint8, len(input))
			for i, b := range input {
				levels[i] = b & maxLevel
			}

			encoded, err := e.EncodeLevels(nil, levels)
			if err != nil {
				t.Fatalf("%s: encoding %d levels: %v", e, len(levels), err)
			}
			decoded, err := e.DecodeLevels(nil, encoded, len(levels))
			if err != nil {
				t.Fatalf("%s: decoding %d levels: %v", e, len(levels), err)
			}
			if !bytes.Equal(decoded, levels) {
				t.Fatalf("%s: levels mismatch after round trip:\nwant = %v\ngot  = %v", e, levels, decoded)
			}
		})
	})
}

func FuzzDecodeLevels(f *testing.F) {
	f.Add([]byte{0x03, 0x05}, 3)
	f.Add([]byte{0x14, 0x01}, 10)
	f.Add([]byte{0xFF, 0xFF, 0x01}, 1000)

	f.Fuzz(func(t *testing.T, input []byte, numValues int) {
		if numValues < 0 || numValues > 1<<16 {
			t.Skip()
		}
		fuzzLevelEncoding(func(e encoding.LevelEncoding, maxLevel uint8) {
			levels, err := e.DecodeLevels(nil, input, numValues)
			if err != nil {
				return
			}
			if len(levels) != numValues {
				t.Fatalf("%s: wrong number of levels: want=%d got=%d", e, numValues, len(levels))
			}
			for i, level := range levels {
				if level > maxLevel {
					t.Fatalf("%s: level at index %d is too large: %d", e, i, level)
				}
			}
		})
	})
}
