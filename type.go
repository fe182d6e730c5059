package parquet

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/segmentio/parquet-arrow/format"
)

// PhysicalType returns the parquet physical type that values of the given
// arrow data type are stored as.
//
// Only fixed-width numeric types have a physical type, the function returns
// an error wrapping ErrUnsupportedType for all other types.
func PhysicalType(dataType arrow.DataType) (format.Type, error) {
	switch dataType.ID() {
	case arrow.INT32, arrow.UINT32, arrow.DATE32, arrow.TIME32:
		return format.Int32, nil
	case arrow.INT64, arrow.UINT64, arrow.DATE64, arrow.TIME64, arrow.TIMESTAMP, arrow.DURATION:
		return format.Int64, nil
	case arrow.FLOAT32:
		return format.Float, nil
	case arrow.FLOAT64:
		return format.Double, nil
	default:
		return format.Boolean, fmt.Errorf("%s: %w", dataType, ErrUnsupportedType)
	}
}
