// Package safe provides overflow-checked integer helpers.
package safe

import (
	"fmt"
	"math"
)

// Integer lists the integer types accepted by the converters.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Uint32 converts v to uint32, rejecting negatives and values above math.MaxUint32.
func Uint32[T Integer](v T) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// Int64 converts v to int64, rejecting values above math.MaxInt64.
func Int64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

// SubUint64 returns a-b, saturating at zero instead of wrapping around.
func SubUint64(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
