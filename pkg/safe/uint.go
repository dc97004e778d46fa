// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Int64 converts unsigned integers to int64, rejecting values above math.MaxInt64.
func Int64[T ~uint | ~uint32 | ~uint64](v T) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

// Int converts unsigned integers to int, rejecting values above math.MaxInt.
func Int[T ~uint | ~uint32 | ~uint64](v T) (int, error) {
	if uint64(v) > math.MaxInt {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	return int(v), nil
}

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint64, error) {
	switch value := any(v).(type) {
	case int:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
	case int32:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
	case int64:
		if value < 0 {
			return 0, fmt.Errorf("value %d out of uint64 range", v)
		}
	}
	return uint64(v), nil
}
