package mmio

import "golang.org/x/exp/constraints"

// Bits builds a mask with each of the given bit positions set.
func Bits[T constraints.Unsigned](positions ...uint) T {
	var mask T
	for _, p := range positions {
		mask |= T(1) << p
	}
	return mask
}

// HasBits reports whether every bit of mask is set in v.
func HasBits[T constraints.Unsigned](v, mask T) bool {
	return v&mask == mask
}
