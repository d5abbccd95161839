//go:build !tinygo

package mmio

import "sync/atomic"

var spins atomic.Uint64

// Delay burns count iterations.  The atomic add keeps the compiler from
// folding the loop away.
func Delay(count int) {
	for i := 0; i < count; i++ {
		spins.Add(1)
	}
}

// Spins is the total number of delay iterations executed so far.
func Spins() uint64 {
	return spins.Load()
}
