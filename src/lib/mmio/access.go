package mmio

import (
	"errors"
	"fmt"
)

// Offset is a register's byte offset from the board's peripheral base.
type Offset uint32

// RegisterAccess is the only way driver code touches hardware. Every Read and
// Write must reach the bus exactly once and in program order.
type RegisterAccess interface {
	Read(off Offset) uint32
	Write(off Offset, value uint32)
}

// WaitFunc polls off until done reports true and returns the value that
// satisfied it.
type WaitFunc func(r RegisterAccess, off Offset, done func(uint32) bool) uint32

// DelayFunc spins for roughly count iterations.
type DelayFunc func(count int)

var ErrWaitExhausted = errors.New("mmio: wait exhausted")

// WaitUntil never gives up.  A register that never satisfies done hangs the
// caller, which is the only sane thing to do before there is anybody to
// report an error to.
func WaitUntil(r RegisterAccess, off Offset, done func(uint32) bool) uint32 {
	for {
		v := r.Read(off)
		if done(v) {
			return v
		}
	}
}

// Bounded is WaitUntil with a poll limit, for simulations.  Running out of
// polls panics with an error wrapping ErrWaitExhausted.
func Bounded(limit int) WaitFunc {
	return func(r RegisterAccess, off Offset, done func(uint32) bool) uint32 {
		for i := 0; i < limit; i++ {
			v := r.Read(off)
			if done(v) {
				return v
			}
		}
		panic(fmt.Errorf("%w: register 0x%06x after %d polls", ErrWaitExhausted, uint32(off), limit))
	}
}

// Clear is a WaitUntil predicate: all bits of mask are zero.
func Clear(mask uint32) func(uint32) bool {
	return func(v uint32) bool { return v&mask == 0 }
}
