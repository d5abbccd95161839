//go:build tinygo

package mmio

import (
	"device/arm"
	"runtime/volatile"
)

var spins volatile.Register32

//Delay burns count iterations. The nop plus the volatile counter keep the
//optimizer from getting rid of it.
func Delay(count int) {
	for i := 0; i < count; i++ {
		arm.Asm("nop")
		spins.Set(spins.Get() + 1)
	}
}

func Spins() uint64 {
	return uint64(spins.Get())
}
