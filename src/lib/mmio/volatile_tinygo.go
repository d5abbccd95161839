//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// Volatile is the register access used by the firmware image: raw volatile
// loads and stores at Base+offset.
type Volatile struct {
	Base uintptr
}

func (v Volatile) Read(off Offset) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(v.Base + uintptr(off))))
}

func (v Volatile) Write(off Offset, value uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(v.Base+uintptr(off))), value)
}
