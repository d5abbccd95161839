//go:build linux && !tinygo

package mmio

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

const DevMemPath = "/dev/mem"

// DevMemWindow covers the mailbox (0xB880), the GPIO block (0x200000) and
// UART0 (0x201000) from the peripheral base.
const DevMemWindow = 0x202000

// DevMem reaches the peripherals from Linux user space through a shared
// mapping of /dev/mem.  Accesses are atomic loads and stores so none of them
// are cached, merged or reordered by the compiler.
type DevMem struct {
	base uint32
	mem  []byte
}

func OpenDevMem(path string, base uint32) (*DevMem, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: open %s: %w", path, err)
	}
	defer unix.Close(fd)
	mem, err := unix.Mmap(fd, int64(base), DevMemWindow, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmio: mmap %s at 0x%08x: %w", path, base, err)
	}
	return &DevMem{base: base, mem: mem}, nil
}

func (d *DevMem) word(off Offset) *uint32 {
	if off&3 != 0 || int(off)+4 > len(d.mem) {
		panic(fmt.Sprintf("mmio: offset 0x%06x outside the mapped window", uint32(off)))
	}
	return (*uint32)(unsafe.Pointer(&d.mem[off]))
}

func (d *DevMem) Read(off Offset) uint32 {
	return atomic.LoadUint32(d.word(off))
}

func (d *DevMem) Write(off Offset, value uint32) {
	atomic.StoreUint32(d.word(off), value)
}

func (d *DevMem) Base() uint32 { return d.base }

func (d *DevMem) Close() error {
	if d.mem == nil {
		return nil
	}
	err := unix.Munmap(d.mem)
	d.mem = nil
	return err
}
