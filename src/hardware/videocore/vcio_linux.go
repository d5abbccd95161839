//go:build linux && !tinygo

package videocore

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const VCIOPath = "/dev/vcio"

// _IOWR(100, 0, char *)
const vcioPropertyRequest = 0xC0000000 | uintptr(unsafe.Sizeof(uintptr(0)))<<16 | 100<<8

// VCIO sends property messages through the Linux firmware driver instead of
// the raw mailbox registers.  The kernel owns the mailbox there, and the
// message is copied through it, so no physical address is involved.
type VCIO struct {
	fd int
}

func OpenVCIO(path string) (*VCIO, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("videocore: open %s: %w", path, err)
	}
	return &VCIO{fd: fd}, nil
}

// Call runs one property exchange.  Like Mailbox.Call the answer replaces
// the request in m.
func (v *VCIO) Call(m *Message) (bool, error) {
	buf := m.Words()
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(v.fd), vcioPropertyRequest, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return false, fmt.Errorf("videocore: property ioctl: %w", errno)
	}
	m.Load(buf)
	return m.Word(1) == MailboxResponse, nil
}

func (v *VCIO) GetClockRate(m *Message, clock uint32) (uint32, error) {
	m.GetClockRate(clock)
	if _, err := v.Call(m); err != nil {
		return 0, err
	}
	rate, ok := m.Rate()
	if !ok {
		return 0, fmt.Errorf("videocore: firmware did not answer clock %d", clock)
	}
	return rate, nil
}

func (v *VCIO) Close() error {
	return unix.Close(v.fd)
}
