package videocore

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

// MessageWords is the size of a single-tag clock message:
// size, code, tag, value buffer size, request/response size,
// clock id, rate, skip turbo, end tag.
const MessageWords = 9

const messageBytes = MessageWords * 4

// clock tags carry 12 bytes of value buffer (id, rate, skip turbo)
const clockTagBufferSize = 12
const clockTagRequestSize = 8

var ErrMisaligned = errors.New("mailbox buffer is not 16 byte aligned")

// Message is the one property-tag buffer shared with the firmware.  It must
// sit on a 16 byte boundary because the low nibble of its address carries the
// channel.  The firmware writes its answer over the request, so the words
// are touched with atomic loads and stores; the compiler cannot know the GPU
// changed them.
type Message struct {
	words *[MessageWords]uint32
	addr  uint32
}

// NewMessage wraps words, which the firmware (or a simulation of it) will
// see at addr.
func NewMessage(words *[MessageWords]uint32, addr uint32) (*Message, error) {
	if addr&0xf != 0 {
		return nil, fmt.Errorf("%w: 0x%08x", ErrMisaligned, addr)
	}
	return &Message{words: words, addr: addr}, nil
}

// Allocate places a message in Go memory on a 16 byte boundary.  The
// address is the pointer itself, which is what the firmware wants on a board
// with no MMU turned on.
func Allocate() *Message {
	ptr := sixteenByteAlignedPointer(messageBytes)
	return &Message{
		words: (*[MessageWords]uint32)(unsafe.Pointer(ptr)),
		addr:  uint32(uintptr(unsafe.Pointer(ptr))),
	}
}

//pass in the number of bytes you want to be aligned to 16byte boundary
//the default allocator only allocates things at their "natural" sizes
func sixteenByteAlignedPointer(size uintptr) *uint64 {
	units := (((size / 16) + 1) * 16) / 8
	bigger := make([]uint64, units+2)
	hackFor16ByteAlignment := &bigger[0]
	ptr := uintptr(unsafe.Pointer(hackFor16ByteAlignment))
	if ptr&0xf != 0 {
		hackFor16ByteAlignment = &bigger[(16-(ptr&0xf))/8]
	}
	return hackFor16ByteAlignment
}

func (m *Message) Addr() uint32 { return m.addr }

func (m *Message) Word(i int) uint32 {
	return atomic.LoadUint32(&m.words[i])
}

func (m *Message) SetWord(i int, v uint32) {
	atomic.StoreUint32(&m.words[i], v)
}

// Words copies the current contents out.
func (m *Message) Words() [MessageWords]uint32 {
	var result [MessageWords]uint32
	for i := range result {
		result[i] = m.Word(i)
	}
	return result
}

// Load replaces the contents, for transports that copy the buffer through
// the kernel.
func (m *Message) Load(words [MessageWords]uint32) {
	for i, w := range words {
		m.SetWord(i, w)
	}
}

func (m *Message) clockRequest(tag uint32, clock uint32, hz uint32) {
	m.SetWord(0, messageBytes)
	m.SetWord(1, MailboxRequest)
	m.SetWord(2, tag)
	m.SetWord(3, clockTagBufferSize)
	m.SetWord(4, clockTagRequestSize)
	m.SetWord(5, clock)
	m.SetWord(6, hz)
	m.SetWord(7, 0) //skip turbo
	m.SetWord(8, MailboxTagLast)
}

// SetClockRate fills in a set-clock-rate request.
func (m *Message) SetClockRate(clock uint32, hz uint32) {
	m.clockRequest(MailboxTagSetClockRate, clock, hz)
}

// GetClockRate fills in a get-clock-rate request.
func (m *Message) GetClockRate(clock uint32) {
	m.clockRequest(MailboxTagGetClockRate, clock, 0)
	m.SetWord(3, clockTagRequestSize)
	m.SetWord(4, 4)
}

// Rate reads the clock rate out of an answered clock message.  ok is false
// unless the firmware accepted the buffer and answered the tag.
func (m *Message) Rate() (uint32, bool) {
	if m.Word(1) != MailboxResponse || m.Word(4)&MailboxTagResponse == 0 {
		return 0, false
	}
	return m.Word(6), true
}
