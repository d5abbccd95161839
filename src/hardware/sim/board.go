// Package sim models just enough of a Raspberry Pi for the UART bring-up to
// run on a host: the PL011 FIFOs and the firmware end of the property
// mailbox.  Wrap it in an mmiotest.Recorder to get a trace.
package sim

import (
	"hellokernel/src/hardware/bcm2835"
	"hellokernel/src/hardware/rpi"
	"hellokernel/src/hardware/videocore"
	"hellokernel/src/lib/mmio"
	"hellokernel/src/lib/trust"
)

// BufferAddr is where simulated firmware finds the mailbox message.
const BufferAddr = 0x1000

const fifoDepth = 16

type Board struct {
	Profile rpi.Profile
	// UARTClockHz is the clock the firmware runs the UART at.
	UARTClockHz uint32
	// TXStall makes the next n flag reads report a full transmit FIFO.
	TXStall int

	regs    map[mmio.Offset]uint32
	rx      []byte
	tx      []byte
	dropped int
	memory  map[uint32]*videocore.Message
	replies []uint32
	calls   int
}

func NewBoard(p rpi.Profile) *Board {
	clock := uint32(bcm2835.ReferenceClockHz)
	if p == rpi.Raspi4 || p == rpi.Raspi5 {
		clock = 48000000
	}
	return &Board{
		Profile:     p,
		UARTClockHz: clock,
		regs:        make(map[mmio.Offset]uint32),
		memory:      make(map[uint32]*videocore.Message),
	}
}

// Attach makes m visible to the firmware at its address.
func (b *Board) Attach(m *videocore.Message) {
	b.memory[m.Addr()] = m
}

// Send is the host typing: bytes land in the receive FIFO.
func (b *Board) Send(data ...byte) {
	b.rx = append(b.rx, data...)
}

// Pending is the number of received bytes nobody has read yet.
func (b *Board) Pending() int { return len(b.rx) }

// Transmitted is everything the UART has sent so far.
func (b *Board) Transmitted() []byte { return b.tx }

// Dropped counts data register writes made while the transmitter was off.
func (b *Board) Dropped() int { return b.dropped }

// MailboxCalls counts the property messages the firmware answered.
func (b *Board) MailboxCalls() int { return b.calls }

// Register is the last value written to off.
func (b *Board) Register(off mmio.Offset) uint32 { return b.regs[off] }

// Enabled reports whether the UART is on with both directions enabled.
func (b *Board) Enabled() bool {
	all := uint32(bcm2835.UARTEnable | bcm2835.TransmitEnable | bcm2835.ReceiveEnable)
	return mmio.HasBits(b.regs[bcm2835.UART0CR], all)
}

// Baud is the rate the divisor registers currently give.
func (b *Board) Baud() uint32 {
	div := b.regs[bcm2835.UART0IBRD]<<6 | b.regs[bcm2835.UART0FBRD]&0x3f
	if div == 0 {
		return 0
	}
	return uint32(uint64(b.UARTClockHz) * 4 / uint64(div))
}

func (b *Board) Read(off mmio.Offset) uint32 {
	switch off {
	case bcm2835.UART0FR:
		var flags uint32
		if len(b.rx) == 0 {
			flags |= bcm2835.ReceiveFIFOEmpty
		}
		if b.TXStall > 0 {
			b.TXStall--
			flags |= bcm2835.TransmitFIFOFull
		}
		return flags
	case bcm2835.UART0DR:
		if len(b.rx) == 0 {
			return 0
		}
		c := b.rx[0]
		b.rx = b.rx[1:]
		return uint32(c)
	case videocore.MailboxStatus:
		if len(b.replies) == 0 {
			return videocore.MailboxEmpty
		}
		if len(b.replies) >= fifoDepth {
			return videocore.MailboxFull
		}
		return 0
	case videocore.MailboxRead:
		if len(b.replies) == 0 {
			return 0
		}
		r := b.replies[0]
		b.replies = b.replies[1:]
		return r
	}
	return b.regs[off]
}

func (b *Board) Write(off mmio.Offset, value uint32) {
	switch off {
	case bcm2835.UART0DR:
		if !b.Enabled() {
			b.dropped++
			return
		}
		b.tx = append(b.tx, byte(value))
		return
	case bcm2835.UART0ICR:
		return //write-only, clears pending bits
	case videocore.MailboxWrite:
		b.firmware(value)
		return
	}
	b.regs[off] = value
}

// firmware answers a property message in place and posts the channel word
// back on the read side.
func (b *Board) firmware(word uint32) {
	ch := word & 0xf
	m := b.memory[word&^0xf]
	if m == nil || ch != videocore.MailboxChannelProperties {
		trust.Warnf("sim: mailbox write 0x%08x has no message behind it", word)
		b.replies = append(b.replies, word)
		return
	}
	b.calls++
	ok := true
	switch m.Word(2) {
	case videocore.MailboxTagSetClockRate:
		if m.Word(5) == videocore.ClockUART {
			b.UARTClockHz = m.Word(6)
		}
		m.SetWord(6, b.UARTClockHz)
		m.SetWord(4, videocore.MailboxTagResponse|8)
	case videocore.MailboxTagGetClockRate:
		m.SetWord(6, b.UARTClockHz)
		m.SetWord(4, videocore.MailboxTagResponse|8)
	default:
		ok = false
	}
	if ok {
		m.SetWord(1, videocore.MailboxResponse)
	} else {
		m.SetWord(1, videocore.MailboxResponse|1)
	}
	b.replies = append(b.replies, word)
}
