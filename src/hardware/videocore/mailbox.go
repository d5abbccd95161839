package videocore

import (
	"hellokernel/src/lib/mmio"
	"hellokernel/src/lib/trust"
)

// mailbox 0 registers, offsets from the board's peripheral base
const (
	MailboxRead   mmio.Offset = 0x0000B880
	MailboxStatus mmio.Offset = 0x0000B898
	MailboxWrite  mmio.Offset = 0x0000B8A0
)

const MailboxFull = 0x80000000
const MailboxEmpty = 0x40000000
const MailboxResponse = 0x80000000
const MailboxRequest = 0x0

// property tags channel, ARM to VC
const MailboxChannelProperties = 8

/*tags*/
const MailboxTagGetClockRate = 0x00030002
const MailboxTagSetClockRate = 0x00038002
const MailboxTagLast = 0x0

// bit 31 of a tag's request/response size word marks it as answered
const MailboxTagResponse = 0x80000000

// clock id of the UART reference clock
const ClockUART = 2

var RegisterNames = map[mmio.Offset]string{
	MailboxRead:   "MBOX_READ",
	MailboxStatus: "MBOX_STATUS",
	MailboxWrite:  "MBOX_WRITE",
}

// IsMailboxRegister reports whether off is one of the mailbox 0 registers.
func IsMailboxRegister(off mmio.Offset) bool {
	_, ok := RegisterNames[off]
	return ok
}

// ChannelWord packs a buffer address and a channel the way the mailbox wants
// them: address in the top 28 bits, channel in the low 4.
func ChannelWord(addr uint32, ch uint8) uint32 {
	return (addr &^ 0xf) | uint32(ch&0xf)
}

// Mailbox talks to the VideoCore firmware through mailbox 0.  Wait is the
// polling primitive; nil means mmio.WaitUntil.
type Mailbox struct {
	Regs mmio.RegisterAccess
	Wait mmio.WaitFunc
}

func NewMailbox(regs mmio.RegisterAccess) *Mailbox {
	return &Mailbox{Regs: regs, Wait: mmio.WaitUntil}
}

// Call hands the message to the firmware on channel ch and spins until the
// firmware hands the same channel word back.  There is no timeout.  The
// answer is written over the request in m; the result is true if the
// firmware marked the buffer as a successful response.
//
// Uses of this function are NOT multithread safe: the message is reused in
// place for the response.
func (mb *Mailbox) Call(ch uint8, m *Message) bool {
	wait := mb.Wait
	if wait == nil {
		wait = mmio.WaitUntil
	}
	word := ChannelWord(m.Addr(), ch)
	wait(mb.Regs, MailboxStatus, mmio.Clear(MailboxFull))
	mb.Regs.Write(MailboxWrite, word)
	for {
		wait(mb.Regs, MailboxStatus, mmio.Clear(MailboxEmpty))
		read := mb.Regs.Read(MailboxRead)
		if read == word {
			break
		}
		trust.Debugf("mailbox: skipping 0x%08x while waiting for 0x%08x", read, word)
	}
	return m.Word(1) == MailboxResponse
}

// SetClockRate asks the firmware to run clock at hz.  The rate the firmware
// actually picked comes back, along with false if the call failed.
func (mb *Mailbox) SetClockRate(m *Message, clock uint32, hz uint32) (uint32, bool) {
	m.SetClockRate(clock, hz)
	if !mb.Call(MailboxChannelProperties, m) {
		return 0, false
	}
	return m.Rate()
}

// this returns the rate of the given clock, which can vary based on the
// underlying system clock speed
func (mb *Mailbox) GetClockRate(m *Message, clock uint32) (uint32, bool) {
	m.GetClockRate(clock)
	if !mb.Call(MailboxChannelProperties, m) {
		return 0, false
	}
	return m.Rate()
}
