package bcm2835

import (
	"errors"

	"hellokernel/src/hardware/rpi"
	"hellokernel/src/hardware/videocore"
	"hellokernel/src/lib/mmio"
	"hellokernel/src/lib/trust"

	"tinygo.org/x/drivers"
)

const BaudRate = 115200

// ReferenceClockHz is what we ask the firmware to run the UART clock at, and
// what older boards run it at out of reset.
const ReferenceClockHz = 3000000

// SettleDelay is the pause GPPUD/GPPUDCLK0 need between writes.
const SettleDelay = 150

var ErrNoMessage = errors.New("board needs clock negotiation but no mailbox message was given")

// every source in the mask: rx, tx, receive timeout, framing/parity/break/
// overrun errors and the CTS modem line
var interruptMask = mmio.Bits[uint32](1, 4, 5, 6, 7, 8, 9, 10)

var uartPins = mmio.Bits[uint32](UART0TXPin, UART0RXPin)

// PL011 is UART0 run by polling.  It never uses interrupts and never gives
// up: every wait spins on a flag until the hardware satisfies it.
type PL011 struct {
	Regs    mmio.RegisterAccess
	Board   rpi.Profile
	Mailbox *videocore.Mailbox
	Message *videocore.Message
	Delay   mmio.DelayFunc
	Wait    mmio.WaitFunc

	clockHz uint32
}

var _ drivers.UART = (*PL011)(nil)

// NewPL011 gets UART0 ready to be initialized on board.  msg is the one
// mailbox buffer; it may be nil if the board does not negotiate its clock.
func NewPL011(regs mmio.RegisterAccess, board rpi.Profile, msg *videocore.Message) (*PL011, error) {
	if board.RequiresClockNegotiation && msg == nil {
		return nil, ErrNoMessage
	}
	return &PL011{
		Regs:    regs,
		Board:   board,
		Mailbox: videocore.NewMailbox(regs),
		Message: msg,
		Delay:   mmio.Delay,
		Wait:    mmio.WaitUntil,
	}, nil
}

// Init takes the UART from whatever state it is in to 115200 8N1, FIFOs
// on, interrupts masked, enabled.  The order of the writes matters; running
// it again from an enabled state gives the same result.
func (u *PL011) Init() {
	u.Regs.Write(UART0CR, 0)

	// the pin-mux handshake: no pull on 14 and 15
	u.Regs.Write(GPPUD, 0)
	u.Delay(SettleDelay)
	u.Regs.Write(GPPUDCLK0, uartPins)
	u.Delay(SettleDelay)
	u.Regs.Write(GPPUDCLK0, 0)

	u.Regs.Write(UART0ICR, ClearAllInterrupts)

	u.clockHz = ReferenceClockHz
	if u.Board.RequiresClockNegotiation {
		u.negotiateClock()
	}

	ibrd, fbrd := Divisors(u.clockHz, BaudRate)
	u.Regs.Write(UART0IBRD, ibrd)
	u.Regs.Write(UART0FBRD, fbrd)

	u.Regs.Write(UART0LCRH, EnableFIFOs|WordLength8Bits)
	u.Regs.Write(UART0IMSC, interruptMask)
	u.Regs.Write(UART0CR, UARTEnable|TransmitEnable|ReceiveEnable)
	trust.Debugf("uart0: %s clock %d Hz, divisors %d/%d", u.Board.Name, u.clockHz, ibrd, fbrd)
}

func (u *PL011) negotiateClock() {
	mb := u.Mailbox
	if mb == nil {
		mb = videocore.NewMailbox(u.Regs)
	}
	if mb.Wait == nil {
		mb.Wait = u.Wait
	}
	rate, ok := mb.SetClockRate(u.Message, videocore.ClockUART, ReferenceClockHz)
	if ok && rate != 0 {
		if ibrd, _ := Divisors(rate, BaudRate); ValidDivisor(ibrd) {
			u.clockHz = rate
			return
		}
		trust.Warnf("uart0: firmware clock %d Hz cannot make %d baud, assuming %d Hz", rate, BaudRate, ReferenceClockHz)
		return
	}
	trust.Warnf("uart0: firmware did not confirm the clock, assuming %d Hz", ReferenceClockHz)
}

// ClockHz is the UART reference clock the divisors were computed from.
func (u *PL011) ClockHz() uint32 {
	return u.clockHz
}

// PutByte waits for room in the transmit FIFO and then sends c.
func (u *PL011) PutByte(c byte) {
	u.Wait(u.Regs, UART0FR, mmio.Clear(TransmitFIFOFull))
	u.Regs.Write(UART0DR, uint32(c))
}

// GetByte waits for the receive FIFO to have something and returns it.
func (u *PL011) GetByte() byte {
	u.Wait(u.Regs, UART0FR, mmio.Clear(ReceiveFIFOEmpty))
	return byte(u.Regs.Read(UART0DR))
}

// PutString sends s a byte at a time.  No line ending translation.
func (u *PL011) PutString(s string) {
	for i := 0; i < len(s); i++ {
		u.PutByte(s[i])
	}
}

// Buffered is 1 when at least one byte is waiting; the flag register does
// not say how many.
func (u *PL011) Buffered() int {
	if u.Regs.Read(UART0FR)&ReceiveFIFOEmpty != 0 {
		return 0
	}
	return 1
}

// Read blocks for the first byte and then takes whatever else is ready.
func (u *PL011) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = u.GetByte()
	n := 1
	for n < len(p) && u.Buffered() > 0 {
		p[n] = u.GetByte()
		n++
	}
	return n, nil
}

func (u *PL011) Write(p []byte) (int, error) {
	for _, c := range p {
		u.PutByte(c)
	}
	return len(p), nil
}

func (u *PL011) WriteByte(c byte) error {
	u.PutByte(c)
	return nil
}

func (u *PL011) WriteString(s string) (int, error) {
	u.PutString(s)
	return len(s), nil
}
