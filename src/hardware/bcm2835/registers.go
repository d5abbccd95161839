package bcm2835

import "hellokernel/src/lib/mmio"

// Offsets from the board's peripheral base.  The numbers are the
// compatibility contract with the BCM283x/BCM2711 family; names follow the
// datasheet.
const (
	GPIOBase  mmio.Offset = 0x00200000
	GPPUD                 = GPIOBase + 0x94 //pull-up/down enable
	GPPUDCLK0             = GPIOBase + 0x98 //pull-up/down enable clock, pins 0-31

	UART0Base = GPIOBase + 0x1000
	UART0DR   = UART0Base + 0x00 //data
	UART0FR   = UART0Base + 0x18 //flags
	UART0IBRD = UART0Base + 0x24 //integer baud divisor
	UART0FBRD = UART0Base + 0x28 //fractional baud divisor
	UART0LCRH = UART0Base + 0x2C //line control
	UART0CR   = UART0Base + 0x30 //control
	UART0IMSC = UART0Base + 0x38 //interrupt mask set/clear
	UART0ICR  = UART0Base + 0x44 //interrupt clear
)

// UART0 (PL011) is wired to GPIO 14 (TXD0) and 15 (RXD0).
const UART0TXPin = 14
const UART0RXPin = 15

// flag register bitfields
const ReceiveFIFOEmpty = 1 << 4
const TransmitFIFOFull = 1 << 5

// line control register bitfields
const EnableFIFOs = 1 << 4
const WordLength8Bits = 3 << 5

// control register bitfields
const UARTEnable = 1 << 0
const TransmitEnable = 1 << 8
const ReceiveEnable = 1 << 9

// writing this to the interrupt clear register clears every pending interrupt
const ClearAllInterrupts = 0x7FF

var RegisterNames = map[mmio.Offset]string{
	GPPUD:     "GPPUD",
	GPPUDCLK0: "GPPUDCLK0",
	UART0DR:   "UART0_DR",
	UART0FR:   "UART0_FR",
	UART0IBRD: "UART0_IBRD",
	UART0FBRD: "UART0_FBRD",
	UART0LCRH: "UART0_LCRH",
	UART0CR:   "UART0_CR",
	UART0IMSC: "UART0_IMSC",
	UART0ICR:  "UART0_ICR",
}
