//go:build tinygo

// Command kernel is the firmware image: bring up UART0 and echo forever.
// Build it with exactly one board tag, e.g.
//
//	tinygo build -target=./rpi3.json -tags raspi3 -o kernel8.elf ./src/echo/cmd/kernel
package main

import (
	"hellokernel/src/echo"
	"hellokernel/src/hardware/bcm2835"
	"hellokernel/src/hardware/videocore"
	"hellokernel/src/lib/mmio"
	"hellokernel/src/lib/trust"
)

func main() {
	trust.SetLevel(trust.Nothing)

	var msg *videocore.Message
	if board.RequiresClockNegotiation {
		msg = videocore.Allocate()
	}
	uart, err := bcm2835.NewPL011(mmio.Volatile{Base: uintptr(board.Base)}, board, msg)
	if err != nil {
		//no console yet, nothing to do but stop
		trust.Fatalf(1, "%v", err)
	}
	echo.Run(uart)
}
