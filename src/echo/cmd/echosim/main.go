// Command echosim runs the kernel's bring-up and echo loop against a
// simulated board and prints what the UART sends.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/shlex"
	colorable "github.com/mattn/go-colorable"

	"hellokernel/src/echo"
	"hellokernel/src/hardware/bcm2835"
	"hellokernel/src/hardware/rpi"
	"hellokernel/src/hardware/sim"
	"hellokernel/src/hardware/videocore"
	"hellokernel/src/lib/mmio"
	"hellokernel/src/lib/mmio/mmiotest"
	"hellokernel/src/lib/trust"
)

var helpFlag = flag.Bool("h", false, "get usage info")
var boardFlag = flag.String("board", "raspi3", "board profile: raspi0 .. raspi5")
var inputFlag = flag.String("input", "", "what the host types, shell quoted; each word is followed by a return")
var verbose = flag.Int("v", 0, "verbosity level: 0 terse (default), 1 debug info, 2 register trace")
var pollLimit = flag.Int("polls", 10000, "give up on a wait after this many polls")

func main() {
	flag.Parse()
	if *helpFlag {
		usage()
	}
	trust.SetOutput(colorable.NewColorableStderr())
	trust.SetColor(true)
	trust.SetExit(os.Exit)
	switch *verbose {
	case 0:
		trust.SetLevel(trust.WarnMask)
	default:
		trust.SetLevel(trust.StatsMask)
	}

	board, err := rpi.Lookup(*boardFlag)
	if err != nil {
		trust.Fatalf(1, "%v", err)
	}
	words, err := shlex.Split(*inputFlag)
	if err != nil {
		trust.Fatalf(1, "unable to parse -input: %v", err)
	}

	model := sim.NewBoard(board)
	regs := mmiotest.NewRecorder()
	regs.Backing = model
	msg, err := videocore.NewMessage(new([videocore.MessageWords]uint32), sim.BufferAddr)
	if err != nil {
		trust.Fatalf(1, "%v", err)
	}
	model.Attach(msg)
	uart, err := bcm2835.NewPL011(regs, board, msg)
	if err != nil {
		trust.Fatalf(1, "%v", err)
	}
	uart.Wait = mmio.Bounded(*pollLimit)
	uart.Mailbox.Wait = uart.Wait

	for _, w := range words {
		model.Send([]byte(w)...)
		model.Send('\r')
	}

	spins := mmio.Spins()
	uart.Init()
	trust.Statsf("delay", "%d spins during init", mmio.Spins()-spins)
	trust.Infof("%s: uart enabled=%v at %d baud (clock %d Hz)", board, model.Enabled(), model.Baud(), uart.ClockHz())
	echo.Greet(uart)
	for model.Pending() > 0 {
		echo.Step(uart)
	}
	trust.Statsf("uart", "%d mailbox calls, %d register ops, %d bytes out", model.MailboxCalls(), len(regs.Ops), len(model.Transmitted()))

	if *verbose > 1 {
		dumpTrace(regs.Ops)
	}
	os.Stdout.Write(model.Transmitted())
}

func dumpTrace(ops []mmiotest.Op) {
	for i, op := range ops {
		name, ok := bcm2835.RegisterNames[op.Offset]
		if !ok {
			name, ok = videocore.RegisterNames[op.Offset]
		}
		if !ok {
			name = fmt.Sprintf("0x%06x", uint32(op.Offset))
		}
		log.Printf("%5d %s %-11s 0x%08x", i, op.Kind, name, op.Value)
	}
}

func usage() {
	fmt.Printf("usage: echosim [-board name] [-input 'words to type']\n")
	flag.PrintDefaults()
	os.Exit(1)
}
