//go:build linux && !tinygo

// Command probe looks at a running board from Linux: the UART clock as the
// firmware reports it and, with -devmem, the live UART0 registers.
package main

import (
	"flag"
	"fmt"
	"os"

	colorable "github.com/mattn/go-colorable"

	"hellokernel/src/hardware/bcm2835"
	"hellokernel/src/hardware/rpi"
	"hellokernel/src/hardware/videocore"
	"hellokernel/src/lib/mmio"
	"hellokernel/src/lib/trust"
)

var boardFlag = flag.String("board", "raspi3", "board profile: raspi0 .. raspi5")
var devmemFlag = flag.Bool("devmem", false, "also dump the UART0 registers through "+mmio.DevMemPath)
var verbose = flag.Int("v", 0, "verbosity level: 0 terse (default), 1 debug info")

var dumped = []mmio.Offset{
	bcm2835.UART0FR,
	bcm2835.UART0IBRD,
	bcm2835.UART0FBRD,
	bcm2835.UART0LCRH,
	bcm2835.UART0CR,
	bcm2835.UART0IMSC,
}

func main() {
	flag.Parse()
	trust.SetOutput(colorable.NewColorableStderr())
	trust.SetColor(true)
	trust.SetExit(os.Exit)
	if *verbose == 0 {
		trust.SetLevel(trust.WarnMask)
	}

	board, err := rpi.Lookup(*boardFlag)
	if err != nil {
		trust.Fatalf(1, "%v", err)
	}

	vcio, err := videocore.OpenVCIO(videocore.VCIOPath)
	if err != nil {
		trust.Errorf("%v", err)
	} else {
		defer vcio.Close()
		rate, err := vcio.GetClockRate(videocore.Allocate(), videocore.ClockUART)
		if err != nil {
			trust.Errorf("%v", err)
		} else {
			ibrd, fbrd := bcm2835.Divisors(rate, bcm2835.BaudRate)
			fmt.Printf("uart clock %d Hz, %d baud needs divisors %d/%d\n", rate, bcm2835.BaudRate, ibrd, fbrd)
		}
	}

	if !*devmemFlag {
		return
	}
	mem, err := mmio.OpenDevMem(mmio.DevMemPath, board.Base)
	if err != nil {
		trust.Fatalf(2, "%v", err)
	}
	defer mem.Close()
	trust.Debugf("mapped %s at 0x%08x", board.Name, mem.Base())
	for _, off := range dumped {
		fmt.Printf("%-11s 0x%08x\n", bcm2835.RegisterNames[off], mem.Read(off))
	}
}
