// Command console is a serial terminal for a board running the echo kernel.
// Type at it; ctrl-] quits.
package main

import (
	"flag"
	"fmt"
	"os"

	colorable "github.com/mattn/go-colorable"
	tty "github.com/mattn/go-tty"
	"go.bug.st/serial"

	"hellokernel/src/boot/console"
	"hellokernel/src/lib/trust"
)

var helpFlag = flag.Bool("h", false, "get usage info")
var portFlag = flag.String("p", "", "serial device the board's UART0 is on, e.g. /dev/ttyUSB0")
var baudFlag = flag.Int("b", 115200, "baud rate")
var listFlag = flag.Bool("l", false, "list serial ports and exit")
var verbose = flag.Int("v", 0, "verbosity level: 0 terse (default), 1 debug info")

func main() {
	flag.Parse()
	if *helpFlag {
		usage()
	}
	trust.SetOutput(colorable.NewColorableStderr())
	trust.SetColor(true)
	trust.SetExit(os.Exit)
	if *verbose == 0 {
		trust.SetLevel(trust.WarnMask)
	}

	if *listFlag {
		ports, err := serial.GetPortsList()
		if err != nil {
			trust.Fatalf(1, "unable to list serial ports: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}
	if *portFlag == "" {
		usage()
	}

	// 8N1, no flow control
	port, err := serial.Open(*portFlag, &serial.Mode{
		BaudRate: *baudFlag,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		trust.Fatalf(1, "unable to open %s: %v", *portFlag, err)
	}
	defer port.Close()

	term, err := tty.Open()
	if err != nil {
		trust.Fatalf(1, "unable to open the terminal: %v", err)
	}
	defer term.Close()
	restore := term.MustRaw()
	defer restore()

	trust.Infof("connected to %s at %d baud, ctrl-] to quit\r", *portFlag, *baudFlag)
	go func() {
		if err := console.Show(term.Output(), port); err != nil {
			trust.Errorf("reading from %s: %v\r", *portFlag, err)
		}
	}()
	if err := console.Keys(port, term); err != nil {
		trust.Errorf("%v\r", err)
	}
}

func usage() {
	fmt.Printf("usage: console -p [serial device]\n")
	flag.PrintDefaults()
	os.Exit(1)
}
