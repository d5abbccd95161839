// Package echo is everything the kernel does once it has a UART: say hello,
// then send back whatever arrives, one byte per line.
package echo

import (
	"io"

	"tinygo.org/x/drivers"
)

const Greeting = "Hello, kernel World!\n"

// Console is any TinyGo UART that needs bringing up before use.
type Console interface {
	drivers.UART
	Init()
}

// Run brings the console up and echoes forever.  It does not return.
func Run(c Console) {
	c.Init()
	Greet(c)
	for {
		Step(c)
	}
}

func Greet(c drivers.UART) {
	io.WriteString(c, Greeting)
}

// Step waits for one byte, sends it back followed by a newline, and returns
// it.
func Step(c drivers.UART) byte {
	var in [1]byte
	for {
		if n, _ := c.Read(in[:]); n == 1 {
			break
		}
	}
	c.Write([]byte{in[0], '\n'})
	return in[0]
}
