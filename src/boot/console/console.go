// Package console is the host side of the board's serial line: keystrokes go
// out, whatever the board says comes back to the terminal.
package console

import (
	"io"
	"unicode/utf8"
)

// EscapeKey (ctrl-]) ends a session, like telnet.
const EscapeKey = 0x1d

// KeyReader is satisfied by *tty.TTY.
type KeyReader interface {
	ReadRune() (rune, error)
}

// Translator turns the board's bare newlines into CR LF so a raw terminal
// doesn't staircase.
type Translator struct {
	W io.Writer
}

func (t Translator) Write(p []byte) (int, error) {
	start := 0
	for i, c := range p {
		if c != '\n' {
			continue
		}
		if _, err := t.W.Write(p[start:i]); err != nil {
			return start, err
		}
		if _, err := t.W.Write([]byte("\r\n")); err != nil {
			return i, err
		}
		start = i + 1
	}
	if _, err := t.W.Write(p[start:]); err != nil {
		return start, err
	}
	return len(p), nil
}

// Keys sends every key read from keys to port until EscapeKey or an error.
// It returns nil on escape.
func Keys(port io.Writer, keys KeyReader) error {
	buf := make([]byte, utf8.UTFMax)
	for {
		r, err := keys.ReadRune()
		if err != nil {
			return err
		}
		if r == EscapeKey {
			return nil
		}
		n := utf8.EncodeRune(buf, r)
		if _, err := port.Write(buf[:n]); err != nil {
			return err
		}
	}
}

// Show copies what the board sends to out until the port fails or closes.
func Show(out io.Writer, port io.Reader) error {
	_, err := io.Copy(Translator{W: out}, port)
	return err
}
