package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type scriptedKeys struct {
	keys []rune
}

func (s *scriptedKeys) ReadRune() (rune, error) {
	if len(s.keys) == 0 {
		return 0, io.EOF
	}
	r := s.keys[0]
	s.keys = s.keys[1:]
	return r, nil
}

func TestTranslatorAddsCarriageReturns(t *testing.T) {
	var out bytes.Buffer
	n, err := Translator{W: &out}.Write([]byte("Hello, kernel World!\nA\n"))
	if err != nil || n != 23 {
		t.Errorf("unexpected result %d, %v", n, err)
	}
	expected := "Hello, kernel World!\r\nA\r\n"
	if out.String() != expected {
		t.Errorf("expected %q but got %q", expected, out.String())
	}
}

func TestKeysStopsOnEscape(t *testing.T) {
	var port bytes.Buffer
	keys := &scriptedKeys{keys: []rune{'A', 'é', '\r', EscapeKey, 'x'}}
	if err := Keys(&port, keys); err != nil {
		t.Errorf("escape should end cleanly, got %v", err)
	}
	if port.String() != "Aé\r" {
		t.Errorf("unexpected bytes sent %q", port.String())
	}
	if len(keys.keys) != 1 {
		t.Errorf("should stop reading at the escape key")
	}
}

func TestKeysReportsReadError(t *testing.T) {
	var port bytes.Buffer
	if err := Keys(&port, &scriptedKeys{keys: []rune{'q'}}); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestShow(t *testing.T) {
	var out bytes.Buffer
	if err := Show(&out, strings.NewReader("q\nr\n")); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if out.String() != "q\r\nr\r\n" {
		t.Errorf("unexpected terminal output %q", out.String())
	}
}
