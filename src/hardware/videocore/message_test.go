package videocore

import (
	"errors"
	"testing"
)

func TestMisalignedMessageRejected(t *testing.T) {
	for _, addr := range []uint32{0x1001, 0x1004, 0x1008, 0x100c, 0x100f} {
		if _, err := NewMessage(new([MessageWords]uint32), addr); !errors.Is(err, ErrMisaligned) {
			t.Errorf("expected ErrMisaligned for 0x%x, got %v", addr, err)
		}
	}
	m, err := NewMessage(new([MessageWords]uint32), 0x1000)
	if err != nil || m.Addr() != 0x1000 {
		t.Errorf("aligned address refused: %v", err)
	}
}

func TestAllocateIsAligned(t *testing.T) {
	for i := 0; i < 32; i++ {
		m := Allocate()
		if m.Addr()&0xf != 0 {
			t.Fatalf("allocation %d at 0x%08x is not aligned", i, m.Addr())
		}
	}
}

func TestSetClockRateLayout(t *testing.T) {
	m, _ := NewMessage(new([MessageWords]uint32), 0x2000)
	m.SetClockRate(ClockUART, 3000000)
	expected := [MessageWords]uint32{36, 0, 0x38002, 12, 8, 2, 3000000, 0, 0}
	if got := m.Words(); got != expected {
		t.Errorf("expected %v but got %v", expected, got)
	}
	if _, ok := m.Rate(); ok {
		t.Errorf("an unanswered request has no rate")
	}
}

func TestRateFromAnswer(t *testing.T) {
	m, _ := NewMessage(new([MessageWords]uint32), 0x2000)
	m.SetClockRate(ClockUART, 3000000)
	m.SetWord(1, MailboxResponse)
	m.SetWord(4, MailboxTagResponse|8)
	m.SetWord(6, 2999999)
	rate, ok := m.Rate()
	if !ok || rate != 2999999 {
		t.Errorf("expected 2999999,true but got %d,%v", rate, ok)
	}
}

func TestChannelWord(t *testing.T) {
	for addr := uint32(0); addr < 0x10000; addr += 0x10 {
		if got := ChannelWord(addr, MailboxChannelProperties); got != addr|8 {
			t.Fatalf("addr 0x%x: expected 0x%x but got 0x%x", addr, addr|8, got)
		}
	}
	if got := ChannelWord(0x3b4ff0, 8); got != 0x3b4ff8 {
		t.Errorf("expected 0x3b4ff8 but got 0x%x", got)
	}
}
