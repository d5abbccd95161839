package videocore

import (
	"testing"

	"hellokernel/src/lib/mmio"
	"hellokernel/src/lib/mmio/mmiotest"
)

func newTestMailbox(t *testing.T, addr uint32) (*Mailbox, *mmiotest.Recorder, *Message) {
	t.Helper()
	regs := mmiotest.NewRecorder()
	m, err := NewMessage(new([MessageWords]uint32), addr)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	return &Mailbox{Regs: regs, Wait: mmio.Bounded(100)}, regs, m
}

func TestCallWritesChannelWord(t *testing.T) {
	mb, regs, m := newTestMailbox(t, 0x1000)
	regs.OnWrite(MailboxWrite, func(v uint32) { regs.Queue(MailboxRead, v) })
	m.SetClockRate(ClockUART, 3000000)
	mb.Call(MailboxChannelProperties, m)

	w := regs.Writes(MailboxWrite)
	if len(w) != 1 || w[0] != 0x1008 {
		t.Errorf("expected a single write of 0x1008, got %v", w)
	}
}

func TestCallWaitsForRoomBeforeWriting(t *testing.T) {
	mb, regs, m := newTestMailbox(t, 0x1000)
	regs.Queue(MailboxStatus, MailboxFull, MailboxFull, 0)
	regs.OnWrite(MailboxWrite, func(v uint32) { regs.Queue(MailboxRead, v) })
	mb.Call(MailboxChannelProperties, m)

	write := regs.Index(0, mmiotest.Write, MailboxWrite)
	fullPolls := 0
	for _, op := range regs.Ops[:write] {
		if op.Offset == MailboxStatus {
			fullPolls++
		}
	}
	if prev := regs.Ops[write-1]; prev.Offset != MailboxStatus || prev.Value&MailboxFull != 0 {
		t.Errorf("wrote without seeing room in the mailbox, previous op %v", prev)
	}
	if fullPolls != 3 {
		t.Errorf("expected 3 status polls before the write, got %d", fullPolls)
	}
}

func TestCallKeepsPollingUntilOwnWord(t *testing.T) {
	mb, regs, m := newTestMailbox(t, 0x1000)
	regs.OnWrite(MailboxWrite, func(v uint32) {
		// a stale answer first, then ours
		regs.Queue(MailboxRead, 0x2008, v)
	})
	mb.Call(MailboxChannelProperties, m)

	if n := regs.Reads(MailboxRead); n != 2 {
		t.Errorf("expected exactly 2 reads of MBOX_READ, got %d", n)
	}
	last := regs.Ops[len(regs.Ops)-1]
	if last.Offset != MailboxRead || last.Value != 0x1008 {
		t.Errorf("expected to stop right after reading 0x1008, last op %v", last)
	}
}

func TestCallDoesNotReadWhileEmpty(t *testing.T) {
	mb, regs, m := newTestMailbox(t, 0x1000)
	regs.OnWrite(MailboxWrite, func(v uint32) {
		regs.Queue(MailboxStatus, MailboxEmpty, MailboxEmpty, 0)
		regs.Queue(MailboxRead, v)
	})
	mb.Call(MailboxChannelProperties, m)

	write := regs.Index(0, mmiotest.Write, MailboxWrite)
	read := regs.Index(write, mmiotest.Read, MailboxRead)
	status := 0
	for _, op := range regs.Ops[write:read] {
		if op.Offset == MailboxStatus {
			status++
		}
	}
	if status != 3 {
		t.Errorf("expected 3 status polls between write and read, got %d", status)
	}
	if regs.Ops[read-1].Value&MailboxEmpty != 0 {
		t.Errorf("read MBOX_READ right after an empty status")
	}
}

func TestSetClockRateUsesAnswer(t *testing.T) {
	mb, regs, m := newTestMailbox(t, 0x1000)
	regs.OnWrite(MailboxWrite, func(v uint32) {
		m.SetWord(1, MailboxResponse)
		m.SetWord(4, MailboxTagResponse|8)
		m.SetWord(6, 48000000)
		regs.Queue(MailboxRead, v)
	})
	rate, ok := mb.SetClockRate(m, ClockUART, 3000000)
	if !ok || rate != 48000000 {
		t.Errorf("expected 48000000,true but got %d,%v", rate, ok)
	}
}

func TestSetClockRateWithoutAnswer(t *testing.T) {
	mb, regs, m := newTestMailbox(t, 0x1000)
	regs.OnWrite(MailboxWrite, func(v uint32) { regs.Queue(MailboxRead, v) })
	if _, ok := mb.SetClockRate(m, ClockUART, 3000000); ok {
		t.Errorf("firmware never answered, expected !ok")
	}
}
