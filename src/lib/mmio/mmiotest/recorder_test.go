package mmiotest

import "testing"

func TestQueueThenSticky(t *testing.T) {
	r := NewRecorder()
	r.Set(0x18, 0x90)
	r.Queue(0x18, 1, 2)
	for i, want := range []uint32{1, 2, 0x90, 0x90} {
		if got := r.Read(0x18); got != want {
			t.Errorf("read %d: expected 0x%x but got 0x%x", i, want, got)
		}
	}
	if r.Reads(0x18) != 4 {
		t.Errorf("expected 4 recorded reads, got %d", r.Reads(0x18))
	}
}

func TestWriteHookAndOrder(t *testing.T) {
	r := NewRecorder()
	seen := uint32(0)
	r.OnWrite(0x20, func(v uint32) { seen = v })
	r.Write(0x30, 0)
	r.Write(0x20, 0x1008)
	r.Write(0x30, 0x301)
	if seen != 0x1008 {
		t.Errorf("hook did not see the write, got 0x%x", seen)
	}
	w := r.Writes(0x30)
	if len(w) != 2 || w[0] != 0 || w[1] != 0x301 {
		t.Errorf("unexpected writes to 0x30: %v", w)
	}
	if i := r.Index(1, Write, 0x30); i != 2 {
		t.Errorf("expected second 0x30 write at 2, got %d", i)
	}
	if r.Index(0, Read, 0x30) != -1 {
		t.Errorf("no reads were made")
	}
}
