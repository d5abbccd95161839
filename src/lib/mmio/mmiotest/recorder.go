// Package mmiotest provides a register harness that records every access in
// program order and serves programmable reads.
package mmiotest

import (
	"fmt"

	"hellokernel/src/lib/mmio"
)

type Kind int

const (
	Read Kind = iota
	Write
)

func (k Kind) String() string {
	if k == Write {
		return "W"
	}
	return "R"
}

type Op struct {
	Kind   Kind
	Offset mmio.Offset
	Value  uint32
}

func (o Op) String() string {
	return fmt.Sprintf("%s 0x%06x 0x%08x", o.Kind, uint32(o.Offset), o.Value)
}

// Recorder implements mmio.RegisterAccess.  Reads are served first from the
// per-register queue, then from Backing if there is one, then from the last
// value given to Set (zero by default).  Writes are forwarded to Backing.
type Recorder struct {
	Ops     []Op
	Backing mmio.RegisterAccess

	queued  map[mmio.Offset][]uint32
	sticky  map[mmio.Offset]uint32
	onWrite map[mmio.Offset]func(uint32)
}

func NewRecorder() *Recorder {
	return &Recorder{
		queued:  make(map[mmio.Offset][]uint32),
		sticky:  make(map[mmio.Offset]uint32),
		onWrite: make(map[mmio.Offset]func(uint32)),
	}
}

// Queue appends values that the next reads of off will return, in order.
func (r *Recorder) Queue(off mmio.Offset, values ...uint32) {
	r.queued[off] = append(r.queued[off], values...)
}

// Set fixes the value off reads as once its queue is drained.
func (r *Recorder) Set(off mmio.Offset, value uint32) {
	r.sticky[off] = value
}

// OnWrite runs fn after every write to off, so a test can model the device
// reacting to it.
func (r *Recorder) OnWrite(off mmio.Offset, fn func(value uint32)) {
	r.onWrite[off] = fn
}

func (r *Recorder) Read(off mmio.Offset) uint32 {
	var v uint32
	if q := r.queued[off]; len(q) > 0 {
		v = q[0]
		r.queued[off] = q[1:]
	} else if r.Backing != nil {
		v = r.Backing.Read(off)
	} else {
		v = r.sticky[off]
	}
	r.Ops = append(r.Ops, Op{Kind: Read, Offset: off, Value: v})
	return v
}

func (r *Recorder) Write(off mmio.Offset, value uint32) {
	r.Ops = append(r.Ops, Op{Kind: Write, Offset: off, Value: value})
	if r.Backing != nil {
		r.Backing.Write(off, value)
	}
	if fn := r.onWrite[off]; fn != nil {
		fn(value)
	}
}

// Writes returns the values written to off, oldest first.
func (r *Recorder) Writes(off mmio.Offset) []uint32 {
	var result []uint32
	for _, op := range r.Ops {
		if op.Kind == Write && op.Offset == off {
			result = append(result, op.Value)
		}
	}
	return result
}

// Reads counts the reads of off.
func (r *Recorder) Reads(off mmio.Offset) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == Read && op.Offset == off {
			n++
		}
	}
	return n
}

// Index returns the position of the first op at or after from that matches,
// or -1.
func (r *Recorder) Index(from int, kind Kind, off mmio.Offset) int {
	for i := from; i < len(r.Ops); i++ {
		if r.Ops[i].Kind == kind && r.Ops[i].Offset == off {
			return i
		}
	}
	return -1
}

// Touched reports whether any access of either kind hit a register for which
// match is true.
func (r *Recorder) Touched(match func(mmio.Offset) bool) bool {
	for _, op := range r.Ops {
		if match(op.Offset) {
			return true
		}
	}
	return false
}

// Reset forgets the recorded ops but keeps queues, values and hooks.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
