// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import "code.hybscloud.com/concur/internal/atomicx"

// StickyCounterLF is a lock-free reference counter whose observable value
// never rises from zero once it gets there: once latched, it stays latched.
//
// All operations use relaxed ordering — the counter carries no data
// publication responsibility of its own; it is purely a liveness gate.
type StickyCounterLF struct {
	_ pad
	v atomicx.Uint64
	_ pad
}

// NewStickyCounterLF creates a counter. With no argument the initial
// logical value is 1; an explicit initial may be supplied instead (a
// zero initial starts the counter already latched).
func NewStickyCounterLF(initial ...uint64) *StickyCounterLF {
	v := uint64(1)
	if len(initial) > 0 {
		v = initial[0]
	}
	c := &StickyCounterLF{}
	c.v.StoreRelaxed(v)
	return c
}

// IncrementIfNotZero attempts to add one to the counter. It returns false
// without effect if the counter has already latched to zero.
func (c *StickyCounterLF) IncrementIfNotZero() bool {
	for {
		v := c.v.LoadRelaxed()
		if v == 0 {
			return false
		}
		if c.v.CompareAndSwapRelaxed(v, v+1) {
			return true
		}
	}
}

// Decrement subtracts one from the counter. It returns true exactly once
// across the counter's lifetime: for the single call whose decrement
// drives the value from 1 to 0 (the call that latches the counter).
func (c *StickyCounterLF) Decrement() bool {
	prev := c.v.FetchAddRelaxed(^uint64(0)) // fetch-subtract 1
	return prev == 1
}

// Read returns the counter's current logical value, or 0 if latched.
func (c *StickyCounterLF) Read() uint64 {
	return c.v.LoadRelaxed()
}

// Bit flags used by StickyCounterWF's single-word encoding.
const (
	stickyZero   = uint64(1) << 63 // latched to zero
	stickyHelped = uint64(1) << 62 // a reader helped latch and is owed a report
)

// StickyCounterWF is a wait-free reference counter with the same external
// contract as StickyCounterLF: every operation completes in a bounded
// number of atomic steps regardless of contention.
//
// The count and two control bits share one 64-bit word: bit 63 (ZERO)
// marks "latched to zero", bit 62 (HELPED) marks "a reader helped latch
// and the decrementer that drove the count to zero is owed credit for
// it". Once ZERO is set the low 62 bits are meaningless and are never
// read again.
type StickyCounterWF struct {
	_ pad
	v atomicx.Uint64
	_ pad
}

// NewStickyCounterWF creates a counter. With no argument the initial
// logical value is 1; an explicit initial may be supplied instead (a
// zero initial starts the counter already latched).
func NewStickyCounterWF(initial ...uint64) *StickyCounterWF {
	v := uint64(1)
	if len(initial) > 0 {
		v = initial[0]
	}
	if v == 0 {
		v = stickyZero
	}
	c := &StickyCounterWF{}
	c.v.StoreRelaxed(v)
	return c
}

// IncrementIfNotZero unconditionally adds one to the word and reports
// whether the counter had not yet latched at the moment of the add.
//
// The add is unconditional even when the counter has already latched:
// subsequent decrements still drive the (now meaningless) low bits back
// down, and correctness rests entirely on ZERO being monotonic — once
// set it is never cleared, so any increment that observed it set is
// correctly reported as failed without needing to undo the add.
func (c *StickyCounterWF) IncrementIfNotZero() bool {
	prev := c.v.FetchAddRelaxed(1)
	return prev&stickyZero == 0
}

// Decrement subtracts one from the word. It returns true exactly once
// across the counter's lifetime: for the call that is credited with
// driving the counter to zero, whether it does so directly or by taking
// over credit from a reader that helped latch concurrently.
func (c *StickyCounterWF) Decrement() bool {
	prev := c.v.FetchAddRelaxed(^uint64(0)) // fetch-subtract 1
	if prev != 1 {
		return false
	}

	if c.v.CompareAndSwapRelaxed(0, stickyZero) {
		return true
	}

	// The CAS failed, so the word is no longer 0: either a concurrent Read
	// beat us to the latch (setting HELPED) or a concurrent increment
	// raised the count. Load the word to tell which.
	v := c.v.LoadRelaxed()
	if v&stickyHelped != 0 {
		old := c.v.SwapRelaxed(stickyZero)
		if old&stickyHelped != 0 {
			return true
		}
	}

	// Some concurrent increment raised the count past zero before we
	// could latch; this "reached zero" was transient and is externally
	// indistinguishable from an increment immediately followed by a
	// decrement.
	return false
}

// Read returns the counter's current logical value, or 0 if latched (or
// caught mid-latch — Read helps finish the latch in that case and flags
// the in-flight Decrement so it can claim credit).
func (c *StickyCounterWF) Read() uint64 {
	v := c.v.LoadRelaxed()
	if v == 0 {
		if c.v.CompareAndSwapRelaxed(0, stickyZero|stickyHelped) {
			return 0
		}
		v = c.v.LoadRelaxed()
	}
	if v&stickyZero != 0 {
		return 0
	}
	return v
}
