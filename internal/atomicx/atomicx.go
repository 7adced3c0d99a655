// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package atomicx wraps sync/atomic with ordering-named methods.
//
// Only a small set of operations is implemented, covering what this
// module's primitives and tests call: Uint64 (sequence counters, slot state, ring indices), Int64
// (test-side partition cursors), Int32 (test-side "seen" counters).
//
// Go's atomic operations are sequentially consistent; there is no compiler
// or runtime distinction between a "relaxed" and an "acquire" load the way
// there is in C++'s <atomic>. The method names here (LoadRelaxed,
// LoadAcquire, StoreRelease, AddAcqRel, CompareAndSwapAcqRel, ...) exist to
// document, at each call site in the primitives, exactly which ordering the
// algorithm's correctness argument relies on — the same role
// code.hybscloud.com/atomix plays for the upstream lock-free queue package
// this module's ring buffers are adapted from. Treat the suffix as a
// comment, not a guarantee weaker than what sync/atomic already provides.
package atomicx

import "sync/atomic"

// Uint64 is a 64-bit counter with ordering-documented accessors. It is not
// padded; callers that need it alone on a cache line add padding around it.
type Uint64 struct {
	v atomic.Uint64
}

func (u *Uint64) LoadRelaxed() uint64 { return u.v.Load() }
func (u *Uint64) LoadAcquire() uint64 { return u.v.Load() }

func (u *Uint64) StoreRelaxed(val uint64) { u.v.Store(val) }
func (u *Uint64) StoreRelease(val uint64) { u.v.Store(val) }

// AddAcqRel adds delta and returns the new value.
func (u *Uint64) AddAcqRel(delta uint64) uint64 { return u.v.Add(delta) }

func (u *Uint64) CompareAndSwapRelaxed(old, new uint64) bool {
	return u.v.CompareAndSwap(old, new)
}

func (u *Uint64) CompareAndSwapAcqRel(old, new uint64) bool {
	return u.v.CompareAndSwap(old, new)
}

// FetchAddRelaxed adds delta and returns the value observed before the add.
func (u *Uint64) FetchAddRelaxed(delta uint64) uint64 {
	return u.v.Add(delta) - delta
}

// SwapRelaxed unconditionally stores new and returns the previous value.
func (u *Uint64) SwapRelaxed(new uint64) uint64 {
	return u.v.Swap(new)
}

// Int64 is a signed 64-bit counter (not padded).
type Int64 struct {
	v atomic.Int64
}

func (i *Int64) LoadRelaxed() int64 { return i.v.Load() }

func (i *Int64) StoreRelaxed(val int64) { i.v.Store(val) }

func (i *Int64) AddAcqRel(delta int64) int64 { return i.v.Add(delta) }

// Int32 is used by tests as a per-slot "seen" counter.
type Int32 struct {
	v atomic.Int32
}

func (i *Int32) Add(delta int32) int32 { return i.v.Add(delta) }
func (i *Int32) Load() int32           { return i.v.Load() }
