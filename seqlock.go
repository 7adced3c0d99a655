// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"runtime"

	"code.hybscloud.com/concur/internal/atomicx"
)

// SeqLock publishes a single value of type T from one writer goroutine to
// any number of reader goroutines without the writer ever blocking on a
// reader, and without readers blocking each other or the writer.
//
// T should be a small, trivially-copyable value (a struct of plain fields,
// not one holding pointers a reader could observe half-updated through a
// torn copy — Go's garbage collector aside, the seqlock protocol only
// protects against torn reads of the bytes themselves, not against a
// reader and writer racing on anything T itself points to).
//
// Writes are wait-free. Reads are obstruction-free with respect to writes:
// a read always completes once writes stop, but may retry indefinitely
// while a writer keeps publishing faster than the reader can snapshot.
type SeqLock[T any] struct {
	_     pad
	seq   atomicx.Uint64
	_     pad
	value T
	_     pad
}

// NewSeqLock creates a SeqLock holding the zero value of T.
func NewSeqLock[T any]() *SeqLock[T] {
	return &SeqLock[T]{}
}

// Write publishes v. Safe to call only from the single writer goroutine.
//
// The sequence is bumped to odd before the value is stored and back to
// even after, so concurrent readers can detect and retry a torn snapshot.
func (s *SeqLock[T]) Write(v T) {
	seq := s.seq.LoadRelaxed()
	s.seq.StoreRelaxed(seq + 1) // odd: write in progress
	s.value = v
	s.seq.StoreRelease(seq + 2) // even: published
}

// Read returns the most recently published value, blocking (via a yield
// loop, never a real scheduler block) until it observes a snapshot that
// was not concurrently modified.
func (s *SeqLock[T]) Read() T {
	for {
		s1 := s.seq.LoadAcquire()
		v := s.value
		s2 := s.seq.LoadRelaxed()
		if s1 == s2 && s1%2 == 0 {
			return v
		}
		runtime.Gosched()
	}
}
