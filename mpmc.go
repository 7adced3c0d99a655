// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import (
	"code.hybscloud.com/concur/internal/atomicx"
	"code.hybscloud.com/concur/internal/spin"
)

// MpmcQueue is a CAS-based multi-producer multi-consumer bounded queue.
//
// Based on per-slot sequence numbers (the Vyukov scheme): each slot tracks
// which logical cycle it belongs to via its own atomic seq field, giving
// full ABA safety without requiring the 2x physical slots an FAA/SCQ-style
// queue needs.
//
// Progress is lock-free, not wait-free: a contending CAS on head/tail may
// force a retry, but at least one producer and one consumer make progress
// per round.
//
// Memory: n slots, each holding its seq word, the element, and 56 bytes of
// trailing padding. The slot size is not rounded to a multiple of the cache
// line, and seq is not separated from the element within a slot.
type MpmcQueue[T any] struct {
	_        pad
	tail     atomicx.Uint64 // producer index
	_        pad
	head     atomicx.Uint64 // consumer index
	_        pad
	buffer   []mpmcSlot[T]
	mask     uint64
	capacity uint64
}

type mpmcSlot[T any] struct {
	seq atomicx.Uint64
	data T
	_   padShort
}

// NewMpmcQueue creates a bounded MPMC queue of the given capacity.
// Capacity must be a power of two greater than zero, or
// ErrInvalidCapacity is returned.
func NewMpmcQueue[T any](capacity int) (*MpmcQueue[T], error) {
	if !isPow2(capacity) {
		return nil, ErrInvalidCapacity
	}
	n := uint64(capacity)
	q := &MpmcQueue[T]{
		buffer:   make([]mpmcSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}
	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}
	return q, nil
}

// Push adds an element to the queue. Returns ErrWouldBlock if the queue is
// full.
func (q *MpmcQueue[T]) Push(v T) error {
	sw := spin.Wait{}
	for {
		tail := q.tail.LoadRelaxed()
		slot := &q.buffer[tail&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(tail)

		switch {
		case diff == 0:
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = v
				slot.seq.StoreRelease(tail + 1)
				return nil
			}
		case diff < 0:
			return ErrWouldBlock
		default:
			// Another producer advanced tail past us; reload and retry.
		}
		sw.Once()
	}
}

// Pop removes and returns an element from the queue. Returns
// (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MpmcQueue[T]) Pop() (T, error) {
	sw := spin.Wait{}
	for {
		head := q.head.LoadRelaxed()
		slot := &q.buffer[head&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(head+1)

		switch {
		case diff == 0:
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(head + q.capacity)
				return elem, nil
			}
		case diff < 0:
			var zero T
			return zero, ErrWouldBlock
		default:
			// Another consumer advanced head past us; reload and retry.
		}
		sw.Once()
	}
}

// Cap returns the queue's capacity.
func (q *MpmcQueue[T]) Cap() int {
	return int(q.capacity)
}

// Close drains and drops any elements still logically present in the
// queue. It is not safe to call concurrently with Push/Pop; the caller
// must quiesce all producers and consumers first.
func (q *MpmcQueue[T]) Close() {
	for {
		if _, err := q.Pop(); err != nil {
			return
		}
	}
}
