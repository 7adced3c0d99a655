// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package concur provides lock-free and wait-free concurrent primitives
// for inter-goroutine communication:
//
//   - SeqLock[T]: single-writer, many-reader value publication
//   - StickyCounterLF / StickyCounterWF: reference counters that cannot
//     rise from zero once they reach it
//   - SpscQueue[T]: bounded single-producer/single-consumer FIFO
//   - MpmcQueue[T]: bounded multi-producer/multi-consumer FIFO
//
// These are building blocks, not application-level abstractions: no
// primitive here blocks on a mutex, a channel, or I/O, and none of them
// compose with each other. Pick the one whose access pattern (single
// writer? single producer and consumer?) matches your use case.
//
// # SeqLock
//
// SeqLock publishes a value from one writer to many readers without the
// writer ever blocking:
//
//	var tick concur.SeqLock[Snapshot]
//	go func() {
//	    for range time.Tick(time.Millisecond) {
//	        tick.Write(takeSnapshot())
//	    }
//	}()
//
//	// any number of readers:
//	snap := tick.Read()
//
// Read retries internally (yielding between attempts) until it observes a
// snapshot the writer did not touch mid-copy. It never returns a torn
// value and never blocks the writer.
//
// # Sticky counters
//
// StickyCounterLF and StickyCounterWF both implement a reference count
// that latches at zero: once a Decrement call drives the count to zero,
// IncrementIfNotZero fails forever after and Read returns 0 forever
// after. The two variants differ only in their progress guarantee —
// StickyCounterLF is lock-free, StickyCounterWF is wait-free (every call
// completes in a bounded number of atomic steps even under contention).
//
//	c := concur.NewStickyCounterWF()
//	if c.IncrementIfNotZero() {
//	    defer func() {
//	        if c.Decrement() {
//	            releaseResource()
//	        }
//	    }()
//	    useResource()
//	}
//
// Exactly one Decrement call across the counter's lifetime reports having
// reached zero, no matter how many goroutines race to decrement.
//
// # SpscQueue
//
// SpscQueue is a Lamport ring buffer for exactly one producer goroutine
// and exactly one consumer goroutine:
//
//	q, err := concur.NewSpscQueue[Event](1024)
//	if err != nil {
//	    // capacity wasn't a power of two
//	}
//
//	// producer
//	for q.Push(ev) != nil {
//	    runtime.Gosched()
//	}
//
//	// consumer
//	if p := q.Front(); p != nil {
//	    process(*p)
//	    q.Pop()
//	}
//
// Both Push and the Front/Pop pair are wait-free: every call takes a
// bounded number of steps, and full/empty are reported rather than
// spun on internally.
//
// # MpmcQueue
//
// MpmcQueue is a bounded lock-free FIFO for any number of producer and
// consumer goroutines, using per-slot sequence numbers (the scheme
// described by Vyukov) for ABA safety:
//
//	q, err := concur.NewMpmcQueue[Job](4096)
//
//	// any number of producers:
//	for q.Push(job) != nil {
//	    runtime.Gosched()
//	}
//
//	// any number of consumers:
//	job, err := q.Pop()
//	if err == nil {
//	    job.Run()
//	}
//
// # Error handling
//
// Queue operations return [ErrWouldBlock] when they cannot proceed
// immediately (full on Push, empty on MpmcQueue.Pop; SpscQueue.Front
// reports empty by returning nil instead); this is a normal, expected
// outcome, not a failure — retry with backoff or yield, never propagate
// it as an application error.
//
//	for {
//	    err := q.Push(job)
//	    if err == nil {
//	        break
//	    }
//	    if !concur.IsWouldBlock(err) {
//	        return err // unexpected
//	    }
//	    runtime.Gosched()
//	}
//
// Queue constructors return [ErrInvalidCapacity] synchronously if
// capacity is zero or not a power of two; callers that want automatic
// rounding should round up themselves before constructing.
//
// # Race detection
//
// Go's race detector tracks explicit synchronization (mutex, channel,
// WaitGroup) but cannot observe happens-before relationships established
// purely through acquire/release orderings on independent atomic
// variables — the technique every primitive in this package relies on.
// Concurrent stress tests that would produce detector false positives
// are gated behind the [RaceEnabled] flag and skip themselves under
// -race; correctness for these algorithms is established by stress
// testing without the detector, not by it.
package concur
