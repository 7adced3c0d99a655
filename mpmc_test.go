// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"code.hybscloud.com/concur"
	"code.hybscloud.com/concur/internal/atomicx"
)

func TestMpmcQueueInvalidCapacity(t *testing.T) {
	for _, c := range []int{0, 3, 5, 1000} {
		if _, err := concur.NewMpmcQueue[int](c); !errors.Is(err, concur.ErrInvalidCapacity) {
			t.Errorf("NewMpmcQueue(%d): got %v, want ErrInvalidCapacity", c, err)
		}
	}
}

func TestMpmcQueueBasic(t *testing.T) {
	q, err := concur.NewMpmcQueue[int](4)
	if err != nil {
		t.Fatalf("NewMpmcQueue: %v", err)
	}

	for i := range 4 {
		if err := q.Push(i + 100); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	if err := q.Push(999); !errors.Is(err, concur.ErrWouldBlock) {
		t.Fatalf("Push on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		v, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if v != i+100 {
			t.Fatalf("Pop(%d): got %d, want %d", i, v, i+100)
		}
	}
	if _, err := q.Pop(); !errors.Is(err, concur.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestMpmcQueueWrapAround runs three full fill/drain cycles to exercise slot
// recycling (seq advancing by capacity on each pop).
func TestMpmcQueueWrapAround(t *testing.T) {
	q, err := concur.NewMpmcQueue[int](4)
	if err != nil {
		t.Fatalf("NewMpmcQueue: %v", err)
	}

	for round := range 3 {
		base := round * 100
		for i := range 4 {
			if err := q.Push(base + i); err != nil {
				t.Fatalf("round %d Push(%d): %v", round, i, err)
			}
		}
		if err := q.Push(-1); !errors.Is(err, concur.ErrWouldBlock) {
			t.Fatalf("round %d Push on full: got %v, want ErrWouldBlock", round, err)
		}
		for i := range 4 {
			v, err := q.Pop()
			if err != nil {
				t.Fatalf("round %d Pop(%d): %v", round, i, err)
			}
			if v != base+i {
				t.Fatalf("round %d Pop(%d): got %d, want %d", round, i, v, base+i)
			}
		}
	}
}

// TestMpmcQueueThroughput runs 4 producers and 4 consumers moving 100000
// items through a capacity-1024 queue, checking no loss and no duplicates.
func TestMpmcQueueThroughput(t *testing.T) {
	if concur.RaceEnabled {
		t.Skip("skip: CAS-based algorithm relies on cross-variable acquire/release ordering")
	}

	const (
		numProducers = 4
		numConsumers = 4
		total        = 100000
	)

	q, err := concur.NewMpmcQueue[int](1024)
	if err != nil {
		t.Fatalf("NewMpmcQueue: %v", err)
	}

	var next atomicx.Int64
	seen := make([]atomicx.Int32, total)

	var wg sync.WaitGroup
	wg.Add(numProducers + numConsumers)

	for range numProducers {
		go func() {
			defer wg.Done()
			for {
				v := next.AddAcqRel(1) - 1
				if v >= total {
					return
				}
				for q.Push(int(v)) != nil {
					runtime.Gosched()
				}
			}
		}()
	}

	var consumed atomicx.Int64
	for range numConsumers {
		go func() {
			defer wg.Done()
			for consumed.LoadRelaxed() < total {
				v, err := q.Pop()
				if err != nil {
					if consumed.LoadRelaxed() >= total {
						return
					}
					runtime.Gosched()
					continue
				}
				if v >= 0 && v < total {
					seen[v].Add(1)
				}
				consumed.AddAcqRel(1)
			}
		}()
	}

	wg.Wait()

	var sum int64
	for i := range total {
		c := seen[i].Load()
		if c != 1 {
			t.Fatalf("value %d seen %d times, want exactly 1", i, c)
		}
		sum += int64(i)
	}

	const want = 4999950000
	if sum != want {
		t.Fatalf("sum: got %d, want %d", sum, want)
	}
}

// TestMpmcQueuePerProducerFIFO checks that values pushed by a single
// producer emerge from the queue in the order it pushed them, even with
// other producers and consumers running concurrently.
func TestMpmcQueuePerProducerFIFO(t *testing.T) {
	if concur.RaceEnabled {
		t.Skip("skip: CAS-based algorithm relies on cross-variable acquire/release ordering")
	}

	const (
		numProducers = 4
		numConsumers = 4
		perProducer  = 5000
	)

	q, err := concur.NewMpmcQueue[int](64)
	if err != nil {
		t.Fatalf("NewMpmcQueue: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(numProducers)
	for p := range numProducers {
		go func(id int) {
			defer wg.Done()
			for i := range perProducer {
				v := id*perProducer + i
				for q.Push(v) != nil {
					runtime.Gosched()
				}
			}
		}(p)
	}

	lastSeen := make([]int, numProducers)
	for i := range lastSeen {
		lastSeen[i] = -1
	}
	var mu sync.Mutex
	var consumed atomicx.Int64
	const total = numProducers * perProducer

	var cwg sync.WaitGroup
	cwg.Add(numConsumers)
	for range numConsumers {
		go func() {
			defer cwg.Done()
			for consumed.LoadRelaxed() < total {
				v, err := q.Pop()
				if err != nil {
					if consumed.LoadRelaxed() >= total {
						return
					}
					runtime.Gosched()
					continue
				}
				id, seq := v/perProducer, v%perProducer

				mu.Lock()
				if seq <= lastSeen[id] {
					t.Errorf("producer %d: got seq %d after %d", id, seq, lastSeen[id])
				}
				lastSeen[id] = seq
				mu.Unlock()

				consumed.AddAcqRel(1)
			}
		}()
	}

	wg.Wait()
	cwg.Wait()

	if got := consumed.LoadRelaxed(); got != total {
		t.Fatalf("consumed %d, want %d", got, total)
	}
}
