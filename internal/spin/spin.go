// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spin provides a small CAS-retry backoff helper.
//
// This reproduces the call shape of code.hybscloud.com/spin observed at
// every contended retry loop in the lock-free queue package this module's
// rings are adapted from: a zero-value Wait, one Once() call per failed
// attempt, escalating from a tight busy-spin to yielding the P a growing
// number of times, capped so a long stall doesn't yield unboundedly.
package spin

import "runtime"

// Wait backs off across repeated failed CAS attempts. The zero value is
// ready to use.
type Wait struct {
	n int
}

// maxYields caps how many times Once yields the P in a single call, so a
// long-stalled retry loop doesn't hand back the thread for unbounded
// stretches between CAS attempts.
const maxYields = 16

// Once registers one failed attempt and backs off accordingly.
func (w *Wait) Once() {
	if w.n < 4 {
		// Tight spin: contention is usually resolved within a few cycles.
		w.n++
		return
	}
	yields := w.n - 3
	if yields > maxYields {
		yields = maxYields
	}
	for i := 0; i < yields; i++ {
		runtime.Gosched()
	}
	w.n++
}

// Reset clears the backoff state after a successful attempt.
func (w *Wait) Reset() {
	w.n = 0
}
