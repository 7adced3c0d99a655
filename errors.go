// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

import "errors"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Push: the queue is full (backpressure).
// For MpmcQueue.Pop: the queue is empty (no data available).
// SpscQueue.Front reports an empty queue by returning nil instead.
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or yield) rather than propagating
// the error.
//
// Example:
//
//	for {
//	    err := q.Push(&item)
//	    if err == nil {
//	        break
//	    }
//	    if !concur.IsWouldBlock(err) {
//	        return err // unexpected error
//	    }
//	    runtime.Gosched()
//	}
var ErrWouldBlock = errors.New("concur: would block")

// ErrInvalidCapacity is returned by queue constructors when the requested
// capacity is zero or not a power of two.
var ErrInvalidCapacity = errors.New("concur: capacity must be a power of two greater than zero")

// IsWouldBlock reports whether err indicates the operation would block.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}
