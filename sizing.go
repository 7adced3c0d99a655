// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concur

// cacheLineSize is the assumed coherence unit on typical targets.
const cacheLineSize = 64

// pad is cache-line padding to prevent false sharing between fields that
// are written by different threads.
type pad [cacheLineSize]byte

// padShort pads out a struct after an 8-byte field to a full cache line.
type padShort [cacheLineSize - 8]byte

// roundToPow2 rounds n up to the next power of 2 (n itself if it already is
// one); any n below 2 gives 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// isPow2 reports whether n is a power of two.
func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
