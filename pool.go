// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rtti

import "sync"

// Scratch buffers for type name parsing.
// A buffer is owned by exactly one resolver call between acquire and
// release; the resolved name is copied out before release.

const nameBufSize = 256

var nameBufPool = sync.Pool{New: func() any {
	b := make([]byte, 0, nameBufSize)
	return &b
}}

// acquireNameBuf returns an empty buffer with capacity of at least n.
func acquireNameBuf(n int) *[]byte {
	b := nameBufPool.Get().(*[]byte)
	if cap(*b) < n {
		*b = make([]byte, 0, n)
	}
	*b = (*b)[:0]
	return b
}

// releaseNameBuf returns b to the pool; oversized buffers are dropped.
func releaseNameBuf(b *[]byte) {
	if cap(*b) > 4*nameBufSize {
		return
	}
	*b = (*b)[:0]
	nameBufPool.Put(b)
}
