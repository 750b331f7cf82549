// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import "code.hybscloud.com/vsockrpc/internal/frame"

// HeaderPool recycles the fixed 4-byte length-prefix scratch buffers used
// by a Peer's reader and writer goroutines. Unlike BodyPool, a HeaderPool
// is owned by exactly one goroutine at a time (one per Peer side), so it
// needs no internal synchronization — the same property the original
// server's thread_local HEADER_POOL relies on, mapped here to "one pool
// instance per goroutine" instead of a thread-local.
type HeaderPool struct {
	free [][]byte
	cap  int
}

// NewHeaderPool returns an empty HeaderPool retaining at most capacity
// header buffers.
func NewHeaderPool(capacity int) *HeaderPool {
	if capacity <= 0 {
		capacity = defaultOptions.headerPoolCap
	}
	return &HeaderPool{cap: capacity}
}

// Acquire returns a HeaderLen-byte scratch buffer, reusing a retained one
// if available.
func (p *HeaderPool) Acquire() []byte {
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		return h
	}
	return make([]byte, frame.HeaderLen)
}

// Release returns h to the pool for reuse, unless the pool is already at
// capacity.
func (p *HeaderPool) Release(h []byte) {
	if len(h) != frame.HeaderLen {
		return
	}
	if len(p.free) >= p.cap {
		return
	}
	p.free = append(p.free, h)
}

// Len reports how many header buffers the pool currently retains. Intended
// for tests and diagnostics.
func (p *HeaderPool) Len() int {
	return len(p.free)
}
