// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import "sync"

// BodyPool is a process-wide pool of *AlignedBuffer recycled across frame
// bodies. Acquire performs a best-fit linear scan over retained buffers
// (smallest capacity that is still >= needed, exact-capacity match wins
// immediately); Release clears and returns a buffer to the pool, dropping it
// once the pool already holds Cap entries.
//
// Mirrors the acquire/release-by-best-fit-capacity scheme of the original
// server's BufferPool, adapted to a mutex-guarded Go slice rather than a
// Mutex<Vec<_>>.
type BodyPool struct {
	mu   sync.Mutex
	free []*AlignedBuffer
	cap  int
}

// NewBodyPool returns an empty BodyPool retaining at most capacity buffers.
func NewBodyPool(capacity int) *BodyPool {
	if capacity <= 0 {
		capacity = defaultOptions.bodyPoolCap
	}
	return &BodyPool{cap: capacity}
}

// Acquire returns an *AlignedBuffer with capacity at least needed, reusing
// the smallest retained buffer that already fits, or allocating a new one
// if none does.
func (p *BodyPool) Acquire(needed int) *AlignedBuffer {
	p.mu.Lock()
	bestIdx := -1
	bestWaste := -1
	for i, b := range p.free {
		if b.Cap() < needed {
			continue
		}
		waste := b.Cap() - needed
		if waste == 0 {
			bestIdx = i
			bestWaste = 0
			break
		}
		if bestIdx == -1 || waste < bestWaste {
			bestIdx, bestWaste = i, waste
		}
	}
	var buf *AlignedBuffer
	if bestIdx != -1 {
		buf = p.free[bestIdx]
		last := len(p.free) - 1
		p.free[bestIdx] = p.free[last]
		p.free[last] = nil
		p.free = p.free[:last]
	}
	p.mu.Unlock()

	if buf == nil {
		buf = NewAlignedBuffer(needed)
	}
	buf.SetLen(needed)
	return buf
}

// Release clears buf and returns it to the pool for reuse, unless the pool
// is already at capacity, in which case buf is left for the garbage
// collector.
func (p *BodyPool) Release(buf *AlignedBuffer) {
	if buf == nil {
		return
	}
	buf.Reset()

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) >= p.cap {
		return
	}
	p.free = append(p.free, buf)
}

// Len reports how many buffers the pool currently retains. Intended for
// tests and diagnostics.
func (p *BodyPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
