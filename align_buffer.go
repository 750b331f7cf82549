// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import "code.hybscloud.com/iobuf"

// alignment is the minimum starting-address alignment AlignedBuffer
// guarantees for its backing storage.
const alignment = 16

// AlignedBuffer is an owned, growable byte buffer whose backing storage
// starts at a 16-byte aligned address. It tracks length separately from
// capacity so pooled buffers can be reused at a smaller logical length
// without re-allocating.
type AlignedBuffer struct {
	buf []byte // capacity-sized, aligned backing storage
	len int    // logical length, len <= cap(buf)
}

// NewAlignedBuffer allocates an AlignedBuffer with the given capacity and
// zero logical length.
func NewAlignedBuffer(capacity int) *AlignedBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &AlignedBuffer{buf: iobuf.AlignedMem(capacity, alignment)}
}

// Cap returns the buffer's current capacity.
func (b *AlignedBuffer) Cap() int {
	return cap(b.buf)
}

// Len returns the buffer's current logical length.
func (b *AlignedBuffer) Len() int {
	return b.len
}

// Bytes returns the logical, length-bounded view of the buffer.
func (b *AlignedBuffer) Bytes() []byte {
	return b.buf[:b.len]
}

// SetLen sets the logical length. It panics if n is out of [0, Cap()]; the
// caller (BodyPool, Peer's reader) is always in a position to know the
// frame length fits before calling this.
func (b *AlignedBuffer) SetLen(n int) {
	if n < 0 || n > cap(b.buf) {
		panic("vsockrpc: AlignedBuffer.SetLen out of range")
	}
	if cap(b.buf) > len(b.buf) || n > len(b.buf) {
		b.buf = b.buf[:cap(b.buf)]
	}
	b.len = n
}

// Grow ensures the buffer's capacity is at least capacity, reallocating and
// copying live bytes (preserving alignment) if necessary. Existing logical
// length and content are preserved.
func (b *AlignedBuffer) Grow(capacity int) {
	if capacity <= cap(b.buf) {
		return
	}
	next := iobuf.AlignedMem(capacity, alignment)
	copy(next, b.buf[:b.len])
	b.buf = next
}

// Reset truncates the buffer to zero logical length without releasing its
// backing storage, so it can be reused by a pool.
func (b *AlignedBuffer) Reset() {
	b.len = 0
}
