// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

// ResponseGuard owns a decoded response buffer returned by Client.Call. The
// buffer was already validated by Protocol.Decode before the guard was
// constructed, so Payload never fails.
//
// Go has no deterministic destructors, so unlike the Rust original's
// Drop-based release, callers must call Release explicitly once they are
// done reading Payload. This mirrors the explicit-Close idiom the rest of
// this package already uses for Peer and transports rather than relying on
// a finalizer, which would defer reuse to an unpredictable GC cycle.
type ResponseGuard struct {
	buf     *AlignedBuffer
	pool    *BodyPool
	payload any
}

func newResponseGuard(protocol Protocol, buf *AlignedBuffer, pool *BodyPool) (*ResponseGuard, error) {
	env, err := protocol.Decode(buf.Bytes())
	if err != nil {
		pool.Release(buf)
		return nil, err
	}
	if env.Kind != KindResponse {
		pool.Release(buf)
		return nil, ErrNotRequest
	}
	return &ResponseGuard{buf: buf, pool: pool, payload: env.Payload}, nil
}

// Payload returns the decoded response payload. Its concrete type is
// whatever the Protocol in use produces; callers type-assert it.
func (g *ResponseGuard) Payload() any {
	return g.payload
}

// Release returns the underlying buffer to its BodyPool. Only the first
// call releases anything; later calls do nothing.
func (g *ResponseGuard) Release() {
	if g.buf == nil {
		return
	}
	g.pool.Release(g.buf)
	g.buf = nil
}
