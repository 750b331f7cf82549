// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"context"
	"sync/atomic"
	"time"
)

// Client issues correlation-id based calls over a Peer and matches
// responses back to the call that made them via a pendingMap.
type Client struct {
	peer        PeerHandle
	pending     *pendingMap
	pool        *BodyPool
	protocol    Protocol
	nextID      uint64
	callTimeout time.Duration
}

// Connect starts a Peer over stream, spawns a session loop behind
// NoOpHandler (so the connection can still receive and reject any inbound
// request, rather than hanging forever), and returns a Client for issuing
// calls on it.
func Connect(stream Stream, protocol Protocol, opts ...Option) *Client {
	o := apply(&Options{}, opts...)
	if o.callTimeout <= 0 {
		o.callTimeout = defaultOptions.callTimeout
	}
	if o.logger == nil {
		o.logger = defaultOptions.logger
	}
	pool := NewBodyPool(o.bodyPoolCap)

	peer, incoming := NewPeer(stream, pool, opts...)
	pending := newPendingMap()

	go sessionLoop(incoming, peer.Handle(), pending, pool, protocol, NoOpHandler{}, o.logger)

	return &Client{
		peer:        peer.Handle(),
		pending:     pending,
		pool:        pool,
		protocol:    protocol,
		callTimeout: o.callTimeout,
	}
}

// newClientOnPeer builds a Client sharing an already-running Peer/session
// loop's pendingMap, used by NewSymmetricPeer to expose a symmetric,
// server-initiated Client on an accepted connection.
func newClientOnPeer(peer PeerHandle, pending *pendingMap, pool *BodyPool, protocol Protocol, callTimeout time.Duration) *Client {
	return &Client{peer: peer, pending: pending, pool: pool, protocol: protocol, callTimeout: callTimeout}
}

// Call encodes payload as a request, sends it, and blocks until a matching
// response arrives, ctx is done, or the call timeout (5s by default)
// elapses. The returned ResponseGuard's buffer must be released by the
// caller via ResponseGuard.Release.
func (c *Client) Call(ctx context.Context, payload any) (*ResponseGuard, error) {
	id := atomic.AddUint64(&c.nextID, 1) - 1
	respCh := c.pending.register(id)

	buf := c.pool.Acquire(0)
	buf, err := c.protocol.EncodeRequest(id, payload, buf)
	if err != nil {
		c.pending.remove(id)
		c.pool.Release(buf)
		return nil, err
	}

	if err := c.peer.Send(ctx, buf); err != nil {
		c.pending.remove(id)
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	select {
	case raw := <-respCh:
		if raw == nil {
			return nil, ErrClosed
		}
		return newResponseGuard(c.protocol, raw, c.pool)
	case <-timeoutCtx.Done():
		c.pending.remove(id)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrTimeout
	}
}
