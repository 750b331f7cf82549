// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

// NewSymmetricPeer starts a Peer over stream whose session loop dispatches
// inbound requests to handler, while also returning a Client that can
// issue calls on the very same connection. This is the shape a server-side
// accepted connection needs when it must both answer the remote peer's
// requests and originate its own: the Client and the session loop share
// one PeerHandle and one pendingMap, exactly as a single bidirectional
// connection requires.
func NewSymmetricPeer(stream Stream, protocol Protocol, handler ServiceHandler, opts ...Option) *Client {
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

	if handler == nil {
		handler = NoOpHandler{}
	}
	go sessionLoop(incoming, peer.Handle(), pending, pool, protocol, handler, o.logger)

	return newClientOnPeer(peer.Handle(), pending, pool, protocol, o.callTimeout)
}
