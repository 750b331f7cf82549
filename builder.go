// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"context"
	"time"

	"code.hybscloud.com/vsockrpc/internal/logging"
)

// RpcBuilder fluently configures and starts an accept loop: one Peer and
// session loop pair per accepted connection, each dispatching inbound
// requests to the configured ServiceHandler. The zero-value handler is
// NoOpHandler, so an RpcBuilder that never calls Service still runs a
// server callers can connect to — one that reliably errors on every
// request rather than silently succeeding.
type RpcBuilder struct {
	listener Listener
	handler  ServiceHandler
	protocol Protocol
	opts     []Option
}

// NewRpcBuilder starts a builder for protocol. Call WithListener to supply
// a bound Listener (ListenTCP, ListenVsock, ListenHyperV) before Run.
func NewRpcBuilder(protocol Protocol) *RpcBuilder {
	return &RpcBuilder{
		handler:  NoOpHandler{},
		protocol: protocol,
	}
}

// WithListener attaches the Listener new connections will be accepted from.
func (b *RpcBuilder) WithListener(l Listener) *RpcBuilder {
	b.listener = l
	return b
}

// Service replaces the ServiceHandler every accepted connection dispatches
// requests to.
func (b *RpcBuilder) Service(h ServiceHandler) *RpcBuilder {
	b.handler = h
	return b
}

// WithOptions attaches Peer/Client Options (queue depth, pool caps, logger,
// ...) applied to every accepted connection.
func (b *RpcBuilder) WithOptions(opts ...Option) *RpcBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Run starts the accept loop in a background goroutine and returns
// immediately. The loop runs until ctx is done; any other Accept error,
// including one from a Listener closed by some other means, is logged and
// Accept is retried after 100ms.
func (b *RpcBuilder) Run(ctx context.Context) error {
	if b.listener == nil {
		panic("vsockrpc: RpcBuilder.Run called without a listener; call WithListener first")
	}

	o := apply(&Options{}, b.opts...)
	if o.logger == nil {
		o.logger = defaultOptions.logger
	}
	logger := o.logger

	go func() {
		logger.Infof("rpc: server listening on %s", b.listener.Addr())
		for {
			stream, err := b.listener.Accept(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logger.Infof("rpc: accept loop exiting: %v", ctx.Err())
					return
				}
				logger.Errorf("rpc: accept error: %v", err)
				time.Sleep(100 * time.Millisecond)
				continue
			}
			go b.handleConnection(stream, logger)
		}
	}()

	return nil
}

func (b *RpcBuilder) handleConnection(stream Stream, logger logging.Logger) {
	o := apply(&Options{}, b.opts...)
	pool := NewBodyPool(o.bodyPoolCap)
	peer, incoming := NewPeer(stream, pool, b.opts...)
	pending := newPendingMap()

	sessionLoop(incoming, peer.Handle(), pending, pool, b.protocol, b.handler, logger)
}
