// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"context"
	"fmt"
	"io"
	"sync"

	"code.hybscloud.com/vsockrpc/internal/frame"
	"code.hybscloud.com/vsockrpc/internal/logging"
)

// PeerHandle is a cloneable, send-only capability onto a Peer's outgoing
// queue. Multiple goroutines may hold and use a PeerHandle concurrently.
type PeerHandle struct {
	outgoing chan<- *AlignedBuffer
}

// Send enqueues buf for transmission, blocking until there is queue space
// or ctx is done. It does not wait for the write to actually reach the
// wire.
func (h PeerHandle) Send(ctx context.Context, buf *AlignedBuffer) error {
	select {
	case h.outgoing <- buf:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Peer is a full-duplex reader/writer pair over a single stream,
// exchanging length-prefixed frames through bounded internal queues. One
// goroutine owns the write side, one owns the read side; both exit when
// the stream errors or is closed.
type Peer struct {
	stream        Stream
	handle        PeerHandle
	outgoing      chan *AlignedBuffer
	incoming      chan *AlignedBuffer
	done          chan struct{}
	closeOnce     sync.Once
	pool          *BodyPool
	headerPoolCap int
	logger        logging.Logger
}

// NewPeer starts a Peer's reader and writer goroutines over stream and
// returns its send handle along with the channel new inbound frame bodies
// arrive on. Inbound body buffers should be returned to pool (via
// pool.Release) once the caller is done with them; the session loop does
// this automatically after a handler/response step completes.
func NewPeer(stream Stream, pool *BodyPool, opts ...Option) (*Peer, <-chan *AlignedBuffer) {
	o := apply(&Options{}, opts...)
	if o.queueDepth <= 0 {
		o.queueDepth = defaultOptions.queueDepth
	}
	if o.logger == nil {
		o.logger = defaultOptions.logger
	}
	if pool == nil {
		pool = NewBodyPool(0)
	}

	p := &Peer{
		stream:   stream,
		outgoing: make(chan *AlignedBuffer, o.queueDepth),
		incoming: make(chan *AlignedBuffer, o.queueDepth),
		done:     make(chan struct{}),
		pool:     pool,
		logger:   o.logger,

		headerPoolCap: o.headerPoolCap,
	}
	p.handle = PeerHandle{outgoing: p.outgoing}

	go p.runWriter()
	go p.runReader()

	return p, p.incoming
}

// Handle returns the Peer's send handle.
func (p *Peer) Handle() PeerHandle {
	return p.handle
}

func (p *Peer) runWriter() {
	p.logger.Debugf("peer writer started")
	headers := NewHeaderPool(p.headerPoolCap)

	for {
		var buf *AlignedBuffer
		select {
		case buf = <-p.outgoing:
		case <-p.done:
			p.logger.Debugf("peer writer exiting")
			return
		}
		hdr := headers.Acquire()
		err := frame.WriteFrame(p.stream, hdr, buf.Bytes())
		headers.Release(hdr)
		p.pool.Release(buf)

		if err != nil {
			p.logger.Errorf("peer writer: failed to write frame: %v", err)
			break
		}
	}
	p.logger.Debugf("peer writer exiting")
}

func (p *Peer) runReader() {
	p.logger.Debugf("peer reader started")
	headers := NewHeaderPool(p.headerPoolCap)
	defer close(p.incoming)

	for {
		hdr := headers.Acquire()
		n, err := frame.ReadHeader(p.stream, hdr)
		headers.Release(hdr)
		if err != nil {
			switch err {
			case io.EOF:
				p.logger.Infof("peer reader reached EOF")
			case frame.ErrTooLong:
				p.logger.Errorf("peer reader: oversize frame declared, tearing down connection")
				p.stream.Close()
			default:
				p.logger.Errorf("peer reader: failed to read frame header: %v", err)
			}
			return
		}

		if n == 0 {
			p.logger.Debugf("peer reader: zero-length frame, skipping")
			continue
		}

		body := p.pool.Acquire(int(n))
		if err := frame.ReadFull(p.stream, body.Bytes()); err != nil {
			p.logger.Errorf("peer reader: failed to read frame body of %d bytes: %v", n, err)
			p.pool.Release(body)
			return
		}

		select {
		case p.incoming <- body:
		case <-p.done:
			p.logger.Debugf("peer reader: consumer gone, dropping in-flight body")
			p.pool.Release(body)
			return
		}
	}
}

// Close closes the underlying stream, which unblocks the reader goroutine,
// and signals done, which makes the writer goroutine exit instead of
// waiting for more outgoing buffers. Signalling done also lets a reader
// blocked handing a body to a consumer that has already exited return its
// buffer to the pool instead of leaking the goroutine.
func (p *Peer) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	if err := p.stream.Close(); err != nil {
		return fmt.Errorf("vsockrpc: closing peer stream: %w", err)
	}
	return nil
}
