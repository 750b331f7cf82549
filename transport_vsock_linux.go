// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package vsockrpc

import (
	"context"
	"fmt"

	"github.com/mdlayher/vsock"
)

// vsockListener adapts *vsock.Listener to the Listener interface.
type vsockListener struct {
	ln *vsock.Listener
}

// ListenVsock binds a VSOCK listener on port across every context id
// (VMADDR_CID_ANY), matching spec's binding surface for the Linux
// transport.
func ListenVsock(port uint32) (Listener, error) {
	ln, err := vsock.Listen(port, nil)
	if err != nil {
		return nil, fmt.Errorf("vsockrpc: vsock listen on port %d: %w", port, err)
	}
	return &vsockListener{ln: ln}, nil
}

func (l *vsockListener) Accept(ctx context.Context) (Stream, error) {
	type result struct {
		conn *vsock.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := l.ln.Accept()
		if err != nil {
			ch <- result{nil, err}
			return
		}
		ch <- result{conn.(*vsock.Conn), nil}
	}()

	select {
	case r := <-ch:
		return r.conn, r.err
	case <-ctx.Done():
		l.ln.Close()
		return nil, ctx.Err()
	}
}

func (l *vsockListener) Addr() string {
	return l.ln.Addr().String()
}

func (l *vsockListener) Close() error {
	return l.ln.Close()
}

// vsockDialer dials outbound VSOCK connections.
type vsockDialer struct{}

// NewVsockDialer returns a Dialer that connects over VSOCK.
func NewVsockDialer() Dialer {
	return &vsockDialer{}
}

func (d *vsockDialer) Dial(ctx context.Context, contextIDAndPort string) (Stream, error) {
	cid, port, err := parseVsockAddr(contextIDAndPort)
	if err != nil {
		return nil, err
	}

	type result struct {
		conn *vsock.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := vsock.Dial(cid, port, nil)
		ch <- result{conn, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("vsockrpc: vsock dial cid=%d port=%d: %w", cid, port, r.err)
		}
		return r.conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
