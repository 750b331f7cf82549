// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"context"
	"net"
)

// tcpListener adapts net.Listener to the Listener interface. TCP is the
// alternate transport used for testing, matching the teacher's netopts.go
// treatment of TCP as one network kind among several.
type tcpListener struct {
	ln net.Listener
}

// ListenTCP binds a TCP listener at addr (host:port, or ":0" for an
// ephemeral port).
func ListenTCP(addr string) (Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &tcpListener{ln: ln}, nil
}

func (l *tcpListener) Accept(ctx context.Context) (Stream, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := l.ln.Accept()
		ch <- result{conn, err}
	}()

	select {
	case r := <-ch:
		return r.conn, r.err
	case <-ctx.Done():
		l.ln.Close()
		return nil, ctx.Err()
	}
}

func (l *tcpListener) Addr() string {
	return l.ln.Addr().String()
}

func (l *tcpListener) Close() error {
	return l.ln.Close()
}

// tcpDialer dials outbound TCP connections.
type tcpDialer struct {
	d net.Dialer
}

// NewTCPDialer returns a Dialer that connects over TCP.
func NewTCPDialer() Dialer {
	return &tcpDialer{}
}

func (d *tcpDialer) Dial(ctx context.Context, addr string) (Stream, error) {
	return d.d.DialContext(ctx, "tcp", addr)
}
