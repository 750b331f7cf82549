// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"context"
	"io"
)

// Stream is a full-duplex, closable byte stream: a connected VSOCK socket,
// Hyper-V socket, or TCP connection. A Peer reads and writes a Stream from
// two different goroutines concurrently, so implementations must support
// one concurrent reader and one concurrent writer (most net.Conn-backed
// streams already do).
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
}

// Splitable streams additionally expose independent reader/writer halves,
// useful for transports (like a raw socket fd) where issuing the read and
// the write through the same value from two goroutines is unsafe without
// extra locking. None of the Stream implementations in this package
// implement it: a Peer reads and writes them directly, and net.Conn already
// tolerates concurrent Read/Write.
type Splitable interface {
	Stream
	Split() (reader io.ReadCloser, writer io.WriteCloser, err error)
}

// Listener accepts inbound Streams on a bound address.
type Listener interface {
	// Accept blocks until an inbound connection arrives or ctx is done.
	Accept(ctx context.Context) (Stream, error)
	// Addr returns the listener's local address. Meaning is
	// transport-specific (host:port for TCP, the vsock library's address
	// string for VSOCK, "hv:<port>" for Hyper-V).
	Addr() string
	Close() error
}

// Dialer opens outbound Streams to a remote address.
type Dialer interface {
	Dial(ctx context.Context, addr string) (Stream, error)
}
