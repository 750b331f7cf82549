// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import "errors"

var (
	// ErrInvalidArgument names a structurally invalid caller-supplied
	// argument. No function in this package returns it: NewAlignedBuffer
	// clamps a negative capacity to zero and BodyPool.Release ignores a nil
	// buffer.
	ErrInvalidArgument = errors.New("vsockrpc: invalid argument")

	// ErrTooLong names a frame whose declared length exceeds frame.MaxBytes
	// (100 MiB). No function in this package returns it: the Peer reader
	// detects that case through frame.ErrTooLong and closes the stream.
	ErrTooLong = errors.New("vsockrpc: frame too long")

	// ErrClosed is returned by Client.Call when the connection is torn down
	// while the call is waiting for its response.
	ErrClosed = errors.New("vsockrpc: closed")

	// ErrTimeout is returned by Client.Call when no response arrives
	// within the configured call timeout.
	ErrTimeout = errors.New("vsockrpc: call timed out")

	// ErrPendingNotFound names a response envelope whose id has no matching
	// entry in the pending map. No function in this package returns it: the
	// session loop logs that case and releases the buffer.
	ErrPendingNotFound = errors.New("vsockrpc: no pending call for id")

	// ErrNotRequest is returned by a ResponseGuard's decode step when an
	// envelope decodes to something other than a response.
	ErrNotRequest = errors.New("vsockrpc: envelope is not a response")

	// ErrNoHandler is returned by NoOpHandler, the default ServiceHandler
	// an RpcBuilder uses until Service is called.
	ErrNoHandler = errors.New("vsockrpc: no service handler configured")
)
