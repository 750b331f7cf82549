// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vsockrpc is a cross-machine RPC substrate for hypervisor-local
// stream transports (VSOCK on Linux, Hyper-V sockets on Windows, TCP as an
// alternate transport for testing).
//
// Three subsystems make up the package:
//
//   - Framed transport (Peer): a full-duplex reader/writer pair over a
//     byte-stream socket exchanging length-prefixed frames through bounded
//     internal queues.
//   - Buffer pooling (BodyPool, HeaderPool): recycled, aligned byte buffers
//     so steady-state hot-path allocation is near zero.
//   - RPC session (Protocol, session loop, Client): a correlation-id based
//     request/response multiplexer layered on top of a Peer.
//
// Wire format: each frame is a 4-byte little-endian length prefix followed
// by that many body bytes. A zero-length frame is a valid no-op. A frame
// longer than 100 MiB is a protocol error that tears down the connection.
package vsockrpc
