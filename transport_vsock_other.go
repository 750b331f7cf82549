// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package vsockrpc

import (
	"context"
	"errors"
)

// errVsockUnsupported is returned by the VSOCK transport on platforms other
// than Linux, where AF_VSOCK is not available.
var errVsockUnsupported = errors.New("vsockrpc: vsock transport is only available on linux")

// ListenVsock is unavailable outside Linux.
func ListenVsock(port uint32) (Listener, error) {
	return nil, errVsockUnsupported
}

// NewVsockDialer is unavailable outside Linux.
func NewVsockDialer() Dialer {
	return vsockUnsupportedDialer{}
}

type vsockUnsupportedDialer struct{}

func (vsockUnsupportedDialer) Dial(ctx context.Context, addr string) (Stream, error) {
	return nil, errVsockUnsupported
}
