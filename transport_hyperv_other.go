// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !windows

package vsockrpc

import (
	"context"
	"errors"
)

// errHyperVUnsupported is returned by the Hyper-V transport on platforms
// other than Windows, where AF_HYPERV is not available.
var errHyperVUnsupported = errors.New("vsockrpc: hyper-v transport is only available on windows")

// ListenHyperV is unavailable outside Windows.
func ListenHyperV(port uint32) (Listener, error) {
	return nil, errHyperVUnsupported
}

// NewHyperVDialer is unavailable outside Windows.
func NewHyperVDialer() Dialer {
	return hypervUnsupportedDialer{}
}

type hypervUnsupportedDialer struct{}

func (hypervUnsupportedDialer) Dial(ctx context.Context, addr string) (Stream, error) {
	return nil, errHyperVUnsupported
}
