// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"fmt"
	"strconv"
	"strings"
)

// parseVsockAddr parses a "cid:port" address string shared by the VSOCK and
// Hyper-V dialers.
func parseVsockAddr(addr string) (cid, port uint32, err error) {
	parts := strings.SplitN(addr, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("vsockrpc: invalid vsock address %q, want \"cid:port\"", addr)
	}
	c, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("vsockrpc: invalid vsock cid in %q: %w", addr, err)
	}
	p, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("vsockrpc: invalid vsock port in %q: %w", addr, err)
	}
	return uint32(c), uint32(p), nil
}
