// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build windows

package vsockrpc

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// afHyperV is AF_HYPERV, not exposed by golang.org/x/sys/windows as of this
// writing, so it is declared locally per the value the Windows SDK headers
// define for it.
const afHyperV = 34

// hvProtocolRaw is HV_PROTOCOL_RAW.
const hvProtocolRaw = 1

// sockaddrHV mirrors the Windows SOCKADDR_HV layout: family, 2 reserved
// bytes, then the 16-byte VmId and ServiceId GUIDs, matching
// create_hv_sockaddr in the original transport.
type sockaddrHV struct {
	family    uint16
	reserved  uint16
	vmID      GUID
	serviceID GUID
}

func newSockaddrHV(vmID, serviceID GUID) sockaddrHV {
	return sockaddrHV{family: afHyperV, vmID: vmID, serviceID: serviceID}
}

// ws2_32 holds the raw bind/connect entry points. The typed wrappers in
// golang.org/x/sys/windows only accept their own Sockaddr implementations,
// which have no SOCKADDR_HV variant, so this package calls bind/connect
// directly against the already-built sockaddrHV bytes, the same way the
// original transport calls WinSock::bind/connect directly rather than
// through a higher-level socket abstraction.
var (
	ws2_32       = windows.NewLazySystemDLL("ws2_32.dll")
	procBind     = ws2_32.NewProc("bind")
	procConnectP = ws2_32.NewProc("connect")
	procAccept   = ws2_32.NewProc("accept")
)

func rawBind(h windows.Handle, addr *sockaddrHV) error {
	r, _, e := procBind.Call(uintptr(h), uintptr(unsafe.Pointer(addr)), uintptr(unsafe.Sizeof(*addr)))
	if r != 0 {
		return os.NewSyscallError("bind", e)
	}
	return nil
}

func rawConnect(h windows.Handle, addr *sockaddrHV) error {
	r, _, e := procConnectP.Call(uintptr(h), uintptr(unsafe.Pointer(addr)), uintptr(unsafe.Sizeof(*addr)))
	if r != 0 {
		return os.NewSyscallError("connect", e)
	}
	return nil
}

// rawAccept calls WinSock's accept() directly, the same way rawBind/
// rawConnect do: golang.org/x/sys/windows.Accept is an unimplemented stub
// on this platform (it unconditionally returns syscall.EWINDOWS), and even
// a working typed wrapper would have no SOCKADDR_HV variant to decode the
// peer address into, so the accepted peer's address is simply discarded.
func rawAccept(h windows.Handle) (windows.Handle, error) {
	r, _, e := procAccept.Call(uintptr(h), 0, 0)
	if windows.Handle(r) == windows.InvalidHandle {
		return 0, os.NewSyscallError("accept", e)
	}
	return windows.Handle(r), nil
}

func createHvSocket() (windows.Handle, error) {
	h, err := windows.Socket(afHyperV, windows.SOCK_STREAM, hvProtocolRaw)
	if err != nil {
		return 0, fmt.Errorf("vsockrpc: create AF_HYPERV socket: %w", err)
	}
	return h, nil
}

// hvConn wraps a raw Hyper-V socket handle with the blocking Read/Write/
// Close surface Stream needs, via syscall.Read/syscall.Write on the handle
// and windows.Closesocket.
type hvConn struct {
	h windows.Handle
}

func (c *hvConn) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := syscall.Read(syscall.Handle(c.h), p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, os.ErrClosed
	}
	return n, nil
}

func (c *hvConn) Write(p []byte) (int, error) {
	return syscall.Write(syscall.Handle(c.h), p)
}

func (c *hvConn) Close() error {
	return windows.Closesocket(c.h)
}

// hypervListener binds an AF_HYPERV listening socket on a service id
// derived from port, accepting connections from any VM id (HV_GUID_ZERO).
type hypervListener struct {
	handle windows.Handle
	port   uint32
}

// ListenHyperV binds a Hyper-V socket listener on the service id derived
// from port (see portServiceID), matching the Windows side of spec's
// binding surface.
func ListenHyperV(port uint32) (Listener, error) {
	h, err := createHvSocket()
	if err != nil {
		return nil, err
	}

	local := newSockaddrHV(hvGUIDZero, portServiceID(port))
	if err := rawBind(h, &local); err != nil {
		windows.Closesocket(h)
		return nil, fmt.Errorf("vsockrpc: bind AF_HYPERV socket on port %d: %w", port, err)
	}
	if err := windows.Listen(h, windows.SOMAXCONN); err != nil {
		windows.Closesocket(h)
		return nil, fmt.Errorf("vsockrpc: listen AF_HYPERV socket on port %d: %w", port, err)
	}

	return &hypervListener{handle: h, port: port}, nil
}

func (l *hypervListener) Accept(ctx context.Context) (Stream, error) {
	type result struct {
		h   windows.Handle
		err error
	}
	ch := make(chan result, 1)
	go func() {
		nh, err := rawAccept(l.handle)
		ch <- result{nh, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("vsockrpc: accept AF_HYPERV connection: %w", r.err)
		}
		return &hvConn{h: r.h}, nil
	case <-ctx.Done():
		windows.Closesocket(l.handle)
		return nil, ctx.Err()
	}
}

func (l *hypervListener) Addr() string {
	return fmt.Sprintf("hv:%d", l.port)
}

func (l *hypervListener) Close() error {
	return windows.Closesocket(l.handle)
}

// hypervDialer connects outbound Hyper-V sockets.
type hypervDialer struct{}

// NewHyperVDialer returns a Dialer that connects over AF_HYPERV.
func NewHyperVDialer() Dialer {
	return &hypervDialer{}
}

func (d *hypervDialer) Dial(ctx context.Context, addr string) (Stream, error) {
	cid, port, err := parseVsockAddr(addr)
	if err != nil {
		return nil, err
	}
	vmGUID, err := vmGUIDForCID(cid)
	if err != nil {
		return nil, err
	}

	h, err := createHvSocket()
	if err != nil {
		return nil, err
	}

	local := newSockaddrHV(hvGUIDZero, GUID{})
	if err := rawBind(h, &local); err != nil {
		windows.Closesocket(h)
		return nil, fmt.Errorf("vsockrpc: bind local AF_HYPERV socket: %w", err)
	}

	remote := newSockaddrHV(vmGUID, portServiceID(port))

	type result struct{ err error }
	ch := make(chan result, 1)
	go func() {
		ch <- result{rawConnect(h, &remote)}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			windows.Closesocket(h)
			return nil, fmt.Errorf("vsockrpc: connect AF_HYPERV cid=%d port=%d: %w", cid, port, r.err)
		}
		return &hvConn{h: h}, nil
	case <-ctx.Done():
		windows.Closesocket(h)
		return nil, ctx.Err()
	}
}
