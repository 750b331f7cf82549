// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import "fmt"

// GUID is a 16-byte Windows GUID in its canonical field layout
// (Data1 LE u32, Data2 LE u16, Data3 LE u16, Data4 8 bytes big-endian).
// It is defined here, rather than behind a windows build tag, so the
// service-id derivation is testable on every platform.
type GUID [16]byte

// newGUIDFromValues builds a GUID from the Windows GUID_from_values field
// order: data1 (u32), data2 (u16), data3 (u16), data4 (8 raw bytes).
func newGUIDFromValues(data1 uint32, data2, data3 uint16, data4 [8]byte) GUID {
	var g GUID
	g[0] = byte(data1)
	g[1] = byte(data1 >> 8)
	g[2] = byte(data1 >> 16)
	g[3] = byte(data1 >> 24)
	g[4] = byte(data2)
	g[5] = byte(data2 >> 8)
	g[6] = byte(data3)
	g[7] = byte(data3 >> 8)
	copy(g[8:], data4[:])
	return g
}

// hvGUIDLoopback and hvGUIDParent are the well-known Hyper-V VM ids for
// cid 0/1 (loopback) and cid 2 (parent partition), matching
// HV_GUID_LOOPBACK / HV_GUID_PARENT.
var (
	hvGUIDLoopback = newGUIDFromValues(0xe0e16197, 0xdd56, 0x4a10, [8]byte{0x91, 0x95, 0x5e, 0xe7, 0xa1, 0x55, 0xa8, 0x38})
	hvGUIDParent   = newGUIDFromValues(0xa42e7cda, 0xd03f, 0x480c, [8]byte{0x9c, 0xc2, 0xa4, 0xde, 0x20, 0xab, 0xb8, 0x78})
	hvGUIDZero     = GUID{}
)

// portServiceID embeds port into the first 32 bits of the well-known
// Hyper-V AF_HYPERV service-id template, matching the original
// ToServiceId::to_guid impl for u32.
func portServiceID(port uint32) GUID {
	return newGUIDFromValues(port, 0xfacb, 0x11e6, [8]byte{0xbd, 0x58, 0x64, 0x00, 0x6a, 0x79, 0x86, 0xd3})
}

// vmGUIDForCID maps a VSOCK-style context id to the Hyper-V VM id used to
// address it: 0 and 1 both mean "this host" (loopback), 2 means the parent
// partition. Any other cid is rejected since Hyper-V sockets address VMs
// by GUID, not by numeric cid, for anything beyond these well-known ones.
func vmGUIDForCID(cid uint32) (GUID, error) {
	switch cid {
	case 0, 1:
		return hvGUIDLoopback, nil
	case 2:
		return hvGUIDParent, nil
	default:
		return GUID{}, fmt.Errorf("vsockrpc: unsupported Hyper-V context id %d", cid)
	}
}
