// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// GobProtocol is the reference Protocol implementation: it encodes
// envelopes with the standard library's encoding/gob, the same codec
// net/rpc itself defaults to. Protocol is deliberately format-agnostic, so
// applications with schema-evolution or zero-copy requirements are expected
// to supply their own; GobProtocol exists so the rest of this package is
// exercisable without pulling in an external schema compiler.
//
// Req and Res are the concrete request/response payload types carried by
// every envelope GobProtocol encodes and decodes; callers register them
// with gob.Register if they are interfaces or contain interface fields.
type GobProtocol[Req any, Res any] struct{}

// NewGobProtocol returns a GobProtocol for the given request/response
// payload types.
func NewGobProtocol[Req any, Res any]() GobProtocol[Req, Res] {
	return GobProtocol[Req, Res]{}
}

type gobEnvelope[Req any, Res any] struct {
	Kind    EnvelopeKind
	ID      uint64
	Request Req
	Response Res
}

func (GobProtocol[Req, Res]) Decode(data []byte) (Envelope, error) {
	var w gobEnvelope[Req, Res]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return Envelope{}, fmt.Errorf("vsockrpc: gob decode: %w", err)
	}
	env := Envelope{Kind: w.Kind, ID: w.ID}
	if w.Kind == KindRequest {
		env.Payload = w.Request
	} else {
		env.Payload = w.Response
	}
	return env, nil
}

func (GobProtocol[Req, Res]) EncodeRequest(id uint64, payload any, dest *AlignedBuffer) (*AlignedBuffer, error) {
	req, ok := payload.(Req)
	if !ok {
		return dest, fmt.Errorf("vsockrpc: gob encode request: payload has wrong type %T", payload)
	}
	return encodeGobEnvelope(gobEnvelope[Req, Res]{Kind: KindRequest, ID: id, Request: req}, dest)
}

func (GobProtocol[Req, Res]) EncodeResponse(id uint64, payload any, dest *AlignedBuffer) (*AlignedBuffer, error) {
	resp, ok := payload.(Res)
	if !ok {
		return dest, fmt.Errorf("vsockrpc: gob encode response: payload has wrong type %T", payload)
	}
	return encodeGobEnvelope(gobEnvelope[Req, Res]{Kind: KindResponse, ID: id, Response: resp}, dest)
}

func encodeGobEnvelope[Req any, Res any](w gobEnvelope[Req, Res], dest *AlignedBuffer) (*AlignedBuffer, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return dest, fmt.Errorf("vsockrpc: gob encode: %w", err)
	}
	n := buf.Len()
	dest.Grow(n)
	dest.SetLen(n)
	copy(dest.Bytes(), buf.Bytes())
	return dest, nil
}
