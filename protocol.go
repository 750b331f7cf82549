// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

// EnvelopeKind distinguishes a request envelope from a response envelope.
type EnvelopeKind uint8

const (
	KindRequest EnvelopeKind = iota
	KindResponse
)

// Envelope is a decoded, tagged Request/Response carrying a 64-bit
// correlation id that a session loop or Client uses to match a Response
// back to the Request that produced it.
type Envelope struct {
	Kind    EnvelopeKind
	ID      uint64
	Payload any
}

// Protocol is the pluggable encode/decode contract for envelopes exchanged
// over a Peer. It is expressed as a plain Go interface rather than a
// generic one: the concrete request/response payload types vary per
// implementation, and callers type-assert Envelope.Payload to the concrete
// type their Protocol produces.
type Protocol interface {
	// Decode parses a raw frame body into an Envelope. Implementations
	// should validate the payload eagerly enough that a later type
	// assertion on Payload cannot itself panic.
	Decode(data []byte) (Envelope, error)

	// EncodeRequest encodes a request payload tagged with id into dest,
	// returning the buffer actually used (which may be dest, grown in
	// place, or a different buffer entirely).
	EncodeRequest(id uint64, payload any, dest *AlignedBuffer) (*AlignedBuffer, error)

	// EncodeResponse encodes a response payload tagged with id into dest.
	EncodeResponse(id uint64, payload any, dest *AlignedBuffer) (*AlignedBuffer, error)
}

// ServiceHandler answers inbound requests. Handlers are invoked once per
// inbound request envelope, concurrently with any other in-flight request
// on the same session.
type ServiceHandler interface {
	OnRequest(payload any) (any, error)
}

// NoOpHandler answers every request with an error, matching the
// unconfigured-server default: callers reliably time out instead of
// silently succeeding against a server with no registered service.
type NoOpHandler struct{}

func (NoOpHandler) OnRequest(any) (any, error) {
	return nil, ErrNoHandler
}
