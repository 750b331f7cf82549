package vsockrpc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Op   string
	Echo string
}

type testResponse struct {
	Ok   bool
	Echo string
}

func TestGobProtocolRequestRoundTrip(t *testing.T) {
	p := NewGobProtocol[testRequest, testResponse]()
	dest := NewAlignedBuffer(0)

	buf, err := p.EncodeRequest(7, testRequest{Op: "echo", Echo: "hi"}, dest)
	require.NoError(t, err)

	env, err := p.Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, KindRequest, env.Kind)
	require.EqualValues(t, 7, env.ID)
	require.Equal(t, testRequest{Op: "echo", Echo: "hi"}, env.Payload)
}

func TestGobProtocolResponseRoundTrip(t *testing.T) {
	p := NewGobProtocol[testRequest, testResponse]()
	dest := NewAlignedBuffer(0)

	buf, err := p.EncodeResponse(7, testResponse{Ok: true, Echo: "hi"}, dest)
	require.NoError(t, err)

	env, err := p.Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, KindResponse, env.Kind)
	require.Equal(t, testResponse{Ok: true, Echo: "hi"}, env.Payload)
}

func TestGobProtocolEncodeRequestRejectsWrongType(t *testing.T) {
	p := NewGobProtocol[testRequest, testResponse]()
	_, err := p.EncodeRequest(1, "not a request", NewAlignedBuffer(0))
	require.Error(t, err)
}

func TestGobProtocolDecodeRejectsGarbage(t *testing.T) {
	p := NewGobProtocol[testRequest, testResponse]()
	_, err := p.Decode([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
}
