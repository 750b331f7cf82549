package vsockrpc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResponseGuardDecodesResponsePayload(t *testing.T) {
	protocol := NewGobProtocol[testRequest, testResponse]()
	pool := NewBodyPool(4)
	buf, err := protocol.EncodeResponse(3, testResponse{Ok: true, Echo: "x"}, pool.Acquire(0))
	require.NoError(t, err)

	guard, err := newResponseGuard(protocol, buf, pool)
	require.NoError(t, err)
	require.Equal(t, testResponse{Ok: true, Echo: "x"}, guard.Payload())
}

func TestNewResponseGuardRejectsRequestEnvelope(t *testing.T) {
	protocol := NewGobProtocol[testRequest, testResponse]()
	pool := NewBodyPool(4)
	buf, err := protocol.EncodeRequest(3, testRequest{Op: "echo"}, pool.Acquire(0))
	require.NoError(t, err)

	_, err = newResponseGuard(protocol, buf, pool)
	require.ErrorIs(t, err, ErrNotRequest)
	require.Equal(t, 1, pool.Len()) // buffer released back to the pool on rejection
}

func TestResponseGuardReleaseReturnsBufferToPool(t *testing.T) {
	protocol := NewGobProtocol[testRequest, testResponse]()
	pool := NewBodyPool(4)
	buf, err := protocol.EncodeResponse(1, testResponse{Ok: true}, pool.Acquire(0))
	require.NoError(t, err)

	guard, err := newResponseGuard(protocol, buf, pool)
	require.NoError(t, err)
	require.Equal(t, 0, pool.Len())

	guard.Release()
	require.Equal(t, 1, pool.Len())

	guard.Release() // idempotent
	require.Equal(t, 1, pool.Len())
}
