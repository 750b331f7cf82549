package vsockrpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRpcBuilderFlow(t *testing.T) {
	ln, err := ListenTCP("127.0.0.1:0")
	require.NoError(t, err)

	protocol := NewGobProtocol[testRequest, testResponse]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewRpcBuilder(protocol).WithListener(ln).Service(echoHandler{})
	require.NoError(t, b.Run(ctx))

	client, err := NewTCPDialer().Dial(context.Background(), ln.Addr())
	require.NoError(t, err)
	defer client.Close()

	c := Connect(client, protocol)
	callCtx, callCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer callCancel()

	guard, err := c.Call(callCtx, testRequest{Op: "echo", Echo: "ping"})
	require.NoError(t, err)
	defer guard.Release()

	resp := guard.Payload().(testResponse)
	require.True(t, resp.Ok)
	require.Equal(t, "ping", resp.Echo)
}

func TestRpcBuilderDefaultsToNoOpHandler(t *testing.T) {
	ln, err := ListenTCP("127.0.0.1:0")
	require.NoError(t, err)

	protocol := NewGobProtocol[testRequest, testResponse]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewRpcBuilder(protocol).WithListener(ln)
	require.NoError(t, b.Run(ctx))

	client, err := NewTCPDialer().Dial(context.Background(), ln.Addr())
	require.NoError(t, err)
	defer client.Close()

	c := Connect(client, protocol, WithCallTimeout(200*time.Millisecond))
	_, err = c.Call(context.Background(), testRequest{Op: "echo"})
	require.ErrorIs(t, err, ErrTimeout)
}
