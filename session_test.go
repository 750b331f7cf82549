package vsockrpc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionLoopDropsResponseWithNoPendingEntry(t *testing.T) {
	protocol := NewGobProtocol[testRequest, testResponse]()
	pool := NewBodyPool(4)
	incoming := make(chan *AlignedBuffer, 1)

	buf, err := protocol.EncodeResponse(99, testResponse{Ok: true}, pool.Acquire(0))
	require.NoError(t, err)
	incoming <- buf
	close(incoming)

	outgoing := make(chan *AlignedBuffer, 1)
	sessionLoop(incoming, PeerHandle{outgoing: outgoing}, newPendingMap(), pool, protocol, NoOpHandler{}, defaultOptions.logger)

	require.Eventually(t, func() bool { return pool.Len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestSessionLoopDropsMalformedEnvelope(t *testing.T) {
	protocol := NewGobProtocol[testRequest, testResponse]()
	pool := NewBodyPool(4)
	incoming := make(chan *AlignedBuffer, 1)

	garbage := pool.Acquire(3)
	copy(garbage.Bytes(), []byte{0xff, 0xff, 0xff})
	incoming <- garbage
	close(incoming)

	outgoing := make(chan *AlignedBuffer, 1)
	sessionLoop(incoming, PeerHandle{outgoing: outgoing}, newPendingMap(), pool, protocol, NoOpHandler{}, defaultOptions.logger)

	require.Eventually(t, func() bool { return pool.Len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestSessionLoopRequestHandlerErrorDropsSilently(t *testing.T) {
	protocol := NewGobProtocol[testRequest, testResponse]()
	pool := NewBodyPool(4)
	incoming := make(chan *AlignedBuffer, 1)

	buf, err := protocol.EncodeRequest(1, testRequest{Op: "fail"}, pool.Acquire(0))
	require.NoError(t, err)
	incoming <- buf
	close(incoming)

	outgoing := make(chan *AlignedBuffer, 1)
	sessionLoop(incoming, PeerHandle{outgoing: outgoing}, newPendingMap(), pool, protocol, echoHandler{}, defaultOptions.logger)

	// echoHandler errors on Op=="fail": no response should ever be sent.
	select {
	case <-outgoing:
		t.Fatal("expected no response to be sent for a failed handler call")
	case <-time.After(100 * time.Millisecond):
	}
}
