package frame_test

import (
	"bytes"
	"io"
	"testing"

	"code.hybscloud.com/vsockrpc/internal/frame"
	"github.com/stretchr/testify/require"
)

func TestWriteFrameThenReadHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	hdr := make([]byte, frame.HeaderLen)
	body := []byte("hello, vsockrpc")

	require.NoError(t, frame.WriteFrame(&buf, hdr, body))

	n, err := frame.ReadHeader(&buf, hdr)
	require.NoError(t, err)
	require.EqualValues(t, len(body), n)

	got := make([]byte, n)
	require.NoError(t, frame.ReadFull(&buf, got))
	require.Equal(t, body, got)
}

func TestZeroLengthFrameIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	hdr := make([]byte, frame.HeaderLen)

	require.NoError(t, frame.WriteFrame(&buf, hdr, nil))

	n, err := frame.ReadHeader(&buf, hdr)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
	require.Equal(t, 0, buf.Len())
}

func TestReadHeaderRejectsWrongBufferSize(t *testing.T) {
	_, err := frame.ReadHeader(bytes.NewReader(nil), make([]byte, 3))
	require.Error(t, err)
}

func TestReadHeaderAtMaxBytesIsAccepted(t *testing.T) {
	hdr := make([]byte, frame.HeaderLen)
	frame.PutHeader(hdr, frame.MaxBytes)
	r := bytes.NewReader(hdr)

	n, err := frame.ReadHeader(r, hdr)
	require.NoError(t, err)
	require.EqualValues(t, frame.MaxBytes, n)
}

func TestReadHeaderOverMaxIsRejected(t *testing.T) {
	var buf bytes.Buffer
	hdr := make([]byte, frame.HeaderLen)
	frame.PutHeader(hdr, frame.MaxBytes+1)
	buf.Write(hdr)

	_, err := frame.ReadHeader(&buf, hdr)
	require.ErrorIs(t, err, frame.ErrTooLong)
}

func TestReadFullEOFOnEmptyStream(t *testing.T) {
	err := frame.ReadFull(bytes.NewReader(nil), make([]byte, 4))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadFullUnexpectedEOFOnShortStream(t *testing.T) {
	err := frame.ReadFull(bytes.NewReader([]byte{1, 2}), make([]byte, 4))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type shortWriter struct{ n int }

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return 1, nil
}

func TestWriteFullLoopsOverShortWrites(t *testing.T) {
	w := &shortWriter{}
	require.NoError(t, frame.WriteFull(w, []byte("abc")))
}

type stuckWriter struct{}

func (stuckWriter) Write(p []byte) (int, error) { return 0, nil }

func TestWriteFullFailsOnNoProgress(t *testing.T) {
	err := frame.WriteFull(stuckWriter{}, []byte("abc"))
	require.Error(t, err)
}
