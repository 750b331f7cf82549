package vsockrpc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBodyPoolAcquireAllocatesWhenEmpty(t *testing.T) {
	p := NewBodyPool(4)
	buf := p.Acquire(128)
	require.NotNil(t, buf)
	require.Equal(t, 128, buf.Len())
	require.GreaterOrEqual(t, buf.Cap(), 128)
}

func TestBodyPoolReleaseThenAcquireReusesBuffer(t *testing.T) {
	p := NewBodyPool(4)
	buf := p.Acquire(256)
	p.Release(buf)
	require.Equal(t, 1, p.Len())

	reused := p.Acquire(200)
	require.Equal(t, 0, p.Len())
	require.Equal(t, 200, reused.Len())
	require.GreaterOrEqual(t, reused.Cap(), 256)
}

func TestBodyPoolAcquirePrefersExactFit(t *testing.T) {
	p := NewBodyPool(4)
	small := p.Acquire(64)
	large := p.Acquire(512)
	p.Release(small)
	p.Release(large)
	require.Equal(t, 2, p.Len())

	got := p.Acquire(64)
	require.Same(t, small, got)
	require.Equal(t, 64, got.Len())
	require.Equal(t, 1, p.Len())
}

func TestBodyPoolReleaseDropsBeyondCapacity(t *testing.T) {
	p := NewBodyPool(1)
	a := p.Acquire(16)
	b := p.Acquire(16)

	p.Release(a)
	require.Equal(t, 1, p.Len())
	p.Release(b)
	require.Equal(t, 1, p.Len())
}

func TestBodyPoolReleaseNilIsNoop(t *testing.T) {
	p := NewBodyPool(4)
	p.Release(nil)
	require.Equal(t, 0, p.Len())
}
