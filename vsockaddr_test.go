package vsockrpc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVsockAddr(t *testing.T) {
	cid, port, err := parseVsockAddr("2:9000")
	require.NoError(t, err)
	require.EqualValues(t, 2, cid)
	require.EqualValues(t, 9000, port)
}

func TestParseVsockAddrRejectsMalformed(t *testing.T) {
	_, _, err := parseVsockAddr("not-an-address")
	require.Error(t, err)

	_, _, err = parseVsockAddr("abc:9000")
	require.Error(t, err)

	_, _, err = parseVsockAddr("2:xyz")
	require.Error(t, err)
}
