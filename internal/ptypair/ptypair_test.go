package ptypair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateOpenSlaveRoundTrip(t *testing.T) {
	pair, err := Allocate()
	require.NoError(t, err)
	defer pair.Close()

	name, err := pair.SlaveName()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "/dev/"))

	slave, err := pair.OpenSlave()
	require.NoError(t, err)
	defer slave.Close()

	_, err = slave.Write([]byte("ping"))
	require.NoError(t, err)

	buf := make([]byte, 4)
	n, err := pair.Master.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
}

func TestDuplicateMasterIsIndependentFd(t *testing.T) {
	pair, err := Allocate()
	require.NoError(t, err)
	defer pair.Close()

	dupFd, err := pair.DuplicateMaster()
	require.NoError(t, err)
	assert.NotEqual(t, int(pair.Master.Fd()), dupFd)
}
