package ptyproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptyproc-go/ptyproc/internal/ptypair"
)

func TestSetEchoToggle(t *testing.T) {
	pair, err := ptypair.Allocate()
	require.NoError(t, err)
	defer pair.Close()

	slave, err := pair.OpenSlave()
	require.NoError(t, err)
	defer slave.Close()

	fd := int(slave.Fd())

	require.NoError(t, setEcho(fd, false))
	on, err := getEcho(fd)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, setEcho(fd, true))
	on, err = getEcho(fd)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestWinsizeRoundTrip(t *testing.T) {
	pair, err := ptypair.Allocate()
	require.NoError(t, err)
	defer pair.Close()

	fd := int(pair.Master.Fd())

	require.NoError(t, setWinsize(fd, 50, 132))
	rows, cols, err := getWinsize(fd)
	require.NoError(t, err)
	assert.EqualValues(t, 50, rows)
	assert.EqualValues(t, 132, cols)
}

func TestSetRawClearsEcho(t *testing.T) {
	pair, err := ptypair.Allocate()
	require.NoError(t, err)
	defer pair.Close()

	slave, err := pair.OpenSlave()
	require.NoError(t, err)
	defer slave.Close()

	fd := int(slave.Fd())
	require.NoError(t, SetRaw(fd))

	on, err := getEcho(fd)
	require.NoError(t, err)
	assert.False(t, on)
}
