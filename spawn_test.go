package ptyproc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/ptyproc-go/ptyproc"
)

func TestSpawnMissingProgram(t *testing.T) {
	_, err := ptyproc.Spawn(ptyproc.Command{Path: "/no/such/program-xyz"})
	require.Error(t, err)

	var execErr *ptyproc.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "/no/such/program-xyz", execErr.Path)
}

func TestSpawnEchoRoundTrip(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "cat"})
	require.NoError(t, err)
	defer proc.Close()

	h := proc.Handle()
	_, err = h.Write([]byte("hello pty\n"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := h.Read(buf)
	require.NoError(t, err)
	// The slave's line discipline still has OPOST/ONLCR enabled (only ECHO
	// is cleared), so the kernel translates the trailing \n to \r\n on its
	// way back out, same as a real terminal.
	assert.Equal(t, "hello pty\r\n", string(buf[:n]))
}

func TestSpawnEchoIsOffByDefault(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "sleep", Args: []string{"0.2"}})
	require.NoError(t, err)
	defer proc.Close()

	on, err := proc.GetEcho()
	require.NoError(t, err)
	assert.False(t, on)
}

func TestSetEchoObservedWithinTimeout(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "sleep", Args: []string{"0.2"}})
	require.NoError(t, err)
	defer proc.Close()

	observed, err := proc.SetEcho(true, time.Second)
	require.NoError(t, err)
	assert.True(t, observed)

	on, err := proc.GetEcho()
	require.NoError(t, err)
	assert.True(t, on)
}

func TestSpawnDefaultWindowSize(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "sleep", Args: []string{"0.2"}})
	require.NoError(t, err)
	defer proc.Close()

	rows, cols, err := proc.WindowSize()
	require.NoError(t, err)
	assert.EqualValues(t, 24, rows)
	assert.EqualValues(t, 80, cols)
}

func TestSetWindowSize(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "sleep", Args: []string{"0.2"}})
	require.NoError(t, err)
	defer proc.Close()

	require.NoError(t, proc.SetWindowSize(40, 120))

	rows, cols, err := proc.WindowSize()
	require.NoError(t, err)
	assert.EqualValues(t, 40, rows)
	assert.EqualValues(t, 120, cols)
}

func TestSendIntrStopsChild(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "sleep", Args: []string{"60"}})
	require.NoError(t, err)
	defer proc.Close()

	require.NoError(t, proc.SendIntr())

	status, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, ptyproc.StatusSignaled, status.Kind)
	assert.Equal(t, unix.SIGINT, status.Signal)
}

func TestSendEOFEndsCat(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "cat"})
	require.NoError(t, err)
	defer proc.Close()

	require.NoError(t, proc.SendEOF())

	status, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, ptyproc.StatusExited, status.Kind)
	assert.Equal(t, 0, status.ExitCode)
}

func TestShortLivedChildExitCode(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "sh", Args: []string{"-c", "exit 3"}})
	require.NoError(t, err)
	defer proc.Close()

	status, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, ptyproc.StatusExited, status.Kind)
	assert.Equal(t, 3, status.ExitCode)
}

func TestIsAlive(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "sleep", Args: []string{"0.3"}})
	require.NoError(t, err)
	defer proc.Close()

	alive, err := proc.IsAlive()
	require.NoError(t, err)
	assert.True(t, alive)

	time.Sleep(500 * time.Millisecond)

	alive, err = proc.IsAlive()
	require.NoError(t, err)
	assert.False(t, alive)
}

func TestExitGracefulEscalation(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{
		Path: "sh",
		Args: []string{"-c", "trap '' HUP INT TERM; sleep 60"},
	})
	require.NoError(t, err)
	defer proc.Close()
	proc.SetTerminateDelay(20 * time.Millisecond)

	time.Sleep(50 * time.Millisecond)

	status, err := proc.Exit(true)
	require.NoError(t, err)
	assert.Equal(t, ptyproc.StatusSignaled, status.Kind)
	assert.Equal(t, unix.SIGKILL, status.Signal)
}

func TestNewStreamIsIndependent(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "cat"})
	require.NoError(t, err)
	defer proc.Close()

	s, err := proc.NewStream()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Write([]byte("via second stream\n"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := proc.Handle().Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "via second stream\r\n", string(buf[:n]))
}

func TestTryReadDoesNotBlock(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "sleep", Args: []string{"0.3"}})
	require.NoError(t, err)
	defer proc.Close()

	buf := make([]byte, 16)
	n, ok, err := proc.Handle().TryRead(buf)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestTryReadByteSequence(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "cat"})
	require.NoError(t, err)
	defer proc.Close()

	h := proc.Handle()

	// Nothing written yet: neither ready nor eof.
	_, ok, eof, err := h.TryReadByte()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, eof)

	_, err = h.Write([]byte("123\n"))
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	var got []byte
	for i := 0; i < 5; i++ {
		b, ok, eof, err := h.TryReadByte()
		require.NoError(t, err)
		require.False(t, eof)
		require.True(t, ok)
		got = append(got, b)
	}
	assert.Equal(t, []byte("123\r\n"), got)

	_, ok, eof, err = h.TryReadByte()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, eof)
}

func TestTryReadByteObservesEOF(t *testing.T) {
	proc, err := ptyproc.Spawn(ptyproc.Command{Path: "cat"})
	require.NoError(t, err)
	defer proc.Close()

	h := proc.Handle()
	require.NoError(t, proc.SendEOF())

	status, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, ptyproc.StatusExited, status.Kind)

	_, ok, eof, err := h.TryReadByte()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, eof)
}
