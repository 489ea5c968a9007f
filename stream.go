package ptyproc

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Stream is a byte-level handle onto a pty master, backed by its own
// dup'd file descriptor. Two Streams created from the same PtyProcess
// share one kernel file description (open file status, including the
// O_NONBLOCK flag TryRead/TryReadByte flip on and off); callers that use
// more than one Stream concurrently must serialize their own access.
type Stream struct {
	f *os.File
}

// newStream wraps an already-owned fd (e.g. from ptypair.Pair.DuplicateMaster).
func newStream(fd int, name string) *Stream {
	return &Stream{f: os.NewFile(uintptr(fd), name)}
}

// Read reads from the pty master. A master whose slave side has no open
// references left reports EIO on Linux rather than a clean EOF; Stream
// maps that to (0, nil) so callers see ordinary end-of-stream behavior
// instead of having to special-case EIO themselves.
func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	if err != nil && errors.Is(err, syscall.EIO) {
		return 0, nil
	}
	return n, err
}

// Write writes to the pty master.
func (s *Stream) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

// WriteVectored writes multiple buffers in one writev(2) call.
func (s *Stream) WriteVectored(bufs [][]byte) (int, error) {
	n, err := unix.Writev(int(s.f.Fd()), bufs)
	if err != nil {
		return n, &SyscallError{Op: "writev", Errno: err}
	}
	return n, nil
}

// Close closes this Stream's fd. It does not affect other Streams or
// Handles sharing the same underlying pty master.
func (s *Stream) Close() error {
	return s.f.Close()
}

// Fd returns the raw file descriptor, for callers that need it directly.
func (s *Stream) Fd() int {
	return int(s.f.Fd())
}

// TryRead performs a single non-blocking read attempt: it flips O_NONBLOCK
// on, reads once, then restores blocking mode before returning, since
// O_NONBLOCK is a property of the shared open file description and must
// not leak into other Streams dup'd from the same master. ok is false
// when the read would have blocked (EAGAIN/EWOULDBLOCK); err is non-nil
// only for a genuine error.
func (s *Stream) TryRead(p []byte) (n int, ok bool, err error) {
	fd := int(s.f.Fd())

	flags, ferr := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if ferr != nil {
		return 0, false, &SyscallError{Op: "fcntl(F_GETFL)", Errno: ferr}
	}
	if _, ferr := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|unix.O_NONBLOCK); ferr != nil {
		return 0, false, &SyscallError{Op: "fcntl(F_SETFL)", Errno: ferr}
	}
	defer unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags)

	n, err = unix.Read(fd, p)
	switch {
	case err == nil:
		return n, true, nil
	case errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK):
		return 0, false, nil
	case errors.Is(err, syscall.EIO):
		return 0, true, nil
	default:
		return 0, false, &SyscallError{Op: "read", Errno: err}
	}
}

// TryReadByte is TryRead specialized to a single byte, matching the
// original library's try_read_byte convenience method. It distinguishes
// three outcomes: nothing ready yet (ok=false, eof=false), end of stream
// (ok=false, eof=true), and a byte read (ok=true). A non-nil err means a
// genuine syscall failure rather than either of those states.
func (s *Stream) TryReadByte() (b byte, ok bool, eof bool, err error) {
	var buf [1]byte
	n, ready, rerr := s.TryRead(buf[:])
	if rerr != nil {
		return 0, false, false, rerr
	}
	if !ready {
		return 0, false, false, nil
	}
	if n == 0 {
		return 0, false, true, nil
	}
	return buf[0], true, false, nil
}
