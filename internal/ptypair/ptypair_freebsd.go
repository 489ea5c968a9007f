//go:build freebsd

package ptypair

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// grant/unlock are no-ops on FreeBSD: devfs grants the slave correct
// ownership at posix_openpt(2) time, same as Linux's devpts.
func grant(fd int) error  { return nil }
func unlock(fd int) error { return nil }

// SlaveName verifies fd is a PTY master via TIOCPTMASTER, then resolves
// the device name via FIODGNAME and prepends "/dev/".
func (p *Pair) SlaveName() (string, error) {
	fd := int(p.Master.Fd())

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(unix.TIOCPTMASTER), 0); errno != 0 {
		return "", errno
	}

	var buf [128]byte
	arg := struct {
		Buf uintptr
		Len int32
		_   [4]byte
	}{Buf: uintptr(unsafe.Pointer(&buf[0])), Len: int32(len(buf))}

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(unix.FIODGNAME), uintptr(unsafe.Pointer(&arg))); errno != 0 {
		return "", errno
	}

	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return "/dev/" + string(buf[:n]), nil
}
