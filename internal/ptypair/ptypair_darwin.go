//go:build darwin

package ptypair

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// grant asks the kernel to fix up slave ownership/permissions; Darwin
// exposes this as a real ioctl rather than the libc grantpt() helper
// function (which historically forked a setuid helper).
func grant(fd int) error {
	return unix.IoctlSetInt(fd, unix.TIOCPTYGRANT, 0)
}

func unlock(fd int) error {
	return unix.IoctlSetInt(fd, unix.TIOCPTYUNLK, 0)
}

// slaveNameBufSize matches sys/ttycom.h's TTY device name buffer on Darwin.
const slaveNameBufSize = 128

// SlaveName resolves the slave device path via TIOCPTYGNAME.
func (p *Pair) SlaveName() (string, error) {
	var buf [slaveNameBufSize]byte
	if err := ioctlPtyGName(int(p.Master.Fd()), &buf); err != nil {
		return "", err
	}
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n]), nil
}

func ioctlPtyGName(fd int, buf *[slaveNameBufSize]byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(unix.TIOCPTYGNAME), uintptr(unsafe.Pointer(buf)))
	if errno != 0 {
		return errno
	}
	return nil
}
