//go:build darwin || freebsd || netbsd || openbsd

package ctty

import "syscall"

// Attr returns the SysProcAttr that makes the slave the child's
// controlling terminal. The BSD family (and Darwin) route TIOCSCTTY
// through the same Setsid+Setctty combination as Linux; unlike the
// classic System V dance (open /dev/tty, close, setsid, reopen
// expecting ENXIO) there is nothing extra to verify here, since the
// kernel performs the acquisition atomically as part of the exec.
func Attr(slaveFd int) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}
}
