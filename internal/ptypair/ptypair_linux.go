//go:build linux

package ptypair

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// grant is a no-op on Linux: the devpts filesystem grants the correct
// slave ownership/permissions at open(2) time, so there is no separate
// grantpt(3) syscall to make (unlike the historical BSD pty pool).
func grant(fd int) error {
	return nil
}

// unlock clears the PTY lock bit set on the slave at allocation time.
func unlock(fd int) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCSPTLCK, 0)
}

// SlaveName resolves the slave device path via TIOCGPTN.
func (p *Pair) SlaveName() (string, error) {
	n, err := unix.IoctlGetInt(int(p.Master.Fd()), unix.TIOCGPTN)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/dev/pts/%d", n), nil
}
