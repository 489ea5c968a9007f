//go:build linux

// Package ctty builds the per-OS SysProcAttr that hands a spawned child
// its controlling terminal, expressed through os/exec instead of a raw
// fork/ctty dance (see the root package's spawn.go for why).
package ctty

import "syscall"

// Attr returns the SysProcAttr that makes the slave at slaveFd (as seen
// by the child, after Stdin/Stdout/Stderr remapping it is always fd 0)
// the child's controlling terminal. Linux acquires it through the same
// Setsid+TIOCSCTTY path as every other platform this package supports;
// it has no extra verification step over the BSD family.
func Attr(slaveFd int) *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}
}
