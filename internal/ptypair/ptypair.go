// Package ptypair allocates PTY master/slave pairs and resolves the slave
// device name on the host OS.
package ptypair

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Pair owns a PTY master descriptor with unique ownership. While a Pair
// exists, the master is open, unlocked, and the slave is grantable.
type Pair struct {
	Master *os.File
}

// AllocError reports which step of the open/grant/unlock sequence failed.
type AllocError struct {
	Step  string
	Errno error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("pty alloc failed at %s: %v", e.Step, e.Errno)
}

func (e *AllocError) Unwrap() error { return e.Errno }

// Allocate opens /dev/ptmx, grants access to the slave and unlocks it.
func Allocate() (*Pair, error) {
	fd, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, &AllocError{Step: "open", Errno: err}
	}
	master := os.NewFile(uintptr(fd), "/dev/ptmx")

	if err := grant(fd); err != nil {
		master.Close()
		return nil, &AllocError{Step: "grantpt", Errno: err}
	}

	if err := unlock(fd); err != nil {
		master.Close()
		return nil, &AllocError{Step: "unlockpt", Errno: err}
	}

	return &Pair{Master: master}, nil
}

// OpenSlave opens the slave device for this pair (O_RDWR|O_NOCTTY).
func (p *Pair) OpenSlave() (*os.File, error) {
	name, err := p.SlaveName()
	if err != nil {
		return nil, err
	}
	fd, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(fd), name), nil
}

// DuplicateMaster returns a fresh dup of the master fd, owned by the caller.
func (p *Pair) DuplicateMaster() (int, error) {
	return unix.Dup(int(p.Master.Fd()))
}

// Close releases the master fd.
func (p *Pair) Close() error {
	return p.Master.Close()
}
