package ptyproc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// StatusKind enumerates the states a child process can be observed in,
// decoded the same way executable.go decodes a syscall.WaitStatus for
// its own exit-code/signal reporting, just exposed as a first-class
// value instead of folded straight into an exit code.
type StatusKind int

const (
	StatusAlive StatusKind = iota
	StatusExited
	StatusSignaled
	StatusStopped
	StatusContinued
)

func (k StatusKind) String() string {
	switch k {
	case StatusAlive:
		return "alive"
	case StatusExited:
		return "exited"
	case StatusSignaled:
		return "signaled"
	case StatusStopped:
		return "stopped"
	case StatusContinued:
		return "continued"
	default:
		return "unknown"
	}
}

// Status is a point-in-time snapshot of a child's wait(2) state.
type Status struct {
	Kind       StatusKind
	ExitCode   int
	Signal     unix.Signal
	CoreDumped bool
}

func (s Status) String() string {
	switch s.Kind {
	case StatusExited:
		return fmt.Sprintf("exited(%d)", s.ExitCode)
	case StatusSignaled:
		if s.CoreDumped {
			return fmt.Sprintf("signaled(%v, core dumped)", s.Signal)
		}
		return fmt.Sprintf("signaled(%v)", s.Signal)
	case StatusStopped:
		return fmt.Sprintf("stopped(%v)", s.Signal)
	case StatusContinued:
		return "continued"
	default:
		return "alive"
	}
}

// statusFromWaitStatus decodes a unix.WaitStatus into Status, mirroring
// the Signaled()/ExitStatus()/StopSignal() decoding executable.go applies
// to exec.ExitError.Sys().(syscall.WaitStatus).
func statusFromWaitStatus(ws unix.WaitStatus) Status {
	switch {
	case ws.Exited():
		return Status{Kind: StatusExited, ExitCode: ws.ExitStatus()}
	case ws.Signaled():
		return Status{Kind: StatusSignaled, Signal: ws.Signal(), CoreDumped: ws.CoreDump()}
	case ws.Stopped():
		return Status{Kind: StatusStopped, Signal: ws.StopSignal()}
	case ws.Continued():
		return Status{Kind: StatusContinued}
	default:
		return Status{Kind: StatusAlive}
	}
}
