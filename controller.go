// Package ptyproc spawns a child process attached to a freshly allocated
// pseudo-terminal and exposes its lifecycle, signal, and terminal
// attributes, plus a byte stream to the slave side.
package ptyproc

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"

	"github.com/ptyproc-go/ptyproc/ptylog"
)

// PtyProcess is the unique-owner controller for one spawned child and its
// pty master. There should be exactly one PtyProcess per child: it alone
// calls Wait4 on the pid, so a second owner would race it for the reap.
type PtyProcess struct {
	master *os.File
	handle *Stream
	pid    int

	eofChar  byte
	intrChar byte

	terminateDelay time.Duration

	// Logger is nil by default (silent); set it, with Debug enabled, to
	// trace signal and reap events.
	Logger *ptylog.Logger

	lastStatus Status
	reaped     bool
}

// Pid returns the child's process ID.
func (p *PtyProcess) Pid() int { return p.pid }

// Handle returns the default Stream for this process's master, created
// once at Spawn time and reused on every call. Use NewStream for an
// independent duplicate when concurrent readers/writers are needed.
func (p *PtyProcess) Handle() *Stream { return p.handle }

// NewStream returns a fresh Stream duplicated from the master fd. It has
// its own fd, closed independently of Handle()'s, but shares the open
// file description (and its status flags) with every other Stream.
func (p *PtyProcess) NewStream() (*Stream, error) {
	fd, err := unix.Dup(int(p.master.Fd()))
	if err != nil {
		return nil, &SyscallError{Op: "dup", Errno: err}
	}
	return newStream(fd, ""), nil
}

// IsATTY reports whether the master fd is recognized as a terminal,
// using the same isatty check the teacher applies to a process's output
// stream before deciding whether to treat EIO as expected.
func (p *PtyProcess) IsATTY() bool {
	return isatty.IsTerminal(p.master.Fd())
}

// WindowSize returns the current pty window size.
func (p *PtyProcess) WindowSize() (rows, cols uint16, err error) {
	return getWinsize(int(p.master.Fd()))
}

// SetWindowSize resizes the pty.
func (p *PtyProcess) SetWindowSize(rows, cols uint16) error {
	return setWinsize(int(p.master.Fd()), rows, cols)
}

// GetEcho reports whether the slave's ECHO flag is currently set.
func (p *PtyProcess) GetEcho() (bool, error) {
	return getEcho(int(p.master.Fd()))
}

// echoPollInterval is how often SetEcho re-checks GetEcho while waiting
// for the requested state to take effect.
const echoPollInterval = 100 * time.Millisecond

// SetEcho sets the slave's ECHO flag, then polls GetEcho every 100ms
// until the kernel reports the requested state or timeout elapses,
// returning whether the state was observed. timeout <= 0 means no
// deadline: SetEcho polls until it observes the requested state.
func (p *PtyProcess) SetEcho(on bool, timeout time.Duration) (bool, error) {
	if err := setEcho(int(p.master.Fd()), on); err != nil {
		return false, err
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		cur, err := p.GetEcho()
		if err != nil {
			return false, err
		}
		if cur == on {
			return true, nil
		}
		if timeout > 0 && time.Now().After(deadline) {
			return false, nil
		}
		time.Sleep(echoPollInterval)
	}
}

// EOFChar returns the byte that sends EOF to the child's terminal
// (captured from the caller's own terminal at Spawn time, or 0x04).
func (p *PtyProcess) EOFChar() byte { return p.eofChar }

// IntrChar returns the byte that sends an interrupt to the child's
// terminal (captured at Spawn time, or 0x03).
func (p *PtyProcess) IntrChar() byte { return p.intrChar }

// SendEOF writes the cached EOF character to the child's terminal.
func (p *PtyProcess) SendEOF() error {
	_, err := p.handle.Write([]byte{p.eofChar})
	return err
}

// SendIntr writes the cached interrupt character to the child's terminal.
func (p *PtyProcess) SendIntr() error {
	_, err := p.handle.Write([]byte{p.intrChar})
	return err
}

// SetTerminateDelay overrides the pause Exit sleeps between each signal
// step of its graceful escalation.
func (p *PtyProcess) SetTerminateDelay(d time.Duration) {
	p.terminateDelay = d
}

// Status returns the child's current state without blocking, via
// waitpid(pid, WNOHANG). Once a terminal status (Exited/Signaled) has
// been observed, it is cached and returned on every subsequent call
// instead of re-waiting on an already-reaped pid.
func (p *PtyProcess) Status() (Status, error) {
	if p.reaped {
		return p.lastStatus, nil
	}

	var ws unix.WaitStatus
	wpid, err := unix.Wait4(p.pid, &ws, unix.WNOHANG, nil)
	if err != nil {
		return Status{}, &SyscallError{Op: "wait4", Errno: err}
	}
	if wpid == 0 {
		return Status{Kind: StatusAlive}, nil
	}

	st := statusFromWaitStatus(ws)
	if st.Kind == StatusExited || st.Kind == StatusSignaled {
		p.reaped = true
		p.lastStatus = st
		p.logf("child %d reaped: %s", p.pid, st)
	}
	return st, nil
}

// IsAlive is a convenience wrapper around Status.
func (p *PtyProcess) IsAlive() (bool, error) {
	st, err := p.Status()
	if err != nil {
		return false, err
	}
	return st.Kind == StatusAlive || st.Kind == StatusStopped, nil
}

// Signal sends sig to the child.
func (p *PtyProcess) Signal(sig unix.Signal) error {
	if err := unix.Kill(p.pid, sig); err != nil {
		return &SyscallError{Op: fmt.Sprintf("kill(%v)", sig), Errno: err}
	}
	return nil
}

// Wait blocks until the child reaches a terminal state, polling Status
// with a short sleep between checks since this package never calls the
// blocking unix.Wait4 without WNOHANG (doing so would make Status and
// Wait race each other for the same pid's reap).
func (p *PtyProcess) Wait() (Status, error) {
	for {
		st, err := p.Status()
		if err != nil {
			return Status{}, err
		}
		if st.Kind == StatusExited || st.Kind == StatusSignaled {
			return st, nil
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// gracefulSignals is the escalation ladder Exit walks through before
// finally resorting to SIGKILL.
var gracefulSignals = []unix.Signal{unix.SIGHUP, unix.SIGCONT, unix.SIGINT, unix.SIGTERM}

// Exit asks the child to terminate, sending each signal in
// gracefulSignals in turn with terminateDelay between them. If the child
// is still alive after the ladder and force is true, it sends SIGKILL and
// waits for the reap; if force is false it returns with the child still
// alive.
func (p *PtyProcess) Exit(force bool) (Status, error) {
	for _, sig := range gracefulSignals {
		alive, err := p.IsAlive()
		if err != nil {
			return Status{}, err
		}
		if !alive {
			return p.Status()
		}
		p.logf("sending %v to %d", sig, p.pid)
		if err := p.Signal(sig); err != nil {
			return Status{}, err
		}
		time.Sleep(p.terminateDelay)
	}

	alive, err := p.IsAlive()
	if err != nil {
		return Status{}, err
	}
	if !alive {
		return p.Status()
	}
	if !force {
		return p.Status()
	}

	p.logf("sending SIGKILL to %d", p.pid)
	if err := p.Signal(unix.SIGKILL); err != nil {
		return Status{}, err
	}
	return p.Wait()
}

// Close is the Go idiom for the original library's Drop: if the child is
// still alive it force-exits it, then releases the master fd and its
// default Handle. Calling Close more than once is safe.
func (p *PtyProcess) Close() error {
	runtime.SetFinalizer(p, nil)

	if alive, err := p.IsAlive(); err == nil && alive {
		if _, err := p.Exit(true); err != nil {
			p.logf("close: exit failed: %v", err)
		}
		if alive, _ := p.IsAlive(); alive {
			panic("ptyproc: child still alive after forced exit")
		}
	}

	p.handle.Close()
	return p.master.Close()
}

// installFinalizer arranges for a forgotten PtyProcess to still be
// force-killed and reaped rather than leaking a child, logging rather
// than panicking since a panic raised from inside a finalizer is never
// observable by the caller.
func (p *PtyProcess) installFinalizer() {
	runtime.SetFinalizer(p, func(p *PtyProcess) {
		if alive, err := p.IsAlive(); err == nil && alive {
			p.logf("pty process %d garbage collected while still alive; force-killing", p.pid)
			p.Exit(true)
		}
		p.handle.Close()
		p.master.Close()
	})
}

func (p *PtyProcess) logf(fstring string, args ...any) {
	if p.Logger == nil {
		return
	}
	p.Logger.Debugf(fstring, args...)
}
