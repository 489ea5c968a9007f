package ptyproc

import (
	"os"
	"os/exec"
	"time"

	"github.com/ptyproc-go/ptyproc/internal/ctty"
	"github.com/ptyproc-go/ptyproc/internal/ptypair"
)

const defaultTerminateDelay = 100 * time.Millisecond

// Spawn allocates a pty, opens its slave, and starts cmd's child attached
// to it as its controlling terminal. See SPEC_FULL.md §2/§4.2 for why this
// goes through os/exec + SysProcAttr instead of a literal fork/ctty dance:
// that substitution is the one place this package deviates from a raw
// syscall sequence, and it does so because Go disallows running arbitrary
// code between fork() and exec() in a multi-threaded process.
func Spawn(cmd Command) (*PtyProcess, error) {
	eofChar := eofCharFrom(0, 1)
	intrChar := intrCharFrom(0, 1)

	pair, err := ptypair.Allocate()
	if err != nil {
		if ae, ok := err.(*ptypair.AllocError); ok {
			return nil, &PtyAllocFailed{Errno: ae}
		}
		return nil, &PtyAllocFailed{Errno: err}
	}

	slave, err := pair.OpenSlave()
	if err != nil {
		pair.Close()
		return nil, &PtyAllocFailed{Errno: err}
	}

	if err := setEcho(int(slave.Fd()), false); err != nil {
		slave.Close()
		pair.Close()
		return nil, err
	}
	if err := setWinsize(int(slave.Fd()), defaultRows, defaultCols); err != nil {
		slave.Close()
		pair.Close()
		return nil, err
	}

	ec := exec.Command(cmd.Path, cmd.Args...)
	ec.Stdin = slave
	ec.Stdout = slave
	ec.Stderr = slave
	ec.Dir = cmd.Dir
	ec.Env = cmd.Env
	ec.SysProcAttr = ctty.Attr(int(slave.Fd()))

	startErr := ec.Start()

	// cmd.Start dup2's the slave into the child; our copy is no longer
	// needed once Start returns, whether it succeeded or failed.
	slave.Close()

	if startErr != nil {
		pair.Close()
		return nil, classifyStartError(cmd.Path, startErr)
	}

	// Mirror the 80x24 default onto the master, matching what was just
	// set on the slave.
	if err := setWinsize(int(pair.Master.Fd()), defaultRows, defaultCols); err != nil {
		killAndReap(ec.Process.Pid)
		pair.Close()
		return nil, err
	}

	delay := cmd.TerminateDelay
	if delay == 0 {
		delay = defaultTerminateDelay
	}

	p := &PtyProcess{
		master:         pair.Master,
		pid:            ec.Process.Pid,
		eofChar:        eofChar,
		intrChar:       intrChar,
		terminateDelay: delay,
	}

	handleFd, err := pair.DuplicateMaster()
	if err != nil {
		killAndReap(ec.Process.Pid)
		pair.Close()
		return nil, &SyscallError{Op: "dup", Errno: err}
	}
	p.handle = newStream(handleFd, "")

	p.installFinalizer()

	return p, nil
}

// killAndReap is used only on the narrow failure path between a
// successful Start and a successful PtyProcess construction: the child
// exists but no PtyProcess has been handed to the caller yet, so nothing
// else can reap it.
func killAndReap(pid int) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	proc.Kill()
	proc.Wait()
}
