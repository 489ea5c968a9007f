package ptyproc

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// PtyAllocFailed reports that master/slave allocation itself failed,
// before any child process was ever considered.
type PtyAllocFailed struct {
	Errno error
}

func (e *PtyAllocFailed) Error() string {
	return fmt.Sprintf("pty allocation failed: %v", e.Errno)
}

func (e *PtyAllocFailed) Unwrap() error { return e.Errno }

// ForkError reports that the underlying os/exec process-creation call
// failed before an exec attempt could even be made (e.g. resource
// exhaustion). Go's runtime does not distinguish this from ExecError at
// the API level, and Spawn does not return it: classifyStartError
// reports every start failure, fork failures included, as an ExecError.
type ForkError struct {
	Errno error
}

func (e *ForkError) Error() string {
	return fmt.Sprintf("fork failed: %v", e.Errno)
}

func (e *ForkError) Unwrap() error { return e.Errno }

// ExecError reports that the child's exec(3) call failed, as reported
// back over the close-on-exec pipe os/exec already maintains internally.
// errors.Is(err, syscall.ENOENT) distinguishes "command not found" from
// other exec failures such as permission errors.
type ExecError struct {
	Path  string
	Errno error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("exec %s: %v", e.Path, e.Errno)
}

func (e *ExecError) Unwrap() error { return e.Errno }

// PipeError wraps a failure reading the exec-error-reporting pipe itself,
// as opposed to a clean errno report carried over it.
type PipeError struct {
	Cause error
}

func (e *PipeError) Error() string {
	return fmt.Sprintf("exec error pipe: %v", e.Cause)
}

func (e *PipeError) Unwrap() error { return e.Cause }

// SyscallError reports a failure from a specific named syscall/ioctl,
// used by Controller and Stream for anything other than allocation and
// exec (tcgetattr, tcsetattr, ioctl winsize, wait4, kill, ...).
type SyscallError struct {
	Op    string
	Errno error
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Errno)
}

func (e *SyscallError) Unwrap() error { return e.Errno }

// classifyStartError turns the error returned by exec.Cmd.Start into this
// package's taxonomy. Go's os/exec already distinguishes "could not find
// program on PATH" (an *exec.Error wrapping exec.ErrNotFound from
// LookPath) from "fork/exec syscall failed" (an *fs.PathError wrapping the
// child's reported errno); Spawner relabels whatever os/exec produced as
// an ExecError so callers only ever deal with this package's own error
// types. The not-found case also wraps syscall.ENOENT, so that
// errors.Is(err, syscall.ENOENT) holds for it as it does for a missing
// path containing a slash.
func classifyStartError(path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		err = fmt.Errorf("%w: %w", syscall.ENOENT, err)
	}
	return &ExecError{Path: path, Errno: err}
}
