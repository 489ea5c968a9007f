package ptyproc

import "time"

// Command describes a child process to spawn attached to a new pty.
// There is no builder/functional-options surface here deliberately: this
// is a handful of plain fields, set directly, the way Executable's own
// exported fields work.
type Command struct {
	// Path is the program to execute. It is resolved the same way
	// os/exec.Command resolves it: if it contains a slash it is used
	// as-is, otherwise it is looked up on PATH.
	Path string

	// Args are the arguments passed to the program, not including
	// argv[0].
	Args []string

	// Env is the child's environment. A nil Env means "inherit the
	// current process's environment", matching os/exec's own default.
	Env []string

	// Dir is the child's working directory. Empty means the caller's
	// current directory.
	Dir string

	// TerminateDelay is the pause between each signal step of a
	// graceful Exit. Zero means the package default of 100ms.
	TerminateDelay time.Duration
}
