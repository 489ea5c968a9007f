package ptyproc

import (
	"golang.org/x/sys/unix"
)

const (
	defaultEOFChar  = 0x04 // ^D
	defaultIntrChar = 0x03 // ^C

	defaultRows = 24
	defaultCols = 80
)

// specialChar reads a single termios control character (cc[idx]) off fd,
// falling back to the given default if tcgetattr fails (e.g. fd is not a
// terminal at all, which happens when a caller's stdin/stdout has been
// redirected to a file or pipe).
func specialChar(fd int, idx int, fallback byte) byte {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return fallback
	}
	return t.Cc[idx]
}

// eofCharFrom and intrCharFrom probe, in order, stdin then stdout for a
// working terminal, matching the original library's fallback order: most
// shells have stdin attached to a terminal even when stdout is
// redirected, but not always the other way around.
func eofCharFrom(stdin, stdout int) byte {
	if t, err := unix.IoctlGetTermios(stdin, ioctlGetTermios); err == nil {
		return t.Cc[unix.VEOF]
	}
	if t, err := unix.IoctlGetTermios(stdout, ioctlGetTermios); err == nil {
		return t.Cc[unix.VEOF]
	}
	return defaultEOFChar
}

func intrCharFrom(stdin, stdout int) byte {
	if t, err := unix.IoctlGetTermios(stdin, ioctlGetTermios); err == nil {
		return t.Cc[unix.VINTR]
	}
	if t, err := unix.IoctlGetTermios(stdout, ioctlGetTermios); err == nil {
		return t.Cc[unix.VINTR]
	}
	return defaultIntrChar
}

// setEcho toggles ECHO on fd's termios. Spawner uses this on the parent's
// open slave fd before Start(), since echo state belongs to the terminal
// device rather than to whichever fd touched it.
func setEcho(fd int, on bool) error {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return &SyscallError{Op: "tcgetattr", Errno: err}
	}
	if on {
		t.Lflag |= unix.ECHO
	} else {
		t.Lflag &^= unix.ECHO
	}
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, t); err != nil {
		return &SyscallError{Op: "tcsetattr", Errno: err}
	}
	return nil
}

func getEcho(fd int) (bool, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return false, &SyscallError{Op: "tcgetattr", Errno: err}
	}
	return t.Lflag&unix.ECHO != 0, nil
}

// SetRaw puts fd into raw mode (no echo, no canonical processing, no
// signal generation), the same algorithm golang.org/x/term applies to a
// caller's own terminal. It is exported because any consumer driving its
// own terminal against a ptyproc child (cmd/ptyrun's passthrough demo,
// for instance) needs the identical transformation applied to fd 0, not
// just to the spawned slave.
func SetRaw(fd int) error {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return &SyscallError{Op: "tcgetattr", Errno: err}
	}

	raw := *t
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return &SyscallError{Op: "tcsetattr", Errno: err}
	}
	return nil
}

// getWinsize/setWinsize wrap TIOCGWINSZ/TIOCSWINSZ.
func getWinsize(fd int) (rows, cols uint16, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, &SyscallError{Op: "ioctl(TIOCGWINSZ)", Errno: err}
	}
	return ws.Row, ws.Col, nil
}

func setWinsize(fd int, rows, cols uint16) error {
	ws := &unix.Winsize{Row: rows, Col: cols}
	if err := unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, ws); err != nil {
		return &SyscallError{Op: "ioctl(TIOCSWINSZ)", Errno: err}
	}
	return nil
}
