// Command ptyrun is a demo external collaborator built on top of the
// ptyproc library: it spawns the requested program under a pty and
// relays bytes between it and the caller's own terminal. It is not part
// of the library's tested surface (see SPEC_FULL.md's out-of-scope list,
// which names "interact").
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/ptyproc-go/ptyproc"
)

func main() {
	var rows, cols int
	var timeout time.Duration
	var pollHz float64

	pflag.IntVar(&rows, "rows", 24, "pty rows")
	pflag.IntVar(&cols, "cols", 80, "pty cols")
	pflag.DurationVar(&timeout, "timeout", 0, "kill the child after this long (0 = no timeout)")
	pflag.Float64Var(&pollHz, "poll-hz", 200, "non-blocking read poll rate")
	pflag.Parse()

	args := pflag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ptyrun [flags] -- program [args...]")
		os.Exit(2)
	}

	proc, err := ptyproc.Spawn(ptyproc.Command{Path: args[0], Args: args[1:]})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ptyrun:", err)
		os.Exit(1)
	}
	defer proc.Close()

	if err := proc.SetWindowSize(uint16(rows), uint16(cols)); err != nil {
		fmt.Fprintln(os.Stderr, "ptyrun: set window size:", err)
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var restore func()
	if isatty.IsTerminal(os.Stdin.Fd()) {
		prevState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err == nil {
			restore = func() { term.Restore(int(os.Stdin.Fd()), prevState) }
			defer restore()
		}
	}

	go relayStdin(proc)
	relayOutput(ctx, proc, pollHz)

	if ctx.Err() != nil {
		if _, err := proc.Exit(true); err != nil {
			fmt.Fprintln(os.Stderr, "ptyrun: exit:", err)
		}
	}

	status, err := proc.Wait()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ptyrun: wait:", err)
		os.Exit(1)
	}
	if status.Kind == ptyproc.StatusExited {
		os.Exit(status.ExitCode)
	}
}

// relayStdin forwards the caller's stdin to the child's terminal until
// stdin closes or the write fails (child exited).
func relayStdin(proc *ptyproc.PtyProcess) {
	buf := make([]byte, 4096)
	h := proc.Handle()
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if _, werr := h.Write(buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// relayOutput polls the child's terminal with TryRead at a bounded rate,
// writing anything received straight to the caller's stdout, stopping
// when the child exits or ctx is cancelled.
func relayOutput(ctx context.Context, proc *ptyproc.PtyProcess, hz float64) {
	limiter := rate.NewLimiter(rate.Limit(hz), 1)
	buf := make([]byte, 4096)
	h := proc.Handle()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		alive, err := proc.IsAlive()
		if err != nil || !alive {
			return
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		n, ok, err := h.TryRead(buf)
		if err != nil {
			return
		}
		if ok && n > 0 {
			os.Stdout.Write(buf[:n])
		}
	}
}
