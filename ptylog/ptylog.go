// Package ptylog provides opt-in colorized tracing of signal escalation
// and reap events. It is silent by default, so running the
// library under test produces no output unless a caller wires a Logger in.
package ptylog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
)

func colorize(c color.Attribute, fstring string, args ...any) string {
	msg := fstring
	if len(args) > 0 {
		msg = fmt.Sprintf(fstring, args...)
	}
	return color.New(c).SprintFunc()(msg)
}

// Logger is a small leveled, colorized wrapper over log.Logger. Unlike
// the teacher's Logger it carries no secondary-prefix stack: ptyproc has
// no stage-nesting concept, just one child process per Logger.
type Logger struct {
	// Debug enables Debugf output. Off by default.
	Debug bool

	logger *log.Logger
}

// New returns a Logger with the given prefix, writing to stdout.
func New(prefix string) *Logger {
	return &Logger{logger: log.New(os.Stdout, colorize(color.FgYellow, "%s", prefix), 0)}
}

// Discard returns a Logger that drops everything. ptyproc.PtyProcess does
// not use it as its default: an unset PtyProcess.Logger is nil, and a nil
// Logger is already silent.
func Discard() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0)}
}

func (l *Logger) println(line string) {
	if l == nil {
		return
	}
	l.logger.Println(line)
}

func (l *Logger) Infof(fstring string, args ...any) {
	for _, line := range strings.Split(colorize(color.FgHiBlue, fstring, args...), "\n") {
		l.println(line)
	}
}

func (l *Logger) Errorf(fstring string, args ...any) {
	for _, line := range strings.Split(colorize(color.FgHiRed, fstring, args...), "\n") {
		l.println(line)
	}
}

func (l *Logger) Debugf(fstring string, args ...any) {
	if l == nil || !l.Debug {
		return
	}
	for _, line := range strings.Split(colorize(color.FgCyan, fstring, args...), "\n") {
		l.println(line)
	}
}
