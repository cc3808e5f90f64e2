package main

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// rawTerminal adapts the controlling tty to machine.Terminal. It puts stdin
// into raw mode so GETC/IN see keystrokes as soon as they're typed, and
// polls readiness with a zero-timeout select rather than blocking, so
// MR_KBSR reads never stall the fetch loop.
type rawTerminal struct {
	fd    int
	state *term.State
}

// newRawTerminal enters raw mode when stdin is an actual tty and enable is
// true. When either is false it returns an adapter that still services
// GETC/IN with blocking reads, just without raw-mode keystroke semantics.
func newRawTerminal(enable bool) (*rawTerminal, error) {
	fd := int(os.Stdin.Fd())
	rt := &rawTerminal{fd: fd}

	if !enable || !term.IsTerminal(fd) {
		return rt, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	rt.state = state
	return rt, nil
}

// Restore puts the tty back the way it was found. Safe to call even when
// raw mode was never entered.
func (rt *rawTerminal) Restore() {
	if rt.state == nil {
		return
	}
	term.Restore(rt.fd, rt.state)
}

// CheckKey polls stdin with a zero-timeout select so it never blocks the
// fetch-decode-execute loop.
func (rt *rawTerminal) CheckKey() bool {
	var readfds unix.FdSet
	fdSet(&readfds, rt.fd)

	timeout := unix.Timeval{Sec: 0, Usec: 0}
	n, err := unix.Select(rt.fd+1, &readfds, nil, nil, &timeout)
	return err == nil && n > 0
}

// ReadChar blocks until a byte is available on stdin.
func (rt *rawTerminal) ReadChar() (byte, error) {
	buf := make([]byte, 1)
	for {
		n, err := unix.Read(rt.fd, buf)
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return buf[0], nil
		}
		time.Sleep(time.Millisecond)
	}
}

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}
