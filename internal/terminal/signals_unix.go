//go:build !windows

package terminal

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// notifyResize subscribes the channel to terminal size change signals.
func notifyResize(ch chan<- os.Signal) {
	signal.Notify(ch, unix.SIGWINCH)
}

// raiseStop delivers SIGTSTP to the process so the shell's job control takes
// the terminal back. Execution continues after SIGCONT.
func raiseStop() error {
	return unix.Kill(unix.Getpid(), unix.SIGTSTP)
}
