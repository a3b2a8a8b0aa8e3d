//go:build !windows

package app

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// notifyResume subscribes the channel to the continue signal delivered when
// the shell foregrounds the process again after a suspend.
func notifyResume(ch chan<- os.Signal) {
	signal.Notify(ch, unix.SIGCONT)
}
