//go:build windows

package terminal

import "os"

// notifyResize is a no-op on Windows; resizes are only observed when the
// size query runs at enter time.
func notifyResize(ch chan<- os.Signal) {}

// raiseStop is a no-op on Windows, which has no shell job control.
func raiseStop() error {
	return nil
}
