//go:build windows

package app

import "os"

// notifyResume is a no-op on Windows; suspend is unavailable there.
func notifyResume(ch chan<- os.Signal) {}
