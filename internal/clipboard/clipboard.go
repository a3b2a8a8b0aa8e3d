// Package clipboard provides text access to the system clipboard.
package clipboard

import (
	"golang.design/x/clipboard"

	"github.com/solvere/gram/internal/errors"
	"github.com/solvere/gram/internal/logger"
)

// initialized tracks whether the underlying clipboard has been set up.
var initialized bool

// Init initializes the clipboard. Safe to call multiple times; a failure
// means the platform has no usable clipboard and paste via ctrl+v is
// unavailable for the session.
func Init() error {
	if initialized {
		return nil
	}
	if err := clipboard.Init(); err != nil {
		logger.Warn("Clipboard: failed to initialize: %v", err)
		return errors.ClipboardUnavailable(err)
	}
	initialized = true
	logger.Debug("Clipboard: initialized")
	return nil
}

// ReadText returns the clipboard's text content, or "" when it holds none.
func ReadText() string {
	if !initialized {
		if err := Init(); err != nil {
			return ""
		}
	}
	return string(clipboard.Read(clipboard.FmtText))
}

// WriteText places text on the clipboard.
func WriteText(text string) error {
	if !initialized {
		if err := Init(); err != nil {
			return err
		}
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
