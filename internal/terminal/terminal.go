// Package terminal owns the tty and multiplexes raw input, render ticks, and
// injected backend events into one ordered event stream.
//
// The terminal is the only place in gram that issues blocking reads against
// the tty. A reader goroutine decodes raw bytes into events; the producer
// goroutine races the decoded input against a fixed-period render ticker and
// resize signals, and pushes whichever is ready first onto an unbounded
// mailbox. Per-source ordering is preserved and nothing is dropped; the
// relative interleaving of input versus render ticks that become ready at
// the same instant is unspecified.
package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/cancelreader"

	"github.com/solvere/gram/internal/errors"
	"github.com/solvere/gram/internal/event"
	"github.com/solvere/gram/internal/frame"
	"github.com/solvere/gram/internal/logger"
	"github.com/solvere/gram/internal/mailbox"
)

// DefaultFrameRate is the render event frequency used when no option
// overrides it.
const DefaultFrameRate = 60.0

// fdHolder is satisfied by *os.File and anything else carrying a real tty
// descriptor. Raw mode and size queries are skipped for plain readers,
// which is what the tests use.
type fdHolder interface {
	Fd() uintptr
}

// Terminal multiplexes terminal input and render ticks into the event
// stream. Construct with New, then call Enter exactly once per session;
// Enter is not idempotent and calling it twice double-enables mouse and
// paste capture.
type Terminal struct {
	in  io.Reader
	out io.Writer

	frameRate float64
	mouse     bool
	paste     bool

	events  *mailbox.Mailbox[event.Event]
	inputCh chan event.Event
	done    chan error
	stop    chan struct{}

	reader  cancelreader.CancelReader
	state   *term.State
	winch   chan os.Signal
	width   int
	height  int
	entered bool

	log *slog.Logger
}

// Option configures a Terminal at construction time. The frame rate, mouse
// capture, and bracketed paste settings are fixed for the session.
type Option func(*Terminal)

// WithFrameRate sets how many render events are emitted per second.
func WithFrameRate(fps float64) Option {
	return func(t *Terminal) {
		if fps > 0 {
			t.frameRate = fps
		}
	}
}

// WithMouse enables mouse capture.
func WithMouse(enabled bool) Option {
	return func(t *Terminal) { t.mouse = enabled }
}

// WithPaste enables bracketed paste capture.
func WithPaste(enabled bool) Option {
	return func(t *Terminal) { t.paste = enabled }
}

// WithTTY overrides the input reader and output writer. The defaults are
// stdin and stderr; stderr keeps stdout free for shell composition.
func WithTTY(in io.Reader, out io.Writer) Option {
	return func(t *Terminal) {
		t.in = in
		t.out = out
	}
}

// New creates a Terminal. No terminal state is touched until Enter.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		in:        os.Stdin,
		out:       os.Stderr,
		frameRate: DefaultFrameRate,
		events:    mailbox.New[event.Event](),
		inputCh:   make(chan event.Event),
		done:      make(chan error, 1),
		stop:      make(chan struct{}),
		winch:     make(chan os.Signal, 1),
		log:       logger.ComponentLogger("Terminal"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// newCancelReader is swapped out by tests that need reader setup to fail.
var newCancelReader = cancelreader.NewReader

// Enter switches the terminal into raw, alternate-screen mode, enables the
// configured capture modes, and starts the reader and producer tasks. A
// failure here is fatal to session startup.
func (t *Terminal) Enter() error {
	if err := t.enterModes(); err != nil {
		return err
	}

	reader, err := newCancelReader(t.in)
	if err != nil {
		// The modes are already switched; put the shell back in order
		// before failing startup.
		if exitErr := t.Exit(); exitErr != nil {
			t.log.Warn("restore after failed enter", "error", exitErr)
		}
		return errors.TerminalEnterFailed(err)
	}
	t.reader = reader
	t.entered = true

	notifyResize(t.winch)
	go t.readLoop()
	go t.run()
	return nil
}

// enterModes performs the mode switches shared by Enter and Resume.
func (t *Terminal) enterModes() error {
	if f, ok := t.in.(fdHolder); ok {
		state, err := term.MakeRaw(f.Fd())
		if err != nil {
			return errors.TerminalEnterFailed(err)
		}
		t.state = state
		if w, h, err := term.GetSize(f.Fd()); err == nil {
			t.width, t.height = w, h
		}
	}

	modes := []ansi.Mode{ansi.AltScreenSaveCursorMode}
	if t.mouse {
		modes = append(modes, ansi.ButtonEventMouseMode, ansi.SgrExtMouseMode)
	}
	if t.paste {
		modes = append(modes, ansi.BracketedPasteMode)
	}
	if _, err := io.WriteString(t.out, ansi.SetMode(modes...)); err != nil {
		return errors.TerminalEnterFailed(err)
	}
	if _, err := io.WriteString(t.out, ansi.ResetMode(ansi.TextCursorEnableMode)); err != nil {
		return errors.TerminalEnterFailed(err)
	}
	return nil
}

// Exit restores the terminal to its original mode, best effort. It does not
// stop the producer task; that terminates when the event mailbox is closed.
func (t *Terminal) Exit() error {
	var first error

	modes := []ansi.Mode{ansi.AltScreenSaveCursorMode}
	if t.mouse {
		modes = append(modes, ansi.ButtonEventMouseMode, ansi.SgrExtMouseMode)
	}
	if t.paste {
		modes = append(modes, ansi.BracketedPasteMode)
	}
	if _, err := io.WriteString(t.out, ansi.ResetMode(modes...)); err != nil && first == nil {
		first = err
	}
	if _, err := io.WriteString(t.out, ansi.SetMode(ansi.TextCursorEnableMode)); err != nil && first == nil {
		first = err
	}

	if t.state != nil {
		if f, ok := t.in.(fdHolder); ok {
			if err := term.Restore(f.Fd(), t.state); err != nil && first == nil {
				first = err
			}
		}
		t.state = nil
	}

	if first != nil {
		return errors.TerminalExitFailed(first)
	}
	return nil
}

// Suspend leaves the alternate screen and delivers a stop signal to the
// process so the shell reclaims the terminal. The producer task is not
// stopped; the whole process is.
func (t *Terminal) Suspend() error {
	if err := t.Exit(); err != nil {
		return err
	}
	return raiseStop()
}

// Resume re-enters raw, alternate-screen mode after a suspend. The producer
// task kept its state; drawing continues from where the loop left off.
func (t *Terminal) Resume() error {
	return t.enterModes()
}

// Events returns the single ordered event stream. The channel is closed only
// when the session is torn down, which consumers treat as fatal.
func (t *Terminal) Events() <-chan event.Event {
	return t.events.Out()
}

// Next blocks until exactly one event is available. It never returns a
// batch. The error is non-nil only when the stream has terminated.
func (t *Terminal) Next() (event.Event, error) {
	ev, ok := <-t.events.Out()
	if !ok {
		return nil, errors.EventChannelClosed()
	}
	return ev, nil
}

// Post injects an event into the same ordered stream the multiplexer
// produces into. The backend service uses this to deliver DataArrived.
func (t *Terminal) Post(ev event.Event) {
	if !t.events.Send(ev) {
		t.log.Warn("dropping event posted after stream close", "event", fmt.Sprintf("%T", ev))
	}
}

// Done reports the producer task's terminal error. The main loop selects on
// this alongside the event stream so a producer failure surfaces explicitly
// instead of being inferred from channel closure.
func (t *Terminal) Done() <-chan error {
	return t.done
}

// Size returns the most recently observed terminal dimensions.
func (t *Terminal) Size() (width, height int) {
	return t.width, t.height
}

// Close tears the session down: the blocking read is cancelled, the event
// mailbox is closed, and the producer exits on its next send.
func (t *Terminal) Close() {
	close(t.stop)
	if t.reader != nil {
		t.reader.Cancel()
	}
	t.events.Close()
}

// Flush writes a completed frame to the terminal.
func (t *Terminal) Flush(f *frame.Frame) error {
	if _, err := io.WriteString(t.out, ansi.CursorPosition(1, 1)); err != nil {
		return errors.E(errors.Op("terminal.Flush"), errors.KindIO, err)
	}
	if _, err := io.WriteString(t.out, f.Render()); err != nil {
		return errors.E(errors.Op("terminal.Flush"), errors.KindIO, err)
	}
	return nil
}

// run is the producer task. It races the decoded input stream against the
// render ticker and resize signals until a send fails or Close is called.
// Send failure means the receiver is gone, which is unrecoverable for the
// session; the error is delivered on Done.
func (t *Terminal) run() {
	interval := time.Duration(float64(time.Second) / t.frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// A failed send after Close is an orderly shutdown; without Close it
	// means the receiver vanished mid-session, which is the unrecoverable
	// case surfaced on Done.
	sendFailed := func() {
		select {
		case <-t.stop:
			t.done <- nil
		default:
			t.done <- errors.EventChannelClosed()
		}
	}

	send := func(ev event.Event) bool {
		return t.events.Send(ev)
	}

	if !send(event.Init{}) {
		sendFailed()
		return
	}
	if t.width > 0 && t.height > 0 {
		if !send(event.Resize{Width: t.width, Height: t.height}) {
			sendFailed()
			return
		}
	}

	input := t.inputCh
	for {
		var ev event.Event

		select {
		case <-t.stop:
			t.done <- nil
			return
		case in, ok := <-input:
			if !ok {
				// Reader ended; keep ticking so the UI can still draw.
				input = nil
				continue
			}
			ev = t.intercept(in)
			if ev == nil {
				continue
			}
		case <-ticker.C:
			ev = event.Render{}
		case <-t.winch:
			w, h, err := t.resize()
			if err != nil {
				t.log.Debug("resize query failed", "err", err)
				continue
			}
			ev = event.Resize{Width: w, Height: h}
		}

		if !send(ev) {
			sendFailed()
			return
		}
	}
}

// intercept applies the multiplexer-level key policy: the reserved ctrl+q
// fail-safe becomes Quit directly, bypassing the action layer so it keeps
// working even if key-binding configuration is broken. Terminal focus
// notifications are accepted by the decoder but produce no event yet.
func (t *Terminal) intercept(ev event.Event) event.Event {
	switch e := ev.(type) {
	case event.KeyPress:
		if e.Code == event.KeyRune && e.Rune == 'q' && e.Mod == event.ModCtrl {
			return event.Quit{}
		}
	case event.FocusGained, event.FocusLost:
		return nil
	}
	return ev
}

func (t *Terminal) resize() (int, int, error) {
	f, ok := t.in.(fdHolder)
	if !ok {
		return 0, 0, fmt.Errorf("input is not a terminal")
	}
	w, h, err := term.GetSize(f.Fd())
	if err != nil {
		return 0, 0, err
	}
	t.width, t.height = w, h
	return w, h, nil
}

// readLoop is the reader task: it blocks on the tty, feeds bytes through the
// incremental decoder, and forwards decoded events to the producer in input
// order.
func (t *Terminal) readLoop() {
	defer close(t.inputCh)

	var buf [4096]byte
	var pending []byte

	for {
		n, err := t.reader.Read(buf[:])
		if err != nil {
			if err != cancelreader.ErrCanceled && err != io.EOF {
				t.log.Debug("input read failed", "err", err)
			}
			// Flush a trailing bare escape before shutting down.
			if len(pending) == 1 && pending[0] == 0x1b {
				t.deliver(event.KeyPress{Key: event.Key{Code: event.KeyEscape}})
			}
			return
		}
		pending = append(pending, buf[:n]...)

		for len(pending) > 0 {
			ev, consumed, incomplete := decode(pending)
			if incomplete {
				break
			}
			if consumed == 0 {
				// Defensive: never loop on undecodable input.
				consumed = 1
			}
			pending = pending[consumed:]
			if ev == nil {
				continue
			}
			if !t.deliver(ev) {
				return
			}
		}

		// A lone escape with nothing following it in this read is the Esc
		// key, not the start of a sequence. Terminals write escape
		// sequences in one burst, so waiting for more bytes here would
		// swallow the key until the next input arrives.
		if len(pending) == 1 && pending[0] == 0x1b {
			pending = pending[:0]
			if !t.deliver(event.KeyPress{Key: event.Key{Code: event.KeyEscape}}) {
				return
			}
		}
	}
}

func (t *Terminal) deliver(ev event.Event) bool {
	select {
	case t.inputCh <- ev:
		return true
	case <-t.stop:
		return false
	}
}
