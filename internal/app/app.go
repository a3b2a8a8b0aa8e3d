// Package app owns the components and runs the main loop: events in,
// actions broadcast, one draw pass per render event.
package app

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/config"
	"github.com/solvere/gram/internal/event"
	"github.com/solvere/gram/internal/frame"
	"github.com/solvere/gram/internal/logger"
	"github.com/solvere/gram/internal/mailbox"
	"github.com/solvere/gram/internal/notification"
	"github.com/solvere/gram/internal/terminal"
	"github.com/solvere/gram/internal/tg"
	"github.com/solvere/gram/internal/ui"
)

// statusBarHeight and promptHeight are the fixed rows of the bottom chrome;
// the chat list gets the rest.
const (
	statusBarHeight = 1
	promptHeight    = 3
)

// App wires the terminal, the shared store, the backend service, and the
// components together and runs the single consumer loop. Components are
// created once and live for the whole process.
type App struct {
	config  *config.Config
	version string

	term    *terminal.Terminal
	store   *tg.Context
	client  tg.Client
	service *tg.Service

	components map[action.ComponentName]ui.Component
	order      []action.ComponentName

	// focus is read by Run's helpers on the loop goroutine and by tests;
	// the mutex keeps the accessor safe from outside.
	focusMu sync.RWMutex
	focus   action.ComponentName

	chatList  *ui.ChatList
	prompt    *ui.Prompt
	statusBar *ui.StatusBar

	// Components emit follow-up actions into emitted; a forwarder moves
	// them to the unbounded actions mailbox so emitting never blocks the
	// loop that is draining. forwarderDone closes when the forwarder has
	// drained everything after teardown.
	emitted       chan action.Action
	actions       *mailbox.Mailbox[action.Action]
	forwarderDone chan struct{}

	width  int
	height int

	log *slog.Logger
}

// New creates the app with all components registered. The terminal must not
// have been entered yet.
func New(cfg *config.Config, version string, term *terminal.Terminal, client tg.Client) *App {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	store := tg.NewContext()
	a := &App{
		config:        cfg,
		version:       version,
		term:          term,
		store:         store,
		client:        client,
		components:    make(map[action.ComponentName]ui.Component),
		emitted:       make(chan action.Action, 16),
		forwarderDone: make(chan struct{}),
		actions:       mailbox.New[action.Action](),
		chatList:      ui.NewChatList(store, cfg.ChatPageSize),
		prompt:        ui.NewPrompt(store),
		statusBar:     ui.NewStatusBar(store),
		log:           logger.ComponentLogger("App"),
	}

	a.register(action.ChatList, a.chatList)
	a.register(action.Prompt, a.prompt)
	a.register(action.StatusBar, a.statusBar)

	go a.forwardEmitted()

	a.setFocus(action.ChatList)
	return a
}

func (a *App) register(name action.ComponentName, c ui.Component) {
	c.RegisterActionHandler(a.emitted)
	a.components[name] = c
	a.order = append(a.order, name)
}

// forwardEmitted moves component emissions onto the unbounded mailbox. It
// exits when teardown closes the emitted channel.
func (a *App) forwardEmitted() {
	defer close(a.forwarderDone)
	for act := range a.emitted {
		a.actions.Send(act)
	}
}

// Run enters the terminal and drives the loop until quit, producer failure,
// or context cancellation. The terminal is restored before returning.
func (a *App) Run(ctx context.Context) error {
	if err := a.term.Enter(); err != nil {
		return err
	}
	defer a.teardown()

	a.service = tg.NewService(a.store, a.client, a.term.Post)
	a.service.Start(ctx)

	cont := make(chan os.Signal, 1)
	notifyResume(cont)

	a.log.Info("session started", "version", a.version)
	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-a.term.Done():
			if err != nil {
				a.log.Error("event producer failed", "error", err)
			}
			return err

		case ev, ok := <-a.term.Events():
			if !ok {
				a.log.Warn("event stream closed")
				return nil
			}
			if quit := a.handleEvent(ev); quit {
				return nil
			}

		case act, ok := <-a.actions.Out():
			if !ok {
				return nil
			}
			if quit := a.dispatch(act); quit {
				return nil
			}

		case <-cont:
			a.log.Info("resuming after suspend")
			if err := a.term.Resume(); err != nil {
				a.log.Error("resume failed", "error", err)
				return err
			}
		}
	}
}

func (a *App) teardown() {
	if err := a.term.Exit(); err != nil {
		a.log.Warn("terminal restore failed", "error", err)
	}
	a.term.Close()
	a.store.Close()
	// Components only emit from the loop goroutine, which has returned by
	// now, so the forwarder can be released.
	close(a.emitted)
}

// handleEvent routes one event. Key presses become actions via the
// focus-dependent key map; Render triggers the draw pass.
func (a *App) handleEvent(ev event.Event) (quit bool) {
	switch e := ev.(type) {
	case event.Init:
		a.store.Send(tg.NewLoadChats(tg.ChatListMain, a.config.ChatPageSize))

	case event.Quit:
		a.log.Info("quit requested")
		return true

	case event.Render:
		a.draw()

	case event.Resize:
		a.width, a.height = e.Width, e.Height
		a.log.Debug("resized", "width", e.Width, "height", e.Height)

	case event.KeyPress:
		for _, act := range a.translateKey(e.Key) {
			if quit := a.dispatch(act); quit {
				return true
			}
		}

	case event.MouseMsg:
		for _, act := range a.translateMouse(e.Mouse) {
			if quit := a.dispatch(act); quit {
				return true
			}
		}

	case event.Paste:
		if a.Focus() == action.Prompt {
			a.dispatch(action.PromptInput{Text: e.Text})
		}

	case event.DataArrived:
		a.handleData(e)

	case event.FocusGained, event.FocusLost:
		// Terminal focus is noted but changes nothing today.
		a.log.Debug("terminal focus changed", "event", ev)
	}
	return false
}

// handleData reacts to backend announcements. The next render pass picks up
// the store changes; incoming traffic for a chat that is not open may also
// raise a desktop notification.
func (a *App) handleData(e event.DataArrived) {
	if e.Kind != event.DataIncoming || !a.config.NotificationsEnabled {
		return
	}
	if openID, _ := a.store.OpenChat(); openID == e.ChatID {
		return
	}
	chat, ok := a.store.ChatByID(e.ChatID)
	if !ok {
		return
	}
	preview := ""
	if chat.LastMessage != nil {
		preview = chat.LastMessage.Text
	}
	if err := notification.MessageArrived(chat.Name, preview); err != nil {
		a.log.Debug("notification failed", "error", err)
	}
}

// dispatch applies one action: lifecycle and focus actions are handled by
// the loop itself, and every action is broadcast to every component.
func (a *App) dispatch(act action.Action) (quit bool) {
	switch t := act.(type) {
	case action.Quit:
		return true

	case action.Suspend:
		if err := a.term.Suspend(); err != nil {
			a.log.Error("suspend failed", "error", err)
		}

	case action.FocusComponent:
		a.setFocus(t.Name)
	}

	for _, name := range a.order {
		a.components[name].Update(act)
	}
	return false
}

// setFocus moves focus to the named component. Unfocusing everything first
// keeps the single-focus invariant even on a bogus name.
func (a *App) setFocus(name action.ComponentName) {
	for _, c := range a.components {
		c.Unfocus()
	}
	c, ok := a.components[name]
	if !ok {
		a.log.Warn("focus requested for unknown component", "name", string(name))
		return
	}
	c.Focus()
	a.focusMu.Lock()
	a.focus = name
	a.focusMu.Unlock()
}

// Focus returns the name of the currently focused component.
func (a *App) Focus() action.ComponentName {
	a.focusMu.RLock()
	defer a.focusMu.RUnlock()
	return a.focus
}

// draw runs one full render pass: layout, component draws, one flush. A
// component draw error abandons the pass; the next render event retries.
func (a *App) draw() {
	width, height := a.width, a.height
	if width == 0 || height == 0 {
		width, height = a.term.Size()
	}
	if width < 10 || height < promptHeight+statusBarHeight+3 {
		return
	}

	f := frame.New(width, height)
	listArea := frame.NewRect(0, 0, width, height-promptHeight-statusBarHeight)
	promptArea := frame.NewRect(0, height-promptHeight-statusBarHeight, width, promptHeight)
	statusArea := frame.NewRect(0, height-statusBarHeight, width, statusBarHeight)

	if err := a.chatList.Draw(f, listArea); err != nil {
		a.log.Error("chat list draw failed", "error", err)
		return
	}
	if err := a.prompt.Draw(f, promptArea); err != nil {
		a.log.Error("prompt draw failed", "error", err)
		return
	}
	if err := a.statusBar.Draw(f, statusArea); err != nil {
		a.log.Error("status bar draw failed", "error", err)
		return
	}

	if err := a.term.Flush(f); err != nil {
		a.log.Error("flush failed", "error", err)
	}
}
