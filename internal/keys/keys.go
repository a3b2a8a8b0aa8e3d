// Package keys provides string constants for gram key press events.
//
// These constants are derived from event.Key{Code: event.KeyXxx}.String()
// and are guaranteed to match the actual runtime values. Using these
// constants instead of hardcoded strings prevents typo bugs (e.g., "escape"
// vs "esc").
//
// Single-character keys like "j", "k", "/" are not included here because
// they are unambiguous and cannot be misspelled in a meaningful way.
package keys

import "github.com/solvere/gram/internal/event"

// Navigation keys
var (
	Up     = event.Key{Code: event.KeyUp}.String()     // "up"
	Down   = event.Key{Code: event.KeyDown}.String()   // "down"
	Left   = event.Key{Code: event.KeyLeft}.String()   // "left"
	Right  = event.Key{Code: event.KeyRight}.String()  // "right"
	Home   = event.Key{Code: event.KeyHome}.String()   // "home"
	End    = event.Key{Code: event.KeyEnd}.String()    // "end"
	PgUp   = event.Key{Code: event.KeyPgUp}.String()   // "pgup"
	PgDown = event.Key{Code: event.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter     = event.Key{Code: event.KeyEnter}.String()                     // "enter"
	Tab       = event.Key{Code: event.KeyTab}.String()                       // "tab"
	ShiftTab  = event.Key{Code: event.KeyTab, Mod: event.ModShift}.String()  // "shift+tab"
	Space     = event.Key{Code: event.KeySpace}.String()                     // "space"
	Backspace = event.Key{Code: event.KeyBackspace}.String()                 // "backspace"
	Delete    = event.Key{Code: event.KeyDelete}.String()                    // "delete"
	Escape    = event.Key{Code: event.KeyEscape}.String()                    // "esc"
)

// Ctrl combinations
var (
	CtrlC = event.Key{Code: event.KeyRune, Rune: 'c', Mod: event.ModCtrl}.String() // "ctrl+c"
	CtrlV = event.Key{Code: event.KeyRune, Rune: 'v', Mod: event.ModCtrl}.String() // "ctrl+v"
	CtrlN = event.Key{Code: event.KeyRune, Rune: 'n', Mod: event.ModCtrl}.String() // "ctrl+n"
	CtrlP = event.Key{Code: event.KeyRune, Rune: 'p', Mod: event.ModCtrl}.String() // "ctrl+p"
	CtrlZ = event.Key{Code: event.KeyRune, Rune: 'z', Mod: event.ModCtrl}.String() // "ctrl+z"
	CtrlQ = event.Key{Code: event.KeyRune, Rune: 'q', Mod: event.ModCtrl}.String() // "ctrl+q"
)
