package event

import "strings"

// KeyCode identifies a key independent of modifiers.
type KeyCode int

const (
	// KeyRune is a printable character; the character itself is in Key.Rune.
	KeyRune KeyCode = iota
	KeyEnter
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyCodeNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeySpace:     "space",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyEscape:    "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPgUp:      "pgup",
	KeyPgDown:    "pgdown",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// KeyMod is a bitmask of modifier keys held during a key press.
type KeyMod uint8

const (
	ModShift KeyMod = 1 << iota
	ModAlt
	ModCtrl
)

// Key describes one key press.
type Key struct {
	Code KeyCode
	Rune rune   // Valid when Code == KeyRune
	Mod  KeyMod // Modifier bitmask
}

// String returns the canonical string form of the key, e.g. "ctrl+c",
// "shift+tab", "up", "a". Key maps and the keys package match against this
// form, so its format is load-bearing.
func (k Key) String() string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mod&ModShift != 0 {
		b.WriteString("shift+")
	}
	if name, ok := keyCodeNames[k.Code]; ok {
		b.WriteString(name)
	} else {
		b.WriteRune(k.Rune)
	}
	return b.String()
}
