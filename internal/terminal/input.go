package terminal

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/solvere/gram/internal/event"
	"github.com/solvere/gram/internal/logger"
)

// decode translates the leading bytes of the input buffer into at most one
// event. It returns the event (nil for sequences that are recognized but
// intentionally ignored), the number of bytes consumed, and whether the
// buffer ends mid-sequence and more bytes are needed.
//
// Only key-press transitions become events: CSI-u repeat and release
// subtypes are suppressed here, and terminal backends that emit sequence
// kinds beyond the ones handled get an "ignore and log" arm rather than a
// panic.
func decode(b []byte) (event.Event, int, bool) {
	if len(b) == 0 {
		return nil, 0, true
	}

	if b[0] == 0x1b {
		return decodeEscape(b)
	}

	// Control bytes
	if b[0] < 0x20 || b[0] == 0x7f {
		return decodeControl(b[0]), 1, false
	}

	if b[0] == ' ' {
		return event.KeyPress{Key: event.Key{Code: event.KeySpace, Rune: ' '}}, 1, false
	}

	// Printable runes
	if !utf8.FullRune(b) && len(b) < utf8.UTFMax {
		return nil, 0, true
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size == 1 {
		logger.Debug("Terminal: discarding invalid utf8 byte 0x%02x", b[0])
		return nil, 1, false
	}
	return event.KeyPress{Key: event.Key{Code: event.KeyRune, Rune: r}}, size, false
}

func decodeControl(c byte) event.Event {
	switch c {
	case 0x0d, 0x0a:
		return event.KeyPress{Key: event.Key{Code: event.KeyEnter}}
	case 0x09:
		return event.KeyPress{Key: event.Key{Code: event.KeyTab}}
	case 0x7f:
		return event.KeyPress{Key: event.Key{Code: event.KeyBackspace}}
	case 0x08:
		return event.KeyPress{Key: event.Key{Code: event.KeyRune, Rune: 'h', Mod: event.ModCtrl}}
	case 0x00:
		return event.KeyPress{Key: event.Key{Code: event.KeySpace, Rune: ' ', Mod: event.ModCtrl}}
	}
	if c >= 0x01 && c <= 0x1a {
		return event.KeyPress{Key: event.Key{
			Code: event.KeyRune,
			Rune: rune('a' + c - 1),
			Mod:  event.ModCtrl,
		}}
	}
	logger.Debug("Terminal: ignoring control byte 0x%02x", c)
	return nil
}

func decodeEscape(b []byte) (event.Event, int, bool) {
	if len(b) == 1 {
		// Possibly the Esc key, possibly a split sequence; the read loop
		// resolves the ambiguity at the end of the read burst.
		return nil, 0, true
	}

	switch b[1] {
	case '[':
		return decodeCSI(b)
	case 'O':
		return decodeSS3(b)
	}

	// Alt-chorded key: ESC prefix followed by a regular encoding.
	ev, consumed, incomplete := decode(b[1:])
	if incomplete {
		return nil, 0, true
	}
	if kp, ok := ev.(event.KeyPress); ok {
		kp.Mod |= event.ModAlt
		return kp, consumed + 1, false
	}
	return ev, consumed + 1, false
}

// decodeSS3 handles ESC O sequences (application cursor keys, F1-F4).
func decodeSS3(b []byte) (event.Event, int, bool) {
	if len(b) < 3 {
		return nil, 0, true
	}
	var code event.KeyCode
	switch b[2] {
	case 'A':
		code = event.KeyUp
	case 'B':
		code = event.KeyDown
	case 'C':
		code = event.KeyRight
	case 'D':
		code = event.KeyLeft
	case 'H':
		code = event.KeyHome
	case 'F':
		code = event.KeyEnd
	case 'P':
		code = event.KeyF1
	case 'Q':
		code = event.KeyF2
	case 'R':
		code = event.KeyF3
	case 'S':
		code = event.KeyF4
	default:
		logger.Debug("Terminal: ignoring SS3 sequence final 0x%02x", b[2])
		return nil, 3, false
	}
	return event.KeyPress{Key: event.Key{Code: code}}, 3, false
}

// decodeCSI handles ESC [ sequences: cursor keys, tilde keys, CSI-u keys,
// SGR mouse, focus notifications, and bracketed paste.
func decodeCSI(b []byte) (event.Event, int, bool) {
	// Find the final byte (0x40-0x7e), skipping parameter and intermediate
	// bytes.
	end := -1
	for i := 2; i < len(b); i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, 0, true
	}

	params := string(b[2:end])
	final := b[end]
	consumed := end + 1

	switch final {
	case 'A', 'B', 'C', 'D', 'H', 'F':
		return decodeCursorKey(params, final), consumed, false
	case 'Z':
		return event.KeyPress{Key: event.Key{Code: event.KeyTab, Mod: event.ModShift}}, consumed, false
	case '~':
		return decodeTildeKey(b, params, consumed)
	case 'u':
		return decodeCSIu(params), consumed, false
	case 'M', 'm':
		if strings.HasPrefix(params, "<") {
			return decodeSGRMouse(params[1:], final), consumed, false
		}
		logger.Debug("Terminal: ignoring legacy mouse sequence")
		return nil, consumed, false
	case 'I':
		return event.FocusGained{}, consumed, false
	case 'O':
		return event.FocusLost{}, consumed, false
	}

	logger.Debug("Terminal: ignoring CSI sequence final %q params %q", final, params)
	return nil, consumed, false
}

// csiParams splits a parameter string like "1;5" into integers, defaulting
// missing or empty entries to def.
func csiParams(s string, def int) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]int, len(parts))
	for i, p := range parts {
		// Sub-parameters (colon separated) keep only their first entry
		// here; CSI-u event subtypes are handled by their own decoder.
		if j := strings.IndexByte(p, ':'); j >= 0 {
			p = p[:j]
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			n = def
		}
		out[i] = n
	}
	return out
}

// xtermMod converts an xterm modifier parameter (1 + bitmask) to KeyMod.
func xtermMod(param int) event.KeyMod {
	if param < 2 {
		return 0
	}
	bits := param - 1
	var mod event.KeyMod
	if bits&1 != 0 {
		mod |= event.ModShift
	}
	if bits&2 != 0 {
		mod |= event.ModAlt
	}
	if bits&4 != 0 {
		mod |= event.ModCtrl
	}
	return mod
}

func decodeCursorKey(params string, final byte) event.Event {
	var code event.KeyCode
	switch final {
	case 'A':
		code = event.KeyUp
	case 'B':
		code = event.KeyDown
	case 'C':
		code = event.KeyRight
	case 'D':
		code = event.KeyLeft
	case 'H':
		code = event.KeyHome
	case 'F':
		code = event.KeyEnd
	}
	var mod event.KeyMod
	if p := csiParams(params, 1); len(p) >= 2 {
		mod = xtermMod(p[1])
	}
	return event.KeyPress{Key: event.Key{Code: code, Mod: mod}}
}

var tildeKeys = map[int]event.KeyCode{
	1:  event.KeyHome,
	2:  event.KeyInsert,
	3:  event.KeyDelete,
	4:  event.KeyEnd,
	5:  event.KeyPgUp,
	6:  event.KeyPgDown,
	7:  event.KeyHome,
	8:  event.KeyEnd,
	11: event.KeyF1,
	12: event.KeyF2,
	13: event.KeyF3,
	14: event.KeyF4,
	15: event.KeyF5,
	17: event.KeyF6,
	18: event.KeyF7,
	19: event.KeyF8,
	20: event.KeyF9,
	21: event.KeyF10,
	23: event.KeyF11,
	24: event.KeyF12,
}

const (
	pasteStart = "\x1b[200~"
	pasteEnd   = "\x1b[201~"
)

func decodeTildeKey(b []byte, params string, consumed int) (event.Event, int, bool) {
	p := csiParams(params, 1)
	if len(p) == 0 {
		return nil, consumed, false
	}

	if p[0] == 200 {
		// Bracketed paste: everything until the closing sequence is one
		// Paste event. The block may span reads, so wait for the
		// terminator before consuming anything.
		idx := bytes.Index(b, []byte(pasteEnd))
		if idx == -1 {
			return nil, 0, true
		}
		text := string(b[len(pasteStart):idx])
		return event.Paste{Text: text}, idx + len(pasteEnd), false
	}

	code, ok := tildeKeys[p[0]]
	if !ok {
		logger.Debug("Terminal: ignoring tilde key %d", p[0])
		return nil, consumed, false
	}
	var mod event.KeyMod
	if len(p) >= 2 {
		mod = xtermMod(p[1])
	}
	return event.KeyPress{Key: event.Key{Code: code, Mod: mod}}, consumed, false
}

// decodeCSIu handles the extended keyboard protocol form
// CSI code ; modifier [: event-type] u. Only press transitions (subtype 1 or
// absent) are forwarded; repeat (2) and release (3) are suppressed so the
// stream carries key-down transitions only.
func decodeCSIu(params string) event.Event {
	parts := strings.Split(params, ";")
	if len(parts) == 0 || parts[0] == "" {
		return nil
	}
	code, err := strconv.Atoi(strings.SplitN(parts[0], ":", 2)[0])
	if err != nil {
		logger.Debug("Terminal: ignoring malformed CSI-u params %q", params)
		return nil
	}

	var mod event.KeyMod
	if len(parts) >= 2 {
		sub := strings.Split(parts[1], ":")
		if n, err := strconv.Atoi(sub[0]); err == nil {
			mod = xtermMod(n)
		}
		if len(sub) >= 2 {
			if kind, err := strconv.Atoi(sub[1]); err == nil && kind != 1 {
				return nil
			}
		}
	}

	switch code {
	case 13:
		return event.KeyPress{Key: event.Key{Code: event.KeyEnter, Mod: mod}}
	case 9:
		return event.KeyPress{Key: event.Key{Code: event.KeyTab, Mod: mod}}
	case 27:
		return event.KeyPress{Key: event.Key{Code: event.KeyEscape, Mod: mod}}
	case 127:
		return event.KeyPress{Key: event.Key{Code: event.KeyBackspace, Mod: mod}}
	case 32:
		return event.KeyPress{Key: event.Key{Code: event.KeySpace, Rune: ' ', Mod: mod}}
	}
	return event.KeyPress{Key: event.Key{Code: event.KeyRune, Rune: rune(code), Mod: mod}}
}

// decodeSGRMouse handles CSI < btn ; x ; y M/m sequences.
func decodeSGRMouse(params string, final byte) event.Event {
	p := csiParams(params, 0)
	if len(p) < 3 {
		logger.Debug("Terminal: ignoring malformed SGR mouse params %q", params)
		return nil
	}
	btn, x, y := p[0], p[1], p[2]

	m := event.Mouse{
		X: x - 1,
		Y: y - 1,
	}
	if btn&4 != 0 {
		m.Mod |= event.ModShift
	}
	if btn&8 != 0 {
		m.Mod |= event.ModAlt
	}
	if btn&16 != 0 {
		m.Mod |= event.ModCtrl
	}

	switch {
	case btn&64 != 0:
		if btn&1 == 0 {
			m.Button = event.MouseWheelUp
		} else {
			m.Button = event.MouseWheelDown
		}
		m.Action = event.MousePress
	default:
		switch btn & 3 {
		case 0:
			m.Button = event.MouseLeft
		case 1:
			m.Button = event.MouseMiddle
		case 2:
			m.Button = event.MouseRight
		case 3:
			m.Button = event.MouseNone
		}
		switch {
		case btn&32 != 0:
			m.Action = event.MouseMotion
		case final == 'm':
			m.Action = event.MouseRelease
		default:
			m.Action = event.MousePress
		}
	}

	return event.MouseMsg{Mouse: m}
}
