package terminal

import (
	"testing"

	"github.com/solvere/gram/internal/event"
)

func keyPress(t *testing.T, ev event.Event) event.Key {
	t.Helper()
	kp, ok := ev.(event.KeyPress)
	if !ok {
		t.Fatalf("event = %T, want event.KeyPress", ev)
	}
	return kp.Key
}

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // expected Key.String()
	}{
		{"plain rune", "a", "a"},
		{"uppercase rune", "A", "A"},
		{"utf8 rune", "é", "é"},
		{"ctrl+c", "\x03", "ctrl+c"},
		{"enter", "\r", "enter"},
		{"tab", "\t", "tab"},
		{"backspace", "\x7f", "backspace"},
		{"space", " ", "space"},
		{"arrow up", "\x1b[A", "up"},
		{"arrow down", "\x1b[B", "down"},
		{"arrow right", "\x1b[C", "right"},
		{"arrow left", "\x1b[D", "left"},
		{"home", "\x1b[H", "home"},
		{"end", "\x1b[F", "end"},
		{"ctrl+up", "\x1b[1;5A", "ctrl+up"},
		{"shift+tab", "\x1b[Z", "shift+tab"},
		{"delete", "\x1b[3~", "delete"},
		{"pgup", "\x1b[5~", "pgup"},
		{"shift+pgdown", "\x1b[6;2~", "shift+pgdown"},
		{"ss3 up", "\x1bOA", "up"},
		{"f1", "\x1bOP", "f1"},
		{"f5", "\x1b[15~", "f5"},
		{"alt+x", "\x1bx", "alt+x"},
		{"csi-u rune", "\x1b[97;5u", "ctrl+a"},
		{"csi-u enter", "\x1b[13u", "enter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, consumed, incomplete := decode([]byte(tt.input))
			if incomplete {
				t.Fatal("decode reported incomplete for a full sequence")
			}
			if consumed != len(tt.input) {
				t.Errorf("consumed = %d, want %d", consumed, len(tt.input))
			}
			key := keyPress(t, ev)
			if got := key.String(); got != tt.want {
				t.Errorf("decoded key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeKeyReleaseSuppressed(t *testing.T) {
	// CSI-u subtype 1 = press, 2 = repeat, 3 = release. Only the press may
	// produce an event.
	press, _, _ := decode([]byte("\x1b[97;1:1u"))
	if press == nil {
		t.Error("press subtype should produce an event")
	}

	repeat, consumed, incomplete := decode([]byte("\x1b[97;1:2u"))
	if incomplete || repeat != nil {
		t.Errorf("repeat subtype should be suppressed, got %v", repeat)
	}
	if consumed == 0 {
		t.Error("suppressed sequence must still be consumed")
	}

	release, _, _ := decode([]byte("\x1b[97;1:3u"))
	if release != nil {
		t.Errorf("release subtype should be suppressed, got %v", release)
	}
}

func TestDecodeMouse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		button event.MouseButton
		action event.MouseAction
		x, y   int
	}{
		{"left press", "\x1b[<0;10;5M", event.MouseLeft, event.MousePress, 9, 4},
		{"left release", "\x1b[<0;10;5m", event.MouseLeft, event.MouseRelease, 9, 4},
		{"right press", "\x1b[<2;1;1M", event.MouseRight, event.MousePress, 0, 0},
		{"wheel up", "\x1b[<64;3;3M", event.MouseWheelUp, event.MousePress, 2, 2},
		{"wheel down", "\x1b[<65;3;3M", event.MouseWheelDown, event.MousePress, 2, 2},
		{"motion", "\x1b[<35;7;8M", event.MouseNone, event.MouseMotion, 6, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, consumed, incomplete := decode([]byte(tt.input))
			if incomplete {
				t.Fatal("decode reported incomplete for a full sequence")
			}
			if consumed != len(tt.input) {
				t.Errorf("consumed = %d, want %d", consumed, len(tt.input))
			}
			mm, ok := ev.(event.MouseMsg)
			if !ok {
				t.Fatalf("event = %T, want event.MouseMsg", ev)
			}
			if mm.Button != tt.button || mm.Action != tt.action {
				t.Errorf("mouse = (%v, %v), want (%v, %v)", mm.Button, mm.Action, tt.button, tt.action)
			}
			if mm.X != tt.x || mm.Y != tt.y {
				t.Errorf("position = (%d, %d), want (%d, %d)", mm.X, mm.Y, tt.x, tt.y)
			}
		})
	}
}

func TestDecodeBracketedPaste(t *testing.T) {
	input := "\x1b[200~hello\nworld\x1b[201~"
	ev, consumed, incomplete := decode([]byte(input))
	if incomplete {
		t.Fatal("decode reported incomplete for a terminated paste")
	}
	if consumed != len(input) {
		t.Errorf("consumed = %d, want %d", consumed, len(input))
	}
	paste, ok := ev.(event.Paste)
	if !ok {
		t.Fatalf("event = %T, want event.Paste", ev)
	}
	if paste.Text != "hello\nworld" {
		t.Errorf("paste text = %q, want %q", paste.Text, "hello\nworld")
	}
}

func TestDecodeBracketedPasteWaitsForTerminator(t *testing.T) {
	_, consumed, incomplete := decode([]byte("\x1b[200~partial content"))
	if !incomplete {
		t.Error("unterminated paste should report incomplete")
	}
	if consumed != 0 {
		t.Errorf("consumed = %d, want 0 while waiting", consumed)
	}
}

func TestDecodeFocusNotifications(t *testing.T) {
	gained, _, _ := decode([]byte("\x1b[I"))
	if _, ok := gained.(event.FocusGained); !ok {
		t.Errorf("focus-in = %T, want event.FocusGained", gained)
	}
	lost, _, _ := decode([]byte("\x1b[O"))
	if _, ok := lost.(event.FocusLost); !ok {
		t.Errorf("focus-out = %T, want event.FocusLost", lost)
	}
}

func TestDecodeUnknownSequenceIgnoredNotFatal(t *testing.T) {
	// An unhandled CSI final byte must be consumed and ignored, never
	// panic and never stall the decoder.
	ev, consumed, incomplete := decode([]byte("\x1b[?1049h"))
	if incomplete {
		t.Fatal("decode reported incomplete for a full sequence")
	}
	if ev != nil {
		t.Errorf("unknown sequence produced event %T", ev)
	}
	if consumed == 0 {
		t.Error("unknown sequence must be consumed to make progress")
	}
}

func TestDecodeIncompleteSequences(t *testing.T) {
	for _, input := range []string{"\x1b", "\x1b[", "\x1b[1;5", "\x1bO"} {
		_, consumed, incomplete := decode([]byte(input))
		if !incomplete {
			t.Errorf("decode(%q) should report incomplete", input)
		}
		if consumed != 0 {
			t.Errorf("decode(%q) consumed %d bytes of an incomplete sequence", input, consumed)
		}
	}
}
