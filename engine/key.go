package engine

import (
	"strings"

	"github.com/yigeba52/fcitx5-android/errors"
)

// Modifiers is the bitmask of held modifier keys.
type Modifiers uint32

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Key is one key event payload: a symbol (printable rune or named special),
// an optional raw key code, and modifier state.
type Key struct {
	Sym  rune
	Name string // set for non-printable symbols ("Return", "space", ...)
	Code int    // raw platform key code, 0 when unknown
	Mods Modifiers
	Time int64 // event time in milliseconds, 0 when unknown
}

// namedSyms maps symbol names to runes for the specials the frontend
// actually forwards. Printable symbols use the rune itself.
var namedSyms = map[string]rune{
	"space":     ' ',
	"Return":    '\r',
	"Tab":       '\t',
	"BackSpace": '\b',
	"Escape":    0x1b,
	"Delete":    0x7f,
	"Up":        0,
	"Down":      0,
	"Left":      0,
	"Right":     0,
	"Home":      0,
	"End":       0,
	"Page_Up":   0,
	"Page_Down": 0,
}

// ParseKey parses a key description like "a", "space" or "Control+space".
func ParseKey(s string) (Key, error) {
	if s == "" {
		return Key{}, errors.InvalidInput(errors.PhaseKey, "empty key string")
	}
	var key Key
	parts := strings.Split(s, "+")
	sym := parts[len(parts)-1]
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "Shift":
			key.Mods |= ModShift
		case "Control", "Ctrl":
			key.Mods |= ModControl
		case "Alt":
			key.Mods |= ModAlt
		case "Super":
			key.Mods |= ModSuper
		default:
			return Key{}, errors.InvalidInput(errors.PhaseKey, "unknown modifier "+mod)
		}
	}
	if r, ok := namedSyms[sym]; ok {
		key.Name = sym
		key.Sym = r
		return key, nil
	}
	runes := []rune(sym)
	if len(runes) != 1 {
		return Key{}, errors.InvalidInput(errors.PhaseKey, "unknown key symbol "+sym)
	}
	key.Sym = runes[0]
	return key, nil
}

// KeyFromRune wraps a single printable rune.
func KeyFromRune(r rune) Key {
	return Key{Sym: r}
}

// KeyFromCode wraps a raw platform key code with no symbol attached.
func KeyFromCode(code int) Key {
	return Key{Code: code}
}

// SymName returns the symbol name forwarded to the client for keys the
// engine declined to consume.
func (k Key) SymName() string {
	if k.Name != "" {
		return k.Name
	}
	if k.Sym != 0 {
		return string(k.Sym)
	}
	return ""
}

// IsPrintable reports whether the key inserts text directly.
func (k Key) IsPrintable() bool {
	return k.Name == "" && k.Sym != 0 && k.Mods&^ModShift == 0
}

func (k Key) String() string {
	var b strings.Builder
	if k.Mods&ModControl != 0 {
		b.WriteString("Control+")
	}
	if k.Mods&ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if k.Mods&ModShift != 0 {
		b.WriteString("Shift+")
	}
	if k.Mods&ModSuper != 0 {
		b.WriteString("Super+")
	}
	b.WriteString(k.SymName())
	return b.String()
}
