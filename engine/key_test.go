package engine

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"a", Key{Sym: 'a'}},
		{"Z", Key{Sym: 'Z'}},
		{"space", Key{Sym: ' ', Name: "space"}},
		{"Return", Key{Sym: '\r', Name: "Return"}},
		{"Control+space", Key{Sym: ' ', Name: "space", Mods: ModControl}},
		{"Ctrl+space", Key{Sym: ' ', Name: "space", Mods: ModControl}},
		{"Shift+a", Key{Sym: 'a', Mods: ModShift}},
		{"Control+Alt+Delete", Key{Sym: 0x7f, Name: "Delete", Mods: ModControl | ModAlt}},
		{"Super+Left", Key{Name: "Left", Mods: ModSuper}},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.in)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, in := range []string{"", "Foo+a", "abc", "Control+notakey"} {
		if _, err := ParseKey(in); err == nil {
			t.Errorf("ParseKey(%q) succeeded, want error", in)
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{Sym: 'a'}, "a"},
		{Key{Sym: ' ', Name: "space", Mods: ModControl}, "Control+space"},
		{Key{Sym: 'x', Mods: ModControl | ModAlt | ModShift}, "Control+Alt+Shift+x"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestKeyStringParseRoundTrip(t *testing.T) {
	for _, s := range []string{"a", "space", "Control+space", "Control+Alt+Shift+x"} {
		key, err := ParseKey(s)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", s, err)
		}
		if got := key.String(); got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
	}
}

func TestKeyIsPrintable(t *testing.T) {
	tests := []struct {
		key  Key
		want bool
	}{
		{KeyFromRune('a'), true},
		{Key{Sym: 'A', Mods: ModShift}, true},
		{Key{Sym: 'a', Mods: ModControl}, false},
		{Key{Sym: '\r', Name: "Return"}, false},
		{KeyFromCode(30), false},
	}
	for _, tt := range tests {
		if got := tt.key.IsPrintable(); got != tt.want {
			t.Errorf("IsPrintable(%+v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestKeySymName(t *testing.T) {
	if got := KeyFromRune('q').SymName(); got != "q" {
		t.Errorf("SymName = %q, want q", got)
	}
	if got := (Key{Sym: ' ', Name: "space"}).SymName(); got != "space" {
		t.Errorf("SymName = %q, want space", got)
	}
	if got := KeyFromCode(30).SymName(); got != "" {
		t.Errorf("SymName = %q, want empty", got)
	}
}
