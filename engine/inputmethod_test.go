package engine

import (
	"testing"
)

func testEntries() []InputMethodEntry {
	return []InputMethodEntry{
		{UniqueName: "keyboard-us", Name: "English", AddonName: "keyboard"},
		{UniqueName: "pinyin", Name: "Pinyin", AddonName: "pinyin"},
		{UniqueName: "anthy", Name: "Anthy", AddonName: "anthy"},
	}
}

func newTestIMManager(t *testing.T) *InputMethodManager {
	t.Helper()
	m := newInputMethodManager(t.TempDir())
	for _, e := range testEntries() {
		if err := m.register(e); err != nil {
			t.Fatalf("register %s: %v", e.UniqueName, err)
		}
	}
	return m
}

func TestRegisterDuplicate(t *testing.T) {
	m := newTestIMManager(t)
	if err := m.register(InputMethodEntry{UniqueName: "pinyin"}); err == nil {
		t.Fatal("duplicate register succeeded, want error")
	}
}

func TestForeachEntryOrder(t *testing.T) {
	m := newTestIMManager(t)
	var got []string
	m.ForeachEntry(func(e *InputMethodEntry) bool {
		got = append(got, e.UniqueName)
		return true
	})
	want := []string{"keyboard-us", "pinyin", "anthy"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSetGroupSelectsFirst(t *testing.T) {
	m := newTestIMManager(t)
	m.SetGroup(Group{Name: "Default", DefaultLayout: "us", InputMethods: []string{"pinyin", "keyboard-us"}})

	cur := m.CurrentEntry()
	if cur == nil || cur.UniqueName != "pinyin" {
		t.Fatalf("current = %v, want pinyin", cur)
	}
}

func TestSetGroupKeepsCurrentWhenStillMember(t *testing.T) {
	m := newTestIMManager(t)
	m.SetGroup(Group{Name: "Default", DefaultLayout: "us", InputMethods: []string{"keyboard-us", "pinyin"}})
	if err := m.SetCurrentInputMethod("pinyin"); err != nil {
		t.Fatal(err)
	}

	m.SetGroup(Group{Name: "Default", DefaultLayout: "us", InputMethods: []string{"anthy", "pinyin"}})
	if cur := m.CurrentEntry(); cur == nil || cur.UniqueName != "pinyin" {
		t.Fatalf("current = %v, want pinyin to survive the group change", cur)
	}

	m.SetGroup(Group{Name: "Default", DefaultLayout: "us", InputMethods: []string{"keyboard-us"}})
	if cur := m.CurrentEntry(); cur == nil || cur.UniqueName != "keyboard-us" {
		t.Fatalf("current = %v, want fallback to first member", cur)
	}
}

func TestSetCurrentInputMethodOutsideGroup(t *testing.T) {
	m := newTestIMManager(t)
	m.SetGroup(Group{Name: "Default", DefaultLayout: "us", InputMethods: []string{"keyboard-us"}})
	if err := m.SetCurrentInputMethod("pinyin"); err == nil {
		t.Fatal("activating a non-member succeeded, want error")
	}
}

func TestProfileSaveLoad(t *testing.T) {
	dir := t.TempDir()
	m := newInputMethodManager(dir)
	for _, e := range testEntries() {
		m.register(e)
	}
	m.SetGroup(Group{Name: "Mine", DefaultLayout: "us", InputMethods: []string{"anthy", "keyboard-us", "pinyin"}})
	m.SetCurrentInputMethod("keyboard-us")
	if err := m.Save(); err != nil {
		t.Fatal(err)
	}

	restored := newInputMethodManager(dir)
	for _, e := range testEntries() {
		restored.register(e)
	}
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}

	g := restored.CurrentGroup()
	if g.Name != "Mine" {
		t.Errorf("group name = %q, want Mine", g.Name)
	}
	want := []string{"anthy", "keyboard-us", "pinyin"}
	if len(g.InputMethods) != len(want) {
		t.Fatalf("got %v, want %v", g.InputMethods, want)
	}
	for i := range want {
		if g.InputMethods[i] != want[i] {
			t.Errorf("item %d = %s, want %s", i, g.InputMethods[i], want[i])
		}
	}
	if cur := restored.CurrentEntry(); cur == nil || cur.UniqueName != "keyboard-us" {
		t.Errorf("current = %v, want keyboard-us", cur)
	}
}

func TestProfileLoadMissingFile(t *testing.T) {
	m := newTestIMManager(t)
	if err := m.Load(); err != nil {
		t.Fatalf("missing profile must keep defaults, got %v", err)
	}
	if g := m.CurrentGroup(); g.Name != "Default" || g.DefaultLayout != "us" {
		t.Errorf("defaults disturbed: %+v", g)
	}
}

func TestGroupHoldsUnknownNames(t *testing.T) {
	m := newTestIMManager(t)
	m.SetGroup(Group{Name: "Default", DefaultLayout: "us", InputMethods: []string{"notinstalled", "pinyin"}})

	g := m.CurrentGroup()
	if len(g.InputMethods) != 2 {
		t.Fatalf("group lost members: %v", g.InputMethods)
	}
	// The unknown name is retained in the list but resolves to no entry.
	if m.Entry("notinstalled") != nil {
		t.Error("unknown name resolved to an entry")
	}
}
