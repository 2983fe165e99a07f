package keyboard

import (
	"path/filepath"
	"testing"

	"github.com/yigeba52/fcitx5-android/engine"
	"github.com/yigeba52/fcitx5-android/rawconfig"
)

type commitSink struct {
	commits   []string
	forwarded []string
}

func (s *commitSink) CandidateListChanged([]string)      {}
func (s *commitSink) CommitString(text string)           { s.commits = append(s.commits, text) }
func (s *commitSink) PreeditChanged(string, string, int) {}
func (s *commitSink) AuxChanged(string, string)          {}
func (s *commitSink) ForwardKey(code int, sym string)    { s.forwarded = append(s.forwarded, sym) }
func (s *commitSink) InputMethodChanged()                {}

func newTestKeyboard(t *testing.T) (*engine.Instance, *Keyboard, *commitSink, *engine.InputContext) {
	t.Helper()
	dir := t.TempDir()
	inst, err := engine.New(engine.Options{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
		Addons:    []engine.AddonRegistration{Registration()},
	})
	if err != nil {
		t.Fatal(err)
	}
	handle := inst.AddonManager().Addon(AddonName, true)
	if handle == nil {
		t.Fatal("keyboard did not load")
	}
	kb := handle.Underlying().(*Keyboard)
	sink := &commitSink{}
	ic := inst.InputContextManager().Create("test", sink)
	return inst, kb, sink, ic
}

func TestProcessKeyPrintableCommits(t *testing.T) {
	_, kb, sink, ic := newTestKeyboard(t)

	if !kb.ProcessKey(nil, ic, engine.KeyFromRune('a'), false) {
		t.Fatal("printable key not consumed")
	}
	if len(sink.commits) != 1 || sink.commits[0] != "a" {
		t.Fatalf("commits = %v", sink.commits)
	}
}

func TestProcessKeyReleaseConsumedSilently(t *testing.T) {
	_, kb, sink, ic := newTestKeyboard(t)

	if !kb.ProcessKey(nil, ic, engine.KeyFromRune('a'), true) {
		t.Fatal("release not consumed")
	}
	if len(sink.commits) != 0 {
		t.Fatalf("release committed text: %v", sink.commits)
	}
}

func TestProcessKeyNonPrintableDeclined(t *testing.T) {
	_, kb, _, ic := newTestKeyboard(t)

	key, err := engine.ParseKey("Control+space")
	if err != nil {
		t.Fatal(err)
	}
	if kb.ProcessKey(nil, ic, key, false) {
		t.Fatal("modifier combination consumed")
	}
	if kb.ProcessKey(nil, ic, engine.KeyFromCode(111), false) {
		t.Fatal("bare key code consumed")
	}
}

func TestRegistersUSEntry(t *testing.T) {
	inst, _, _, _ := newTestKeyboard(t)
	entry := inst.InputMethodManager().Entry("keyboard-us")
	if entry == nil {
		t.Fatal("keyboard-us not registered")
	}
	if !entry.Configurable {
		t.Error("entry not configurable")
	}
	if entry.AddonName != AddonName {
		t.Errorf("entry addon = %q", entry.AddonName)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	_, kb, _, _ := newTestKeyboard(t)
	conf := kb.Configuration()

	tree := rawconfig.New("")
	tree.SetValueAt([]string{"Layout"}, "de")
	tree.SetValueAt([]string{"RepeatInterval"}, "25")
	conf.Load(tree)

	out := rawconfig.New("")
	conf.Save(out)
	if v := out.ValueAt("Layout"); v != "de" {
		t.Errorf("Layout = %q, want de", v)
	}
	if v := out.ValueAt("RepeatInterval"); v != "25" {
		t.Errorf("RepeatInterval = %q, want 25", v)
	}
}

func TestConfigPersistence(t *testing.T) {
	inst, kb, _, _ := newTestKeyboard(t)

	tree := rawconfig.New("")
	tree.SetValueAt([]string{"Layout"}, "fr")
	kb.Configuration().Load(tree)
	if err := kb.Save(); err != nil {
		t.Fatal(err)
	}

	// A fresh build from the same config dir restores the saved layout.
	rebuilt, err := Registration().Build(inst)
	if err != nil {
		t.Fatal(err)
	}
	out := rawconfig.New("")
	rebuilt.(*Keyboard).Configuration().Save(out)
	if v := out.ValueAt("Layout"); v != "fr" {
		t.Errorf("restored Layout = %q, want fr", v)
	}
}

func TestConfigForInputMethodSharesConfig(t *testing.T) {
	inst, kb, _, _ := newTestKeyboard(t)
	entry := inst.InputMethodManager().Entry("keyboard-us")
	if kb.ConfigForInputMethod(entry) != kb.Configuration() {
		t.Fatal("per-entry config differs from the addon config")
	}
}
