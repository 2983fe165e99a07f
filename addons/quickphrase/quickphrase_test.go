package quickphrase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yigeba52/fcitx5-android/engine"
	"github.com/yigeba52/fcitx5-android/rawconfig"
)

type panelSink struct {
	aux   string
	cands []string
}

func (s *panelSink) CandidateListChanged(c []string)     { s.cands = c }
func (s *panelSink) CommitString(string)                 {}
func (s *panelSink) PreeditChanged(string, string, int)  {}
func (s *panelSink) AuxChanged(up, down string)          { s.aux = up }
func (s *panelSink) ForwardKey(int, string)              {}
func (s *panelSink) InputMethodChanged()                 {}

func newTestQuickPhrase(t *testing.T, dataDir string) (*QuickPhrase, *panelSink, *engine.InputContext) {
	t.Helper()
	dir := t.TempDir()
	inst, err := engine.New(engine.Options{
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   dataDir,
		Addons:    []engine.AddonRegistration{Registration()},
	})
	if err != nil {
		t.Fatal(err)
	}
	handle := inst.AddonManager().Addon(AddonName, true)
	if handle == nil {
		t.Fatal("quickphrase did not load")
	}
	sink := &panelSink{}
	ic := inst.InputContextManager().Create("test", sink)
	return handle.Underlying().(*QuickPhrase), sink, ic
}

func TestTriggerShowsAllPhrases(t *testing.T) {
	qp, sink, ic := newTestQuickPhrase(t, "")

	qp.trigger(ic, "", "", "", "", engine.Key{})
	if sink.aux != "Quick Phrase: " {
		t.Errorf("aux = %q", sink.aux)
	}
	if len(sink.cands) == 0 {
		t.Fatal("no candidates shown")
	}
}

func TestTriggerNilContext(t *testing.T) {
	qp, _, _ := newTestQuickPhrase(t, "")
	// Must not panic: the bridge triggers with whatever context resolves.
	qp.trigger(nil, "", "", "", "", engine.Key{})
}

func TestTriggerPrefixFilters(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dataDir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	phrases := "hello\nhelp\nworld\n"
	if err := os.WriteFile(filepath.Join(dataDir, "data", "QuickPhrase.mb"), []byte(phrases), 0o644); err != nil {
		t.Fatal(err)
	}
	qp, sink, ic := newTestQuickPhrase(t, dataDir)

	qp.trigger(ic, "", "hel", "", "", engine.Key{})
	if len(sink.cands) != 2 {
		t.Fatalf("candidates = %v, want the two hel-prefixed phrases", sink.cands)
	}

	qp.trigger(ic, "", "zzz", "", "", engine.Key{})
	if len(sink.cands) != 0 {
		t.Fatalf("candidates = %v, want none", sink.cands)
	}
}

func TestLoadPhrasesFromDataFile(t *testing.T) {
	dataDir := t.TempDir()
	os.MkdirAll(filepath.Join(dataDir, "data"), 0o755)
	os.WriteFile(filepath.Join(dataDir, "data", "QuickPhrase.mb"), []byte("one\ntwo\n"), 0o644)

	qp, _, _ := newTestQuickPhrase(t, dataDir)
	if len(qp.phrases) != 2 || qp.phrases[0] != "one" {
		t.Fatalf("phrases = %v", qp.phrases)
	}
}

func TestBuiltinPhrasesWithoutDataFile(t *testing.T) {
	qp, _, _ := newTestQuickPhrase(t, t.TempDir())
	if len(qp.phrases) == 0 {
		t.Fatal("no built-in fallback phrases")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	qp, _, _ := newTestQuickPhrase(t, "")
	conf := qp.Configuration()

	tree := rawconfig.New("")
	tree.SetValueAt([]string{"TriggerKey"}, "Control+semicolon")
	tree.SetValueAt([]string{"PageSize"}, "7")
	conf.Load(tree)

	out := rawconfig.New("")
	conf.Save(out)
	if v := out.ValueAt("TriggerKey"); v != "Control+semicolon" {
		t.Errorf("TriggerKey = %q", v)
	}
	if v := out.ValueAt("PageSize"); v != "7" {
		t.Errorf("PageSize = %q", v)
	}
}
