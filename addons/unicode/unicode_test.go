package unicode

import (
	"path/filepath"
	"testing"

	"github.com/yigeba52/fcitx5-android/engine"
)

type auxSink struct {
	aux   string
	cands []string
}

func (s *auxSink) CandidateListChanged(c []string)    { s.cands = c }
func (s *auxSink) CommitString(string)                {}
func (s *auxSink) PreeditChanged(string, string, int) {}
func (s *auxSink) AuxChanged(up, down string)         { s.aux = up }
func (s *auxSink) ForwardKey(int, string)             {}
func (s *auxSink) InputMethodChanged()                {}

func TestTriggerEntersCodePointMode(t *testing.T) {
	inst, err := engine.New(engine.Options{
		ConfigDir: filepath.Join(t.TempDir(), "config"),
	})
	if err != nil {
		t.Fatal(err)
	}
	sink := &auxSink{}
	ic := inst.InputContextManager().Create("test", sink)

	u := &Unicode{}
	u.trigger(ic)
	if sink.aux != "Unicode: type hex code point" {
		t.Errorf("aux = %q", sink.aux)
	}
	if len(sink.cands) != 0 {
		t.Errorf("candidates = %v, want empty", sink.cands)
	}
}

func TestTriggerNilContext(t *testing.T) {
	u := &Unicode{}
	u.trigger(nil)
}
