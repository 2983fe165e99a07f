package fcitx5android

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigeba52/fcitx5-android/core"
)

const waitFor = 5 * time.Second

// recorder collects listener callbacks in arrival order.
type recorder struct {
	mu     sync.Mutex
	events []string

	ready   chan struct{}
	commits chan string
}

func newRecorder() *recorder {
	return &recorder{
		ready:   make(chan struct{}),
		commits: make(chan string, 16),
	}
}

func (r *recorder) record(name string) {
	r.mu.Lock()
	r.events = append(r.events, name)
	r.mu.Unlock()
}

func (r *recorder) first() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return ""
	}
	return r.events[0]
}

func (r *recorder) Ready() {
	r.record("ready")
	close(r.ready)
}

func (r *recorder) CommitString(text string) {
	r.record("commit")
	r.commits <- text
}

func (r *recorder) PreeditChanged(preedit, clientPreedit string, cursor int) {
	r.record("preedit")
}

func (r *recorder) CandidateListChanged(candidates []string) {
	r.record("candidates")
}

func (r *recorder) InputPanelAuxChanged(auxUp, auxDown string) {
	r.record("aux")
}

func (r *recorder) KeyForwarded(code int, sym string) {
	r.record("forward")
}

func (r *recorder) InputMethodChanged(status core.InputMethodStatus) {
	r.record("imchange")
}

func runEngine(t *testing.T) (*Engine, *recorder, chan int) {
	t.Helper()
	tmp := t.TempDir()
	eng := NewEngine(nil)
	rec := newRecorder()
	code := make(chan int, 1)
	go func() {
		code <- eng.Run(Options{
			Locale:      "en_US",
			AppDataPath: filepath.Join(tmp, "appdata"),
			AppLibPath:  filepath.Join(tmp, "applib"),
			ExtDataPath: filepath.Join(tmp, "ext"),
		}, rec)
	}()
	select {
	case <-rec.ready:
	case <-time.After(waitFor):
		t.Fatal("engine did not become ready")
	}
	t.Cleanup(func() {
		if eng.IsRunning() {
			eng.Exit()
			select {
			case <-code:
			case <-time.After(waitFor):
				t.Error("engine did not exit")
			}
		}
	})
	return eng, rec, code
}

func TestRunDeliversReadyFirst(t *testing.T) {
	eng, rec, _ := runEngine(t)
	require.True(t, eng.IsRunning())
	assert.Equal(t, "ready", rec.first())
}

func TestRunDeliversCommits(t *testing.T) {
	eng, rec, _ := runEngine(t)
	eng.SendKeyRune('h')
	eng.SendKeyRune('i')
	select {
	case s := <-rec.commits:
		assert.Equal(t, "h", s)
	case <-time.After(waitFor):
		t.Fatal("no commit arrived")
	}
	select {
	case s := <-rec.commits:
		assert.Equal(t, "i", s)
	case <-time.After(waitFor):
		t.Fatal("no second commit arrived")
	}
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	eng, _, _ := runEngine(t)
	code := eng.Run(Options{}, newRecorder())
	assert.Equal(t, core.ExitAlreadyRunning, code)
}

func TestRunExitCode(t *testing.T) {
	eng, _, code := runEngine(t)
	eng.Exit()
	select {
	case c := <-code:
		assert.Equal(t, core.ExitNormal, c)
	case <-time.After(waitFor):
		t.Fatal("engine did not exit")
	}
	assert.False(t, eng.IsRunning())
}

func TestListenerFuncsNilFields(t *testing.T) {
	// Zero value must be safe to invoke.
	var l ListenerFuncs
	l.Ready()
	l.CommitString("x")
	l.PreeditChanged("a", "b", 1)
	l.CandidateListChanged(nil)
	l.InputPanelAuxChanged("", "")
	l.KeyForwarded(1, "a")
	l.InputMethodChanged(core.InputMethodStatus{})

	var got string
	l = ListenerFuncs{OnCommitString: func(s string) { got = s }}
	l.CommitString("hello")
	assert.Equal(t, "hello", got)
}
