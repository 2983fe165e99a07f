package fcitx5android

import "github.com/yigeba52/fcitx5-android/core"

// Listener receives engine push notifications. All methods are invoked on
// the engine's event loop goroutine: implementations must hand work off
// quickly and must not call back into blocking engine operations.
type Listener interface {
	// Ready fires exactly once per Run, after the input context exists and
	// every other callback is registered, before any of them can fire.
	Ready()
	// CommitString delivers text the engine finalized for the client.
	CommitString(text string)
	// PreeditChanged reports the composing text. preedit is the full panel
	// form, clientPreedit the inline form, cursor a rune offset into it.
	PreeditChanged(preedit, clientPreedit string, cursor int)
	// CandidateListChanged replaces the visible candidate words. An empty
	// slice clears the list.
	CandidateListChanged(candidates []string)
	// InputPanelAuxChanged reports the auxiliary texts above and below the
	// candidate list.
	InputPanelAuxChanged(auxUp, auxDown string)
	// KeyForwarded returns a key the active engine did not consume.
	KeyForwarded(code int, sym string)
	// InputMethodChanged reports the newly active input method and its
	// sub-mode.
	InputMethodChanged(status core.InputMethodStatus)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are
// ignored.
type ListenerFuncs struct {
	OnReady                func()
	OnCommitString         func(text string)
	OnPreeditChanged       func(preedit, clientPreedit string, cursor int)
	OnCandidateListChanged func(candidates []string)
	OnInputPanelAux        func(auxUp, auxDown string)
	OnKeyForwarded         func(code int, sym string)
	OnInputMethodChanged   func(status core.InputMethodStatus)
}

func (l ListenerFuncs) Ready() {
	if l.OnReady != nil {
		l.OnReady()
	}
}

func (l ListenerFuncs) CommitString(text string) {
	if l.OnCommitString != nil {
		l.OnCommitString(text)
	}
}

func (l ListenerFuncs) PreeditChanged(preedit, clientPreedit string, cursor int) {
	if l.OnPreeditChanged != nil {
		l.OnPreeditChanged(preedit, clientPreedit, cursor)
	}
}

func (l ListenerFuncs) CandidateListChanged(candidates []string) {
	if l.OnCandidateListChanged != nil {
		l.OnCandidateListChanged(candidates)
	}
}

func (l ListenerFuncs) InputPanelAuxChanged(auxUp, auxDown string) {
	if l.OnInputPanelAux != nil {
		l.OnInputPanelAux(auxUp, auxDown)
	}
}

func (l ListenerFuncs) KeyForwarded(code int, sym string) {
	if l.OnKeyForwarded != nil {
		l.OnKeyForwarded(code, sym)
	}
}

func (l ListenerFuncs) InputMethodChanged(status core.InputMethodStatus) {
	if l.OnInputMethodChanged != nil {
		l.OnInputMethodChanged(status)
	}
}
