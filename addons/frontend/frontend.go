// Package frontend implements the frontend addon: it owns the process's
// input contexts and relays every engine push event (candidates, commits,
// preedit, aux, forwarded keys, input-method changes) to callbacks the
// boundary adapter registers before the loop starts processing.
package frontend

import (
	"github.com/google/uuid"

	"github.com/yigeba52/fcitx5-android/addon"
	"github.com/yigeba52/fcitx5-android/engine"
)

// AddonName is the registered unique name of this addon.
const AddonName = "androidfrontend"

var info = addon.Info{
	UniqueName:     AddonName,
	Name:           "Android Frontend",
	Comment:        "Bridges input contexts to the platform input-method service",
	Category:       addon.CategoryFrontend,
	Configurable:   false,
	DefaultEnabled: true,
	OnDemand:       false,
}

// Frontend is the addon instance. It implements engine.EventSink for the
// contexts it creates; callbacks default to nil and drop events until set.
type Frontend struct {
	inst *engine.Instance

	candidateCb func(candidates []string)
	commitCb    func(text string)
	preeditCb   func(preedit, clientPreedit string, cursor int)
	auxCb       func(auxUp, auxDown string)
	keyCb       func(code int, sym string)
	imChangeCb  func()
}

// Registration returns the addon's registration for the engine.
func Registration() engine.AddonRegistration {
	return engine.AddonRegistration{
		Info: info,
		Build: func(inst *engine.Instance) (addon.Addon, error) {
			return &Frontend{inst: inst}, nil
		},
	}
}

func (f *Frontend) Info() *addon.Info { return &info }

// Operations exposes the frontend's capability surface.
func (f *Frontend) Operations() map[string]any {
	return map[string]any{
		"createInputContext":  f.createInputContext,
		"destroyInputContext": f.destroyInputContext,
		"keyEvent":            f.keyEvent,
		"selectCandidate":     f.selectCandidate,
		"isInputPanelEmpty":   f.isInputPanelEmpty,
		"resetInputPanel":     f.resetInputPanel,
		"repositionCursor":    f.repositionCursor,
		"focusInputContext":   f.focusInputContext,

		"setCandidateListCallback":     func(cb func([]string)) { f.candidateCb = cb },
		"setCommitStringCallback":      func(cb func(string)) { f.commitCb = cb },
		"setPreeditCallback":           func(cb func(string, string, int)) { f.preeditCb = cb },
		"setInputPanelAuxCallback":     func(cb func(string, string)) { f.auxCb = cb },
		"setKeyEventCallback":          func(cb func(int, string)) { f.keyCb = cb },
		"setInputMethodChangeCallback": func(cb func()) { f.imChangeCb = cb },
	}
}

func (f *Frontend) createInputContext(program string) uuid.UUID {
	ic := f.inst.InputContextManager().Create(program, f)
	return ic.ID()
}

func (f *Frontend) destroyInputContext(id uuid.UUID) {
	f.inst.InputContextManager().Destroy(id)
}

func (f *Frontend) find(id uuid.UUID) *engine.InputContext {
	return f.inst.InputContextManager().FindByUUID(id)
}

func (f *Frontend) keyEvent(id uuid.UUID, key engine.Key, isRelease bool) {
	ic := f.find(id)
	if ic == nil {
		return
	}
	f.inst.ProcessKey(ic, key, isRelease)
}

// selectCandidate commits the chosen display string and clears the panel.
func (f *Frontend) selectCandidate(id uuid.UUID, index int) {
	ic := f.find(id)
	if ic == nil {
		return
	}
	text := ic.Candidate(index)
	if text == "" {
		return
	}
	ic.Commit(text)
	f.inst.ResetEngine(ic)
	ic.ResetPanel()
}

func (f *Frontend) isInputPanelEmpty(id uuid.UUID) bool {
	ic := f.find(id)
	if ic == nil {
		return true
	}
	return ic.IsPanelEmpty()
}

func (f *Frontend) resetInputPanel(id uuid.UUID) {
	ic := f.find(id)
	if ic == nil {
		return
	}
	f.inst.ResetEngine(ic)
	ic.ResetPanel()
}

func (f *Frontend) repositionCursor(id uuid.UUID, position int) {
	ic := f.find(id)
	if ic == nil {
		return
	}
	ic.MoveCursor(position)
}

func (f *Frontend) focusInputContext(id uuid.UUID, focus bool) {
	ic := f.find(id)
	if ic == nil {
		return
	}
	ic.SetFocus(focus)
	if !focus {
		f.inst.ResetEngine(ic)
		ic.ResetPanel()
	}
}

// engine.EventSink

func (f *Frontend) CandidateListChanged(candidates []string) {
	if f.candidateCb != nil {
		f.candidateCb(candidates)
	}
}

func (f *Frontend) CommitString(text string) {
	if f.commitCb != nil {
		f.commitCb(text)
	}
}

func (f *Frontend) PreeditChanged(preedit, clientPreedit string, cursor int) {
	if f.preeditCb != nil {
		f.preeditCb(preedit, clientPreedit, cursor)
	}
}

func (f *Frontend) AuxChanged(auxUp, auxDown string) {
	if f.auxCb != nil {
		f.auxCb(auxUp, auxDown)
	}
}

func (f *Frontend) ForwardKey(code int, sym string) {
	if f.keyCb != nil {
		f.keyCb(code, sym)
	}
}

func (f *Frontend) InputMethodChanged() {
	if f.imChangeCb != nil {
		f.imChangeCb()
	}
}
