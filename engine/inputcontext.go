package engine

import (
	"github.com/google/uuid"
)

// EventSink receives the push-style events an input context produces. The
// frontend addon implements it and relays each event across the boundary.
// All methods are invoked on the event loop.
type EventSink interface {
	CandidateListChanged(candidates []string)
	CommitString(text string)
	PreeditChanged(preedit, clientPreedit string, cursor int)
	AuxChanged(auxUp, auxDown string)
	ForwardKey(code int, sym string)
	InputMethodChanged()
}

// InputPanel is the composing surface of one input context.
type InputPanel struct {
	Preedit       string
	ClientPreedit string
	Cursor        int
	AuxUp         string
	AuxDown       string
	Candidates    []string
}

// Empty reports whether nothing is being composed.
func (p *InputPanel) Empty() bool {
	return p.Preedit == "" && p.ClientPreedit == "" &&
		p.AuxUp == "" && p.AuxDown == "" && len(p.Candidates) == 0
}

// InputContext is one logical editing session. The process creates exactly
// one at startup and keeps it for its whole lifetime. Mutations happen on
// the event loop; IsPanelEmpty is read directly from caller threads as a
// deliberately racy best-effort snapshot.
type InputContext struct {
	id      uuid.UUID
	program string
	focused bool
	panel   InputPanel
	sink    EventSink
}

func (ic *InputContext) ID() uuid.UUID  { return ic.id }
func (ic *InputContext) Program() string { return ic.program }
func (ic *InputContext) Focused() bool   { return ic.focused }

func (ic *InputContext) SetFocus(focus bool) { ic.focused = focus }

// IsPanelEmpty snapshots the panel state without scheduling.
func (ic *InputContext) IsPanelEmpty() bool { return ic.panel.Empty() }

// Commit sends text to the client.
func (ic *InputContext) Commit(text string) {
	if ic.sink != nil {
		ic.sink.CommitString(text)
	}
}

// UpdatePreedit replaces the composing text and notifies the sink.
func (ic *InputContext) UpdatePreedit(preedit, clientPreedit string, cursor int) {
	ic.panel.Preedit = preedit
	ic.panel.ClientPreedit = clientPreedit
	ic.panel.Cursor = cursor
	if ic.sink != nil {
		ic.sink.PreeditChanged(preedit, clientPreedit, cursor)
	}
}

// MoveCursor repositions the preedit cursor, clamped to the composing
// text, and notifies the sink.
func (ic *InputContext) MoveCursor(position int) {
	if position < 0 {
		position = 0
	}
	if max := len([]rune(ic.panel.Preedit)); position > max {
		position = max
	}
	ic.panel.Cursor = position
	if ic.sink != nil {
		ic.sink.PreeditChanged(ic.panel.Preedit, ic.panel.ClientPreedit, position)
	}
}

// SetCandidates replaces the candidate list and notifies the sink.
func (ic *InputContext) SetCandidates(candidates []string) {
	ic.panel.Candidates = append([]string(nil), candidates...)
	if ic.sink != nil {
		ic.sink.CandidateListChanged(ic.panel.Candidates)
	}
}

// Candidate returns the display string at index, or "" when out of range.
func (ic *InputContext) Candidate(index int) string {
	if index < 0 || index >= len(ic.panel.Candidates) {
		return ""
	}
	return ic.panel.Candidates[index]
}

// SetAux replaces the auxiliary strings and notifies the sink.
func (ic *InputContext) SetAux(auxUp, auxDown string) {
	ic.panel.AuxUp = auxUp
	ic.panel.AuxDown = auxDown
	if ic.sink != nil {
		ic.sink.AuxChanged(auxUp, auxDown)
	}
}

// ForwardKey returns an unconsumed key to the client.
func (ic *InputContext) ForwardKey(code int, sym string) {
	if ic.sink != nil {
		ic.sink.ForwardKey(code, sym)
	}
}

// ResetPanel clears all composing state, notifying the sink of each
// cleared surface.
func (ic *InputContext) ResetPanel() {
	if !ic.panel.Empty() {
		ic.UpdatePreedit("", "", 0)
		ic.SetCandidates(nil)
		ic.SetAux("", "")
	}
}

func (ic *InputContext) notifyIMChanged() {
	if ic.sink != nil {
		ic.sink.InputMethodChanged()
	}
}

// InputContextManager owns the live input contexts, keyed by UUID.
type InputContextManager struct {
	contexts map[uuid.UUID]*InputContext
}

func newInputContextManager() *InputContextManager {
	return &InputContextManager{contexts: make(map[uuid.UUID]*InputContext)}
}

// Create registers a fresh context for a client program.
func (m *InputContextManager) Create(program string, sink EventSink) *InputContext {
	ic := &InputContext{
		id:      uuid.New(),
		program: program,
		sink:    sink,
	}
	m.contexts[ic.id] = ic
	return ic
}

// FindByUUID resolves a context handle, or nil.
func (m *InputContextManager) FindByUUID(id uuid.UUID) *InputContext {
	return m.contexts[id]
}

// Destroy drops a context.
func (m *InputContextManager) Destroy(id uuid.UUID) {
	delete(m.contexts, id)
}

// Foreach visits every live context.
func (m *InputContextManager) Foreach(fn func(*InputContext)) {
	for _, ic := range m.contexts {
		fn(ic)
	}
}
