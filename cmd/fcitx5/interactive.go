package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	fcitx "github.com/yigeba52/fcitx5-android"
	"github.com/yigeba52/fcitx5-android/core"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")).
			Padding(0, 1)

	imStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))

	preeditStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("#FFD54F"))

	candidateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	auxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CE93D8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// commitLogSize bounds the visible history of committed text.
const commitLogSize = 10

type consoleModel struct {
	eng *fcitx.Engine

	ready      bool
	imName     string
	subMode    string
	preedit    string
	cursor     int
	auxUp      string
	auxDown    string
	candidates []string
	commits    []string
	status     string

	command textinput.Model
	typing  bool // false while the command prompt is focused
}

type readyMsg struct{}

type commitMsg string

type preeditMsg struct {
	text   string
	cursor int
}

type candidatesMsg []string

type auxMsg struct {
	up, down string
}

type forwardMsg struct {
	code int
	sym  string
}

type imChangedMsg core.InputMethodStatus

type engineExitMsg int

func newConsoleModel(eng *fcitx.Engine) *consoleModel {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Width = 60
	return &consoleModel{
		eng:     eng,
		typing:  true,
		command: ti,
	}
}

func (m *consoleModel) Init() tea.Cmd { return nil }

func (m *consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		m.ready = true
		if st := m.eng.InputMethodStatus(); st.Entry != nil {
			m.imName = st.Entry.Name
		}

	case commitMsg:
		m.commits = append(m.commits, string(msg))
		if len(m.commits) > commitLogSize {
			m.commits = m.commits[len(m.commits)-commitLogSize:]
		}

	case preeditMsg:
		m.preedit = msg.text
		m.cursor = msg.cursor

	case candidatesMsg:
		m.candidates = msg

	case auxMsg:
		m.auxUp = msg.up
		m.auxDown = msg.down

	case forwardMsg:
		m.status = fmt.Sprintf("forwarded key %s", msg.sym)

	case imChangedMsg:
		m.imName, m.subMode = "", ""
		if msg.Entry != nil {
			m.imName = msg.Entry.Name
		}
		if msg.SubMode != nil {
			m.subMode = msg.SubMode.Label
		}

	case engineExitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		return m.updateCommand(msg)
	}
	return m, nil
}

// updateTyping forwards keystrokes to the engine.
func (m *consoleModel) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.eng.Exit()
		return m, nil

	case ":":
		m.typing = false
		m.command.SetValue("")
		m.command.Focus()
		return m, textinput.Blink

	case "ctrl+p":
		m.eng.TriggerQuickPhrase()

	case "ctrl+t":
		m.eng.TriggerUnicode()

	case "ctrl+r":
		m.eng.ResetInputPanel()

	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9":
		m.eng.SelectCandidate(int(msg.String()[4]-'0') - 1)

	case "backspace":
		m.eng.SendKeyString("BackSpace")
	case "enter":
		m.eng.SendKeyString("Return")
	case "tab":
		m.eng.SendKeyString("Tab")
	case " ":
		m.eng.SendKeyString("space")
	case "esc":
		m.eng.SendKeyString("Escape")

	default:
		if msg.Type == tea.KeyRunes && !msg.Alt {
			for _, r := range msg.Runes {
				m.eng.SendKeyRune(r)
			}
		}
	}
	return m, nil
}

// updateCommand drives the ":" command prompt.
func (m *consoleModel) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.eng.Exit()
		return m, nil

	case "esc":
		m.typing = true
		m.command.Blur()
		return m, nil

	case "enter":
		m.runCommand(strings.TrimSpace(m.command.Value()))
		m.typing = true
		m.command.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.command, cmd = m.command.Update(msg)
	return m, cmd
}

func (m *consoleModel) runCommand(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "quit", "q":
		m.eng.Exit()

	case "im":
		if len(fields) == 2 {
			m.eng.SetInputMethod(fields[1])
			m.status = "switching to " + fields[1]
		}

	case "ims":
		if len(fields) >= 2 {
			m.eng.SetEnabledInputMethods(fields[1:])
			m.status = "group updated"
		}

	case "list":
		var names []string
		for _, e := range m.eng.ListInputMethods() {
			names = append(names, e.UniqueName)
		}
		m.status = "enabled: " + strings.Join(names, " ")

	case "addons":
		var names []string
		for _, st := range m.eng.Addons() {
			mark := "-"
			if st.Enabled {
				mark = "+"
			}
			names = append(names, mark+st.UniqueName)
		}
		m.status = strings.Join(names, " ")

	case "save":
		m.eng.SaveConfig()
		m.status = "configuration saved"

	default:
		m.status = "unknown command: " + fields[0]
	}
}

func (m *consoleModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("fcitx5 console"))
	if m.imName != "" {
		b.WriteString(" ")
		b.WriteString(imStyle.Render(m.imName))
		if m.subMode != "" {
			b.WriteString(" " + imStyle.Render("("+m.subMode+")"))
		}
	}
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString("Starting engine...\n")
		return b.String()
	}

	for _, c := range m.commits {
		b.WriteString(c)
	}
	if m.preedit != "" {
		b.WriteString(preeditStyle.Render(m.preedit))
	}
	b.WriteString("\n\n")

	if m.auxUp != "" || m.auxDown != "" {
		b.WriteString(auxStyle.Render(m.auxUp))
		if m.auxDown != "" {
			b.WriteString(" " + auxStyle.Render(m.auxDown))
		}
		b.WriteString("\n")
	}
	if len(m.candidates) > 0 {
		for i, c := range m.candidates {
			b.WriteString(fmt.Sprintf("%d.%s ", i+1, candidateStyle.Render(c)))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.typing {
		b.WriteString(helpStyle.Render("type to input • alt+N select • ctrl+p quickphrase • ctrl+t unicode • : command • ctrl+c quit"))
	} else {
		b.WriteString(m.command.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("im <name> • ims <names> • list • addons • save • quit"))
	}
	return b.String()
}

func runInteractive(log *zap.Logger, opts fcitx.Options) error {
	eng := fcitx.NewEngine(log)
	code := make(chan int, 1)
	model := newConsoleModel(eng)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		c := eng.Run(opts, fcitx.ListenerFuncs{
			OnReady:        func() { p.Send(readyMsg{}) },
			OnCommitString: func(text string) { p.Send(commitMsg(text)) },
			OnPreeditChanged: func(preedit, clientPreedit string, cursor int) {
				p.Send(preeditMsg{text: preedit, cursor: cursor})
			},
			OnCandidateListChanged: func(candidates []string) { p.Send(candidatesMsg(candidates)) },
			OnInputPanelAux:        func(up, down string) { p.Send(auxMsg{up: up, down: down}) },
			OnKeyForwarded:         func(keyCode int, sym string) { p.Send(forwardMsg{code: keyCode, sym: sym}) },
			OnInputMethodChanged:   func(status core.InputMethodStatus) { p.Send(imChangedMsg(status)) },
		})
		code <- c
		p.Send(engineExitMsg(c))
	}()

	_, err := p.Run()
	if eng.IsRunning() {
		eng.Exit()
	}
	if c := <-code; c != core.ExitNormal && err == nil {
		return fmt.Errorf("engine exited with code %d", c)
	}
	return err
}
