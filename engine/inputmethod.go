package engine

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/yigeba52/fcitx5-android/errors"
	"github.com/yigeba52/fcitx5-android/rawconfig"
)

// InputMethodEntry is the immutable descriptor of one installed input
// method. Entries are produced at registration time and only ever read.
type InputMethodEntry struct {
	UniqueName   string
	Name         string
	Icon         string
	NativeName   string
	Label        string
	LanguageCode string
	Configurable bool
	AddonName    string // owning engine addon
}

// SubMode is the optional sub-mode triple an engine exposes for its active
// state (e.g. a Chinese engine reporting full/half width).
type SubMode struct {
	ID    string
	Label string
	Icon  string
}

// IMEngine is implemented by the underlying addon of an input-method entry.
// All methods run on the event loop.
type IMEngine interface {
	// ProcessKey handles one key event for the active entry. Returning
	// false forwards the key back to the client untouched.
	ProcessKey(entry *InputMethodEntry, ic *InputContext, key Key, isRelease bool) bool
	// Reset clears any per-context composing state.
	Reset(entry *InputMethodEntry, ic *InputContext)
}

// SubModeProvider is implemented by engines with a sub-mode concept.
type SubModeProvider interface {
	SubMode(entry *InputMethodEntry, ic *InputContext) SubMode
}

// IMConfigurable is implemented by engines exposing per-entry configuration.
type IMConfigurable interface {
	ConfigForInputMethod(entry *InputMethodEntry) rawconfig.Configuration
}

// Group is an ordered selection of input methods with a keyboard layout.
type Group struct {
	Name          string
	DefaultLayout string
	InputMethods  []string
}

const profileFile = "profile"

// InputMethodManager tracks every installed entry and the active group.
// Mutations happen on the event loop; enumeration order of entries is
// registration order.
type InputMethodManager struct {
	entries   map[string]*InputMethodEntry
	order     []string
	group     Group
	currentIM string
	configDir string
}

func newInputMethodManager(configDir string) *InputMethodManager {
	return &InputMethodManager{
		entries:   make(map[string]*InputMethodEntry),
		group:     Group{Name: "Default", DefaultLayout: "us"},
		configDir: configDir,
	}
}

func (m *InputMethodManager) register(entry InputMethodEntry) error {
	if _, ok := m.entries[entry.UniqueName]; ok {
		return errors.DuplicateName(errors.PhaseInputMethod, "input method", entry.UniqueName)
	}
	e := entry
	m.entries[e.UniqueName] = &e
	m.order = append(m.order, e.UniqueName)
	return nil
}

// Entry returns the descriptor for name, or nil.
func (m *InputMethodManager) Entry(name string) *InputMethodEntry {
	return m.entries[name]
}

// ForeachEntry calls fn for every installed entry in registration order,
// stopping early when fn returns false.
func (m *InputMethodManager) ForeachEntry(fn func(*InputMethodEntry) bool) {
	for _, name := range m.order {
		if !fn(m.entries[name]) {
			return
		}
	}
}

// CurrentGroup returns a copy of the active group.
func (m *InputMethodManager) CurrentGroup() Group {
	g := m.group
	g.InputMethods = append([]string(nil), m.group.InputMethods...)
	return g
}

// SetGroup replaces the active group. Unknown entry names stay in the list
// (their addons may appear after a reload) but never resolve to an entry.
func (m *InputMethodManager) SetGroup(g Group) {
	m.group = g
	m.group.InputMethods = append([]string(nil), g.InputMethods...)
	if m.currentIM == "" || !m.groupContains(m.currentIM) {
		if len(m.group.InputMethods) > 0 {
			m.currentIM = m.group.InputMethods[0]
		} else {
			m.currentIM = ""
		}
	}
}

func (m *InputMethodManager) groupContains(name string) bool {
	for _, im := range m.group.InputMethods {
		if im == name {
			return true
		}
	}
	return false
}

// CurrentEntry resolves the active input method, or nil when the group is
// empty.
func (m *InputMethodManager) CurrentEntry() *InputMethodEntry {
	if m.currentIM == "" {
		return nil
	}
	return m.entries[m.currentIM]
}

// SetCurrentInputMethod activates an entry already present in the group.
func (m *InputMethodManager) SetCurrentInputMethod(name string) error {
	if !m.groupContains(name) {
		return errors.NotFound(errors.PhaseInputMethod, "group input method", name)
	}
	m.currentIM = name
	return nil
}

// Save persists the active group and current selection to the profile file.
func (m *InputMethodManager) Save() error {
	tree := rawconfig.New("")
	if err := tree.SetValueAt([]string{"Group", "Name"}, m.group.Name); err != nil {
		return err
	}
	tree.SetValueAt([]string{"Group", "DefaultLayout"}, m.group.DefaultLayout)
	tree.SetValueAt([]string{"Group", "CurrentInputMethod"}, m.currentIM)
	for i, im := range m.group.InputMethods {
		tree.SetValueAt([]string{"Group", "Items", itemKey(i)}, im)
	}
	data, err := rawconfig.MarshalTOML(tree)
	if err != nil {
		return err
	}
	path := filepath.Join(m.configDir, profileFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Persistence("save profile", err)
	}
	return nil
}

// Load restores the group from the profile file. A missing file leaves the
// defaults in place.
func (m *InputMethodManager) Load() error {
	data, err := os.ReadFile(filepath.Join(m.configDir, profileFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Persistence("load profile", err)
	}
	tree, err := rawconfig.UnmarshalTOML(data)
	if err != nil {
		return err
	}
	g := Group{
		Name:          tree.ValueAt("Group", "Name"),
		DefaultLayout: tree.ValueAt("Group", "DefaultLayout"),
	}
	if g.Name == "" {
		g.Name = "Default"
	}
	if g.DefaultLayout == "" {
		g.DefaultLayout = "us"
	}
	if items := tree.Get("Group"); items != nil {
		if list := items.Get("Items"); list != nil {
			for i := 0; i < len(list.Children()); i++ {
				if v := list.ValueAt(itemKey(i)); v != "" {
					g.InputMethods = append(g.InputMethods, v)
				}
			}
		}
	}
	m.SetGroup(g)
	if cur := tree.ValueAt("Group", "CurrentInputMethod"); cur != "" && m.groupContains(cur) {
		m.currentIM = cur
	}
	return nil
}

func itemKey(i int) string { return strconv.Itoa(i) }
