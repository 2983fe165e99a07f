// Package keyboard implements the plain keyboard engine addon: printable
// keys commit directly, everything else is forwarded back to the client.
package keyboard

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/yigeba52/fcitx5-android/addon"
	"github.com/yigeba52/fcitx5-android/engine"
	"github.com/yigeba52/fcitx5-android/rawconfig"
)

const AddonName = "keyboard"

var info = addon.Info{
	UniqueName:     AddonName,
	Name:           "Keyboard",
	Comment:        "Plain keyboard input",
	Category:       addon.CategoryInputMethod,
	Configurable:   true,
	DefaultEnabled: true,
	OnDemand:       false,
}

var entries = []engine.InputMethodEntry{
	{
		UniqueName:   "keyboard-us",
		Name:         "English",
		Icon:         "input-keyboard",
		NativeName:   "English (US)",
		Label:        "En",
		LanguageCode: "en",
		Configurable: true,
		AddonName:    AddonName,
	},
}

// Keyboard is the addon instance.
type Keyboard struct {
	inst *engine.Instance
	conf *config
}

// Registration returns the addon's registration for the engine.
func Registration() engine.AddonRegistration {
	return engine.AddonRegistration{
		Info:    info,
		Entries: entries,
		Build: func(inst *engine.Instance) (addon.Addon, error) {
			k := &Keyboard{inst: inst, conf: defaultConfig()}
			k.conf.load(inst.ConfigDir())
			return k, nil
		},
	}
}

func (k *Keyboard) Info() *addon.Info { return &info }

func (k *Keyboard) Configuration() rawconfig.Configuration { return k.conf }

// ConfigForInputMethod exposes the shared keyboard options per entry.
func (k *Keyboard) ConfigForInputMethod(*engine.InputMethodEntry) rawconfig.Configuration {
	return k.conf
}

// Save persists the addon configuration.
func (k *Keyboard) Save() error {
	return k.conf.save(k.inst.ConfigDir())
}

// Reset implements engine.IMEngine. The keyboard keeps no composing state.
func (k *Keyboard) Reset(*engine.InputMethodEntry, *engine.InputContext) {}

// ProcessKey implements engine.IMEngine.
func (k *Keyboard) ProcessKey(_ *engine.InputMethodEntry, ic *engine.InputContext, key engine.Key, isRelease bool) bool {
	if isRelease {
		return true
	}
	if key.IsPrintable() {
		ic.Commit(string(key.Sym))
		return true
	}
	return false
}

// config holds the keyboard options.
type config struct {
	layout         string
	repeatInterval int
}

func defaultConfig() *config {
	return &config{layout: "us", repeatInterval: 40}
}

const confFile = "conf/keyboard"

func (c *config) Save(rc *rawconfig.RawConfig) {
	rc.SetValueAt([]string{"Layout"}, c.layout)
	rc.SetValueAt([]string{"RepeatInterval"}, strconv.Itoa(c.repeatInterval))
}

func (c *config) Describe(rc *rawconfig.RawConfig) {
	layout, _ := rc.Ensure("Layout")
	layout.SetComment("Keyboard layout")
	layout.SetValueAt([]string{"Type"}, "String")
	layout.SetValueAt([]string{"DefaultValue"}, "us")

	repeat, _ := rc.Ensure("RepeatInterval")
	repeat.SetComment("Key repeat interval in milliseconds")
	repeat.SetValueAt([]string{"Type"}, "Integer")
	repeat.SetValueAt([]string{"DefaultValue"}, "40")
}

func (c *config) Load(rc *rawconfig.RawConfig) {
	if v := rc.ValueAt("Layout"); v != "" {
		c.layout = v
	}
	if v := rc.ValueAt("RepeatInterval"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.repeatInterval = n
		}
	}
}

func (c *config) save(configDir string) error {
	tree := rawconfig.New("")
	c.Save(tree)
	data, err := rawconfig.MarshalTOML(tree)
	if err != nil {
		return err
	}
	path := filepath.Join(configDir, confFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *config) load(configDir string) {
	data, err := os.ReadFile(filepath.Join(configDir, confFile))
	if err != nil {
		return
	}
	if tree, err := rawconfig.UnmarshalTOML(data); err == nil {
		c.Load(tree)
	}
}
