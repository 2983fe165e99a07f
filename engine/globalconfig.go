package engine

import (
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/yigeba52/fcitx5-android/errors"
	"github.com/yigeba52/fcitx5-android/rawconfig"
)

const globalConfigFile = "config"

// GlobalConfig holds the engine-wide options plus the explicit
// enabled/disabled addon overrides. The effective enabled state of an addon
// is derived: the disabled set wins, then the enabled set, then the
// descriptor default.
type GlobalConfig struct {
	configDir string

	activeByDefault bool
	shareInputState string // No | Program | All
	showPreedit     bool

	enabledAddons  []string
	disabledAddons []string
}

func newGlobalConfig(configDir string) *GlobalConfig {
	return &GlobalConfig{
		configDir:       configDir,
		shareInputState: "No",
		showPreedit:     true,
	}
}

// EnabledAddons returns the explicit enabled-set.
func (g *GlobalConfig) EnabledAddons() []string {
	return append([]string(nil), g.enabledAddons...)
}

// DisabledAddons returns the explicit disabled-set.
func (g *GlobalConfig) DisabledAddons() []string {
	return append([]string(nil), g.disabledAddons...)
}

// SetEnabledAddons replaces the explicit enabled-set.
func (g *GlobalConfig) SetEnabledAddons(names []string) {
	g.enabledAddons = append([]string(nil), names...)
}

// SetDisabledAddons replaces the explicit disabled-set.
func (g *GlobalConfig) SetDisabledAddons(names []string) {
	g.disabledAddons = append([]string(nil), names...)
}

// Save implements rawconfig.Configuration.
func (g *GlobalConfig) Save(rc *rawconfig.RawConfig) {
	rc.SetValueAt([]string{"Behavior", "ActiveByDefault"}, strconv.FormatBool(g.activeByDefault))
	rc.SetValueAt([]string{"Behavior", "ShareInputState"}, g.shareInputState)
	rc.SetValueAt([]string{"Behavior", "ShowPreeditInApplication"}, strconv.FormatBool(g.showPreedit))
	saveStringList(rc, []string{"Behavior", "EnabledAddons"}, g.enabledAddons)
	saveStringList(rc, []string{"Behavior", "DisabledAddons"}, g.disabledAddons)
}

// Describe implements rawconfig.Configuration.
func (g *GlobalConfig) Describe(rc *rawconfig.RawConfig) {
	behavior, _ := rc.Ensure("Behavior")
	behavior.SetComment("Behavior")

	active, _ := behavior.Ensure("ActiveByDefault")
	active.SetComment("Active By Default")
	active.SetValueAt([]string{"Type"}, "Boolean")
	active.SetValueAt([]string{"DefaultValue"}, "false")

	share, _ := behavior.Ensure("ShareInputState")
	share.SetComment("Share Input State")
	share.SetValueAt([]string{"Type"}, "Enum")
	share.SetValueAt([]string{"Enum", "0"}, "No")
	share.SetValueAt([]string{"Enum", "1"}, "Program")
	share.SetValueAt([]string{"Enum", "2"}, "All")
	share.SetValueAt([]string{"DefaultValue"}, "No")

	preedit, _ := behavior.Ensure("ShowPreeditInApplication")
	preedit.SetComment("Show preedit in application")
	preedit.SetValueAt([]string{"Type"}, "Boolean")
	preedit.SetValueAt([]string{"DefaultValue"}, "true")
}

// Load implements rawconfig.Configuration.
func (g *GlobalConfig) Load(rc *rawconfig.RawConfig) {
	if v := rc.ValueAt("Behavior", "ActiveByDefault"); v != "" {
		g.activeByDefault = v == "true"
	}
	if v := rc.ValueAt("Behavior", "ShareInputState"); v != "" {
		g.shareInputState = v
	}
	if v := rc.ValueAt("Behavior", "ShowPreeditInApplication"); v != "" {
		g.showPreedit = v == "true"
	}
	if node := rc.Get("Behavior"); node != nil {
		if list := node.Get("EnabledAddons"); list != nil {
			g.enabledAddons = loadStringList(list)
		}
		if list := node.Get("DisabledAddons"); list != nil {
			g.disabledAddons = loadStringList(list)
		}
	}
}

// SafeSave persists the config, reporting success. Failures are logged and
// swallowed so a read-only config home degrades rather than crashes.
func (g *GlobalConfig) SafeSave() bool {
	tree := rawconfig.New("")
	g.Save(tree)
	data, err := rawconfig.MarshalTOML(tree)
	if err != nil {
		Logger().Warn("global config save failed", zap.Error(err))
		return false
	}
	path := filepath.Join(g.configDir, globalConfigFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		Logger().Warn("global config save failed", zap.Error(err))
		return false
	}
	return true
}

// LoadFromDisk restores persisted values. A missing file keeps defaults.
func (g *GlobalConfig) LoadFromDisk() error {
	data, err := os.ReadFile(filepath.Join(g.configDir, globalConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Persistence("load global config", err)
	}
	tree, err := rawconfig.UnmarshalTOML(data)
	if err != nil {
		return err
	}
	g.Load(tree)
	return nil
}

func saveStringList(rc *rawconfig.RawConfig, path []string, values []string) {
	node := rc
	for _, name := range path {
		child, err := node.Ensure(name)
		if err != nil {
			return
		}
		node = child
	}
	for i, v := range values {
		node.SetValueAt([]string{strconv.Itoa(i)}, v)
	}
}

func loadStringList(node *rawconfig.RawConfig) []string {
	var out []string
	for i := 0; i < len(node.Children()); i++ {
		if v := node.ValueAt(strconv.Itoa(i)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
