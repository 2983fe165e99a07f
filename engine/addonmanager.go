package engine

import (
	"go.uber.org/zap"

	"github.com/yigeba52/fcitx5-android/addon"
)

// AddonRegistration describes one loadable addon: its descriptor, the
// input-method entries it installs, and a factory building it against the
// owning instance.
type AddonRegistration struct {
	Info    addon.Info
	Entries []InputMethodEntry
	Build   func(*Instance) (addon.Addon, error)
}

// AddonManager resolves addons by name, caching loaded instances. Loading
// happens on the event loop.
type AddonManager struct {
	inst   *Instance
	regs   map[string]*AddonRegistration
	order  []string
	loaded map[string]*addon.Instance
}

func newAddonManager(inst *Instance, regs []AddonRegistration) *AddonManager {
	m := &AddonManager{
		inst:   inst,
		regs:   make(map[string]*AddonRegistration, len(regs)),
		loaded: make(map[string]*addon.Instance),
	}
	for i := range regs {
		reg := regs[i]
		name := reg.Info.UniqueName
		if _, ok := m.regs[name]; ok {
			Logger().Warn("duplicate addon registration ignored", zap.String("addon", name))
			continue
		}
		m.regs[name] = &reg
		m.order = append(m.order, name)
	}
	return m
}

// Names lists registered addon names in one category, in registration order.
func (m *AddonManager) Names(category addon.Category) []string {
	var out []string
	for _, name := range m.order {
		if m.regs[name].Info.Category == category {
			out = append(out, name)
		}
	}
	return out
}

// Info returns the descriptor for name without loading, or nil.
func (m *AddonManager) Info(name string) *addon.Info {
	reg, ok := m.regs[name]
	if !ok {
		return nil
	}
	return &reg.Info
}

// Addon resolves a loaded addon handle. Already-loaded addons are returned
// from cache; otherwise the addon is built when load is true and the addon
// is effectively enabled. Absent or disabled addons resolve to nil, which
// callers treat as a degraded no-op rather than an error.
func (m *AddonManager) Addon(name string, load bool) *addon.Instance {
	if inst, ok := m.loaded[name]; ok {
		return inst
	}
	reg, ok := m.regs[name]
	if !ok {
		return nil
	}
	if !load {
		return nil
	}
	if !m.enabled(&reg.Info) {
		Logger().Debug("addon disabled, not loading", zap.String("addon", name))
		return nil
	}
	a, err := reg.Build(m.inst)
	if err != nil {
		Logger().Error("addon failed to load", zap.String("addon", name), zap.Error(err))
		return nil
	}
	inst := addon.NewInstance(a)
	m.loaded[name] = inst
	return inst
}

// LoadEnabled eagerly loads every enabled non-on-demand addon, in
// registration order. Called once during startup, on the event loop.
func (m *AddonManager) LoadEnabled() {
	for _, name := range m.order {
		reg := m.regs[name]
		if reg.Info.OnDemand {
			continue
		}
		m.Addon(name, true)
	}
}

// The disabled-set is consulted first: an addon listed in both explicit
// sets is disabled.
func (m *AddonManager) enabled(info *addon.Info) bool {
	gc := m.inst.GlobalConfig()
	for _, n := range gc.DisabledAddons() {
		if n == info.UniqueName {
			return false
		}
	}
	for _, n := range gc.EnabledAddons() {
		if n == info.UniqueName {
			return true
		}
	}
	return info.DefaultEnabled
}

// Enabled reports the effective enabled state derived from the descriptor
// default and the explicit enabled/disabled sets.
func (m *AddonManager) Enabled(name string) bool {
	reg, ok := m.regs[name]
	if !ok {
		return false
	}
	return m.enabled(&reg.Info)
}

// Entries lists the input-method entries installed by every registration.
func (m *AddonManager) entries() []InputMethodEntry {
	var out []InputMethodEntry
	for _, name := range m.order {
		out = append(out, m.regs[name].Entries...)
	}
	return out
}

// SaveAll persists every loaded addon implementing Saver.
func (m *AddonManager) SaveAll() {
	for name, inst := range m.loaded {
		if saver, ok := inst.Underlying().(addon.Saver); ok {
			if err := saver.Save(); err != nil {
				Logger().Warn("addon save failed", zap.String("addon", name), zap.Error(err))
			}
		}
	}
}
