package core

import (
	stderrors "errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yigeba52/fcitx5-android/addon"
	"github.com/yigeba52/fcitx5-android/addons/frontend"
	"github.com/yigeba52/fcitx5-android/addons/keyboard"
	"github.com/yigeba52/fcitx5-android/addons/punctuation"
	"github.com/yigeba52/fcitx5-android/addons/quickphrase"
	"github.com/yigeba52/fcitx5-android/addons/unicode"
	"github.com/yigeba52/fcitx5-android/dispatcher"
	"github.com/yigeba52/fcitx5-android/engine"
	"github.com/yigeba52/fcitx5-android/errors"
	"github.com/yigeba52/fcitx5-android/rawconfig"
)

// Exit codes from Startup.
const (
	ExitNormal         = 0
	ExitFailure        = 1
	ExitAlreadyRunning = 2
)

// clientProgram names the single input context created at startup.
const clientProgram = "fcitx5-android"

// StartupOptions carries the boundary's four path arguments plus embedder
// overrides.
type StartupOptions struct {
	Locale      string
	AppDataPath string
	AppLibPath  string
	ExtDataPath string

	// Addons overrides the default addon set; used by tests and custom
	// embeddings. Nil means DefaultAddons().
	Addons []engine.AddonRegistration
	// WatchConfig enables on-disk config change detection.
	WatchConfig bool
}

// DefaultAddons is the standard addon set: the frontend, the plain
// keyboard engine, and the three optional helper addons.
func DefaultAddons() []engine.AddonRegistration {
	return []engine.AddonRegistration{
		frontend.Registration(),
		keyboard.Registration(),
		quickphrase.Registration(),
		punctuation.Registration(),
		unicode.Registration(),
	}
}

// InputMethodStatus combines the active entry descriptor with the engine's
// sub-mode triple. Entry is nil when no input method is resolvable and
// SubMode is nil when the engine has no sub-mode concept.
type InputMethodStatus struct {
	Entry   *engine.InputMethodEntry
	SubMode *engine.SubMode
}

// AddonStatus is one addon descriptor with its derived effective state.
type AddonStatus struct {
	addon.Info
	Enabled bool
}

// Fcitx is the engine instance owner: it holds the embedded engine, the
// dispatcher bound to its loop, and the cached addon handles. One Fcitx
// serves the whole process; startup and exit must be serialized by the
// caller, everything else may be called from any goroutine.
type Fcitx struct {
	state stateVar
	log   *zap.Logger

	inst        *engine.Instance
	disp        *dispatcher.Dispatcher
	frontend    *addon.Instance
	quickphrase *addon.Instance
	punctuation *addon.Instance
	unicode     *addon.Instance
	icID        uuid.UUID
}

// New creates a stopped controller.
func New(log *zap.Logger) *Fcitx {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fcitx{log: log}
}

// State returns the current lifecycle state.
func (f *Fcitx) State() State { return f.state.get() }

// IsRunning reports whether the loop is running and all handles are
// resolved. False before the first Startup, between setup and loop start,
// and again after any exit.
func (f *Fcitx) IsRunning() bool { return f.state.get() == StateRunning }

// Startup boots the engine and blocks running its event loop until exit.
// setup runs on the loop with the resolved frontend handle, after the
// input context exists and before any event can be delivered; register
// push callbacks there. Returns ExitAlreadyRunning without side effects
// when called while not stopped.
func (f *Fcitx) Startup(opts StartupOptions, setup func(frontend *addon.Instance)) int {
	if !f.state.compareAndSwap(StateUninitialized, StateStarting) &&
		!f.state.compareAndSwap(StateStopped, StateStarting) {
		f.log.Warn("startup rejected", zap.Error(errors.AlreadyRunning()),
			zap.String("state", f.state.get().String()))
		return ExitAlreadyRunning
	}

	env := deriveEnvironment(opts.Locale, opts.AppDataPath, opts.AppLibPath, opts.ExtDataPath)
	env.apply()

	regs := opts.Addons
	if regs == nil {
		regs = DefaultAddons()
	}
	inst, err := engine.New(engine.Options{
		ConfigDir:   env.ConfigHome,
		DataDir:     env.DataHome,
		Locale:      opts.Locale,
		Addons:      regs,
		WatchConfig: opts.WatchConfig,
	})
	if err != nil {
		f.log.Error("engine construction failed", zap.Error(err))
		f.state.set(StateStopped)
		return ExitFailure
	}

	disp := dispatcher.New()
	disp.Attach(inst.EventLoop())
	f.inst = inst
	f.disp = disp

	disp.Schedule(func() {
		am := inst.AddonManager()
		am.LoadEnabled()
		f.frontend = am.Addon(frontend.AddonName, true)
		if f.frontend == nil {
			panic(errors.NotFound(errors.PhaseAddon, "addon", frontend.AddonName))
		}
		f.quickphrase = am.Addon(quickphrase.AddonName, false)
		f.punctuation = am.Addon(punctuation.AddonName, true)
		f.unicode = am.Addon(unicode.AddonName, false)

		id, err := addon.CallOne[uuid.UUID](f.frontend, "createInputContext", clientProgram)
		if err != nil {
			panic(err)
		}
		f.icID = id
		f.state.set(StateRunning)
		setup(f.frontend)
	})

	code := ExitNormal
	switch err := inst.Exec(); {
	case err == nil:
	case stderrors.Is(err, engine.ErrQuietQuit):
		f.log.Info("engine exited quietly")
	default:
		f.log.Error("engine exited with failure", zap.Error(err))
		code = ExitFailure
	}
	f.resetState()
	return code
}

// resetState drops every owned handle so IsRunning reliably reads false.
// The state leaves Running before any handle is cleared.
func (f *Fcitx) resetState() {
	f.state.set(StateShuttingDown)
	f.inst = nil
	f.disp = nil
	f.frontend = nil
	f.quickphrase = nil
	f.punctuation = nil
	f.unicode = nil
	f.icID = uuid.UUID{}
	f.state.set(StateStopped)
}

// running returns the live engine instance, or nil when the controller is
// not fully running. The gate is racy by design; callers treat nil as
// "not running".
func (f *Fcitx) running() *engine.Instance {
	inst := f.inst
	if !f.IsRunning() || inst == nil {
		return nil
	}
	return inst
}

// schedule guards a mutating operation behind the running check and hands
// it to the loop. Fire and forget: FIFO order is preserved, completion is
// not observable.
func (f *Fcitx) schedule(op string, fn func()) {
	disp := f.disp
	if !f.IsRunning() || disp == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning(op)))
		return
	}
	if err := disp.Schedule(fn); err != nil {
		f.log.Warn("operation dropped", zap.String("op", op), zap.Error(err))
	}
}

// Exit schedules orderly shutdown: detach the dispatcher, then stop the
// loop. Work scheduled before Exit still drains first.
func (f *Fcitx) Exit() {
	if !f.IsRunning() {
		f.log.Warn("operation ignored", zap.Error(errors.InvalidState("exit", f.state.get().String())))
		return
	}
	f.state.set(StateShuttingDown)
	disp, inst := f.disp, f.inst
	if err := disp.Schedule(func() {
		disp.Detach()
		inst.Exit()
	}); err != nil {
		f.log.Warn("exit not scheduled", zap.Error(err))
	}
}

// SaveConfig schedules persistence of global config, profile and addons.
func (f *Fcitx) SaveConfig() {
	inst := f.running()
	if inst == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("saveConfig")))
		return
	}
	f.schedule("saveConfig", func() { inst.Save() })
}

// SendKey schedules one key event against the input context.
func (f *Fcitx) SendKey(key engine.Key, isRelease bool) {
	fe, id := f.frontend, f.icID
	if fe == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("sendKey")))
		return
	}
	f.schedule("sendKey", func() {
		fe.Call("keyEvent", id, key, isRelease)
	})
}

// SendKeyEvent schedules a key event carrying explicit release state and
// event time in milliseconds.
func (f *Fcitx) SendKeyEvent(key engine.Key, isRelease bool, timeMs int64) {
	key.Time = timeMs
	f.SendKey(key, isRelease)
}

// SendKeyString parses a key description ("a", "Control+space") and sends
// a press event.
func (f *Fcitx) SendKeyString(s string) {
	key, err := engine.ParseKey(s)
	if err != nil {
		f.log.Warn("invalid key string", zap.String("key", s), zap.Error(err))
		return
	}
	f.SendKey(key, false)
}

// SendKeyRune sends a press event for one printable rune.
func (f *Fcitx) SendKeyRune(r rune) {
	f.SendKey(engine.KeyFromRune(r), false)
}

// SendKeyCode sends a press event for a raw platform key code.
func (f *Fcitx) SendKeyCode(code int) {
	f.SendKey(engine.KeyFromCode(code), false)
}

// SelectCandidate schedules committing the candidate at index.
func (f *Fcitx) SelectCandidate(index int) {
	fe, id := f.frontend, f.icID
	if fe == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("selectCandidate")))
		return
	}
	f.schedule("selectCandidate", func() {
		fe.Call("selectCandidate", id, index)
	})
}

// IsInputPanelEmpty is the one synchronous read bypassing the dispatcher:
// the boundary needs the answer immediately to decide key handling. It is
// intentionally racy against concurrently scheduled panel mutations.
func (f *Fcitx) IsInputPanelEmpty() bool {
	fe, id := f.frontend, f.icID
	if !f.IsRunning() || fe == nil {
		return true
	}
	empty, err := addon.CallOne[bool](fe, "isInputPanelEmpty", id)
	if err != nil {
		return true
	}
	return empty
}

// ResetInputPanel schedules clearing all composing state.
func (f *Fcitx) ResetInputPanel() {
	fe, id := f.frontend, f.icID
	if fe == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("resetInputPanel")))
		return
	}
	f.schedule("resetInputPanel", func() {
		fe.Call("resetInputPanel", id)
	})
}

// RepositionCursor schedules moving the preedit cursor.
func (f *Fcitx) RepositionCursor(position int) {
	fe, id := f.frontend, f.icID
	if fe == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("repositionCursor")))
		return
	}
	f.schedule("repositionCursor", func() {
		fe.Call("repositionCursor", id, position)
	})
}

// FocusInputContext schedules a focus change on the input context.
func (f *Fcitx) FocusInputContext(focus bool) {
	fe, id := f.frontend, f.icID
	if fe == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("focusInputContext")))
		return
	}
	f.schedule("focusInputContext", func() {
		fe.Call("focusInputContext", id, focus)
	})
}

// ListInputMethods returns the entries of the active group in configured
// order. Synchronous read.
func (f *Fcitx) ListInputMethods() []engine.InputMethodEntry {
	inst := f.running()
	if inst == nil {
		return nil
	}
	im := inst.InputMethodManager()
	var out []engine.InputMethodEntry
	for _, name := range im.CurrentGroup().InputMethods {
		if entry := im.Entry(name); entry != nil {
			out = append(out, *entry)
		}
	}
	return out
}

// AvailableInputMethods enumerates every installed entry regardless of
// group membership. Synchronous read.
func (f *Fcitx) AvailableInputMethods() []engine.InputMethodEntry {
	inst := f.running()
	if inst == nil {
		return nil
	}
	var out []engine.InputMethodEntry
	inst.InputMethodManager().ForeachEntry(func(e *engine.InputMethodEntry) bool {
		out = append(out, *e)
		return true
	})
	return out
}

// InputMethodStatus reports the active entry and sub-mode. Synchronous
// read.
func (f *Fcitx) InputMethodStatus() InputMethodStatus {
	inst := f.running()
	if inst == nil {
		return InputMethodStatus{}
	}
	entry := inst.InputMethodManager().CurrentEntry()
	if entry == nil {
		return InputMethodStatus{}
	}
	ic := inst.InputContextManager().FindByUUID(f.icID)
	if sm, ok := inst.SubModeFor(entry, ic); ok {
		return InputMethodStatus{Entry: entry, SubMode: &sm}
	}
	return InputMethodStatus{Entry: entry}
}

// SetInputMethod schedules activating an entry from the current group.
func (f *Fcitx) SetInputMethod(name string) {
	inst := f.running()
	if inst == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("setInputMethod")))
		return
	}
	f.schedule("setInputMethod", func() {
		inst.SetCurrentInputMethod(name)
	})
}

// SetEnabledInputMethods schedules replacing the active group with exactly
// the named entries, in order.
func (f *Fcitx) SetEnabledInputMethods(names []string) {
	inst := f.running()
	if inst == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("setEnabledInputMethods")))
		return
	}
	ims := append([]string(nil), names...)
	f.schedule("setEnabledInputMethods", func() {
		im := inst.InputMethodManager()
		im.SetGroup(engine.Group{
			Name:          im.CurrentGroup().Name,
			DefaultLayout: "us",
			InputMethods:  ims,
		})
		if err := im.Save(); err != nil {
			engine.Logger().Warn("group save failed", zap.Error(err))
		}
	})
}

// GetGlobalConfig returns the merged value+schema tree. Synchronous read.
func (f *Fcitx) GetGlobalConfig() *rawconfig.RawConfig {
	inst := f.running()
	if inst == nil {
		return nil
	}
	return rawconfig.MergeDesc(inst.GlobalConfig())
}

// SetGlobalConfig writes values through immediately and, on successful
// save, schedules a full configuration reload.
func (f *Fcitx) SetGlobalConfig(rc *rawconfig.RawConfig) {
	inst := f.running()
	if inst == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("setGlobalConfig")))
		return
	}
	values := configValues(rc)
	if values == nil {
		return
	}
	gc := inst.GlobalConfig()
	gc.Load(values)
	if gc.SafeSave() {
		f.schedule("reloadConfig", func() { inst.ReloadConfig() })
	}
}

// configValues extracts the value subtree from a boundary tree: merged
// trees carry it under "cfg", bare value trees are used as-is. Malformed
// trees are rejected.
func configValues(rc *rawconfig.RawConfig) *rawconfig.RawConfig {
	if rc == nil {
		return nil
	}
	if err := rc.Validate(); err != nil {
		engine.Logger().Warn("rejecting malformed config tree", zap.Error(err))
		return nil
	}
	if cfg := rc.Get("cfg"); cfg != nil {
		return cfg
	}
	return rc
}

// configurableAddon resolves an addon that is present, configurable and
// exposes a configuration. Nil means "no config", never an error.
func configurableAddon(inst *engine.Instance, name string) addon.Configurable {
	am := inst.AddonManager()
	info := am.Info(name)
	if info == nil || !info.Configurable {
		return nil
	}
	handle := am.Addon(name, true)
	if handle == nil {
		return nil
	}
	conf, ok := handle.Underlying().(addon.Configurable)
	if !ok {
		return nil
	}
	return conf
}

// GetAddonConfig returns the merged tree for a configurable addon, or nil
// when the addon is absent or not configurable. Synchronous read.
func (f *Fcitx) GetAddonConfig(name string) *rawconfig.RawConfig {
	inst := f.running()
	if inst == nil {
		return nil
	}
	conf := configurableAddon(inst, name)
	if conf == nil {
		return nil
	}
	return rawconfig.MergeDesc(conf.Configuration())
}

// SetAddonConfig applies values to a configurable addon. Silent no-op on
// non-configurable targets.
func (f *Fcitx) SetAddonConfig(name string, rc *rawconfig.RawConfig) {
	inst := f.running()
	if inst == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("setAddonConfig")))
		return
	}
	conf := configurableAddon(inst, name)
	if conf == nil {
		f.log.Debug("config write ignored", zap.Error(errors.NotConfigurable("addon", name)))
		return
	}
	if values := configValues(rc); values != nil {
		conf.Configuration().Load(values)
	}
}

// imEngineConfig resolves the configuration of a configurable entry.
func imEngineConfig(inst *engine.Instance, name string) rawconfig.Configuration {
	entry := inst.InputMethodManager().Entry(name)
	if entry == nil || !entry.Configurable {
		return nil
	}
	eng := inst.EngineFor(entry)
	if eng == nil {
		return nil
	}
	confEng, ok := eng.(engine.IMConfigurable)
	if !ok {
		return nil
	}
	return confEng.ConfigForInputMethod(entry)
}

// GetInputMethodConfig returns the merged tree for a configurable entry,
// or nil. Synchronous read.
func (f *Fcitx) GetInputMethodConfig(name string) *rawconfig.RawConfig {
	inst := f.running()
	if inst == nil {
		return nil
	}
	conf := imEngineConfig(inst, name)
	if conf == nil {
		return nil
	}
	return rawconfig.MergeDesc(conf)
}

// SetInputMethodConfig applies values to a configurable entry's engine.
func (f *Fcitx) SetInputMethodConfig(name string, rc *rawconfig.RawConfig) {
	inst := f.running()
	if inst == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("setInputMethodConfig")))
		return
	}
	conf := imEngineConfig(inst, name)
	if conf == nil {
		f.log.Debug("config write ignored", zap.Error(errors.NotConfigurable("input method", name)))
		return
	}
	if values := configValues(rc); values != nil {
		conf.Load(values)
	}
}

// Addons reports every known addon across all categories with its derived
// effective enabled state. Synchronous read.
func (f *Fcitx) Addons() []AddonStatus {
	inst := f.running()
	if inst == nil {
		return nil
	}
	am := inst.AddonManager()
	var out []AddonStatus
	for _, category := range addon.Categories {
		for _, name := range am.Names(category) {
			info := am.Info(name)
			if info == nil {
				continue
			}
			out = append(out, AddonStatus{Info: *info, Enabled: am.Enabled(name)})
		}
	}
	return out
}

// SetAddonState recomputes the explicit enabled/disabled sets from the
// requested states and schedules save-and-reload. Requesting an addon's
// default state removes it from both sets.
func (f *Fcitx) SetAddonState(state map[string]bool) {
	inst := f.running()
	if inst == nil {
		f.log.Warn("operation ignored", zap.Error(errors.NotRunning("setAddonState")))
		return
	}
	am := inst.AddonManager()
	gc := inst.GlobalConfig()
	enabledSet := toSet(gc.EnabledAddons())
	disabledSet := toSet(gc.DisabledAddons())
	for name, enabled := range state {
		info := am.Info(name)
		if info == nil {
			continue
		}
		switch {
		case enabled == info.DefaultEnabled:
			delete(enabledSet, name)
			delete(disabledSet, name)
		case enabled:
			enabledSet[name] = struct{}{}
			delete(disabledSet, name)
		default:
			delete(enabledSet, name)
			disabledSet[name] = struct{}{}
		}
	}
	enabled, disabled := sortedKeys(enabledSet), sortedKeys(disabledSet)
	f.schedule("setAddonState", func() {
		g := inst.GlobalConfig()
		g.SetEnabledAddons(enabled)
		g.SetDisabledAddons(disabled)
		g.SafeSave()
		inst.ReloadConfig()
	})
}

// TriggerQuickPhrase opens quick-phrase mode. No-op when the addon is
// absent.
func (f *Fcitx) TriggerQuickPhrase() {
	inst := f.running()
	if inst == nil {
		return
	}
	qp, id := f.quickphrase, f.icID
	if qp == nil {
		f.log.Debug("trigger ignored", zap.Error(errors.AbsentAddon(quickphrase.AddonName)))
		return
	}
	f.schedule("triggerQuickPhrase", func() {
		ic := inst.InputContextManager().FindByUUID(id)
		qp.Call("trigger", ic, "", "", "", "", engine.Key{})
	})
}

// TriggerUnicode opens unicode entry mode. No-op when the addon is absent.
func (f *Fcitx) TriggerUnicode() {
	inst := f.running()
	if inst == nil {
		return
	}
	uni, id := f.unicode, f.icID
	if uni == nil {
		f.log.Debug("trigger ignored", zap.Error(errors.AbsentAddon(unicode.AddonName)))
		return
	}
	f.schedule("triggerUnicode", func() {
		ic := inst.InputContextManager().FindByUUID(id)
		uni.Call("trigger", ic)
	})
}

// QueryPunctuation maps one code point through the punctuation addon for
// a language. With no punctuation addon loaded it falls back to identity:
// the code point itself as both value and display. Synchronous read.
func (f *Fcitx) QueryPunctuation(ch rune, language string) (value, display string) {
	s := string(ch)
	if !f.IsRunning() || f.punctuation == nil {
		return s, s
	}
	results, err := f.punctuation.Call("getPunctuation", language, ch)
	if err != nil || len(results) != 2 {
		return s, s
	}
	v, okV := results[0].(string)
	d, okD := results[1].(string)
	if !okV || !okD {
		return s, s
	}
	return v, d
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
