package engine

import (
	stderrors "errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yigeba52/fcitx5-android/dispatcher"
)

// ErrQuietQuit is the distinguished shutdown condition: the loop unwinds
// like a failure but the exit is treated as success.
var ErrQuietQuit = stderrors.New("instance quit quietly")

// Options configures an Instance.
type Options struct {
	// ConfigDir holds the persisted global config and profile.
	ConfigDir string
	// DataDir holds addon data (dictionaries, tables).
	DataDir string
	// Locale is the engine display locale ("zh_CN:en_US" form accepted).
	Locale string
	// Addons is the set of loadable addons. Order is registration order.
	Addons []AddonRegistration
	// WatchConfig re-reads persisted configuration when the config dir
	// changes on disk.
	WatchConfig bool
}

// Instance is the embedded engine runtime: it owns the event loop, the
// addon manager, the input-method manager, the input contexts and the
// global config. All mutation happens on the loop goroutine; the documented
// read-only accessors tolerate cross-thread reads.
type Instance struct {
	opts Options

	loop    *dispatcher.Loop
	addons  *AddonManager
	ims     *InputMethodManager
	ics     *InputContextManager
	global  *GlobalConfig
	watcher *configWatcher

	exitErr error
}

// New constructs an instance and restores persisted state. The event loop
// is created but not yet running; call Exec.
func New(opts Options) (*Instance, error) {
	if opts.ConfigDir != "" {
		if err := os.MkdirAll(opts.ConfigDir, 0o755); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
	}
	inst := &Instance{
		opts:   opts,
		loop:   dispatcher.NewLoop(),
		ics:    newInputContextManager(),
		global: newGlobalConfig(opts.ConfigDir),
	}
	inst.addons = newAddonManager(inst, opts.Addons)
	inst.ims = newInputMethodManager(opts.ConfigDir)
	for _, entry := range inst.addons.entries() {
		if err := inst.ims.register(entry); err != nil {
			return nil, err
		}
	}
	if err := inst.global.LoadFromDisk(); err != nil {
		Logger().Warn("global config unreadable, using defaults", zap.Error(err))
	}
	if err := inst.ims.Load(); err != nil {
		Logger().Warn("profile unreadable, using defaults", zap.Error(err))
	}
	if len(inst.ims.CurrentGroup().InputMethods) == 0 {
		inst.ims.SetGroup(Group{
			Name:          "Default",
			DefaultLayout: "us",
			InputMethods:  defaultGroupEntries(inst.ims),
		})
	}
	return inst, nil
}

func defaultGroupEntries(m *InputMethodManager) []string {
	var names []string
	m.ForeachEntry(func(e *InputMethodEntry) bool {
		names = append(names, e.UniqueName)
		return true
	})
	return names
}

// ConfigDir returns the directory holding persisted configuration.
func (i *Instance) ConfigDir() string { return i.opts.ConfigDir }

// DataDir returns the directory holding addon data.
func (i *Instance) DataDir() string { return i.opts.DataDir }

// Locale returns the configured display locale.
func (i *Instance) Locale() string { return i.opts.Locale }

// EventLoop returns the loop driving this instance.
func (i *Instance) EventLoop() *dispatcher.Loop { return i.loop }

func (i *Instance) AddonManager() *AddonManager              { return i.addons }
func (i *Instance) InputMethodManager() *InputMethodManager  { return i.ims }
func (i *Instance) InputContextManager() *InputContextManager { return i.ics }
func (i *Instance) GlobalConfig() *GlobalConfig              { return i.global }

// Exec runs the event loop on the calling goroutine until exit. Any panic
// escaping a task is caught here and returned as an error; ErrQuietQuit
// propagates as itself so callers can treat it as success.
func (i *Instance) Exec() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("engine loop panicked: %w", e)
			} else {
				err = fmt.Errorf("engine loop panicked: %v", r)
			}
		}
	}()
	if i.opts.WatchConfig && i.opts.ConfigDir != "" {
		w, werr := newConfigWatcher(i.opts.ConfigDir, func() {
			i.loop.Defer(i.ReloadConfig)
		})
		if werr != nil {
			Logger().Warn("config watcher unavailable", zap.Error(werr))
		} else {
			i.watcher = w
			defer w.Close()
		}
	}
	i.loop.Run()
	return i.exitErr
}

// Exit requests a normal loop exit. Must run on the loop.
func (i *Instance) Exit() {
	i.exitErr = nil
	i.loop.Quit()
}

// QuietQuit requests the distinguished quiet exit. Must run on the loop.
func (i *Instance) QuietQuit() {
	i.exitErr = ErrQuietQuit
	i.loop.Quit()
}

// SetCurrentInputMethod activates an input method from the current group
// and notifies every focused context.
func (i *Instance) SetCurrentInputMethod(name string) {
	if err := i.ims.SetCurrentInputMethod(name); err != nil {
		Logger().Warn("set input method failed", zap.String("im", name), zap.Error(err))
		return
	}
	i.ics.Foreach(func(ic *InputContext) {
		ic.notifyIMChanged()
	})
}

// EngineFor resolves the IM engine addon backing an entry, loading it on
// demand. Returns nil when the addon is absent or not an engine.
func (i *Instance) EngineFor(entry *InputMethodEntry) IMEngine {
	if entry == nil {
		return nil
	}
	inst := i.addons.Addon(entry.AddonName, true)
	if inst == nil {
		return nil
	}
	eng, ok := inst.Underlying().(IMEngine)
	if !ok {
		return nil
	}
	return eng
}

// ProcessKey routes one key event through the active engine, forwarding
// unconsumed keys back to the client. Must run on the loop.
func (i *Instance) ProcessKey(ic *InputContext, key Key, isRelease bool) {
	entry := i.ims.CurrentEntry()
	eng := i.EngineFor(entry)
	if eng == nil || !eng.ProcessKey(entry, ic, key, isRelease) {
		ic.ForwardKey(key.Code, key.SymName())
	}
}

// ResetEngine clears the active engine's composing state for a context.
func (i *Instance) ResetEngine(ic *InputContext) {
	entry := i.ims.CurrentEntry()
	if eng := i.EngineFor(entry); eng != nil {
		eng.Reset(entry, ic)
	}
}

// SubModeFor reports the active engine's sub-mode triple for a context,
// or empty strings when the engine has no sub-mode concept.
func (i *Instance) SubModeFor(entry *InputMethodEntry, ic *InputContext) (SubMode, bool) {
	eng := i.EngineFor(entry)
	if eng == nil {
		return SubMode{}, false
	}
	provider, ok := eng.(SubModeProvider)
	if !ok {
		return SubMode{}, false
	}
	return provider.SubMode(entry, ic), true
}

// ReloadConfig re-reads persisted configuration. Must run on the loop.
func (i *Instance) ReloadConfig() {
	if err := i.global.LoadFromDisk(); err != nil {
		Logger().Warn("config reload failed", zap.Error(err))
		return
	}
	if err := i.ims.Load(); err != nil {
		Logger().Warn("profile reload failed", zap.Error(err))
	}
	Logger().Info("configuration reloaded")
}

// Save persists global config, the profile and all loaded addons.
func (i *Instance) Save() {
	i.global.SafeSave()
	if err := i.ims.Save(); err != nil {
		Logger().Warn("profile save failed", zap.Error(err))
	}
	i.addons.SaveAll()
}
