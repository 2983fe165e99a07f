package fcitx5android

import (
	"go.uber.org/zap"

	"github.com/yigeba52/fcitx5-android/addon"
	"github.com/yigeba52/fcitx5-android/core"
	"github.com/yigeba52/fcitx5-android/engine"
)

// Options are the boundary's startup arguments.
type Options struct {
	// Locale is a colon separated preference list, e.g. "zh_CN:en_US".
	Locale string
	// AppDataPath is the app-private data root holding bundled shared data.
	AppDataPath string
	// AppLibPath is the native library directory addons are discovered in.
	AppLibPath string
	// ExtDataPath is the external storage root for user config and data.
	ExtDataPath string
	// WatchConfig reloads configuration when files change on disk.
	WatchConfig bool
}

// Engine is the process boundary: it owns the singleton controller and
// translates its push notifications into Listener calls. All controller
// operations are promoted directly.
type Engine struct {
	*core.Fcitx
	log *zap.Logger
}

// NewEngine creates a stopped boundary engine. A nil logger disables
// logging.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Fcitx: core.New(log), log: log}
}

// Run boots the engine and blocks serving its event loop until Exit. The
// listener's Ready fires once the engine accepts operations; the returned
// exit code is core.ExitNormal, core.ExitFailure, or
// core.ExitAlreadyRunning when another Run is still live.
func (e *Engine) Run(opts Options, l Listener) int {
	return e.Startup(core.StartupOptions{
		Locale:      opts.Locale,
		AppDataPath: opts.AppDataPath,
		AppLibPath:  opts.AppLibPath,
		ExtDataPath: opts.ExtDataPath,
		WatchConfig: opts.WatchConfig,
	}, func(frontend *addon.Instance) {
		e.wire(frontend, l)
		l.Ready()
	})
}

// wire registers the push callbacks on the frontend. Runs on the loop
// during startup, before Ready and before any event can be produced.
func (e *Engine) wire(frontend *addon.Instance, l Listener) {
	register := func(op string, cb any) {
		if _, err := frontend.Call(op, cb); err != nil {
			e.log.Error("callback registration failed", zap.String("op", op), zap.Error(err))
		}
	}
	register("setCommitStringCallback", func(text string) { l.CommitString(text) })
	register("setPreeditCallback", func(preedit, clientPreedit string, cursor int) {
		l.PreeditChanged(preedit, clientPreedit, cursor)
	})
	register("setCandidateListCallback", func(candidates []string) { l.CandidateListChanged(candidates) })
	register("setInputPanelAuxCallback", func(auxUp, auxDown string) { l.InputPanelAuxChanged(auxUp, auxDown) })
	register("setKeyEventCallback", func(code int, sym string) { l.KeyForwarded(code, sym) })
	register("setInputMethodChangeCallback", func() { l.InputMethodChanged(e.InputMethodStatus()) })
}

// ParseKey exposes key description parsing to embedders.
func ParseKey(s string) (engine.Key, error) { return engine.ParseKey(s) }

// defaultEngine backs the flat package-level surface for hosts that want
// exactly one engine per process without threading a handle around.
var defaultEngine = NewEngine(nil)

// Default returns the process-wide engine.
func Default() *Engine { return defaultEngine }

// Run boots the process-wide engine. See Engine.Run.
func Run(opts Options, l Listener) int { return defaultEngine.Run(opts, l) }

// Exit stops the process-wide engine.
func Exit() { defaultEngine.Exit() }

// IsRunning reports whether the process-wide engine is serving its loop.
func IsRunning() bool { return defaultEngine.IsRunning() }
