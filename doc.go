// Package fcitx5android embeds the fcitx5 input method engine behind a
// small boundary surface for Android-style hosts.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	fcitx5android/       Root package with the boundary Engine and Listener
//	├── core/            Singleton lifecycle controller and operation surface
//	├── engine/          The embedded engine: instance, input methods, contexts
//	├── dispatcher/      Single-threaded event loop and cross-thread dispatcher
//	├── addon/           Addon protocol and reflective capability calls
//	├── addons/          Bundled addons: frontend, keyboard, quickphrase,
//	│                    punctuation, unicode
//	├── rawconfig/       Configuration tree model and TOML codec
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Boot the engine and feed it keys:
//
//	eng := fcitx5android.NewEngine(logger)
//	go eng.Run(fcitx5android.Options{
//	    Locale:      "en_US",
//	    AppDataPath: appData,
//	    AppLibPath:  appLib,
//	    ExtDataPath: extData,
//	}, listener)
//
//	// after listener.Ready fires:
//	eng.SendKeyRune('a')
//	eng.Exit()
//
// Run blocks serving the engine's event loop until Exit; the listener's
// callbacks arrive on that loop. Every mutating operation is scheduled
// onto the loop in call order, a few latency-sensitive reads bypass it.
package fcitx5android
