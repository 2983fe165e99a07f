package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	fcitx "github.com/yigeba52/fcitx5-android"
	"github.com/yigeba52/fcitx5-android/core"
)

func main() {
	var (
		dataDir     = flag.String("data", defaultDir("appdata"), "App data directory (bundled shared data)")
		libDir      = flag.String("lib", defaultDir("lib"), "Addon library directory")
		extDir      = flag.String("ext", defaultDir("ext"), "External data directory (user config)")
		locale      = flag.String("locale", "en_US", "Locale preference list, colon separated")
		watch       = flag.Bool("watch", false, "Reload configuration on file changes")
		verbose     = flag.Bool("v", false, "Verbose logging to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	opts := fcitx.Options{
		Locale:      *locale,
		AppDataPath: *dataDir,
		AppLibPath:  *libDir,
		ExtDataPath: *extDir,
		WatchConfig: *watch,
	}

	if *interactive || term.IsTerminal(int(os.Stdin.Fd())) && flag.NArg() == 0 && !piped() {
		if err := runInteractive(log, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(runBatch(log, opts))
}

func defaultDir(name string) string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "fcitx5-android", name)
}

func piped() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

// runBatch feeds key descriptions from stdin, one per line, and prints
// engine output to stdout. "quit" stops the engine.
func runBatch(log *zap.Logger, opts fcitx.Options) int {
	eng := fcitx.NewEngine(log)
	ready := make(chan struct{})
	code := make(chan int, 1)

	listener := fcitx.ListenerFuncs{
		OnReady: func() { close(ready) },
		OnCommitString: func(text string) {
			fmt.Printf("commit: %s\n", text)
		},
		OnPreeditChanged: func(preedit, clientPreedit string, cursor int) {
			if preedit != "" {
				fmt.Printf("preedit: %s (cursor %d)\n", preedit, cursor)
			}
		},
		OnCandidateListChanged: func(candidates []string) {
			if len(candidates) > 0 {
				fmt.Printf("candidates: %s\n", strings.Join(candidates, " "))
			}
		},
		OnKeyForwarded: func(keyCode int, sym string) {
			fmt.Printf("forward: %s (%d)\n", sym, keyCode)
		},
		OnInputMethodChanged: func(status core.InputMethodStatus) {
			if status.Entry != nil {
				fmt.Printf("input method: %s\n", status.Entry.Name)
			}
		},
	}

	go func() { code <- eng.Run(opts, listener) }()
	<-ready

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == "quit":
			eng.Exit()
			return <-code
		case strings.HasPrefix(line, "text "):
			for _, r := range strings.TrimPrefix(line, "text ") {
				eng.SendKeyRune(r)
			}
		default:
			eng.SendKeyString(line)
		}
	}
	eng.Exit()
	return <-code
}
