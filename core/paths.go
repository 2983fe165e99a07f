package core

import (
	"os"
	"path/filepath"
	"strings"
)

// environment is the fixed derivation of engine search paths from the four
// startup path arguments. It must be established in the process environment
// before the embedded engine initializes any addon.
type environment struct {
	Lang       string // first component of the locale list
	Locale     string // full locale list, colon separated
	Home       string // external data root
	ConfigHome string // <ext>/config
	DataHome   string // <ext>/data
	UsrShare   string // <appData>/usr/share
	LocaleDir  string // <usrShare>/locale
	AddonDirs  string // app native library path
	ModelDirs  string // <usrShare>/libime
}

func deriveEnvironment(locale, appDataPath, appLibPath, extDataPath string) environment {
	usrShare := filepath.Join(appDataPath, "usr", "share")
	return environment{
		Lang:       strings.Split(locale, ":")[0],
		Locale:     locale,
		Home:       extDataPath,
		ConfigHome: filepath.Join(extDataPath, "config"),
		DataHome:   filepath.Join(extDataPath, "data"),
		UsrShare:   usrShare,
		LocaleDir:  filepath.Join(usrShare, "locale"),
		AddonDirs:  appLibPath,
		ModelDirs:  filepath.Join(usrShare, "libime"),
	}
}

// apply exports the derivation to the process environment.
func (e environment) apply() {
	os.Setenv("SKIP_FCITX_PATH", "true")
	os.Setenv("LANG", e.Lang)
	os.Setenv("LANGUAGE", e.Locale)
	os.Setenv("FCITX_LOCALE", e.Locale)
	os.Setenv("HOME", e.Home)
	os.Setenv("XDG_DATA_DIRS", e.UsrShare)
	os.Setenv("FCITX_CONFIG_HOME", e.ConfigHome)
	os.Setenv("FCITX_DATA_HOME", e.DataHome)
	os.Setenv("FCITX_ADDON_DIRS", e.AddonDirs)
	os.Setenv("LIBIME_MODEL_DIRS", e.ModelDirs)
}
