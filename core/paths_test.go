package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveEnvironment(t *testing.T) {
	env := deriveEnvironment(
		"zh_CN:en_US",
		"/data/appdata",
		"/data/applib",
		"/sdcard/fcitx",
	)

	assert.Equal(t, "zh_CN", env.Lang)
	assert.Equal(t, "zh_CN:en_US", env.Locale)
	assert.Equal(t, "/sdcard/fcitx", env.Home)
	assert.Equal(t, filepath.Join("/sdcard/fcitx", "config"), env.ConfigHome)
	assert.Equal(t, filepath.Join("/sdcard/fcitx", "data"), env.DataHome)
	assert.Equal(t, filepath.Join("/data/appdata", "usr", "share"), env.UsrShare)
	assert.Equal(t, filepath.Join(env.UsrShare, "locale"), env.LocaleDir)
	assert.Equal(t, "/data/applib", env.AddonDirs)
	assert.Equal(t, filepath.Join(env.UsrShare, "libime"), env.ModelDirs)
}

func TestDeriveEnvironmentSingleLocale(t *testing.T) {
	env := deriveEnvironment("ja_JP", "/a", "/l", "/e")
	assert.Equal(t, "ja_JP", env.Lang)
	assert.Equal(t, "ja_JP", env.Locale)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(99).String())
}
