package addon

import (
	"github.com/yigeba52/fcitx5-android/rawconfig"
)

// Category classifies an addon.
type Category int

const (
	CategoryInputMethod Category = iota
	CategoryFrontend
	CategoryLoader
	CategoryModule
	CategoryUI
)

// Categories lists all categories in the fixed enumeration order used when
// iterating every known addon.
var Categories = []Category{
	CategoryInputMethod,
	CategoryFrontend,
	CategoryLoader,
	CategoryModule,
	CategoryUI,
}

func (c Category) String() string {
	switch c {
	case CategoryInputMethod:
		return "inputmethod"
	case CategoryFrontend:
		return "frontend"
	case CategoryLoader:
		return "loader"
	case CategoryModule:
		return "module"
	case CategoryUI:
		return "ui"
	}
	return "unknown"
}

// Info is the immutable descriptor of a known addon, available whether or
// not the addon is loaded.
type Info struct {
	UniqueName     string
	Name           string // localized display name
	Comment        string // localized comment
	Category       Category
	Configurable   bool
	DefaultEnabled bool
	OnDemand       bool
}

// Addon is a loaded addon component. Concrete addons additionally implement
// Operations to expose callable capabilities and Configurable to expose
// configuration.
type Addon interface {
	Info() *Info
}

// Operations is implemented by addons exposing named operations through the
// capability-call protocol. The returned functions are invoked reflectively
// by Instance.Call; the map must be stable for the addon's lifetime.
type Operations interface {
	Operations() map[string]any
}

// Configurable is implemented by addons whose configuration is exposed
// through the config tree surface. Info().Configurable must be true.
type Configurable interface {
	Configuration() rawconfig.Configuration
}

// Saver is implemented by addons with state to persist on saveAll.
type Saver interface {
	Save() error
}
