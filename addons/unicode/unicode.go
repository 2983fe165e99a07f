// Package unicode implements the unicode-input addon: triggering it puts a
// context into code-point entry mode through the aux string.
package unicode

import (
	"github.com/yigeba52/fcitx5-android/addon"
	"github.com/yigeba52/fcitx5-android/engine"
)

const AddonName = "unicode"

var info = addon.Info{
	UniqueName:     AddonName,
	Name:           "Unicode",
	Comment:        "Input characters by code point",
	Category:       addon.CategoryModule,
	Configurable:   false,
	DefaultEnabled: true,
	OnDemand:       false,
}

// Unicode is the addon instance.
type Unicode struct{}

// Registration returns the addon's registration for the engine.
func Registration() engine.AddonRegistration {
	return engine.AddonRegistration{
		Info: info,
		Build: func(*engine.Instance) (addon.Addon, error) {
			return &Unicode{}, nil
		},
	}
}

func (u *Unicode) Info() *addon.Info { return &info }

// Operations exposes the trigger capability.
func (u *Unicode) Operations() map[string]any {
	return map[string]any{
		"trigger": u.trigger,
	}
}

func (u *Unicode) trigger(ic *engine.InputContext) {
	if ic == nil {
		return
	}
	ic.SetAux("Unicode: type hex code point", "")
	ic.SetCandidates(nil)
}
