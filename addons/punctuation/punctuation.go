// Package punctuation implements the punctuation addon: it maps ASCII
// punctuation to its per-language full-width forms. Absent languages map
// to identity, matching the degraded behavior when the addon itself is
// not loaded.
package punctuation

import (
	"github.com/yigeba52/fcitx5-android/addon"
	"github.com/yigeba52/fcitx5-android/engine"
)

const AddonName = "punctuation"

var info = addon.Info{
	UniqueName:     AddonName,
	Name:           "Punctuation",
	Comment:        "Full-width punctuation mapping",
	Category:       addon.CategoryModule,
	Configurable:   false,
	DefaultEnabled: true,
	OnDemand:       true,
}

// pair is one mapped punctuation: the committed value and, for paired
// marks, the alternating closing form shown to the user.
type pair struct {
	value   string
	display string
}

var tables = map[string]map[rune]pair{
	"zh_CN": {
		'.':  {"。", "。"},
		',':  {"，", "，"},
		'?':  {"？", "？"},
		'!':  {"！", "！"},
		':':  {"：", "："},
		';':  {"；", "；"},
		'\\': {"、", "、"},
		'"':  {"“", "”"},
		'\'': {"‘", "’"},
		'(':  {"（", "（"},
		')':  {"）", "）"},
		'<':  {"《", "《"},
		'>':  {"》", "》"},
	},
	"ja": {
		'.': {"。", "。"},
		',': {"、", "、"},
		'[': {"「", "「"},
		']': {"」", "」"},
	},
}

// Punctuation is the addon instance.
type Punctuation struct{}

// Registration returns the addon's registration for the engine.
func Registration() engine.AddonRegistration {
	return engine.AddonRegistration{
		Info: info,
		Build: func(*engine.Instance) (addon.Addon, error) {
			return &Punctuation{}, nil
		},
	}
}

func (p *Punctuation) Info() *addon.Info { return &info }

// Operations exposes the lookup capability.
func (p *Punctuation) Operations() map[string]any {
	return map[string]any{
		"getPunctuation": p.getPunctuation,
	}
}

func (p *Punctuation) getPunctuation(language string, ch rune) (string, string) {
	if table, ok := tables[language]; ok {
		if m, ok := table[ch]; ok {
			return m.value, m.display
		}
	}
	s := string(ch)
	return s, s
}
