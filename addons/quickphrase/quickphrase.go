// Package quickphrase implements the quick-phrase addon: triggering it
// fills the input panel with the stored phrase list so the user can commit
// a phrase by selecting a candidate.
package quickphrase

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/yigeba52/fcitx5-android/addon"
	"github.com/yigeba52/fcitx5-android/engine"
	"github.com/yigeba52/fcitx5-android/rawconfig"
)

const AddonName = "quickphrase"

var info = addon.Info{
	UniqueName:     AddonName,
	Name:           "Quick Phrase",
	Comment:        "Input short phrases from a stored table",
	Category:       addon.CategoryModule,
	Configurable:   true,
	DefaultEnabled: true,
	OnDemand:       false,
}

// QuickPhrase is the addon instance.
type QuickPhrase struct {
	inst    *engine.Instance
	conf    *config
	phrases []string
}

// Registration returns the addon's registration for the engine.
func Registration() engine.AddonRegistration {
	return engine.AddonRegistration{
		Info: info,
		Build: func(inst *engine.Instance) (addon.Addon, error) {
			qp := &QuickPhrase{
				inst: inst,
				conf: &config{triggerKey: "Super+grave"},
			}
			qp.loadPhrases()
			return qp, nil
		},
	}
}

func (q *QuickPhrase) Info() *addon.Info { return &info }

func (q *QuickPhrase) Configuration() rawconfig.Configuration { return q.conf }

// Operations exposes the trigger capability.
func (q *QuickPhrase) Operations() map[string]any {
	return map[string]any{
		"trigger": q.trigger,
	}
}

// trigger opens quick-phrase mode on a context: the aux string announces
// the mode and the phrase list becomes the candidate list. The prefix
// arguments narrow the list when non-empty; the bridge triggers with empty
// prefixes, which shows everything.
func (q *QuickPhrase) trigger(ic *engine.InputContext, text, prefix, str, alt string, key engine.Key) {
	if ic == nil {
		return
	}
	ic.SetAux("Quick Phrase: "+text, "")
	candidates := q.phrases
	if prefix != "" {
		candidates = nil
		for _, p := range q.phrases {
			if len(p) >= len(prefix) && p[:len(prefix)] == prefix {
				candidates = append(candidates, p)
			}
		}
	}
	ic.SetCandidates(candidates)
}

// loadPhrases reads one phrase per line from the data file, falling back
// to a small built-in list.
func (q *QuickPhrase) loadPhrases() {
	q.phrases = []string{"¯\\_(ツ)_/¯", "…", "——"}
	if q.inst == nil || q.inst.DataDir() == "" {
		return
	}
	data, err := os.ReadFile(filepath.Join(q.inst.DataDir(), "data", "QuickPhrase.mb"))
	if err != nil {
		return
	}
	var phrases []string
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			if line := string(data[start:i]); line != "" {
				phrases = append(phrases, line)
			}
			start = i + 1
		}
	}
	if len(phrases) > 0 {
		q.phrases = phrases
	}
}

type config struct {
	triggerKey string
	pageSize   int
}

func (c *config) Save(rc *rawconfig.RawConfig) {
	rc.SetValueAt([]string{"TriggerKey"}, c.triggerKey)
	if c.pageSize > 0 {
		rc.SetValueAt([]string{"PageSize"}, strconv.Itoa(c.pageSize))
	}
}

func (c *config) Describe(rc *rawconfig.RawConfig) {
	trigger, _ := rc.Ensure("TriggerKey")
	trigger.SetComment("Trigger Key")
	trigger.SetValueAt([]string{"Type"}, "Key")
	trigger.SetValueAt([]string{"DefaultValue"}, "Super+grave")

	page, _ := rc.Ensure("PageSize")
	page.SetComment("Candidates per page")
	page.SetValueAt([]string{"Type"}, "Integer")
	page.SetValueAt([]string{"DefaultValue"}, "5")
}

func (c *config) Load(rc *rawconfig.RawConfig) {
	if v := rc.ValueAt("TriggerKey"); v != "" {
		c.triggerKey = v
	}
	if v := rc.ValueAt("PageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.pageSize = n
		}
	}
}
