package rawconfig

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/yigeba52/fcitx5-android/errors"
)

// MarshalTOML serializes the subtree as TOML. Leaves become string values,
// interior nodes become tables. TOML tables are unordered, so child order is
// normalized to lexicographic; parse → serialize → parse is stable.
func MarshalTOML(c *RawConfig) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toTOMLValue(c)); err != nil {
		return nil, errors.Persistence("encode config tree", err)
	}
	return buf.Bytes(), nil
}

func toTOMLValue(c *RawConfig) map[string]any {
	out := make(map[string]any, len(c.children))
	for _, child := range c.children {
		if child.HasChildren() {
			out[child.name] = toTOMLValue(child)
		} else {
			out[child.name] = child.value
		}
	}
	return out
}

// UnmarshalTOML parses TOML into a tree rooted at an unnamed node. Non-string
// primitives are stored through their canonical string form, matching how
// leaf values travel across the boundary.
func UnmarshalTOML(data []byte) (*RawConfig, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Persistence("decode config tree", err)
	}
	root := New("")
	if err := fillFromTOML(root, raw); err != nil {
		return nil, err
	}
	return root, nil
}

func fillFromTOML(node *RawConfig, raw map[string]any) error {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		child, err := node.Ensure(name)
		if err != nil {
			return err
		}
		switch v := raw[name].(type) {
		case map[string]any:
			if err := fillFromTOML(child, v); err != nil {
				return err
			}
		case string:
			if err := child.SetValue(v); err != nil {
				return err
			}
		default:
			if err := child.SetValue(fmt.Sprint(v)); err != nil {
				return err
			}
		}
	}
	return nil
}
