package rawconfig

import (
	"github.com/yigeba52/fcitx5-android/errors"
)

// RawConfig is a recursive key/value tree node. A node is either a leaf
// carrying a string value or an interior node carrying an ordered set of
// uniquely-named children; it is never both. Mutators enforce the invariant
// and report malformed_tree errors instead of producing ambiguous nodes.
type RawConfig struct {
	name     string
	comment  string
	value    string
	children []*RawConfig
	byName   map[string]*RawConfig
}

// New creates an empty node. A fresh node is a leaf with an empty value
// until the first child is created.
func New(name string) *RawConfig {
	return &RawConfig{name: name}
}

// Leaf creates a value leaf.
func Leaf(name, value string) *RawConfig {
	return &RawConfig{name: name, value: value}
}

func (c *RawConfig) Name() string    { return c.name }
func (c *RawConfig) Comment() string { return c.comment }

func (c *RawConfig) SetComment(comment string) { c.comment = comment }

// Value returns the leaf value. Interior nodes have no value.
func (c *RawConfig) Value() string { return c.value }

// SetValue stores a leaf value. It fails on interior nodes.
func (c *RawConfig) SetValue(value string) error {
	if len(c.children) > 0 {
		return errors.MalformedTree([]string{c.name}, "cannot set a value on an interior node")
	}
	c.value = value
	return nil
}

// HasChildren reports whether the node is interior.
func (c *RawConfig) HasChildren() bool { return len(c.children) > 0 }

// Children returns the children in creation order. The slice is shared;
// callers must not mutate it.
func (c *RawConfig) Children() []*RawConfig { return c.children }

// Get returns the named child, or nil when absent.
func (c *RawConfig) Get(name string) *RawConfig {
	return c.byName[name]
}

// Ensure returns the named child, creating it on demand. Creating a child
// under a value leaf fails: the leaf/interior discriminator is the children
// list, and a node must never carry both.
func (c *RawConfig) Ensure(name string) (*RawConfig, error) {
	if child, ok := c.byName[name]; ok {
		return child, nil
	}
	if c.value != "" {
		return nil, errors.MalformedTree([]string{c.name, name}, "cannot add a child under a value leaf")
	}
	child := &RawConfig{name: name}
	if c.byName == nil {
		c.byName = make(map[string]*RawConfig)
	}
	c.byName[name] = child
	c.children = append(c.children, child)
	return child, nil
}

// SetValueAt sets a leaf value at a slash-free path, creating interior
// nodes on demand.
func (c *RawConfig) SetValueAt(path []string, value string) error {
	node := c
	for _, name := range path {
		child, err := node.Ensure(name)
		if err != nil {
			return err
		}
		node = child
	}
	return node.SetValue(value)
}

// ValueAt reads a leaf value at a path. Missing nodes read as "".
func (c *RawConfig) ValueAt(path ...string) string {
	node := c
	for _, name := range path {
		node = node.Get(name)
		if node == nil {
			return ""
		}
	}
	return node.value
}

// Clone deep-copies the subtree.
func (c *RawConfig) Clone() *RawConfig {
	out := &RawConfig{name: c.name, comment: c.comment, value: c.value}
	for _, child := range c.children {
		cc := child.Clone()
		if out.byName == nil {
			out.byName = make(map[string]*RawConfig)
		}
		out.byName[cc.name] = cc
		out.children = append(out.children, cc)
	}
	return out
}

// Equal reports structural equality: same names, same nesting, same leaf
// values, same child order. Comments are presentation metadata and do not
// participate.
func Equal(a, b *RawConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || a.value != b.value || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// Validate walks the subtree and reports the first node violating the
// leaf/interior exclusivity invariant. Trees built through the mutators
// cannot violate it; trees reconstructed from the boundary are checked
// defensively.
func (c *RawConfig) Validate() error {
	return c.validate(nil)
}

func (c *RawConfig) validate(path []string) error {
	path = append(path, c.name)
	if c.value != "" && len(c.children) > 0 {
		return errors.MalformedTree(append([]string(nil), path...), "node has both a value and children")
	}
	for _, child := range c.children {
		if err := child.validate(path); err != nil {
			return err
		}
	}
	return nil
}
