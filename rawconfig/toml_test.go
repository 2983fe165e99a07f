package rawconfig

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var treeComparer = cmp.Comparer(func(a, b *RawConfig) bool { return Equal(a, b) })

func TestTOMLRoundTrip(t *testing.T) {
	tree := New("")
	tree.SetValueAt([]string{"Behavior", "ActiveByDefault"}, "false")
	tree.SetValueAt([]string{"Behavior", "ShareInputState"}, "No")
	tree.SetValueAt([]string{"Hotkey", "TriggerKeys", "0"}, "Control+space")

	data, err := MarshalTOML(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	parsed, err := UnmarshalTOML(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Serialization normalizes child order, so compare against a second
	// round trip for structural identity.
	data2, err := MarshalTOML(parsed)
	if err != nil {
		t.Fatalf("marshal again: %v", err)
	}
	parsed2, err := UnmarshalTOML(data2)
	if err != nil {
		t.Fatalf("unmarshal again: %v", err)
	}
	if diff := cmp.Diff(parsed, parsed2, treeComparer); diff != "" {
		t.Errorf("round trip not stable (-first +second):\n%s", diff)
	}
	if got := parsed.ValueAt("Hotkey", "TriggerKeys", "0"); got != "Control+space" {
		t.Errorf("Hotkey.TriggerKeys.0 = %q", got)
	}
}

func TestUnmarshalCoercesPrimitives(t *testing.T) {
	parsed, err := UnmarshalTOML([]byte("enabled = true\ncount = 3\n"))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := parsed.ValueAt("enabled"); got != "true" {
		t.Errorf("enabled = %q, want true", got)
	}
	if got := parsed.ValueAt("count"); got != "3" {
		t.Errorf("count = %q, want 3", got)
	}
}

func TestMarshalRejectsMalformedTree(t *testing.T) {
	bad := &RawConfig{name: "", children: []*RawConfig{
		{name: "n", value: "v", children: []*RawConfig{New("c")}},
	}}
	if _, err := MarshalTOML(bad); err == nil {
		t.Fatal("marshal of malformed tree succeeded")
	}
}
