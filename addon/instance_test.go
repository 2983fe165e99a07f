package addon

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/yigeba52/fcitx5-android/errors"
)

type echoAddon struct {
	info Info
}

func (a *echoAddon) Info() *Info { return &a.info }

func (a *echoAddon) Operations() map[string]any {
	return map[string]any{
		"echo":    func(s string) string { return s },
		"pair":    func(lang string, ch rune) (string, string) { return lang, string(ch) },
		"fail":    func() error { return fmt.Errorf("boom") },
		"consume": func(n int) {},
	}
}

func newEcho() *Instance {
	return NewInstance(&echoAddon{info: Info{UniqueName: "echo", Category: CategoryModule}})
}

func TestCallSingleResult(t *testing.T) {
	inst := newEcho()
	got, err := CallOne[string](inst, "echo", "hello")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != "hello" {
		t.Errorf("echo = %q", got)
	}
}

func TestCallMultipleResults(t *testing.T) {
	inst := newEcho()
	results, err := inst.Call("pair", "zh_CN", '，')
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].(string) != "zh_CN" || results[1].(string) != "，" {
		t.Errorf("results = %v", results)
	}
}

func TestCallUnknownOperation(t *testing.T) {
	inst := newEcho()
	_, err := inst.Call("nope")
	if !stderrors.Is(err, errors.UnknownOperation("", "")) {
		t.Fatalf("got %v, want unknown_operation", err)
	}
}

func TestCallArgumentMismatch(t *testing.T) {
	inst := newEcho()
	if _, err := inst.Call("echo"); !stderrors.Is(err, errors.ArgumentMismatch("", "", "")) {
		t.Fatalf("missing arg: got %v, want argument_mismatch", err)
	}
	if _, err := inst.Call("echo", struct{}{}); !stderrors.Is(err, errors.ArgumentMismatch("", "", "")) {
		t.Fatalf("wrong type: got %v, want argument_mismatch", err)
	}
}

func TestCallConvertsCompatibleArgs(t *testing.T) {
	inst := newEcho()
	// int literal for an int parameter arrives as int; rune params accept
	// untyped ints converted through reflection.
	if _, err := inst.Call("consume", int64(3)); err != nil {
		t.Fatalf("convertible arg rejected: %v", err)
	}
}

func TestCallUnwrapsTrailingError(t *testing.T) {
	inst := newEcho()
	results, err := inst.Call("fail")
	if err == nil || err.Error() != "boom" {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
}

func TestCategoryOrder(t *testing.T) {
	want := []string{"inputmethod", "frontend", "loader", "module", "ui"}
	for i, c := range Categories {
		if c.String() != want[i] {
			t.Errorf("category %d = %s, want %s", i, c, want[i])
		}
	}
}
