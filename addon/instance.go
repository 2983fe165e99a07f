package addon

import (
	"fmt"
	"reflect"

	"github.com/yigeba52/fcitx5-android/errors"
)

// Instance is the opaque handle to a loaded addon. Every cross-component
// interaction goes through Call with a named operation and typed arguments,
// so components depend on capabilities rather than concrete types.
type Instance struct {
	addon Addon
	ops   map[string]reflect.Value
}

// NewInstance wraps a loaded addon, snapshotting its operation table.
func NewInstance(a Addon) *Instance {
	inst := &Instance{addon: a}
	if ops, ok := a.(Operations); ok {
		table := ops.Operations()
		inst.ops = make(map[string]reflect.Value, len(table))
		for name, fn := range table {
			rv := reflect.ValueOf(fn)
			if rv.Kind() == reflect.Func {
				inst.ops[name] = rv
			}
		}
	}
	return inst
}

func (i *Instance) Name() string { return i.addon.Info().UniqueName }

func (i *Instance) Info() *Info { return i.addon.Info() }

// Underlying returns the wrapped addon, for the owning manager only.
func (i *Instance) Underlying() Addon { return i.addon }

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Call invokes a named operation with the given arguments. Arguments must
// be assignable to the operation's parameter types; a trailing error return
// is unwrapped into Call's own error. Remaining return values come back as
// a slice for the caller to assert.
func (i *Instance) Call(op string, args ...any) ([]any, error) {
	fn, ok := i.ops[op]
	if !ok {
		return nil, errors.UnknownOperation(i.Name(), op)
	}
	ft := fn.Type()
	if ft.IsVariadic() {
		if len(args) < ft.NumIn()-1 {
			return nil, errors.ArgumentMismatch(i.Name(), op,
				fmt.Sprintf("got %d args, want at least %d", len(args), ft.NumIn()-1))
		}
	} else if len(args) != ft.NumIn() {
		return nil, errors.ArgumentMismatch(i.Name(), op,
			fmt.Sprintf("got %d args, want %d", len(args), ft.NumIn()))
	}

	in := make([]reflect.Value, len(args))
	for idx, arg := range args {
		want := ft.In(min(idx, ft.NumIn()-1))
		if ft.IsVariadic() && idx >= ft.NumIn()-1 {
			want = ft.In(ft.NumIn() - 1).Elem()
		}
		if arg == nil {
			in[idx] = reflect.Zero(want)
			continue
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(want) {
			if av.Type().ConvertibleTo(want) {
				av = av.Convert(want)
			} else {
				return nil, errors.ArgumentMismatch(i.Name(), op,
					fmt.Sprintf("arg %d: %s not assignable to %s", idx, av.Type(), want))
			}
		}
		in[idx] = av
	}

	out := fn.Call(in)
	results := make([]any, 0, len(out))
	var callErr error
	for idx, v := range out {
		if idx == len(out)-1 && v.Type() == errType {
			if !v.IsNil() {
				callErr = v.Interface().(error)
			}
			continue
		}
		results = append(results, v.Interface())
	}
	return results, callErr
}

// CallOne invokes an operation expected to return exactly one non-error
// value of type T.
func CallOne[T any](i *Instance, op string, args ...any) (T, error) {
	var zero T
	results, err := i.Call(op, args...)
	if err != nil {
		return zero, err
	}
	if len(results) != 1 {
		return zero, errors.ArgumentMismatch(i.Name(), op,
			fmt.Sprintf("got %d results, want 1", len(results)))
	}
	v, ok := results[0].(T)
	if !ok {
		return zero, errors.ArgumentMismatch(i.Name(), op,
			fmt.Sprintf("result is %T", results[0]))
	}
	return v, nil
}
