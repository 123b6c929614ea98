// Package registry implements the node registry (spec §4.9): a
// string-keyed map of type name to constructor, plus the heterogeneous
// parameter map constructors are invoked with. Control-thread only —
// the audio thread never touches this package.
package registry

import (
	"fmt"

	"github.com/justyntemme/rtaudio/pkg/rterr"
)

// ValueKind tags which variant a Value holds.
type ValueKind int

const (
	KindFloat ValueKind = iota
	KindInt
	KindBool
	KindString
)

// Value is one of {Float(f64), Int(i64), Bool, String}, spec §4.9's
// parameter variant set, tagged rather than held behind `any` so typed
// extraction can distinguish "wrong type" from "absent" (spec §4.9's
// error taxonomy needs both).
type Value struct {
	kind ValueKind
	f    float64
	i    int64
	b    bool
	s    string
}

// Float wraps a float64 parameter value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Int wraps an int64 parameter value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Bool wraps a bool parameter value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// String wraps a string parameter value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// Params is the heterogeneous name→Value map passed to a constructor.
type Params map[string]Value

// Float extracts a required float parameter, or an invalid-parameter
// error if absent or of the wrong kind.
func (p Params) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, missingParam(name)
	}
	if v.kind != KindFloat {
		return 0, wrongKind(name, KindFloat, v.kind)
	}
	return v.f, nil
}

// FloatOr extracts an optional float parameter, returning def if absent.
func (p Params) FloatOr(name string, def float64) float64 {
	v, ok := p[name]
	if !ok || v.kind != KindFloat {
		return def
	}
	return v.f
}

// Int extracts a required int parameter.
func (p Params) Int(name string) (int64, error) {
	v, ok := p[name]
	if !ok {
		return 0, missingParam(name)
	}
	if v.kind != KindInt {
		return 0, wrongKind(name, KindInt, v.kind)
	}
	return v.i, nil
}

// IntOr extracts an optional int parameter, returning def if absent.
func (p Params) IntOr(name string, def int64) int64 {
	v, ok := p[name]
	if !ok || v.kind != KindInt {
		return def
	}
	return v.i
}

// Bool extracts a required bool parameter.
func (p Params) Bool(name string) (bool, error) {
	v, ok := p[name]
	if !ok {
		return false, missingParam(name)
	}
	if v.kind != KindBool {
		return false, wrongKind(name, KindBool, v.kind)
	}
	return v.b, nil
}

// BoolOr extracts an optional bool parameter, returning def if absent.
func (p Params) BoolOr(name string, def bool) bool {
	v, ok := p[name]
	if !ok || v.kind != KindBool {
		return def
	}
	return v.b
}

// String extracts a required string parameter.
func (p Params) String(name string) (string, error) {
	v, ok := p[name]
	if !ok {
		return "", missingParam(name)
	}
	if v.kind != KindString {
		return "", wrongKind(name, KindString, v.kind)
	}
	return v.s, nil
}

// StringOr extracts an optional string parameter, returning def if absent.
func (p Params) StringOr(name string, def string) string {
	v, ok := p[name]
	if !ok || v.kind != KindString {
		return def
	}
	return v.s
}

func missingParam(name string) error {
	return rterr.New(rterr.KindNodeRegistry, "registry.Params", fmt.Sprintf("missing required parameter %q", name))
}

func wrongKind(name string, want, got ValueKind) error {
	return rterr.New(rterr.KindNodeRegistry, "registry.Params",
		fmt.Sprintf("parameter %q has wrong type: want %v, got %v", name, want, got))
}

func (k ValueKind) String() string {
	switch k {
	case KindFloat:
		return "Float"
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}
