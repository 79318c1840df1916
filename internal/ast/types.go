// Package ast defines the JLite abstract syntax tree and its type system
// (spec.md §3.2, §3.3). Every expression node carries a Type field filled
// in by internal/typecheck; before type checking it is the zero Type.
// Statement and declaration nodes carry no resolved type.
package ast

import (
	"fmt"
	"strings"
)

// Kind tags a Type with which variant of the type sum it is.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindBool
	KindString
	KindVoid
	KindObject
	KindFunction
	// KindNullLiteral is the resolved type of the expression `null` itself,
	// kept distinct from KindVoid so a statement-level void and the literal
	// null can never be confused in the type representation (spec.md §9's
	// open question on null's stored type, resolved in SPEC_FULL.md §6).
	KindNullLiteral
)

// Type is the tagged variant over JLite's type space: Int, Bool, String,
// Void, Object(class), Function(class, params, return) and the
// null-literal's own type.
type Type struct {
	Kind Kind

	// ClassName is set when Kind == KindObject or KindFunction (the
	// receiver's class).
	ClassName string

	// Params and Return are set when Kind == KindFunction.
	Params []Type
	Return *Type
}

var (
	Int    = Type{Kind: KindInt}
	Bool   = Type{Kind: KindBool}
	String = Type{Kind: KindString}
	Void   = Type{Kind: KindVoid}
	Null   = Type{Kind: KindNullLiteral}
	Invalid = Type{Kind: KindInvalid}
)

// Object constructs the Object(className) type.
func Object(className string) Type { return Type{Kind: KindObject, ClassName: className} }

// Function constructs the Function(className, params, ret) type used to
// type a resolved method-call target (spec.md §3.2).
func Function(className string, params []Type, ret Type) Type {
	r := ret
	return Type{Kind: KindFunction, ClassName: className, Params: params, Return: &r}
}

// IsValid reports whether a Type has been resolved (non-zero Kind).
func (t Type) IsValid() bool { return t.Kind != KindInvalid }

// Equal is structural equality: Object(C) equals Object(C) iff the class
// names match; the null literal's type is equal only to itself, never to
// Object(_) or String (assignment and comparison against null go through
// AssignableFrom and EqualityComparable below).
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindObject:
		return t.ClassName == other.ClassName
	case KindFunction:
		if t.ClassName != other.ClassName || len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return t.Return.Equal(*other.Return)
	default:
		return true
	}
}

// IsReferenceOrString reports whether a value of this type can be null
// (spec.md's "null-compatibility": any Object(_) or String).
func (t Type) IsReferenceOrString() bool {
	return t.Kind == KindObject || t.Kind == KindString
}

// AssignableFrom reports whether a value of type `from` may be stored into
// a location of type `t`, applying null-compatibility: the literal `null`
// is assignable to any Object(_) or String (spec.md §3.2, §4.3 Phase 4).
func (t Type) AssignableFrom(from Type) bool {
	if from.Kind == KindNullLiteral {
		return t.IsReferenceOrString()
	}
	return t.Equal(from)
}

// EqualityComparable reports whether two types may appear as operands of
// == or != per spec.md §4.3: types equal, or one side is the null literal
// and the other is a reference-or-string type.
func EqualityComparable(l, r Type) bool {
	if l.Equal(r) {
		return true
	}
	if l.Kind == KindNullLiteral && r.IsReferenceOrString() {
		return true
	}
	if r.Kind == KindNullLiteral && l.IsReferenceOrString() {
		return true
	}
	return false
}

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindVoid:
		return "Void"
	case KindNullLiteral:
		return "null"
	case KindObject:
		return t.ClassName
	case KindFunction:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		ret := "Void"
		if t.Return != nil {
			ret = t.Return.String()
		}
		return fmt.Sprintf("%s(%s) -> %s", t.ClassName, strings.Join(params, ", "), ret)
	default:
		return "<invalid>"
	}
}
