// Package classtab builds the class/method descriptor table of spec.md
// §3.4: an up-front pass over the AST so that methods may call other
// methods textually before their declaration, grounded on the
// map-of-symbols-plus-ordered-slice shape of gmofishsauce/wut4's
// lang/yparse/symtab.go (SymbolTable.Globals / DefineFunc), generalized
// from wut4's flat function table to JLite's per-class field/method
// tables with overload groups.
package classtab

import (
	"fmt"

	"github.com/tserg/jlitec/internal/ast"
	"github.com/tserg/jlitec/internal/diag"
	"github.com/tserg/jlitec/internal/token"
)

// MethodSig is one overload of a method name.
type MethodSig struct {
	Name       string
	Params     []ast.Type
	ReturnType ast.Type
	Decl       *ast.MethodDecl // nil for the synthetic `main` entry
}

// ClassInfo is the descriptor for one class: its ordered field list and
// its methods, grouped by name into overload sets.
type ClassInfo struct {
	Name string

	FieldOrder []string
	FieldType  map[string]ast.Type

	// Methods maps a method name to every overload declared for it, in
	// declaration order.
	Methods map[string][]*MethodSig
}

// Table is the whole program's class descriptor table.
type Table struct {
	Order   []string
	Classes map[string]*ClassInfo
}

func newClassInfo(name string) *ClassInfo {
	return &ClassInfo{
		Name:      name,
		FieldType: make(map[string]ast.Type),
		Methods:   make(map[string][]*MethodSig),
	}
}

// Build traverses class declarations left-to-right and records each
// class's fields and method signatures (spec.md §4.3 Phase 1). The first
// diagnostic encountered (duplicate class, duplicate field, or duplicate
// overload) is returned immediately; the compiler does not recover from
// type errors (spec.md §7).
func Build(prog *ast.Program) (*Table, error) {
	t := &Table{Classes: make(map[string]*ClassInfo)}

	allClasses := make([]*ast.ClassDecl, 0, len(prog.Classes)+1)
	mainAsClass := &ast.ClassDecl{Name: prog.Main.Name, Pos: prog.Main.Pos}
	allClasses = append(allClasses, mainAsClass)
	allClasses = append(allClasses, prog.Classes...)

	for _, cd := range allClasses {
		if _, exists := t.Classes[cd.Name]; exists {
			return nil, dupError(diag.StageTypecheck, cd.Pos, cd.Name, "duplicate class declaration")
		}
		info := newClassInfo(cd.Name)
		t.Classes[cd.Name] = info
		t.Order = append(t.Order, cd.Name)

		for _, f := range cd.Fields {
			if _, exists := info.FieldType[f.Name]; exists {
				return nil, dupError(diag.StageTypecheck, f.Pos, f.Name, "duplicate field in class "+cd.Name)
			}
			info.FieldType[f.Name] = f.Type
			info.FieldOrder = append(info.FieldOrder, f.Name)
		}

		for _, m := range cd.Methods {
			sig := &MethodSig{Name: m.Name, ReturnType: m.ReturnType, Decl: m}
			for _, p := range m.Params {
				sig.Params = append(sig.Params, p.Type)
			}
			if err := addOverload(info, sig, m.Pos); err != nil {
				return nil, err
			}
		}
	}

	// The main class contributes a synthetic `main` method (spec.md §4.3
	// Phase 1) so method-call resolution and IR3 lowering can treat it
	// uniformly with every other method.
	mainInfo := t.Classes[prog.Main.Name]
	mainParams := make([]ast.Type, len(prog.Main.Params))
	for i, p := range prog.Main.Params {
		mainParams[i] = p.Type
	}
	mainInfo.Methods["main"] = []*MethodSig{{
		Name:       "main",
		Params:     mainParams,
		ReturnType: ast.Void,
	}}

	return t, nil
}

// addOverload registers sig under info.Methods[sig.Name], rejecting a
// second declaration with an identical parameter-type list (spec.md
// §3.4: overloads are distinguished by parameter types, never by return
// type alone).
func addOverload(info *ClassInfo, sig *MethodSig, pos token.Position) error {
	existing := info.Methods[sig.Name]
	for _, other := range existing {
		if sameParamTypes(other.Params, sig.Params) {
			return dupError(diag.StageTypecheck, pos, sig.Name,
				fmt.Sprintf("method %s.%s redeclared with identical parameter types", info.Name, sig.Name))
		}
	}
	info.Methods[sig.Name] = append(existing, sig)
	return nil
}

func sameParamTypes(a, b []ast.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func dupError(stage diag.Stage, pos token.Position, offender string, msg string) error {
	return &diag.Diagnostic{
		Stage:    stage,
		Category: diag.Type,
		Message:  msg,
		Offender: offender,
		Line:     pos.Line,
		Column:   pos.Index,
	}
}

// Lookup returns the descriptor for a class, or nil if undeclared.
func (t *Table) Lookup(class string) *ClassInfo { return t.Classes[class] }

// Field returns the declared type of a field on class, and whether it
// exists.
func (c *ClassInfo) Field(name string) (ast.Type, bool) {
	ty, ok := c.FieldType[name]
	return ty, ok
}

// ResolveCall performs overload resolution for a call to `method` on this
// class with the given argument types (spec.md §4.3 Phase 3 MethodCall
// rule): the unique overload whose parameter types are each
// assignment-compatible (with null-compatibility, no other subtyping)
// with the corresponding argument type. Zero or more-than-one match is an
// error.
func (c *ClassInfo) ResolveCall(method string, argTypes []ast.Type) (*MethodSig, error) {
	candidates := c.Methods[method]
	if len(candidates) == 0 {
		return nil, fmt.Errorf("class %s has no method named %s", c.Name, method)
	}

	var matches []*MethodSig
	for _, cand := range candidates {
		if len(cand.Params) != len(argTypes) {
			continue
		}
		ok := true
		for i, p := range cand.Params {
			if !p.AssignableFrom(argTypes[i]) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, cand)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no overload of %s.%s matches argument types", c.Name, method)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous call to %s.%s: multiple overloads match", c.Name, method)
	}
}
