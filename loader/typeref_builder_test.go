package loader

import (
	"testing"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

func namedRef(namespace, name string) metadata.TypeDefOrRefSignature {
	return metadata.TypeDefOrRefSignature{
		Reference: &metadata.TypeReferenceRow{
			Scope:     metadata.AssemblyRefScope{AssemblyName: "mscorlib"},
			Namespace: namespace,
			Name:      name,
		},
	}
}

func valueTuple(args ...metadata.TypeSignature) metadata.GenericInstanceSignature {
	return metadata.GenericInstanceSignature{
		GenericType: namedRef("System", tupleName(len(args))),
		Arguments:   args,
	}
}

func tupleName(arity int) string {
	switch arity {
	case 8:
		return "ValueTuple`8"
	default:
		return "ValueTuple`" + string(rune('0'+arity))
	}
}

func primitive(k metadata.ElementType) metadata.TypeSignature {
	return metadata.PrimitiveSignature{Kind: k}
}

func newTestBuilder(opts *Options) *typeRefBuilder {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return newTypeRefBuilder(unresolved.NewPool(), opts)
}

func TestTypeRefBuilder_NamedReference(t *testing.T) {
	b := newTestBuilder(nil)
	ref := b.Build(namedRef("System.Collections.Generic", "List`1"), nil)
	named, ok := ref.(*unresolved.NamedTypeReference)
	if !ok {
		t.Fatalf("got %T, want *unresolved.NamedTypeReference", ref)
	}
	if named.Name != "List" || named.Arity != 1 {
		t.Fatalf("got name=%q arity=%d, want List/1", named.Name, named.Arity)
	}
}

func TestTypeRefBuilder_NestedReference(t *testing.T) {
	b := newTestBuilder(nil)
	outer := &metadata.TypeReferenceRow{Scope: metadata.AssemblyRefScope{AssemblyName: "a"}, Namespace: "N", Name: "Outer"}
	inner := metadata.TypeDefOrRefSignature{
		Reference: &metadata.TypeReferenceRow{
			Scope: metadata.NestedTypeScope{DeclaringType: outer},
			Name:  "Inner",
		},
	}
	ref := b.Build(inner, nil)
	nested, ok := ref.(*unresolved.NestedTypeReference)
	if !ok {
		t.Fatalf("got %T, want *unresolved.NestedTypeReference", ref)
	}
	if nested.Name != "Inner" {
		t.Fatalf("got name=%q, want Inner", nested.Name)
	}
}

func TestTypeRefBuilder_PointerAndByRef(t *testing.T) {
	b := newTestBuilder(nil)

	ptr := b.Build(metadata.PointerSignature{Element: primitive(metadata.ElementTypeInt32)}, nil)
	if _, ok := ptr.(unresolved.PointerType); !ok {
		t.Fatalf("got %T, want unresolved.PointerType", ptr)
	}

	byref := b.Build(metadata.ByRefSignature{Element: primitive(metadata.ElementTypeInt32)}, nil)
	if _, ok := byref.(unresolved.ByReferenceType); !ok {
		t.Fatalf("got %T, want unresolved.ByReferenceType", byref)
	}
}

func TestTypeRefBuilder_FunctionPointerBecomesIntPtr(t *testing.T) {
	b := newTestBuilder(nil)
	ref := b.Build(metadata.FunctionPointerSignature{Signature: &metadata.MethodSignature{}}, nil)
	if ref != unresolved.IntPtr {
		t.Fatalf("got %v, want unresolved.IntPtr", ref)
	}
}

func TestTypeRefBuilder_ModifierIsTransparent(t *testing.T) {
	b := newTestBuilder(nil)
	sig := metadata.ModifierSignature{
		Required: true,
		Modifier: namedRef("System.Runtime.CompilerServices", "IsVolatile"),
		Element:  primitive(metadata.ElementTypeInt32),
	}
	ref := b.Build(sig, nil)
	if ref != unresolved.PrimitiveByIndex(int(metadata.ElementTypeInt32)) {
		t.Fatalf("modifier should be stripped, got %v", ref)
	}
}

func TestTypeRefBuilder_ArrayRankZeroIsVector(t *testing.T) {
	b := newTestBuilder(nil)
	ref := b.Build(metadata.ArraySignature{Element: primitive(metadata.ElementTypeString)}, nil)
	arr, ok := ref.(unresolved.ArrayType)
	if !ok || arr.Rank != 1 {
		t.Fatalf("got %#v, want ArrayType with Rank 1", ref)
	}
}

func TestTypeRefBuilder_ValueTupleFlattensToTupleType(t *testing.T) {
	b := newTestBuilder(nil)
	sig := valueTuple(primitive(metadata.ElementTypeInt32), primitive(metadata.ElementTypeString))
	ref := b.Build(sig, nil)
	tup, ok := ref.(unresolved.TupleType)
	if !ok {
		t.Fatalf("got %T, want unresolved.TupleType", ref)
	}
	if len(tup.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(tup.Elements))
	}
}

func TestTypeRefBuilder_ValueTupleDisabledStaysParameterized(t *testing.T) {
	opts := NewDefaultOptions()
	opts.UseTupleTypes = false
	b := newTestBuilder(opts)
	sig := valueTuple(primitive(metadata.ElementTypeInt32), primitive(metadata.ElementTypeString))
	ref := b.Build(sig, nil)
	if _, ok := ref.(unresolved.ParameterizedType); !ok {
		t.Fatalf("got %T, want unresolved.ParameterizedType when tuple flattening is disabled", ref)
	}
}

func TestTypeRefBuilder_OneTupleCollapsesToElement(t *testing.T) {
	b := newTestBuilder(nil)
	sig := valueTuple(primitive(metadata.ElementTypeInt32))
	ref := b.Build(sig, nil)
	if ref != unresolved.PrimitiveByIndex(int(metadata.ElementTypeInt32)) {
		t.Fatalf("a 1-tuple must collapse to its bare element, got %v", ref)
	}
}

func TestTypeRefBuilder_EightArityTupleChainsThroughRest(t *testing.T) {
	b := newTestBuilder(nil)
	rest := valueTuple(primitive(metadata.ElementTypeInt32), primitive(metadata.ElementTypeInt32))
	eight := metadata.GenericInstanceSignature{
		GenericType: namedRef("System", "ValueTuple`8"),
		Arguments: []metadata.TypeSignature{
			primitive(metadata.ElementTypeSByte), primitive(metadata.ElementTypeSByte), primitive(metadata.ElementTypeSByte),
			primitive(metadata.ElementTypeSByte), primitive(metadata.ElementTypeSByte), primitive(metadata.ElementTypeSByte),
			primitive(metadata.ElementTypeSByte), rest,
		},
	}
	ref := b.Build(eight, nil)
	tup, ok := ref.(unresolved.TupleType)
	if !ok {
		t.Fatalf("got %T, want unresolved.TupleType", ref)
	}
	if len(tup.Elements) != 9 {
		t.Fatalf("got %d elements, want 9 (7 + chained 2)", len(tup.Elements))
	}
}

func TestTypeRefBuilder_ObjectBecomesDynamicWhenFlagged(t *testing.T) {
	b := newTestBuilder(nil)
	attrs := []metadata.CustomAttribute{{
		Constructor: metadata.MethodReference{DeclaringType: namedRef(nsCompilerServices, attrDynamic)},
		Blob:        nil,
	}}
	ref := b.Build(primitive(metadata.ElementTypeObject), attrs)
	if ref != unresolved.Dynamic {
		t.Fatalf("got %v, want unresolved.Dynamic", ref)
	}
}

func TestTypeRefBuilder_ObjectWithoutFlagStaysObject(t *testing.T) {
	b := newTestBuilder(nil)
	ref := b.Build(primitive(metadata.ElementTypeObject), nil)
	if ref != unresolved.Object {
		t.Fatalf("got %v, want unresolved.Object", ref)
	}
}

func TestSplitGenericArity(t *testing.T) {
	cases := []struct {
		in        string
		wantBase  string
		wantArity int
	}{
		{"List`1", "List", 1},
		{"Dictionary`2", "Dictionary", 2},
		{"String", "String", 0},
		{"Weird`", "Weird`", 0},
		{"Weird`x", "Weird`x", 0},
	}
	for _, c := range cases {
		base, arity := splitGenericArity(c.in)
		if base != c.wantBase || arity != c.wantArity {
			t.Errorf("splitGenericArity(%q) = (%q, %d), want (%q, %d)", c.in, base, arity, c.wantBase, c.wantArity)
		}
	}
}
