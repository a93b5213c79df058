package loader

import (
	"testing"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

func newTestReader(opts *Options) *typeDefinitionReader {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return newTypeDefinitionReader(unresolved.NewPool(), opts)
}

func TestClassifyKind(t *testing.T) {
	cases := []struct {
		name string
		td   *fakeType
		want unresolved.TypeKind
	}{
		{"interface flag wins", &fakeType{attrs: metadata.TypeAttrInterface}, unresolved.TypeKindInterface},
		{"System.Enum base", &fakeType{baseType: namedRef(nsSystem, "Enum")}, unresolved.TypeKindEnum},
		{"System.ValueType base", &fakeType{baseType: namedRef(nsSystem, "ValueType")}, unresolved.TypeKindStruct},
		{"System.MulticastDelegate base", &fakeType{baseType: namedRef(nsSystem, "MulticastDelegate")}, unresolved.TypeKindDelegate},
		{"module marker name", &fakeType{name: "<Module>"}, unresolved.TypeKindModule},
		{"plain class", &fakeType{baseType: namedRef(nsSystem, "Object")}, unresolved.TypeKindClass},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := classifyKind(c.td); got != c.want {
				t.Errorf("classifyKind() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestTypeModifiers_StaticIsSealedAndAbstractClass(t *testing.T) {
	m := typeModifiers(metadata.TypeAttrSealed|metadata.TypeAttrAbstract, unresolved.TypeKindClass)
	if m != unresolved.TypeModifierStatic {
		t.Fatalf("got %v, want TypeModifierStatic", m)
	}
}

func TestTypeModifiers_SealedAbstractStructIsNotStatic(t *testing.T) {
	m := typeModifiers(metadata.TypeAttrSealed|metadata.TypeAttrAbstract, unresolved.TypeKindStruct)
	if m&unresolved.TypeModifierStatic != 0 {
		t.Fatalf("a struct can be sealed+abstract without being static, got %v", m)
	}
	if m&unresolved.TypeModifierSealed == 0 || m&unresolved.TypeModifierAbstract == 0 {
		t.Fatalf("expected both Sealed and Abstract bits set, got %v", m)
	}
}

func TestBuildBaseTypes_OmitsImplicitSystemObject(t *testing.T) {
	r := newTestReader(nil)
	td := &fakeType{baseType: namedRef(nsSystem, "Object")}
	bases := r.buildBaseTypes(td, unresolved.TypeKindClass)
	if len(bases) != 0 {
		t.Fatalf("expected System.Object to be omitted, got %d entries", len(bases))
	}
}

func TestBuildBaseTypes_KeepsExplicitBaseAndInterfaces(t *testing.T) {
	r := newTestReader(nil)
	td := &fakeType{
		baseType:   namedRef("MyApp", "Base"),
		interfaces: []metadata.TypeSignature{namedRef(nsSystem, "IDisposable")},
	}
	bases := r.buildBaseTypes(td, unresolved.TypeKindClass)
	if len(bases) != 2 {
		t.Fatalf("expected base + 1 interface, got %d", len(bases))
	}
}

func TestBuildBaseTypes_InterfaceHasNoBaseType(t *testing.T) {
	r := newTestReader(nil)
	td := &fakeType{interfaces: []metadata.TypeSignature{namedRef(nsSystem, "IDisposable")}}
	bases := r.buildBaseTypes(td, unresolved.TypeKindInterface)
	if len(bases) != 1 {
		t.Fatalf("expected exactly the 1 interface, got %d", len(bases))
	}
}

func TestRequiresDefaultConstructor(t *testing.T) {
	if requiresDefaultConstructor(unresolved.TypeKindClass, nil) {
		t.Errorf("a class never gets a synthesized default constructor")
	}
	if requiresDefaultConstructor(unresolved.TypeKindInterface, nil) {
		t.Errorf("an interface never gets a synthesized default constructor")
	}
	if !requiresDefaultConstructor(unresolved.TypeKindStruct, nil) {
		t.Errorf("a struct always gets a synthesized default constructor")
	}
	if !requiresDefaultConstructor(unresolved.TypeKindEnum, nil) {
		t.Errorf("an enum always gets a synthesized default constructor")
	}
}

func TestBuildEager_TopLevelTypeEndToEnd(t *testing.T) {
	r := newTestReader(nil)
	td := &fakeType{
		token:     0x02000002,
		namespace: "MyNamespace",
		name:      "MyClass",
		attrs:     metadata.TypeAttrPublic,
		baseType:  namedRef(nsSystem, "Object"),
		fields: []metadata.FieldDefinition{
			&fakeField{token: 0x04000001, name: "_value", attrs: metadata.FieldAttrPublic, fieldType: primitive(metadata.ElementTypeInt32)},
		},
	}
	got := r.BuildEager(td)
	if got.FullName() != "MyNamespace.MyClass" {
		t.Fatalf("FullName() = %q", got.FullName())
	}
	if got.Kind() != unresolved.TypeKindClass {
		t.Fatalf("Kind() = %v, want class", got.Kind())
	}
	if len(got.BaseTypes()) != 0 {
		t.Fatalf("expected System.Object omitted from BaseTypes()")
	}
	if len(got.Members()) != 1 {
		t.Fatalf("expected 1 member, got %d", len(got.Members()))
	}
	if got.AddDefaultConstructorIfRequired() {
		t.Errorf("AddDefaultConstructorIfRequired() applies only to struct/enum, not class")
	}
}

func TestBuildEager_NestedTypeVisibilityFilter(t *testing.T) {
	opts := NewDefaultOptions()
	opts.IncludeInternalMembers = false
	r := newTestReader(opts)
	td := &fakeType{
		namespace: "MyNamespace",
		name:      "Outer",
		attrs:     metadata.TypeAttrPublic,
		nested: []metadata.TypeDefinition{
			&fakeType{name: "PublicInner", attrs: metadata.TypeAttrNestedPublic},
			&fakeType{name: "PrivateInner", attrs: metadata.TypeAttrNestedPrivate},
		},
	}
	got := r.BuildEager(td)
	if len(got.NestedTypes()) != 1 {
		t.Fatalf("expected 1 visible nested type, got %d", len(got.NestedTypes()))
	}
	if got.NestedTypes()[0].Name() != "PublicInner" {
		t.Errorf("kept nested type = %q, want PublicInner", got.NestedTypes()[0].Name())
	}
}
