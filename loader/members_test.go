package loader

import (
	"testing"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

func newTestMemberReader(opts *Options) *memberReader {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	pool := unresolved.NewPool()
	refs := newTypeRefBuilder(pool, opts)
	attrs := newAttributeDecoder(pool, refs)
	return newMemberReader(pool, opts, refs, attrs)
}

func TestMethodAccessibility(t *testing.T) {
	cases := []struct {
		in   metadata.MethodAttributes
		want unresolved.Accessibility
	}{
		{metadata.MethodAttrPublic, unresolved.AccessibilityPublic},
		{metadata.MethodAttrFamily, unresolved.AccessibilityProtected},
		{metadata.MethodAttrAssembly, unresolved.AccessibilityInternal},
		{metadata.MethodAttrFamORAssem, unresolved.AccessibilityProtectedOrInternal},
		{metadata.MethodAttrFamANDAssem, unresolved.AccessibilityProtectedAndInternal},
		{metadata.MethodAttrPrivate, unresolved.AccessibilityPrivate},
	}
	for _, c := range cases {
		if got := methodAccessibility(c.in); got != c.want {
			t.Errorf("methodAccessibility(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMethodModifiers_VirtualOverrideSealedTruthTable(t *testing.T) {
	cases := []struct {
		name         string
		attrs        metadata.MethodAttributes
		wantAbstract bool
		wantVirtual  bool
		wantOverride bool
		wantSealed   bool
	}{
		{"plain virtual", metadata.MethodAttrVirtual | metadata.MethodAttrNewSlot, false, true, false, false},
		{"override", metadata.MethodAttrVirtual, false, false, true, false},
		{"sealed override", metadata.MethodAttrVirtual | metadata.MethodAttrFinal, false, false, true, true},
		{"sealed newslot (rare)", metadata.MethodAttrVirtual | metadata.MethodAttrNewSlot | metadata.MethodAttrFinal, false, false, false, true},
		{"abstract interface method", metadata.MethodAttrAbstract | metadata.MethodAttrVirtual | metadata.MethodAttrNewSlot, true, false, false, false},
		{"abstract override", metadata.MethodAttrAbstract | metadata.MethodAttrVirtual, true, false, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := methodModifiers(c.attrs)
			if got := m&unresolved.ModifierAbstract != 0; got != c.wantAbstract {
				t.Errorf("abstract = %v, want %v", got, c.wantAbstract)
			}
			if got := m&unresolved.ModifierVirtual != 0; got != c.wantVirtual {
				t.Errorf("virtual = %v, want %v", got, c.wantVirtual)
			}
			if got := m&unresolved.ModifierOverride != 0; got != c.wantOverride {
				t.Errorf("override = %v, want %v", got, c.wantOverride)
			}
			if got := m&unresolved.ModifierSealed != 0; got != c.wantSealed {
				t.Errorf("sealed = %v, want %v", got, c.wantSealed)
			}
		})
	}
}

func TestShortenIfDotted(t *testing.T) {
	if got := shortenIfDotted("System.IDisposable.Dispose", true); got != "Dispose" {
		t.Errorf("got %q, want Dispose", got)
	}
	if got := shortenIfDotted("System.IDisposable.Dispose", false); got != "System.IDisposable.Dispose" {
		t.Errorf("shortening disabled must leave the name untouched, got %q", got)
	}
	if got := shortenIfDotted("PlainName", true); got != "PlainName" {
		t.Errorf("a name with no dot must be returned unchanged, got %q", got)
	}
}

func TestBuildParameter_RefOutInClassification(t *testing.T) {
	r := newTestMemberReader(nil)

	out := r.BuildParameter(&fakeParam{name: "result", sequence: 1, attrs: metadata.ParamAttrOut},
		metadata.ByRefSignature{Element: primitive(metadata.ElementTypeInt32)})
	if out.ReferenceKind != unresolved.ParameterKindOut {
		t.Errorf("got %v, want ParameterKindOut", out.ReferenceKind)
	}

	in := r.BuildParameter(&fakeParam{name: "src", sequence: 1, attrs: metadata.ParamAttrIn},
		metadata.ByRefSignature{Element: primitive(metadata.ElementTypeInt32)})
	if in.ReferenceKind != unresolved.ParameterKindIn {
		t.Errorf("got %v, want ParameterKindIn", in.ReferenceKind)
	}

	ref := r.BuildParameter(&fakeParam{name: "x", sequence: 1},
		metadata.ByRefSignature{Element: primitive(metadata.ElementTypeInt32)})
	if ref.ReferenceKind != unresolved.ParameterKindRef {
		t.Errorf("got %v, want ParameterKindRef", ref.ReferenceKind)
	}

	val := r.BuildParameter(&fakeParam{name: "n", sequence: 1}, primitive(metadata.ElementTypeInt32))
	if val.ReferenceKind != unresolved.ParameterKindValue {
		t.Errorf("got %v, want ParameterKindValue", val.ReferenceKind)
	}
}

func TestPropertyAccessibilityAndModifiers_JoinsAccessors(t *testing.T) {
	getter := unresolved.NewMethod(nil, 1, "get_X", unresolved.Object, unresolved.AccessibilityProtected, 0, nil)
	setter := unresolved.NewMethod(nil, 2, "set_X", unresolved.Void, unresolved.AccessibilityInternal, 0, nil)

	access, _ := propertyAccessibilityAndModifiers(getter, setter)
	if access != unresolved.AccessibilityProtectedOrInternal {
		t.Errorf("got %v, want ProtectedOrInternal", access)
	}
}

func TestPropertyAccessibilityAndModifiers_GetterOnly(t *testing.T) {
	getter := unresolved.NewMethod(nil, 1, "get_X", unresolved.Object, unresolved.AccessibilityPublic, unresolved.ModifierStatic, nil)
	access, modifiers := propertyAccessibilityAndModifiers(getter, nil)
	if access != unresolved.AccessibilityPublic {
		t.Errorf("got %v, want Public", access)
	}
	if modifiers&unresolved.ModifierStatic == 0 {
		t.Errorf("expected Static to be carried from the sole accessor")
	}
}

func TestBuildMembers_AccessorSuppressionAndVisibility(t *testing.T) {
	r := newTestReader(nil)

	getter := &fakeMethod{token: 2, name: "get_Value", attrs: metadata.MethodAttrPublic}
	setter := &fakeMethod{token: 3, name: "set_Value", attrs: metadata.MethodAttrPrivate}
	plain := &fakeMethod{token: 4, name: "DoWork", attrs: metadata.MethodAttrPublic}

	td := &fakeType{
		methods: []metadata.MethodDefinition{getter, setter, plain},
		properties: []metadata.PropertyDefinition{
			&fakeProperty{token: 10, name: "Value", typ: primitive(metadata.ElementTypeInt32), getter: getter, setter: setter},
		},
	}

	got := r.BuildEager(td)

	var sawGetterAsFlatMethod, sawSetterAsFlatMethod, sawPlainMethod, sawProperty bool
	for _, m := range got.Members() {
		switch m.Name() {
		case "get_Value":
			sawGetterAsFlatMethod = true
		case "set_Value":
			sawSetterAsFlatMethod = true
		case "DoWork":
			sawPlainMethod = true
		case "Value":
			sawProperty = true
		}
	}
	if sawGetterAsFlatMethod || sawSetterAsFlatMethod {
		t.Errorf("accessor methods must not appear directly in Members()")
	}
	if !sawPlainMethod {
		t.Errorf("expected DoWork in Members()")
	}
	if !sawProperty {
		t.Errorf("expected the Value property in Members()")
	}

	for _, m := range got.Members() {
		if p, ok := m.(*unresolved.Property); ok {
			if p.Accessibility() != unresolved.AccessibilityPublic {
				t.Errorf("Value's accessibility should be promoted to Public (join of public getter, private setter), got %v", p.Accessibility())
			}
		}
	}
}

func TestBuildMembers_InternalFieldHiddenByDefault(t *testing.T) {
	r := newTestReader(nil)
	td := &fakeType{
		fields: []metadata.FieldDefinition{
			&fakeField{name: "_private", attrs: metadata.FieldAttrPrivate, fieldType: primitive(metadata.ElementTypeInt32)},
			&fakeField{name: "Public", attrs: metadata.FieldAttrPublic, fieldType: primitive(metadata.ElementTypeInt32)},
		},
	}
	got := r.BuildEager(td)
	if len(got.Members()) != 1 {
		t.Fatalf("expected only the public field to survive, got %d members", len(got.Members()))
	}
	if got.Members()[0].Name() != "Public" {
		t.Fatalf("got %q, want Public", got.Members()[0].Name())
	}
}

func TestBuildMembers_IncludeInternalMembersOption(t *testing.T) {
	opts := NewDefaultOptions()
	opts.IncludeInternalMembers = true
	r := newTestReader(opts)
	td := &fakeType{
		fields: []metadata.FieldDefinition{
			&fakeField{name: "_private", attrs: metadata.FieldAttrPrivate, fieldType: primitive(metadata.ElementTypeInt32)},
		},
	}
	got := r.BuildEager(td)
	if len(got.Members()) != 1 {
		t.Fatalf("expected the private field to be included, got %d members", len(got.Members()))
	}
}
