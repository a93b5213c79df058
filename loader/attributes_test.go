package loader

import (
	"testing"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

func findSynth(t *testing.T, attrs []*unresolved.Attribute, name string) *unresolved.Attribute {
	t.Helper()
	for _, a := range attrs {
		if named, ok := a.Type.(*unresolved.NamedTypeReference); ok && named.Name == name {
			return a
		}
	}
	return nil
}

func TestSynthesizeTypeAttributes_DefaultStructLayoutOmitted(t *testing.T) {
	r := newTestReader(nil)
	// A compiled struct carries the Sequential bit and Ansi charset by
	// default even with no source-level [StructLayout].
	td := &fakeType{attrs: metadata.TypeAttrPublic | metadata.TypeAttrSequentialLayout}
	got := r.attrs.SynthesizeTypeAttributes(td, unresolved.TypeKindStruct)
	if a := findSynth(t, got, "StructLayoutAttribute"); a != nil {
		t.Errorf("default-layout struct must not emit StructLayoutAttribute, got %+v", a)
	}
}

func TestSynthesizeTypeAttributes_NonDefaultLayoutEmitted(t *testing.T) {
	r := newTestReader(nil)
	td := &fakeType{
		attrs:      metadata.TypeAttrPublic | metadata.TypeAttrExplicitLayout,
		layoutOK:   true,
		layoutKind: metadata.TypeAttrExplicitLayout,
		packing:    0,
		classSize:  16,
	}
	got := r.attrs.SynthesizeTypeAttributes(td, unresolved.TypeKindStruct)
	a := findSynth(t, got, "StructLayoutAttribute")
	if a == nil {
		t.Fatalf("explicit layout must emit StructLayoutAttribute")
	}
	if a.PositionalArguments[0] != "Explicit" {
		t.Errorf("layout kind = %v, want Explicit", a.PositionalArguments[0])
	}
	if a.NamedArguments["Size"] != 16 {
		t.Errorf("Size = %v, want 16", a.NamedArguments["Size"])
	}
}

func TestSynthesizeTypeAttributes_DefaultAutoLayoutClassOmitted(t *testing.T) {
	r := newTestReader(nil)
	td := &fakeType{attrs: metadata.TypeAttrPublic}
	got := r.attrs.SynthesizeTypeAttributes(td, unresolved.TypeKindClass)
	if a := findSynth(t, got, "StructLayoutAttribute"); a != nil {
		t.Errorf("auto-layout class must not emit StructLayoutAttribute, got %+v", a)
	}
}

func TestSynthesizeMethodAttributes_DllImportOmitsDefaults(t *testing.T) {
	r := newTestReader(nil)
	md := &fakeMethod{
		name: "MessageBox",
		pinvoke: &metadata.PInvokeInfo{
			ModuleName: "user32.dll",
			EntryPoint: "MessageBox", // equals the method's own name
			Attributes: 0,            // Winapi calling convention, unspecified charset
		},
	}
	got := r.attrs.SynthesizeMethodAttributes(md)
	a := findSynth(t, got, "DllImportAttribute")
	if a == nil {
		t.Fatalf("expected a DllImportAttribute")
	}
	for _, key := range []string{"EntryPoint", "CharSet", "CallingConvention"} {
		if _, ok := a.NamedArguments[key]; ok {
			t.Errorf("default %s must be omitted, got %v", key, a.NamedArguments[key])
		}
	}
}

func TestSynthesizeMethodAttributes_DllImportNonDefaults(t *testing.T) {
	r := newTestReader(nil)
	md := &fakeMethod{
		name: "SendMessage",
		pinvoke: &metadata.PInvokeInfo{
			ModuleName: "user32.dll",
			EntryPoint: "SendMessageW",
			Attributes: metadata.PInvokeCharSetUnicode | metadata.PInvokeCallConvCdecl |
				metadata.PInvokeBestFitDisabled | metadata.PInvokeThrowOnUnmappableEnabled,
		},
	}
	got := r.attrs.SynthesizeMethodAttributes(md)
	a := findSynth(t, got, "DllImportAttribute")
	if a == nil {
		t.Fatalf("expected a DllImportAttribute")
	}
	if a.NamedArguments["EntryPoint"] != "SendMessageW" {
		t.Errorf("EntryPoint = %v, want SendMessageW", a.NamedArguments["EntryPoint"])
	}
	if a.NamedArguments["CharSet"] != "Unicode" {
		t.Errorf("CharSet = %v, want Unicode", a.NamedArguments["CharSet"])
	}
	if a.NamedArguments["CallingConvention"] != "Cdecl" {
		t.Errorf("CallingConvention = %v, want Cdecl", a.NamedArguments["CallingConvention"])
	}
	if a.NamedArguments["BestFitMapping"] != false {
		t.Errorf("BestFitMapping = %v, want false", a.NamedArguments["BestFitMapping"])
	}
	if a.NamedArguments["ThrowOnUnmappableChar"] != true {
		t.Errorf("ThrowOnUnmappableChar = %v, want true", a.NamedArguments["ThrowOnUnmappableChar"])
	}
}

func TestSynthesizeMethodAttributes_PreserveSigAbsorbedIntoDllImport(t *testing.T) {
	r := newTestReader(nil)
	md := &fakeMethod{
		name:      "NativeCall",
		implAttrs: metadata.MethodImplPreserveSig,
		pinvoke:   &metadata.PInvokeInfo{ModuleName: "native.dll", EntryPoint: "NativeCall"},
	}
	got := r.attrs.SynthesizeMethodAttributes(md)
	if a := findSynth(t, got, "PreserveSigAttribute"); a != nil {
		t.Errorf("PreserveSig must be absorbed into DllImportAttribute, not re-emitted, got %+v", a)
	}
	dll := findSynth(t, got, "DllImportAttribute")
	if dll == nil {
		t.Fatalf("expected a DllImportAttribute")
	}
	if dll.NamedArguments["PreserveSig"] != true {
		t.Errorf("DllImportAttribute.PreserveSig = %v, want true", dll.NamedArguments["PreserveSig"])
	}
}

func TestSynthesizeMethodAttributes_PreserveSigStandaloneWithoutPInvoke(t *testing.T) {
	r := newTestReader(nil)
	md := &fakeMethod{name: "ManagedButPreserved", implAttrs: metadata.MethodImplPreserveSig}
	got := r.attrs.SynthesizeMethodAttributes(md)
	if a := findSynth(t, got, "PreserveSigAttribute"); a == nil {
		t.Errorf("expected a standalone PreserveSigAttribute when there is no DllImport to absorb it")
	}
}
