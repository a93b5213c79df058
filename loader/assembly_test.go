package loader

import (
	"context"
	"testing"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

type fakeModule struct {
	name       string
	location   string
	types      []metadata.TypeDefinition
	forwarders []metadata.TypeForwarder
}

func (m *fakeModule) Name() string                            { return m.name }
func (m *fakeModule) Location() string                        { return m.location }
func (m *fakeModule) Mvid() [16]byte                           { return [16]byte{} }
func (m *fakeModule) EntryPointToken() uint32                  { return 0 }
func (m *fakeModule) Assembly() *metadata.AssemblyInfo         { return nil }
func (m *fakeModule) ModuleAttributes() []metadata.CustomAttribute { return nil }
func (m *fakeModule) Types() []metadata.TypeDefinition         { return m.types }
func (m *fakeModule) TypeForwarders() []metadata.TypeForwarder { return m.forwarders }

func TestAssemblyDriver_TopLevelVisibilityFilter(t *testing.T) {
	opts := NewDefaultOptions()
	opts.IncludeInternalMembers = false
	d := newAssemblyDriver(unresolved.NewPool(), opts)

	mod := &fakeModule{
		name: "Test.dll",
		types: []metadata.TypeDefinition{
			&fakeType{namespace: "N", name: "PublicType", attrs: metadata.TypeAttrPublic},
			&fakeType{namespace: "N", name: "InternalType", attrs: metadata.TypeAttrNotPublic},
		},
	}

	asm, err := d.Load(context.Background(), mod)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(asm.Types()) != 1 {
		t.Fatalf("expected 1 visible top-level type, got %d", len(asm.Types()))
	}
	if asm.Types()[0].Name() != "PublicType" {
		t.Errorf("kept type = %q, want PublicType", asm.Types()[0].Name())
	}
}
