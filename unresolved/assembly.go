package unresolved

import "fmt"

// TypeForwarderKey identifies a forwarded top-level type by its
// namespace-qualified name and arity (spec.md §3, §8 scenario 6).
type TypeForwarderKey struct {
	Namespace string
	Name      string
	Arity     int
}

// Assembly is the frozen result of one LoadModule call (spec.md §3).
// It is built up during load by loader.assemblyDriver and must not be
// mutated after Freeze.
type Assembly struct {
	name       string
	location   string
	mvid       [16]byte
	entryPoint uint32

	assemblyAttributes []*Attribute
	moduleAttributes   []*Attribute
	types              []TypeDefinition
	forwarders         map[TypeForwarderKey]TypeReference

	frozen bool
}

// NewAssembly creates an Assembly builder. Callers append types and
// forwarders via AddType/AddForwarder, then call Freeze exactly once
// before returning it from LoadModule (spec.md §4.7 step 4).
func NewAssembly(name, location string, mvid [16]byte, entryPoint uint32) *Assembly {
	return &Assembly{
		name:       name,
		location:   location,
		mvid:       mvid,
		entryPoint: entryPoint,
		forwarders: make(map[TypeForwarderKey]TypeReference),
	}
}

func (a *Assembly) mustNotBeFrozen() {
	if a.frozen {
		panic("unresolved: mutation attempted on a frozen Assembly")
	}
}

// SetAttributes installs the assembly- and module-level attribute
// lists (spec.md §4.7 step 1).
func (a *Assembly) SetAttributes(assemblyAttrs, moduleAttrs []*Attribute) {
	a.mustNotBeFrozen()
	a.assemblyAttributes = assemblyAttrs
	a.moduleAttributes = moduleAttrs
}

// AddForwarder registers a type-forwarder entry (spec.md §4.7 step 2).
func (a *Assembly) AddForwarder(key TypeForwarderKey, target TypeReference) {
	a.mustNotBeFrozen()
	a.forwarders[key] = target
}

// AddType appends a top-level type definition in declaration order
// (spec.md §4.7 step 3).
func (a *Assembly) AddType(t TypeDefinition) {
	a.mustNotBeFrozen()
	a.types = append(a.types, t)
}

// Freeze is the terminal transition of spec.md §4.7 step 4: after this
// call the assembly's collections are read-only and Freeze itself
// panics if invoked twice.
func (a *Assembly) Freeze() {
	a.mustNotBeFrozen()
	a.frozen = true
}

func (a *Assembly) Frozen() bool { return a.frozen }

func (a *Assembly) Name() string     { return a.name }
func (a *Assembly) Location() string { return a.location }
func (a *Assembly) Mvid() [16]byte   { return a.mvid }

// IsExecutable reports whether the module declared an entry point.
func (a *Assembly) IsExecutable() bool { return a.entryPoint != 0 }
func (a *Assembly) EntryPointToken() uint32 { return a.entryPoint }

// AssemblyAttributes returns the assembly-level attribute list. The
// returned slice must be treated as read-only once the assembly is
// frozen.
func (a *Assembly) AssemblyAttributes() []*Attribute { return a.assemblyAttributes }

// ModuleAttributes returns the module-level attribute list.
func (a *Assembly) ModuleAttributes() []*Attribute { return a.moduleAttributes }

// Types returns the ordered list of top-level type definitions.
func (a *Assembly) Types() []TypeDefinition { return a.types }

// TypeForwarders returns the forwarded-type map.
func (a *Assembly) TypeForwarders() map[TypeForwarderKey]TypeReference { return a.forwarders }

// FindForwarder looks up a forwarder by namespace-qualified name and
// arity, returning (nil, false) when there is none.
func (a *Assembly) FindForwarder(namespace, name string, arity int) (TypeReference, bool) {
	ref, ok := a.forwarders[TypeForwarderKey{Namespace: namespace, Name: name, Arity: arity}]
	return ref, ok
}

func (a *Assembly) Id() string {
	return fmt.Sprintf("assembly:%s", a.name)
}
