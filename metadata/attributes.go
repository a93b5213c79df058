package metadata

// CustomAttribute is a decoded-enough CustomAttribute metadata row:
// the constructor is identified, but the argument blob is left
// undecoded (spec.md §4.3: "preserved as blob-backed records").
type CustomAttribute struct {
	Constructor MethodReference
	Blob        []byte
}

// SecurityDeclaration is a DeclSecurity metadata row, keyed by its
// action code (ECMA-335 §II.22.11 Action column).
type SecurityDeclaration struct {
	Action uint16
	Blob   []byte
}

// TypeForwarder is an ExportedType row whose implementation lives in
// another assembly (mdTypeAttributes.tdForwarder).
type TypeForwarder struct {
	Namespace string
	Name      string
	Arity     int
	Scope     AssemblyRefScope
}

// AssemblyInfo is the subset of the Assembly metadata table this
// loader synthesizes an attribute and identity fields from.
type AssemblyInfo struct {
	Name           string
	Version        [4]uint16
	Culture        string
	PublicKeyToken []byte
	Attributes     []CustomAttribute
}

// Module is the top-level object graph this loader consumes: one
// physical .dll/.exe's worth of metadata, already parsed. Producing
// this graph from bytes is out of scope for this package (spec.md §1).
type Module interface {
	Name() string
	Location() string
	Mvid() [16]byte
	EntryPointToken() uint32
	Assembly() *AssemblyInfo
	ModuleAttributes() []CustomAttribute
	// Types returns the top-level (non-nested) type definitions
	// declared in this module, in metadata declaration order.
	Types() []TypeDefinition
	TypeForwarders() []TypeForwarder
}

// AssemblyResolver locates the module backing a resolution scope.
// spec.md §6: the file-path entry point "opens the module with an
// assembly resolver that refuses to follow references" — dependencies
// are never chased transitively by this loader.
type AssemblyResolver interface {
	Resolve(scope AssemblyRefScope) (Module, error)
}

// NonFollowingResolver is the AssemblyResolver used by
// Loader.LoadAssemblyFile: it always refuses, by design.
type NonFollowingResolver struct{}

func (NonFollowingResolver) Resolve(scope AssemblyRefScope) (Module, error) {
	return nil, ErrAssemblyResolutionDisabled
}
