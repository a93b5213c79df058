package metadata

// TypeSignature is the recursive grammar a type reference is built
// from: primitives, pointers, by-refs, arrays, generic instances, type
// parameters, modifiers, pinned locals, function pointers and the
// vararg sentinel. Every concrete case named in spec.md §4.2 has a
// corresponding Go type here.
type TypeSignature interface {
	isTypeSignature()
}

// PrimitiveSignature is a built-in element type (bool, intN, string...).
type PrimitiveSignature struct {
	Kind ElementType
}

func (PrimitiveSignature) isTypeSignature() {}

// PointerSignature is `T*`.
type PointerSignature struct {
	Element TypeSignature
}

func (PointerSignature) isTypeSignature() {}

// ByRefSignature is `T&` (ref/out/in parameters and by-ref returns).
type ByRefSignature struct {
	Element TypeSignature
}

func (ByRefSignature) isTypeSignature() {}

// ArraySignature covers both SZARRAY (Rank == 0, meaning vector) and
// general multi-dimensional ARRAY (Rank > 0).
type ArraySignature struct {
	Element TypeSignature
	Rank    int
}

func (ArraySignature) isTypeSignature() {}

// TypeParameterSignature is a generic Var (type-level) or MVar
// (method-level) reference by position.
type TypeParameterSignature struct {
	IsMethodParameter bool
	Position          int
}

func (TypeParameterSignature) isTypeSignature() {}

// GenericInstanceSignature is `OpenType<Args...>`.
type GenericInstanceSignature struct {
	GenericType TypeDefOrRefSignature
	Arguments   []TypeSignature
}

func (GenericInstanceSignature) isTypeSignature() {}

// ModifierSignature is a CMOD_REQD or CMOD_OPT wrapper.
type ModifierSignature struct {
	Required bool
	Modifier TypeDefOrRefSignature
	Element  TypeSignature
}

func (ModifierSignature) isTypeSignature() {}

// PinnedSignature marks a pinned local's declared type.
type PinnedSignature struct {
	Element TypeSignature
}

func (PinnedSignature) isTypeSignature() {}

// FunctionPointerSignature is `method Sig *`; unrepresentable in the
// unresolved type system and replaced by a native-integer reference.
type FunctionPointerSignature struct {
	Signature *MethodSignature
}

func (FunctionPointerSignature) isTypeSignature() {}

// SentinelSignature marks the vararg boundary in a signature's
// parameter list.
type SentinelSignature struct{}

func (SentinelSignature) isTypeSignature() {}

// TypeDefOrRefSignature names a type by TypeDef (defined in the
// module being loaded) or TypeRef (defined elsewhere, possibly nested).
// Exactly one of Definition or Reference is non-nil.
type TypeDefOrRefSignature struct {
	Definition TypeDefinition
	Reference  *TypeReferenceRow
	// ValueTypeHint is non-nil when this occurrence was tagged
	// ELEMENT_TYPE_VALUETYPE or ELEMENT_TYPE_CLASS at the use site (a
	// method signature or standalone TypeSpec), which is the only
	// context spec.md §4.2 says IsValueType can be trusted from. It is
	// nil for a bare row with no such tag.
	ValueTypeHint *bool
}

func (TypeDefOrRefSignature) isTypeSignature() {}

// ResolutionScope names where a TypeReferenceRow's name is looked up.
type ResolutionScope interface {
	isResolutionScope()
}

// CurrentModuleScope means "defined in the module being loaded" —
// spec.md §4.2 case 11's "or CurrentAssembly if the scope is the
// module being loaded or null".
type CurrentModuleScope struct{}

func (CurrentModuleScope) isResolutionScope() {}

// AssemblyRefScope names another assembly by its display name.
type AssemblyRefScope struct {
	AssemblyName string
}

func (AssemblyRefScope) isResolutionScope() {}

// NestedTypeScope means the TypeReferenceRow names a type nested
// inside another TypeReferenceRow.
type NestedTypeScope struct {
	DeclaringType *TypeReferenceRow
}

func (NestedTypeScope) isResolutionScope() {}

// TypeReferenceRow is a TypeRef metadata row: a name resolved against
// a scope, not (yet) bound to a TypeDefinition.
type TypeReferenceRow struct {
	Scope     ResolutionScope
	Namespace string
	Name      string
}

// MethodSignature is the shape of a method's signature: return type,
// parameter types (positional, matching metadata.Parameter.Sequence-1),
// calling convention and generic arity.
type MethodSignature struct {
	CallingConvention     CallingConvention
	HasThis               bool
	GenericParameterCount int
	ReturnType            TypeSignature
	ParameterTypes        []TypeSignature
	// VarArgIndex, if >= 0, is the position at which a SentinelSignature
	// appears in ParameterTypes (i.e. the vararg boundary).
	VarArgIndex int
}
