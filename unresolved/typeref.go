package unresolved

// TypeReference is any of the recursive shapes spec.md §3 names for an
// unresolved reference to a type: a known primitive, a compound
// constructor over another reference, a positional type-parameter
// reference, or a named/nested/token-based reference to a type
// defined elsewhere.
type TypeReference interface {
	// IsReferenceType reports the CLI IsValueType-derived flag recorded
	// for named/nested references when the builder ran with
	// isFromSignature set (spec.md §4.2); other kinds answer directly.
	IsReferenceType() (isRef bool, known bool)
	isTypeReference()
}

// KnownTypeReference is one of the fixed singleton references: the
// CLI primitives, void, object, dynamic, arglist and unknown. There is
// exactly one instance per kind (see singletons.go); loader code must
// never allocate a second KnownTypeReference for the same kind.
type KnownTypeReference struct {
	Name string
}

func (KnownTypeReference) isTypeReference() {}
func (k KnownTypeReference) IsReferenceType() (bool, bool) {
	switch k.Name {
	case "object", "dynamic", "string":
		return true, true
	case "void", "unknown", "arglist":
		return false, false
	default:
		return false, true // numeric/bool primitives are value types
	}
}

// PointerType is `T*`.
type PointerType struct {
	Element TypeReference
}

func (PointerType) isTypeReference()              {}
func (PointerType) IsReferenceType() (bool, bool) { return false, true }

// ByReferenceType is `ref T` / `T&`.
type ByReferenceType struct {
	Element TypeReference
}

func (ByReferenceType) isTypeReference()              {}
func (ByReferenceType) IsReferenceType() (bool, bool) { return false, false }

// ArrayType is a vector (Rank == 1, SZARRAY) or a general
// multi-dimensional array.
type ArrayType struct {
	Element TypeReference
	Rank    int
}

func (ArrayType) isTypeReference()              {}
func (ArrayType) IsReferenceType() (bool, bool) { return true, true }

// ParameterizedType is a closed or open generic instantiation,
// `OpenType<Args...>`. A System.ValueTuple instantiation is represented
// as a TupleType instead, unless tuple flattening is disabled.
type ParameterizedType struct {
	GenericType TypeReference
	Arguments   []TypeReference
}

func (ParameterizedType) isTypeReference() {}
func (p ParameterizedType) IsReferenceType() (bool, bool) {
	return p.GenericType.IsReferenceType()
}

// TupleType is the flattened representation of a System.ValueTuple
// chain (spec.md §4.2.1): Elements holds every leaf type in order,
// Names the positional element name recorded for each (empty string
// when unnamed).
type TupleType struct {
	Elements []TypeReference
	Names    []string
}

func (TupleType) isTypeReference()              {}
func (TupleType) IsReferenceType() (bool, bool) { return false, true } // ValueTuple is always a struct

// TypeParameterKind distinguishes a type-level generic parameter (Var)
// from a method-level one (MVar).
type TypeParameterKind uint8

const (
	TypeParameterKindClass TypeParameterKind = iota
	TypeParameterKindMethod
)

// TypeParameterReference is a reference to a generic parameter by
// (kind, position), spec.md §4.2 case 3.
type TypeParameterReference struct {
	Kind     TypeParameterKind
	Position int
}

func (TypeParameterReference) isTypeReference()              {}
func (TypeParameterReference) IsReferenceType() (bool, bool) { return false, false }

// NamedTypeReference names a type in another assembly (or the current
// one, when Assembly is empty) by namespace/name/arity.
type NamedTypeReference struct {
	Assembly        string // "" means CurrentAssembly
	Namespace       string
	Name            string
	Arity           int
	isRefType       bool
	isRefTypeKnown  bool
}

func NewNamedTypeReference(assembly, ns, name string, arity int, isRefType bool, isRefTypeKnown bool) *NamedTypeReference {
	return &NamedTypeReference{Assembly: assembly, Namespace: ns, Name: name, Arity: arity, isRefType: isRefType, isRefTypeKnown: isRefTypeKnown}
}

func (*NamedTypeReference) isTypeReference() {}
func (n *NamedTypeReference) IsReferenceType() (bool, bool) {
	return n.isRefType, n.isRefTypeKnown
}

// NestedTypeReference names a type nested inside another type
// reference, spec.md §4.2 case 12.
type NestedTypeReference struct {
	DeclaringType  TypeReference
	Name           string
	Arity          int
	isRefType      bool
	isRefTypeKnown bool
}

func NewNestedTypeReference(declaring TypeReference, name string, arity int, isRefType, isRefTypeKnown bool) *NestedTypeReference {
	return &NestedTypeReference{DeclaringType: declaring, Name: name, Arity: arity, isRefType: isRefType, isRefTypeKnown: isRefTypeKnown}
}

func (*NestedTypeReference) isTypeReference() {}
func (n *NestedTypeReference) IsReferenceType() (bool, bool) {
	return n.isRefType, n.isRefTypeKnown
}

// TypeDefinitionTokenReference is spec.md §4.2 case 10: a raw
// TypeDefinition from the module being loaded, referenced by token so
// it can be resolved within the owning assembly without re-walking the
// type-definition reader.
type TypeDefinitionTokenReference struct {
	Token     uint32
	Namespace string
	Name      string
}

func (*TypeDefinitionTokenReference) isTypeReference() {}
func (*TypeDefinitionTokenReference) IsReferenceType() (bool, bool) {
	return false, false // resolved later within the owning assembly
}
