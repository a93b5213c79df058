package unresolved

// TypeKind is the semantic kind a type definition was classified as
// during step 3 of the type-definition reader (spec.md §4.5), in the
// classification priority order: interface > enum > struct > delegate
// > module > class.
type TypeKind uint8

const (
	TypeKindClass TypeKind = iota
	TypeKindStruct
	TypeKindInterface
	TypeKindEnum
	TypeKindDelegate
	TypeKindModule
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindClass:
		return "class"
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindEnum:
		return "enum"
	case TypeKindDelegate:
		return "delegate"
	case TypeKindModule:
		return "module"
	default:
		return "unknown"
	}
}

// TypeModifiers are the non-accessibility modifiers a type definition
// carries (spec.md §3).
type TypeModifiers uint8

const (
	TypeModifierNone TypeModifiers = 0
	TypeModifierSealed TypeModifiers = 1 << iota
	TypeModifierAbstract TypeModifiers = 1 << iota
	TypeModifierStatic   TypeModifiers = 1 << iota
)

func (m TypeModifiers) Has(bit TypeModifiers) bool { return m&bit == bit }

// TypeParameter is a generic parameter owned by a type definition or a
// method (spec.md §3, invariant "position equals index in owner's
// parameter list").
type TypeParameter struct {
	Name        string
	Position    int
	Kind        TypeParameterKind
	Variance    Variance
	Constraints []TypeReference
	Attributes  []*Attribute
	// ReferenceTypeConstraint, ValueTypeConstraint and
	// DefaultConstructorConstraint mirror the three special constraint
	// bits GenericParameterAttributes carries outside the Constraints
	// list itself.
	ReferenceTypeConstraint     bool
	ValueTypeConstraint         bool
	DefaultConstructorConstraint bool
}

// Variance is the declared variance of a generic type parameter.
type Variance uint8

const (
	VarianceNone Variance = iota
	VarianceCovariant
	VarianceContravariant
)

// TypeDefinition is the frozen description of one CLI type: a class,
// struct, interface, enum, delegate or module (spec.md §3). It is
// implemented by an eager, fully-populated struct and by a lazy proxy
// that defers BaseTypes/NestedTypes/Members to first access
// (spec.md §4.6) — both live in package loader, which is the only
// place with enough context (the metadata graph, the pool, the load
// options) to build one.
type TypeDefinition interface {
	Entity

	Namespace() string
	Name() string
	// FullName is Namespace + "." + Name, or just Name when Namespace
	// is empty.
	FullName() string
	Token() uint32
	Kind() TypeKind
	Accessibility() Accessibility
	Modifiers() TypeModifiers
	TypeParameters() []*TypeParameter
	BaseTypes() []TypeReference
	NestedTypes() []TypeDefinition
	Members() []Member
	Attributes() []*Attribute
	HasExtensionMethods() bool
	AddDefaultConstructorIfRequired() bool
}
