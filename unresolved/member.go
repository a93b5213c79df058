package unresolved

// MemberKind discriminates the four concrete Member shapes.
type MemberKind uint8

const (
	MemberKindMethod MemberKind = iota
	MemberKindField
	MemberKindProperty
	MemberKindEvent
)

// MemberModifiers are the non-accessibility modifiers a member can
// carry. Not every bit applies to every MemberKind (e.g. ReadOnly and
// Volatile only ever appear on Field).
type MemberModifiers uint16

const (
	ModifierNone MemberModifiers = 0
	ModifierStatic MemberModifiers = 1 << iota
	ModifierAbstract MemberModifiers = 1 << iota
	ModifierVirtual MemberModifiers = 1 << iota
	ModifierOverride MemberModifiers = 1 << iota
	ModifierSealed MemberModifiers = 1 << iota
	ModifierReadOnly MemberModifiers = 1 << iota
	ModifierVolatile MemberModifiers = 1 << iota
	ModifierConst MemberModifiers = 1 << iota
)

func (m MemberModifiers) Has(bit MemberModifiers) bool { return m&bit == bit }

// Member is the interface every method, field, property and event
// satisfies (spec.md §3).
type Member interface {
	Entity

	Kind() MemberKind
	DeclaringType() TypeDefinition
	Name() string
	ReturnType() TypeReference
	Accessibility() Accessibility
	Modifiers() MemberModifiers
	Attributes() []*Attribute
	Token() uint32
}

// memberBase holds the fields common to every Member kind.
type memberBase struct {
	declaringType TypeDefinition
	name          string
	returnType    TypeReference
	accessibility Accessibility
	modifiers     MemberModifiers
	attributes    []*Attribute
	token         uint32
}

func (m memberBase) DeclaringType() TypeDefinition { return m.declaringType }
func (m memberBase) Name() string                  { return m.name }
func (m memberBase) ReturnType() TypeReference      { return m.returnType }
func (m memberBase) Accessibility() Accessibility   { return m.accessibility }
func (m memberBase) Modifiers() MemberModifiers     { return m.modifiers }
func (m memberBase) Attributes() []*Attribute       { return m.attributes }
func (m memberBase) Token() uint32                  { return m.token }
func (m memberBase) Id() string                     { return memberId(m.token, m.name) }

// Method is a translated MethodDefinition (spec.md §4.4). Accessor
// methods that back a Property or Event are also represented as
// *Method (via Property.Getter/Setter, Event.AddAccessor/...), but are
// never listed directly in a TypeDefinition's Members().
type Method struct {
	memberBase
	TypeParameters                []*TypeParameter
	Parameters                    []*Parameter
	IsExtensionMethod             bool
	ExplicitInterfaceImplementations []TypeReference
}

func NewMethod(declaringType TypeDefinition, token uint32, name string, returnType TypeReference, accessibility Accessibility, modifiers MemberModifiers, attributes []*Attribute) *Method {
	return &Method{memberBase: memberBase{declaringType: declaringType, name: name, returnType: returnType, accessibility: accessibility, modifiers: modifiers, attributes: attributes, token: token}}
}

func (*Method) Kind() MemberKind { return MemberKindMethod }

// Field is a translated FieldDefinition (spec.md §4.4).
type Field struct {
	memberBase
	Constant *ConstantValue
}

func NewField(declaringType TypeDefinition, token uint32, name string, fieldType TypeReference, accessibility Accessibility, modifiers MemberModifiers, attributes []*Attribute, constant *ConstantValue) *Field {
	return &Field{memberBase: memberBase{declaringType: declaringType, name: name, returnType: fieldType, accessibility: accessibility, modifiers: modifiers, attributes: attributes, token: token}, Constant: constant}
}

func (*Field) Kind() MemberKind { return MemberKindField }

// Property is a translated PropertyDefinition. Indexers are marked by
// the IsIndexer flag; Kind() returns MemberKindProperty for both.
type Property struct {
	memberBase
	IsIndexer                    bool
	IndexParameters              []*Parameter
	Getter                       *Method
	Setter                       *Method
	ExplicitInterfaceImplementations []TypeReference
}

func NewProperty(declaringType TypeDefinition, token uint32, name string, propType TypeReference, accessibility Accessibility, modifiers MemberModifiers, attributes []*Attribute) *Property {
	return &Property{memberBase: memberBase{declaringType: declaringType, name: name, returnType: propType, accessibility: accessibility, modifiers: modifiers, attributes: attributes, token: token}}
}

func (*Property) Kind() MemberKind { return MemberKindProperty }

// Event is a translated EventDefinition.
type Event struct {
	memberBase
	AddAccessor                  *Method
	RemoveAccessor               *Method
	InvokeAccessor               *Method
	ExplicitInterfaceImplementations []TypeReference
}

func NewEvent(declaringType TypeDefinition, token uint32, name string, eventType TypeReference, accessibility Accessibility, modifiers MemberModifiers, attributes []*Attribute) *Event {
	return &Event{memberBase: memberBase{declaringType: declaringType, name: name, returnType: eventType, accessibility: accessibility, modifiers: modifiers, attributes: attributes, token: token}}
}

func (*Event) Kind() MemberKind { return MemberKindEvent }
