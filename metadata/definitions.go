package metadata

// AttributeProvider is implemented by every metadata entity that can
// carry custom attributes.
type AttributeProvider interface {
	CustomAttributes() []CustomAttribute
}

// TypeDefinition is a TypeDef metadata row: a type declared in the
// module being loaded (as opposed to a TypeReferenceRow naming a type
// declared elsewhere).
type TypeDefinition interface {
	AttributeProvider

	Token() uint32
	Namespace() string
	Name() string
	Attributes() TypeAttributes
	BaseType() TypeSignature // nil for interfaces and System.Object itself
	Interfaces() []TypeSignature
	NestedTypes() []TypeDefinition
	DeclaringType() TypeDefinition // non-nil when this type is itself nested
	Fields() []FieldDefinition
	Methods() []MethodDefinition
	Properties() []PropertyDefinition
	Events() []EventDefinition
	GenericParameters() []GenericParameter
	SecurityDeclarations() []SecurityDeclaration
	Layout() (kind TypeAttributes, packingSize, classSize int, ok bool)
}

// GenericParameter is a GenericParam metadata row, owned by either a
// TypeDefinition or a MethodDefinition.
type GenericParameter interface {
	AttributeProvider

	Name() string
	Position() int
	Attributes() GenericParameterAttributes
	Constraints() []TypeSignature
}

// FieldDefinition is a Field metadata row.
type FieldDefinition interface {
	AttributeProvider

	Token() uint32
	Name() string
	Attributes() FieldAttributes
	DeclaringType() TypeDefinition
	FieldType() TypeSignature
	// Constant returns the field's Constant table entry, or nil if it
	// has none (including when the "constant" is only expressible via
	// DecimalConstantAttribute).
	Constant() *ConstantInfo
	// Offset returns the FieldLayout offset and true, or (0, false).
	Offset() (int, bool)
	Marshal() *MarshalInfo
}

// ParameterDefinition is a Param metadata row. Sequence 0 names the
// return parameter (used for return-value attributes/marshaling);
// sequence N>=1 is the Nth declared parameter.
type ParameterDefinition interface {
	AttributeProvider

	Name() string
	Sequence() int
	Attributes() ParamAttributes
	Constant() *ConstantInfo
	Marshal() *MarshalInfo
}

// MethodDefinition is a MethodDef metadata row.
type MethodDefinition interface {
	AttributeProvider

	Token() uint32
	Name() string
	DeclaringType() TypeDefinition
	Attributes() MethodAttributes
	ImplAttributes() MethodImplAttributes
	SemanticsAttributes() MethodSemanticsAttributes
	Signature() *MethodSignature
	Parameters() []ParameterDefinition
	GenericParameters() []GenericParameter
	// Overrides lists the MethodImpl table's MethodDeclaration entries
	// for this method body (explicit interface implementations).
	Overrides() []MethodReference
	PInvoke() *PInvokeInfo
	SecurityDeclarations() []SecurityDeclaration
}

// PropertyDefinition is a Property metadata row.
type PropertyDefinition interface {
	AttributeProvider

	Token() uint32
	Name() string
	DeclaringType() TypeDefinition
	Type() TypeSignature
	// IndexParameters holds the indexer's index parameter types, empty
	// for non-indexer properties.
	IndexParameters() []TypeSignature
	Getter() MethodDefinition
	Setter() MethodDefinition
}

// EventDefinition is an Event metadata row.
type EventDefinition interface {
	AttributeProvider

	Token() uint32
	Name() string
	DeclaringType() TypeDefinition
	EventType() TypeSignature
	AddMethod() MethodDefinition
	RemoveMethod() MethodDefinition
	InvokeMethod() MethodDefinition
}

// MethodReference is a minimal method descriptor used for MethodImpl
// overrides and for a CustomAttribute's constructor, where the target
// is not necessarily a TypeDefinition owned by this module.
type MethodReference struct {
	DeclaringType TypeSignature
	Name          string
	ParameterTypes []TypeSignature
}

// ConstantInfo is a decoded Constant table entry.
type ConstantInfo struct {
	Type  ElementType
	Value any
}

// MarshalInfo is a decoded FieldMarshal blob.
type MarshalInfo struct {
	NativeType        string
	ArrayElementType  string
	ArraySizeParamIndex int
	ArraySizeConst      int
	HasArraySizeParamIndex bool
	HasArraySizeConst      bool
	SafeArraySubType    string
	CustomMarshalerType string
	MarshalCookie       string
	IidParameterIndex   int
	HasIidParameterIndex bool
}

// PInvokeInfo is a decoded ImplMap table entry.
type PInvokeInfo struct {
	ModuleName  string
	EntryPoint  string
	Attributes  PInvokeAttributes
}
