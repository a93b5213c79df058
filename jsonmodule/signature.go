package jsonmodule

import "github.com/jprathore/clrmeta/metadata"

var primitiveNames = map[string]metadata.ElementType{
	"void":       metadata.ElementTypeVoid,
	"bool":       metadata.ElementTypeBoolean,
	"char":       metadata.ElementTypeChar,
	"sbyte":      metadata.ElementTypeSByte,
	"byte":       metadata.ElementTypeByte,
	"int16":      metadata.ElementTypeInt16,
	"uint16":     metadata.ElementTypeUInt16,
	"int32":      metadata.ElementTypeInt32,
	"uint32":     metadata.ElementTypeUInt32,
	"int64":      metadata.ElementTypeInt64,
	"uint64":     metadata.ElementTypeUInt64,
	"single":     metadata.ElementTypeSingle,
	"double":     metadata.ElementTypeDouble,
	"string":     metadata.ElementTypeString,
	"object":     metadata.ElementTypeObject,
	"intptr":     metadata.ElementTypeIntPtr,
	"uintptr":    metadata.ElementTypeUIntPtr,
	"typedbyref": metadata.ElementTypeTypedByRef,
}

// wireSignature is the tagged-union JSON encoding of metadata.TypeSignature.
// It covers every case spec.md §4.2 names; element, argument, modifier
// and function-pointer nodes decode recursively to any depth.
type wireSignature struct {
	Kind string `json:"kind"`

	Primitive string `json:"primitive,omitempty"`

	Element *wireSignature `json:"element,omitempty"`
	Rank    int            `json:"rank,omitempty"`

	Method   bool `json:"method,omitempty"`
	Position int  `json:"position,omitempty"`

	Open *wireSignature  `json:"open,omitempty"`
	Args []wireSignature `json:"args,omitempty"`

	Required bool           `json:"required,omitempty"`
	Modifier *wireSignature `json:"modifier,omitempty"`

	FuncSig *wireMethodSignature `json:"funcSig,omitempty"`

	Token     string         `json:"token,omitempty"`
	Assembly  string         `json:"assembly,omitempty"`
	Namespace string         `json:"namespace,omitempty"`
	Name      string         `json:"name,omitempty"`
	Nested    *wireSignature `json:"nested,omitempty"`
	ValueType *bool          `json:"valueType,omitempty"`
}

type wireMethodSignature struct {
	CallingConvention     uint8           `json:"callingConvention"`
	HasThis               bool            `json:"hasThis"`
	GenericParameterCount int             `json:"genericParameterCount"`
	ReturnType            wireSignature   `json:"returnType"`
	ParameterTypes        []wireSignature `json:"parameterTypes"`
	VarArgIndex           int             `json:"varArgIndex"`
}

func (m *wireMethodSignature) toMethodSignature(d *document) *metadata.MethodSignature {
	if m == nil {
		return nil
	}
	params := make([]metadata.TypeSignature, len(m.ParameterTypes))
	for i, p := range m.ParameterTypes {
		params[i] = p.toSignature(d)
	}
	return &metadata.MethodSignature{
		CallingConvention:     metadata.CallingConvention(m.CallingConvention),
		HasThis:               m.HasThis,
		GenericParameterCount: m.GenericParameterCount,
		ReturnType:            m.ReturnType.toSignature(d),
		ParameterTypes:        params,
		VarArgIndex:           m.VarArgIndex,
	}
}

// toSignature is nil-safe: an absent (zero-value) wireSignature has an
// empty Kind and decodes to a nil metadata.TypeSignature, matching
// e.g. FieldDefinition.Constant()'s "no such field" convention holding
// for unset return types on non-generic contexts.
func (s *wireSignature) toSignature(d *document) metadata.TypeSignature {
	if s == nil || s.Kind == "" {
		return nil
	}
	switch s.Kind {
	case "primitive":
		return metadata.PrimitiveSignature{Kind: primitiveNames[s.Primitive]}
	case "pointer":
		return metadata.PointerSignature{Element: s.Element.toSignature(d)}
	case "byref":
		return metadata.ByRefSignature{Element: s.Element.toSignature(d)}
	case "array":
		return metadata.ArraySignature{Element: s.Element.toSignature(d), Rank: s.Rank}
	case "typeparam":
		return metadata.TypeParameterSignature{IsMethodParameter: s.Method, Position: s.Position}
	case "geninst":
		args := make([]metadata.TypeSignature, len(s.Args))
		for i := range s.Args {
			args[i] = s.Args[i].toSignature(d)
		}
		return metadata.GenericInstanceSignature{GenericType: s.Open.toTypeDefOrRef(d), Arguments: args}
	case "modifier":
		return metadata.ModifierSignature{Required: s.Required, Modifier: s.Modifier.toTypeDefOrRef(d), Element: s.Element.toSignature(d)}
	case "pinned":
		return metadata.PinnedSignature{Element: s.Element.toSignature(d)}
	case "funcptr":
		return metadata.FunctionPointerSignature{Signature: s.FuncSig.toMethodSignature(d)}
	case "sentinel":
		return metadata.SentinelSignature{}
	case "typedef", "typeref":
		return s.toTypeDefOrRef(d)
	default:
		return nil
	}
}

// toTypeDefOrRef resolves a "typedef" (same-module, by token) or
// "typeref" (elsewhere, by name and scope) signature node. Any other
// kind here indicates a malformed fixture; it degrades to an unnamed
// TypeReferenceRow rather than panicking, mirroring loader/typeref_builder.go's
// own tolerance of malformed input over the wire.
func (s *wireSignature) toTypeDefOrRef(d *document) metadata.TypeDefOrRefSignature {
	if s == nil {
		return metadata.TypeDefOrRefSignature{}
	}
	if s.Kind == "typedef" {
		if t, ok := d.byToken[parseToken(s.Token)]; ok {
			return metadata.TypeDefOrRefSignature{Definition: t, ValueTypeHint: s.ValueType}
		}
	}
	var scope metadata.ResolutionScope = metadata.CurrentModuleScope{}
	switch {
	case s.Nested != nil:
		nestedRef := s.Nested.toTypeDefOrRef(d)
		scope = metadata.NestedTypeScope{DeclaringType: nestedRef.Reference}
	case s.Assembly != "":
		scope = metadata.AssemblyRefScope{AssemblyName: s.Assembly}
	}
	return metadata.TypeDefOrRefSignature{
		Reference:     &metadata.TypeReferenceRow{Scope: scope, Namespace: s.Namespace, Name: s.Name},
		ValueTypeHint: s.ValueType,
	}
}
