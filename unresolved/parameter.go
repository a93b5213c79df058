package unresolved

// ParameterReferenceKind is the ref/out/in classification of a
// by-reference parameter (spec.md §4.4).
type ParameterReferenceKind uint8

const (
	ParameterKindValue ParameterReferenceKind = iota
	ParameterKindRef
	ParameterKindOut
	ParameterKindIn
)

// Parameter is a translated ParameterDefinition (spec.md §3).
type Parameter struct {
	Name          string
	Type          TypeReference
	ReferenceKind ParameterReferenceKind
	IsParamsArray bool
	DefaultValue  *ConstantValue // nil unless the parameter is optional
	Attributes    []*Attribute
}
