package loader

import "github.com/jprathore/clrmeta/metadata"

// fakeType, fakeMethod, fakeField, fakeProperty and fakeEvent are
// minimal metadata.TypeDefinition-family stand-ins used to exercise
// typeDefinitionReader and memberReader without a real metadata
// producer. Only the fields a given test cares about need to be set;
// the rest fall back to interface-friendly zero values.
type fakeType struct {
	token      uint32
	namespace  string
	name       string
	attrs      metadata.TypeAttributes
	baseType   metadata.TypeSignature
	interfaces []metadata.TypeSignature
	nested     []metadata.TypeDefinition
	declaring  metadata.TypeDefinition
	fields     []metadata.FieldDefinition
	methods    []metadata.MethodDefinition
	properties []metadata.PropertyDefinition
	events     []metadata.EventDefinition
	generic    []metadata.GenericParameter
	custom     []metadata.CustomAttribute
	security   []metadata.SecurityDeclaration
	layoutOK   bool
	layoutKind metadata.TypeAttributes
	packing    int
	classSize  int
}

func (t *fakeType) Token() uint32                                  { return t.token }
func (t *fakeType) Namespace() string                               { return t.namespace }
func (t *fakeType) Name() string                                    { return t.name }
func (t *fakeType) Attributes() metadata.TypeAttributes             { return t.attrs }
func (t *fakeType) BaseType() metadata.TypeSignature                { return t.baseType }
func (t *fakeType) Interfaces() []metadata.TypeSignature            { return t.interfaces }
func (t *fakeType) NestedTypes() []metadata.TypeDefinition          { return t.nested }
func (t *fakeType) DeclaringType() metadata.TypeDefinition          { return t.declaring }
func (t *fakeType) Fields() []metadata.FieldDefinition              { return t.fields }
func (t *fakeType) Methods() []metadata.MethodDefinition            { return t.methods }
func (t *fakeType) Properties() []metadata.PropertyDefinition       { return t.properties }
func (t *fakeType) Events() []metadata.EventDefinition              { return t.events }
func (t *fakeType) GenericParameters() []metadata.GenericParameter  { return t.generic }
func (t *fakeType) CustomAttributes() []metadata.CustomAttribute    { return t.custom }
func (t *fakeType) SecurityDeclarations() []metadata.SecurityDeclaration {
	return t.security
}
func (t *fakeType) Layout() (metadata.TypeAttributes, int, int, bool) {
	return t.layoutKind, t.packing, t.classSize, t.layoutOK
}

type fakeMethod struct {
	token       uint32
	name        string
	declaring   metadata.TypeDefinition
	attrs       metadata.MethodAttributes
	implAttrs   metadata.MethodImplAttributes
	semantics   metadata.MethodSemanticsAttributes
	sig         *metadata.MethodSignature
	params      []metadata.ParameterDefinition
	generic     []metadata.GenericParameter
	overrides   []metadata.MethodReference
	pinvoke     *metadata.PInvokeInfo
	custom      []metadata.CustomAttribute
	security    []metadata.SecurityDeclaration
}

func (m *fakeMethod) Token() uint32                             { return m.token }
func (m *fakeMethod) Name() string                              { return m.name }
func (m *fakeMethod) DeclaringType() metadata.TypeDefinition     { return m.declaring }
func (m *fakeMethod) Attributes() metadata.MethodAttributes      { return m.attrs }
func (m *fakeMethod) ImplAttributes() metadata.MethodImplAttributes {
	return m.implAttrs
}
func (m *fakeMethod) SemanticsAttributes() metadata.MethodSemanticsAttributes {
	return m.semantics
}
func (m *fakeMethod) Signature() *metadata.MethodSignature          { return m.sig }
func (m *fakeMethod) Parameters() []metadata.ParameterDefinition    { return m.params }
func (m *fakeMethod) GenericParameters() []metadata.GenericParameter { return m.generic }
func (m *fakeMethod) Overrides() []metadata.MethodReference          { return m.overrides }
func (m *fakeMethod) PInvoke() *metadata.PInvokeInfo                 { return m.pinvoke }
func (m *fakeMethod) CustomAttributes() []metadata.CustomAttribute   { return m.custom }
func (m *fakeMethod) SecurityDeclarations() []metadata.SecurityDeclaration {
	return m.security
}

type fakeField struct {
	token     uint32
	name      string
	attrs     metadata.FieldAttributes
	declaring metadata.TypeDefinition
	fieldType metadata.TypeSignature
	constant  *metadata.ConstantInfo
	offset    int
	hasOffset bool
	marshal   *metadata.MarshalInfo
	custom    []metadata.CustomAttribute
}

func (f *fakeField) Token() uint32                          { return f.token }
func (f *fakeField) Name() string                           { return f.name }
func (f *fakeField) Attributes() metadata.FieldAttributes   { return f.attrs }
func (f *fakeField) DeclaringType() metadata.TypeDefinition { return f.declaring }
func (f *fakeField) FieldType() metadata.TypeSignature      { return f.fieldType }
func (f *fakeField) Constant() *metadata.ConstantInfo       { return f.constant }
func (f *fakeField) Offset() (int, bool)                    { return f.offset, f.hasOffset }
func (f *fakeField) Marshal() *metadata.MarshalInfo         { return f.marshal }
func (f *fakeField) CustomAttributes() []metadata.CustomAttribute {
	return f.custom
}

type fakeParam struct {
	name     string
	sequence int
	attrs    metadata.ParamAttributes
	constant *metadata.ConstantInfo
	marshal  *metadata.MarshalInfo
	custom   []metadata.CustomAttribute
}

func (p *fakeParam) Name() string                        { return p.name }
func (p *fakeParam) Sequence() int                        { return p.sequence }
func (p *fakeParam) Attributes() metadata.ParamAttributes { return p.attrs }
func (p *fakeParam) Constant() *metadata.ConstantInfo     { return p.constant }
func (p *fakeParam) Marshal() *metadata.MarshalInfo       { return p.marshal }
func (p *fakeParam) CustomAttributes() []metadata.CustomAttribute {
	return p.custom
}

type fakeProperty struct {
	token     uint32
	name      string
	declaring metadata.TypeDefinition
	typ       metadata.TypeSignature
	index     []metadata.TypeSignature
	getter    metadata.MethodDefinition
	setter    metadata.MethodDefinition
	custom    []metadata.CustomAttribute
}

func (p *fakeProperty) Token() uint32                          { return p.token }
func (p *fakeProperty) Name() string                           { return p.name }
func (p *fakeProperty) DeclaringType() metadata.TypeDefinition  { return p.declaring }
func (p *fakeProperty) Type() metadata.TypeSignature            { return p.typ }
func (p *fakeProperty) IndexParameters() []metadata.TypeSignature {
	return p.index
}
func (p *fakeProperty) Getter() metadata.MethodDefinition { return p.getter }
func (p *fakeProperty) Setter() metadata.MethodDefinition { return p.setter }
func (p *fakeProperty) CustomAttributes() []metadata.CustomAttribute {
	return p.custom
}

type fakeEvent struct {
	token     uint32
	name      string
	declaring metadata.TypeDefinition
	typ       metadata.TypeSignature
	add       metadata.MethodDefinition
	remove    metadata.MethodDefinition
	invoke    metadata.MethodDefinition
	custom    []metadata.CustomAttribute
}

func (e *fakeEvent) Token() uint32                         { return e.token }
func (e *fakeEvent) Name() string                          { return e.name }
func (e *fakeEvent) DeclaringType() metadata.TypeDefinition { return e.declaring }
func (e *fakeEvent) EventType() metadata.TypeSignature      { return e.typ }
func (e *fakeEvent) AddMethod() metadata.MethodDefinition    { return e.add }
func (e *fakeEvent) RemoveMethod() metadata.MethodDefinition { return e.remove }
func (e *fakeEvent) InvokeMethod() metadata.MethodDefinition { return e.invoke }
func (e *fakeEvent) CustomAttributes() []metadata.CustomAttribute {
	return e.custom
}
