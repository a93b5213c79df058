package jsonmodule

import "github.com/jprathore/clrmeta/metadata"

type wireLayout struct {
	Kind        uint32 `json:"kind"`
	PackingSize int    `json:"packingSize"`
	ClassSize   int    `json:"classSize"`
}

type wireType struct {
	TokenField      string           `json:"token"`
	NamespaceField  string           `json:"namespace"`
	NameField       string           `json:"name"`
	AttrsField      uint32           `json:"attributes"`
	BaseTypeField   wireSignature    `json:"baseType"`
	InterfacesField []wireSignature  `json:"interfaces"`
	NestedField     []*wireType      `json:"nestedTypes"`
	FieldsField     []*wireField     `json:"fields"`
	MethodsField    []*wireMethod    `json:"methods"`
	PropertiesField []*wireProperty  `json:"properties"`
	EventsField     []*wireEvent     `json:"events"`
	GenericParamsField []*wireGenericParam `json:"genericParameters"`
	SecurityField   []wireSecurity   `json:"securityDeclarations"`
	LayoutField     *wireLayout      `json:"layout"`
	CustomAttrs     []wireAttribute  `json:"customAttributes"`

	doc            *document
	declaring      *wireType
	methodsByToken map[uint32]*wireMethod
}

func (t *wireType) Token() uint32               { return parseToken(t.TokenField) }
func (t *wireType) Namespace() string           { return t.NamespaceField }
func (t *wireType) Name() string                { return t.NameField }
func (t *wireType) Attributes() metadata.TypeAttributes { return metadata.TypeAttributes(t.AttrsField) }
func (t *wireType) BaseType() metadata.TypeSignature { return t.BaseTypeField.toSignature(t.doc) }
func (t *wireType) DeclaringType() metadata.TypeDefinition {
	if t.declaring == nil {
		return nil
	}
	return t.declaring
}
func (t *wireType) CustomAttributes() []metadata.CustomAttribute { return convertAttrs(t.doc, t.CustomAttrs) }
func (t *wireType) SecurityDeclarations() []metadata.SecurityDeclaration { return convertSecurity(t.SecurityField) }

func (t *wireType) Interfaces() []metadata.TypeSignature {
	out := make([]metadata.TypeSignature, len(t.InterfacesField))
	for i := range t.InterfacesField {
		out[i] = t.InterfacesField[i].toSignature(t.doc)
	}
	return out
}

func (t *wireType) NestedTypes() []metadata.TypeDefinition {
	out := make([]metadata.TypeDefinition, len(t.NestedField))
	for i, n := range t.NestedField {
		out[i] = n
	}
	return out
}

func (t *wireType) Fields() []metadata.FieldDefinition {
	out := make([]metadata.FieldDefinition, len(t.FieldsField))
	for i, f := range t.FieldsField {
		out[i] = f
	}
	return out
}

func (t *wireType) Methods() []metadata.MethodDefinition {
	out := make([]metadata.MethodDefinition, len(t.MethodsField))
	for i, m := range t.MethodsField {
		out[i] = m
	}
	return out
}

func (t *wireType) Properties() []metadata.PropertyDefinition {
	out := make([]metadata.PropertyDefinition, len(t.PropertiesField))
	for i, p := range t.PropertiesField {
		out[i] = p
	}
	return out
}

func (t *wireType) Events() []metadata.EventDefinition {
	out := make([]metadata.EventDefinition, len(t.EventsField))
	for i, e := range t.EventsField {
		out[i] = e
	}
	return out
}

func (t *wireType) GenericParameters() []metadata.GenericParameter {
	out := make([]metadata.GenericParameter, len(t.GenericParamsField))
	for i, gp := range t.GenericParamsField {
		out[i] = gp
	}
	return out
}

func (t *wireType) Layout() (metadata.TypeAttributes, int, int, bool) {
	if t.LayoutField == nil {
		return 0, 0, 0, false
	}
	return metadata.TypeAttributes(t.LayoutField.Kind), t.LayoutField.PackingSize, t.LayoutField.ClassSize, true
}

func (t *wireType) findMethod(tok string) *wireMethod {
	if tok == "" || t.methodsByToken == nil {
		return nil
	}
	return t.methodsByToken[parseToken(tok)]
}

type wireGenericParam struct {
	NameField        string          `json:"name"`
	PositionField    int             `json:"position"`
	AttrsField       uint16          `json:"attributes"`
	ConstraintsField []wireSignature `json:"constraints"`
	CustomAttrs      []wireAttribute `json:"customAttributes"`

	doc *document
}

func (g *wireGenericParam) Name() string     { return g.NameField }
func (g *wireGenericParam) Position() int    { return g.PositionField }
func (g *wireGenericParam) Attributes() metadata.GenericParameterAttributes {
	return metadata.GenericParameterAttributes(g.AttrsField)
}
func (g *wireGenericParam) Constraints() []metadata.TypeSignature {
	out := make([]metadata.TypeSignature, len(g.ConstraintsField))
	for i := range g.ConstraintsField {
		out[i] = g.ConstraintsField[i].toSignature(g.doc)
	}
	return out
}
func (g *wireGenericParam) CustomAttributes() []metadata.CustomAttribute { return convertAttrs(g.doc, g.CustomAttrs) }

type wireField struct {
	TokenField     string          `json:"token"`
	NameField      string          `json:"name"`
	AttrsField     uint16          `json:"attributes"`
	TypeField      wireSignature   `json:"fieldType"`
	ConstantField  *wireConstant   `json:"constant"`
	OffsetField    *int            `json:"offset"`
	MarshalField   *wireMarshal    `json:"marshal"`
	CustomAttrs    []wireAttribute `json:"customAttributes"`

	doc       *document
	declaring *wireType
}

func (f *wireField) Token() uint32                        { return parseToken(f.TokenField) }
func (f *wireField) Name() string                         { return f.NameField }
func (f *wireField) Attributes() metadata.FieldAttributes { return metadata.FieldAttributes(f.AttrsField) }
func (f *wireField) DeclaringType() metadata.TypeDefinition { return f.declaring }
func (f *wireField) FieldType() metadata.TypeSignature    { return f.TypeField.toSignature(f.doc) }
func (f *wireField) Constant() *metadata.ConstantInfo     { return f.ConstantField.toConstantInfo() }
func (f *wireField) Marshal() *metadata.MarshalInfo       { return f.MarshalField.toMarshalInfo() }
func (f *wireField) Offset() (int, bool) {
	if f.OffsetField == nil {
		return 0, false
	}
	return *f.OffsetField, true
}
func (f *wireField) CustomAttributes() []metadata.CustomAttribute { return convertAttrs(f.doc, f.CustomAttrs) }

type wireParam struct {
	NameField     string          `json:"name"`
	SequenceField int             `json:"sequence"`
	AttrsField    uint16          `json:"attributes"`
	ConstantField *wireConstant   `json:"constant"`
	MarshalField  *wireMarshal    `json:"marshal"`
	CustomAttrs   []wireAttribute `json:"customAttributes"`

	doc *document
}

func (p *wireParam) Name() string                          { return p.NameField }
func (p *wireParam) Sequence() int                          { return p.SequenceField }
func (p *wireParam) Attributes() metadata.ParamAttributes    { return metadata.ParamAttributes(p.AttrsField) }
func (p *wireParam) Constant() *metadata.ConstantInfo        { return p.ConstantField.toConstantInfo() }
func (p *wireParam) Marshal() *metadata.MarshalInfo          { return p.MarshalField.toMarshalInfo() }
func (p *wireParam) CustomAttributes() []metadata.CustomAttribute { return convertAttrs(p.doc, p.CustomAttrs) }

type wirePInvoke struct {
	ModuleName string `json:"moduleName"`
	EntryPoint string `json:"entryPoint"`
	Attributes uint16 `json:"attributes"`
}

type wireMethod struct {
	TokenField      string           `json:"token"`
	NameField       string           `json:"name"`
	AttrsField      uint16           `json:"attributes"`
	ImplAttrsField  uint16           `json:"implAttributes"`
	SemanticsField  uint16           `json:"semantics"`
	SignatureField  wireMethodSignature `json:"signature"`
	ParametersField []*wireParam     `json:"parameters"`
	GenericParamsField []*wireGenericParam `json:"genericParameters"`
	OverridesField  []wireMethodRef  `json:"overrides"`
	PInvokeField    *wirePInvoke     `json:"pinvoke"`
	SecurityField   []wireSecurity   `json:"securityDeclarations"`
	CustomAttrs     []wireAttribute  `json:"customAttributes"`

	doc       *document
	declaring *wireType
}

func (m *wireMethod) Token() uint32                          { return parseToken(m.TokenField) }
func (m *wireMethod) Name() string                           { return m.NameField }
func (m *wireMethod) DeclaringType() metadata.TypeDefinition  { return m.declaring }
func (m *wireMethod) Attributes() metadata.MethodAttributes   { return metadata.MethodAttributes(m.AttrsField) }
func (m *wireMethod) ImplAttributes() metadata.MethodImplAttributes {
	return metadata.MethodImplAttributes(m.ImplAttrsField)
}
func (m *wireMethod) SemanticsAttributes() metadata.MethodSemanticsAttributes {
	return metadata.MethodSemanticsAttributes(m.SemanticsField)
}
func (m *wireMethod) Signature() *metadata.MethodSignature { return m.SignatureField.toMethodSignature(m.doc) }
func (m *wireMethod) Parameters() []metadata.ParameterDefinition {
	out := make([]metadata.ParameterDefinition, len(m.ParametersField))
	for i, p := range m.ParametersField {
		out[i] = p
	}
	return out
}
func (m *wireMethod) GenericParameters() []metadata.GenericParameter {
	out := make([]metadata.GenericParameter, len(m.GenericParamsField))
	for i, gp := range m.GenericParamsField {
		out[i] = gp
	}
	return out
}
func (m *wireMethod) Overrides() []metadata.MethodReference {
	out := make([]metadata.MethodReference, len(m.OverridesField))
	for i, o := range m.OverridesField {
		out[i] = o.toMethodReference(m.doc)
	}
	return out
}
func (m *wireMethod) PInvoke() *metadata.PInvokeInfo {
	if m.PInvokeField == nil {
		return nil
	}
	return &metadata.PInvokeInfo{
		ModuleName: m.PInvokeField.ModuleName,
		EntryPoint: m.PInvokeField.EntryPoint,
		Attributes: metadata.PInvokeAttributes(m.PInvokeField.Attributes),
	}
}
func (m *wireMethod) SecurityDeclarations() []metadata.SecurityDeclaration {
	return convertSecurity(m.SecurityField)
}
func (m *wireMethod) CustomAttributes() []metadata.CustomAttribute { return convertAttrs(m.doc, m.CustomAttrs) }

type wireProperty struct {
	TokenField     string          `json:"token"`
	NameField      string          `json:"name"`
	TypeField      wireSignature   `json:"type"`
	IndexField     []wireSignature `json:"indexParameters"`
	GetterField    string          `json:"getterToken"`
	SetterField    string          `json:"setterToken"`
	CustomAttrs    []wireAttribute `json:"customAttributes"`

	doc   *document
	owner *wireType
}

func (p *wireProperty) Token() uint32                       { return parseToken(p.TokenField) }
func (p *wireProperty) Name() string                        { return p.NameField }
func (p *wireProperty) DeclaringType() metadata.TypeDefinition { return p.owner }
func (p *wireProperty) Type() metadata.TypeSignature        { return p.TypeField.toSignature(p.doc) }
func (p *wireProperty) IndexParameters() []metadata.TypeSignature {
	out := make([]metadata.TypeSignature, len(p.IndexField))
	for i := range p.IndexField {
		out[i] = p.IndexField[i].toSignature(p.doc)
	}
	return out
}
func (p *wireProperty) Getter() metadata.MethodDefinition {
	if m := p.owner.findMethod(p.GetterField); m != nil {
		return m
	}
	return nil
}
func (p *wireProperty) Setter() metadata.MethodDefinition {
	if m := p.owner.findMethod(p.SetterField); m != nil {
		return m
	}
	return nil
}
func (p *wireProperty) CustomAttributes() []metadata.CustomAttribute { return convertAttrs(p.doc, p.CustomAttrs) }

type wireEvent struct {
	TokenField    string          `json:"token"`
	NameField     string          `json:"name"`
	TypeField     wireSignature   `json:"eventType"`
	AddField      string          `json:"addToken"`
	RemoveField   string          `json:"removeToken"`
	InvokeField   string          `json:"invokeToken"`
	CustomAttrs   []wireAttribute `json:"customAttributes"`

	doc   *document
	owner *wireType
}

func (e *wireEvent) Token() uint32                       { return parseToken(e.TokenField) }
func (e *wireEvent) Name() string                        { return e.NameField }
func (e *wireEvent) DeclaringType() metadata.TypeDefinition { return e.owner }
func (e *wireEvent) EventType() metadata.TypeSignature   { return e.TypeField.toSignature(e.doc) }
func (e *wireEvent) AddMethod() metadata.MethodDefinition {
	if m := e.owner.findMethod(e.AddField); m != nil {
		return m
	}
	return nil
}
func (e *wireEvent) RemoveMethod() metadata.MethodDefinition {
	if m := e.owner.findMethod(e.RemoveField); m != nil {
		return m
	}
	return nil
}
func (e *wireEvent) InvokeMethod() metadata.MethodDefinition {
	if m := e.owner.findMethod(e.InvokeField); m != nil {
		return m
	}
	return nil
}
func (e *wireEvent) CustomAttributes() []metadata.CustomAttribute { return convertAttrs(e.doc, e.CustomAttrs) }
