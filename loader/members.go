package loader

import (
	"strings"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

// memberReader translates the metadata member interfaces (spec.md
// §4.4) into unresolved.Member values, given a type-reference builder
// and attribute decoder already scoped to the enclosing load.
type memberReader struct {
	pool  unresolved.Pool
	opts  *Options
	refs  *typeRefBuilder
	attrs *attributeDecoder
}

func newMemberReader(pool unresolved.Pool, opts *Options, refs *typeRefBuilder, attrs *attributeDecoder) *memberReader {
	return &memberReader{pool: pool, opts: opts, refs: refs, attrs: attrs}
}

func methodAccessibility(a metadata.MethodAttributes) unresolved.Accessibility {
	switch a.Access() {
	case metadata.MethodAttrPublic:
		return unresolved.AccessibilityPublic
	case metadata.MethodAttrFamORAssem:
		return unresolved.AccessibilityProtectedOrInternal
	case metadata.MethodAttrFamily:
		return unresolved.AccessibilityProtected
	case metadata.MethodAttrAssembly:
		return unresolved.AccessibilityInternal
	case metadata.MethodAttrFamANDAssem:
		return unresolved.AccessibilityProtectedAndInternal
	default:
		return unresolved.AccessibilityPrivate
	}
}

func fieldAccessibility(a metadata.FieldAttributes) unresolved.Accessibility {
	switch a.Access() {
	case metadata.FieldAttrPublic:
		return unresolved.AccessibilityPublic
	case metadata.FieldAttrFamORAssem:
		return unresolved.AccessibilityProtectedOrInternal
	case metadata.FieldAttrFamily:
		return unresolved.AccessibilityProtected
	case metadata.FieldAttrAssembly:
		return unresolved.AccessibilityInternal
	case metadata.FieldAttrFamANDAssem:
		return unresolved.AccessibilityProtectedAndInternal
	default:
		return unresolved.AccessibilityPrivate
	}
}

// methodModifiers implements the virtual/abstract/override/sealed truth
// table of spec.md §4.4 from the four IL bits that encode it (abstract,
// virtual, newslot, final).
func methodModifiers(a metadata.MethodAttributes) unresolved.MemberModifiers {
	var m unresolved.MemberModifiers
	if a.Has(metadata.MethodAttrStatic) {
		m |= unresolved.ModifierStatic
	}
	if a.Has(metadata.MethodAttrAbstract) {
		m |= unresolved.ModifierAbstract
	}
	virtual := a.Has(metadata.MethodAttrVirtual)
	newslot := a.Has(metadata.MethodAttrNewSlot)
	final := a.Has(metadata.MethodAttrFinal)
	if a.Has(metadata.MethodAttrAbstract) {
		// An abstract method is always Virtual+NewSlot (ECMA-335); the
		// only additional bit the table allows it is override, for the
		// virtual-without-newslot case.
		if virtual && !newslot {
			m |= unresolved.ModifierOverride
		}
		return m
	}
	switch {
	case virtual && newslot && !final:
		m |= unresolved.ModifierVirtual
	case virtual && !newslot:
		m |= unresolved.ModifierOverride
		if final {
			m |= unresolved.ModifierSealed
		}
	case virtual && newslot && final:
		m |= unresolved.ModifierSealed
	}
	return m
}

// shortenIfDotted implements the explicit-interface-implementation name
// truncation named by Options.ShortenInterfaceImplNames (spec.md §4.4):
// an explicitly-implemented member's IL name is fully qualified with its
// interface, e.g. "System.IDisposable.Dispose"; shortening keeps only
// the text after the final dot.
func shortenIfDotted(name string, shorten bool) string {
	if !shorten {
		return name
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (r *memberReader) internConstant(cv *unresolved.ConstantValue) *unresolved.ConstantValue {
	if cv == nil {
		return nil
	}
	return r.pool.InternConstant(cv.Key(), cv)
}

func (r *memberReader) fieldConstant(fd metadata.FieldDefinition, fieldType unresolved.TypeReference) *unresolved.ConstantValue {
	if ci := fd.Constant(); ci != nil {
		return r.internConstant(&unresolved.ConstantValue{Type: fieldType, Value: ci.Value})
	}
	if dec, ok := r.attrs.DecodeDecimalConstant(fd.CustomAttributes()); ok {
		return r.internConstant(&unresolved.ConstantValue{Type: fieldType, Value: dec})
	}
	return nil
}

func (r *memberReader) paramConstant(pd metadata.ParameterDefinition, paramType unresolved.TypeReference) *unresolved.ConstantValue {
	if ci := pd.Constant(); ci != nil {
		return r.internConstant(&unresolved.ConstantValue{Type: paramType, Value: ci.Value})
	}
	if dec, ok := r.attrs.DecodeDecimalConstant(pd.CustomAttributes()); ok {
		return r.internConstant(&unresolved.ConstantValue{Type: paramType, Value: dec})
	}
	return nil
}

// BuildParameter translates one Param row plus its declared signature
// type (spec.md §4.4: ref/out/in classification, params-array and
// optional-default detection).
func (r *memberReader) BuildParameter(pd metadata.ParameterDefinition, sig metadata.TypeSignature) *unresolved.Parameter {
	typ := r.refs.Build(sig, pd.CustomAttributes())

	kind := unresolved.ParameterKindValue
	if _, isByRef := sig.(metadata.ByRefSignature); isByRef {
		switch {
		case pd.Attributes().Has(metadata.ParamAttrOut):
			kind = unresolved.ParameterKindOut
		case pd.Attributes().Has(metadata.ParamAttrIn):
			kind = unresolved.ParameterKindIn
		default:
			kind = unresolved.ParameterKindRef
		}
	}

	isParamsArray := hasMarkerAttribute(pd.CustomAttributes(), nsSystem, attrParamArray)

	var defaultValue *unresolved.ConstantValue
	if pd.Attributes().Has(metadata.ParamAttrOptional) {
		defaultValue = r.paramConstant(pd, typ)
	}

	return &unresolved.Parameter{
		Name:          r.pool.InternString(pd.Name()),
		Type:          typ,
		ReferenceKind: kind,
		IsParamsArray: isParamsArray,
		DefaultValue:  defaultValue,
		Attributes:    append(r.attrs.Decode(pd.CustomAttributes()), r.attrs.SynthesizeParameterAttributes(pd)...),
	}
}

// BuildTypeParameter translates a GenericParam row (spec.md §3, §4.5).
func (r *memberReader) BuildTypeParameter(gp metadata.GenericParameter, kind unresolved.TypeParameterKind) *unresolved.TypeParameter {
	attrs := gp.Attributes()
	variance := unresolved.VarianceNone
	switch attrs & metadata.GenericParamVarianceMask {
	case metadata.GenericParamCovariant:
		variance = unresolved.VarianceCovariant
	case metadata.GenericParamContravariant:
		variance = unresolved.VarianceContravariant
	}
	constraints := make([]unresolved.TypeReference, len(gp.Constraints()))
	for i, c := range gp.Constraints() {
		constraints[i] = r.refs.Build(c, nil)
	}
	return &unresolved.TypeParameter{
		Name:                         r.pool.InternString(gp.Name()),
		Position:                     gp.Position(),
		Kind:                         kind,
		Variance:                     variance,
		Constraints:                  constraints,
		Attributes:                   r.attrs.Decode(gp.CustomAttributes()),
		ReferenceTypeConstraint:      attrs.Has(metadata.GenericParamReferenceTypeConstraint),
		ValueTypeConstraint:          attrs.Has(metadata.GenericParamNotNullableValueTypeConstraint),
		DefaultConstructorConstraint: attrs.Has(metadata.GenericParamDefaultConstructorConstraint),
	}
}

// explicitInterfaceTargets resolves a method's MethodImpl overrides
// (spec.md §4.4) to type references, used both to populate
// ExplicitInterfaceImplementations and to decide whether the method's
// own name should be shortened.
func (r *memberReader) explicitInterfaceTargets(overrides []metadata.MethodReference) []unresolved.TypeReference {
	if len(overrides) == 0 {
		return nil
	}
	out := make([]unresolved.TypeReference, 0, len(overrides))
	for _, o := range overrides {
		out = append(out, r.refs.Build(o.DeclaringType, nil))
	}
	return out
}

// BuildMethod translates a MethodDefinition (spec.md §4.4). declaring
// must already exist (built before its members, per spec.md §4.5's init
// order) since Member.DeclaringType is not itself lazy.
func (r *memberReader) BuildMethod(md metadata.MethodDefinition, declaring unresolved.TypeDefinition) *unresolved.Method {
	sig := md.Signature()

	overrides := md.Overrides()
	explicitImpls := r.explicitInterfaceTargets(overrides)
	name := md.Name()
	if len(explicitImpls) > 0 {
		name = shortenIfDotted(name, r.opts.ShortenInterfaceImplNames)
	}

	var returnAttrs []metadata.CustomAttribute
	for _, pd := range md.Parameters() {
		if pd.Sequence() == 0 {
			returnAttrs = pd.CustomAttributes()
			break
		}
	}
	var returnType unresolved.TypeReference = unresolved.Void
	if sig != nil {
		returnType = r.refs.Build(sig.ReturnType, returnAttrs)
	}

	attrs := r.attrs.Decode(md.CustomAttributes())
	attrs = append(attrs, r.attrs.SynthesizeMethodAttributes(md)...)
	attrs = append(attrs, r.attrs.DecodeSecurity(md.SecurityDeclarations())...)

	access, modifiers := methodAccessibility(md.Attributes()), methodModifiers(md.Attributes())
	if declaring.Kind() == unresolved.TypeKindInterface {
		access, modifiers = unresolved.AccessibilityPublic, modifiers|unresolved.ModifierAbstract
	}

	m := unresolved.NewMethod(declaring, md.Token(), r.pool.InternString(name), returnType,
		access, modifiers, attrs)
	m.IsExtensionMethod = hasMarkerAttribute(md.CustomAttributes(), nsCompilerServices, attrExtension)
	m.ExplicitInterfaceImplementations = explicitImpls

	genParams := md.GenericParameters()
	m.TypeParameters = make([]*unresolved.TypeParameter, len(genParams))
	for i, gp := range genParams {
		m.TypeParameters[i] = r.BuildTypeParameter(gp, unresolved.TypeParameterKindMethod)
	}

	params := md.Parameters()
	paramTypes := []metadata.TypeSignature(nil)
	if sig != nil {
		paramTypes = sig.ParameterTypes
	}
	m.Parameters = make([]*unresolved.Parameter, 0, len(params))
	for _, pd := range params {
		if pd.Sequence() == 0 {
			continue // return-value pseudo-parameter, handled via ReturnType
		}
		idx := pd.Sequence() - 1
		var declaredSig metadata.TypeSignature
		if idx >= 0 && idx < len(paramTypes) {
			declaredSig = paramTypes[idx]
		}
		if declaredSig == nil {
			continue
		}
		m.Parameters = append(m.Parameters, r.BuildParameter(pd, declaredSig))
	}
	if sig != nil && sig.CallingConvention == metadata.CallingConventionVarArg {
		m.Parameters = append(m.Parameters, &unresolved.Parameter{Type: unresolved.ArgList})
	}

	return m
}

// BuildField translates a FieldDefinition (spec.md §4.4).
func (r *memberReader) BuildField(fd metadata.FieldDefinition, declaring unresolved.TypeDefinition) *unresolved.Field {
	fieldType := r.refs.Build(fd.FieldType(), fd.CustomAttributes())

	attrs := r.attrs.Decode(fd.CustomAttributes())
	attrs = append(attrs, r.attrs.SynthesizeFieldAttributes(fd)...)

	var modifiers unresolved.MemberModifiers
	a := fd.Attributes()
	if a.Has(metadata.FieldAttrStatic) {
		modifiers |= unresolved.ModifierStatic
	}
	if a.Has(metadata.FieldAttrInitOnly) {
		modifiers |= unresolved.ModifierReadOnly
	}
	if a.Has(metadata.FieldAttrLiteral) {
		modifiers |= unresolved.ModifierConst
	}

	constant := r.fieldConstant(fd, fieldType)

	access := fieldAccessibility(a)
	if declaring.Kind() == unresolved.TypeKindInterface {
		access = unresolved.AccessibilityPublic
	}

	return unresolved.NewField(declaring, fd.Token(), r.pool.InternString(fd.Name()), fieldType,
		access, modifiers, attrs, constant)
}

// BuildProperty translates a PropertyDefinition, including its
// accessors and (for an indexer) index parameters (spec.md §4.4).
// The accessors are not built here: the caller passes in the *Method
// values it has already built (typeDefinitionReader.buildMembers looks
// them up by token), so each accessor is built only once.
func (r *memberReader) BuildProperty(pd metadata.PropertyDefinition, declaring unresolved.TypeDefinition, getter, setter *unresolved.Method) *unresolved.Property {
	propType := r.refs.Build(pd.Type(), pd.CustomAttributes())

	overrides := r.propertyOverrides(getter, setter)
	name := shortenIfDotted(pd.Name(), r.opts.ShortenInterfaceImplNames && len(overrides) > 0)

	access, modifiers := propertyAccessibilityAndModifiers(getter, setter)
	attrs := r.attrs.Decode(pd.CustomAttributes())

	p := unresolved.NewProperty(declaring, pd.Token(), r.pool.InternString(name), propType, access, modifiers, attrs)
	p.Getter = getter
	p.Setter = setter
	p.ExplicitInterfaceImplementations = overrides

	indexSigs := pd.IndexParameters()
	if len(indexSigs) > 0 {
		p.IsIndexer = true
		p.IndexParameters = r.indexParameters(indexSigs, getter, setter)
	}

	return p
}

func (r *memberReader) propertyOverrides(getter, setter *unresolved.Method) []unresolved.TypeReference {
	if getter != nil && len(getter.ExplicitInterfaceImplementations) > 0 {
		return getter.ExplicitInterfaceImplementations
	}
	if setter != nil && len(setter.ExplicitInterfaceImplementations) > 0 {
		return setter.ExplicitInterfaceImplementations
	}
	return nil
}

// propertyAccessibilityAndModifiers promotes accessor
// accessibility/modifiers to the property level per spec.md §4.4: the
// property's accessibility is the join (most permissive) of its
// accessors', and its modifiers are the getter's when there is a getter,
// otherwise the setter's.
func propertyAccessibilityAndModifiers(getter, setter *unresolved.Method) (unresolved.Accessibility, unresolved.MemberModifiers) {
	switch {
	case getter != nil && setter != nil:
		return unresolved.Join(getter.Accessibility(), setter.Accessibility()), getter.Modifiers()
	case getter != nil:
		return getter.Accessibility(), getter.Modifiers()
	case setter != nil:
		return setter.Accessibility(), setter.Modifiers()
	default:
		return unresolved.AccessibilityPrivate, 0
	}
}

// indexParameters builds a property's index-parameter list, preferring
// names taken from whichever accessor is available (IndexParameters()
// on the metadata side carries types only).
func (r *memberReader) indexParameters(sigs []metadata.TypeSignature, getter, setter *unresolved.Method) []*unresolved.Parameter {
	source := getter
	if source == nil {
		source = setter
	}
	out := make([]*unresolved.Parameter, len(sigs))
	for i, sig := range sigs {
		typ := r.refs.Build(sig, nil)
		name := ""
		if source != nil && i < len(source.Parameters) {
			name = source.Parameters[i].Name
		}
		out[i] = &unresolved.Parameter{Name: name, Type: typ}
	}
	return out
}

// BuildEvent translates an EventDefinition (spec.md §4.4).
func (r *memberReader) BuildEvent(ed metadata.EventDefinition, declaring unresolved.TypeDefinition, add, remove, invoke *unresolved.Method) *unresolved.Event {
	eventType := r.refs.Build(ed.EventType(), ed.CustomAttributes())

	overrides := r.propertyOverrides(add, remove)
	name := shortenIfDotted(ed.Name(), r.opts.ShortenInterfaceImplNames && len(overrides) > 0)

	access, modifiers := propertyAccessibilityAndModifiers(add, remove)
	attrs := r.attrs.Decode(ed.CustomAttributes())

	e := unresolved.NewEvent(declaring, ed.Token(), r.pool.InternString(name), eventType, access, modifiers, attrs)
	e.AddAccessor = add
	e.RemoveAccessor = remove
	e.InvokeAccessor = invoke
	e.ExplicitInterfaceImplementations = overrides
	return e
}
