package loader

import (
	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

// eagerTypeDefinition is the fully-populated unresolved.TypeDefinition
// implementation built when Options.LazyLoad is false, or for any
// nested type regardless of the option (only top-level types get the
// lazy proxy treatment, spec.md §4.6).
type eagerTypeDefinition struct {
	token         uint32
	namespace     string
	name          string
	fullName      string
	kind          unresolved.TypeKind
	accessibility unresolved.Accessibility
	modifiers     unresolved.TypeModifiers
	typeParams    []*unresolved.TypeParameter
	baseTypes     []unresolved.TypeReference
	nestedTypes   []unresolved.TypeDefinition
	members       []unresolved.Member
	attributes    []*unresolved.Attribute

	hasExtensionMethods bool
	addDefaultCtor      bool
}

func (t *eagerTypeDefinition) Id() string                                { return unresolved.TypeId(t.token, t.fullName) }
func (t *eagerTypeDefinition) Namespace() string                         { return t.namespace }
func (t *eagerTypeDefinition) Name() string                              { return t.name }
func (t *eagerTypeDefinition) FullName() string                          { return t.fullName }
func (t *eagerTypeDefinition) Token() uint32                             { return t.token }
func (t *eagerTypeDefinition) Kind() unresolved.TypeKind                 { return t.kind }
func (t *eagerTypeDefinition) Accessibility() unresolved.Accessibility   { return t.accessibility }
func (t *eagerTypeDefinition) Modifiers() unresolved.TypeModifiers       { return t.modifiers }
func (t *eagerTypeDefinition) TypeParameters() []*unresolved.TypeParameter { return t.typeParams }
func (t *eagerTypeDefinition) BaseTypes() []unresolved.TypeReference     { return t.baseTypes }
func (t *eagerTypeDefinition) NestedTypes() []unresolved.TypeDefinition  { return t.nestedTypes }
func (t *eagerTypeDefinition) Members() []unresolved.Member              { return t.members }
func (t *eagerTypeDefinition) Attributes() []*unresolved.Attribute       { return t.attributes }
func (t *eagerTypeDefinition) HasExtensionMethods() bool                 { return t.hasExtensionMethods }
func (t *eagerTypeDefinition) AddDefaultConstructorIfRequired() bool     { return t.addDefaultCtor }

func fullName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

func typeAccessibility(a metadata.TypeAttributes) unresolved.Accessibility {
	switch a.Visibility() {
	case metadata.TypeAttrPublic, metadata.TypeAttrNestedPublic:
		return unresolved.AccessibilityPublic
	case metadata.TypeAttrNestedFamORAssem:
		return unresolved.AccessibilityProtectedOrInternal
	case metadata.TypeAttrNestedFamily:
		return unresolved.AccessibilityProtected
	case metadata.TypeAttrNestedAssembly, metadata.TypeAttrNotPublic:
		return unresolved.AccessibilityInternal
	case metadata.TypeAttrNestedFamANDAssem:
		return unresolved.AccessibilityProtectedAndInternal
	default:
		return unresolved.AccessibilityPrivate
	}
}

// classifyKind implements spec.md §4.5's priority order: interface >
// enum > struct > delegate > module > class.
func classifyKind(td metadata.TypeDefinition) unresolved.TypeKind {
	attrs := td.Attributes()
	if attrs.Has(metadata.TypeAttrInterface) {
		return unresolved.TypeKindInterface
	}
	ns, name, ok := typeSignatureName2(td.BaseType())
	if ok && ns == nsSystem {
		switch name {
		case "Enum":
			return unresolved.TypeKindEnum
		case "ValueType":
			return unresolved.TypeKindStruct
		case "MulticastDelegate", "Delegate":
			return unresolved.TypeKindDelegate
		}
	}
	if td.Name() == "<Module>" || hasMarkerAttribute(td.CustomAttributes(), nsCompilerServices, attrStandardModule) ||
		hasMarkerAttribute(td.CustomAttributes(), nsCompilerServices, attrCompilerGlobalScope) {
		return unresolved.TypeKindModule
	}
	return unresolved.TypeKindClass
}

// typeSignatureName2 is typeSignatureName tolerant of a nil signature
// (td.BaseType() is nil for interfaces and for System.Object itself).
func typeSignatureName2(sig metadata.TypeSignature) (namespace, name string, ok bool) {
	if sig == nil {
		return "", "", false
	}
	return typeSignatureName(sig)
}

func typeModifiers(attrs metadata.TypeAttributes, kind unresolved.TypeKind) unresolved.TypeModifiers {
	sealed := attrs.Has(metadata.TypeAttrSealed)
	abstract := attrs.Has(metadata.TypeAttrAbstract)
	if sealed && abstract && kind == unresolved.TypeKindClass {
		return unresolved.TypeModifierStatic
	}
	var m unresolved.TypeModifiers
	if sealed {
		m |= unresolved.TypeModifierSealed
	}
	if abstract {
		m |= unresolved.TypeModifierAbstract
	}
	return m
}

// typeDefinitionReader drives the per-type translation of spec.md §4.5:
// the mandatory init order (identity, kind, modifiers, type parameters,
// base types, attributes, members, nested types) that every top-level
// or nested type is built through.
type typeDefinitionReader struct {
	pool    unresolved.Pool
	opts    *Options
	refs    *typeRefBuilder
	attrs   *attributeDecoder
	members *memberReader
}

func newTypeDefinitionReader(pool unresolved.Pool, opts *Options) *typeDefinitionReader {
	refs := newTypeRefBuilder(pool, opts)
	attrDec := newAttributeDecoder(pool, refs)
	return &typeDefinitionReader{
		pool:    pool,
		opts:    opts,
		refs:    refs,
		attrs:   attrDec,
		members: newMemberReader(pool, opts, refs, attrDec),
	}
}

// BuildEager fully materializes td, recursively building nested types
// eagerly. This is always used for nested types; for top-level types it
// is used only when Options.LazyLoad is false. A lazy top-level type's
// deferred cells call buildBaseTypes and buildMembers directly, and
// BuildEager only for its nested types (spec.md §4.6).
func (r *typeDefinitionReader) BuildEager(td metadata.TypeDefinition) unresolved.TypeDefinition {
	kind := classifyKind(td)
	attrs := td.Attributes()

	t := &eagerTypeDefinition{
		token:         td.Token(),
		namespace:     r.pool.InternString(td.Namespace()),
		name:          r.pool.InternString(td.Name()),
		kind:          kind,
		accessibility: typeAccessibility(attrs),
		modifiers:     typeModifiers(attrs, kind),
	}
	t.fullName = r.pool.InternString(fullName(t.namespace, t.name))

	genParams := td.GenericParameters()
	t.typeParams = make([]*unresolved.TypeParameter, len(genParams))
	for i, gp := range genParams {
		t.typeParams[i] = r.members.BuildTypeParameter(gp, unresolved.TypeParameterKindClass)
	}

	t.baseTypes = r.buildBaseTypes(td, kind)

	t.attributes = r.attrs.Decode(td.CustomAttributes())
	t.attributes = append(t.attributes, r.attrs.SynthesizeTypeAttributes(td, kind)...)
	t.attributes = append(t.attributes, r.attrs.DecodeSecurity(td.SecurityDeclarations())...)

	r.buildMembers(td, t)

	for _, n := range td.NestedTypes() {
		if !typeAccessibility(n.Attributes()).IsVisible(r.opts.IncludeInternalMembers) {
			continue
		}
		t.nestedTypes = append(t.nestedTypes, r.BuildEager(n))
	}

	t.addDefaultCtor = requiresDefaultConstructor(kind, t.members)

	return t
}

// buildBaseTypes omits an implicit System.Object base (every class has
// one; only a redefinition of it, i.e. System.Object itself, has a nil
// BaseType()) so BaseTypes() carries only information a reader doesn't
// already know.
func (r *typeDefinitionReader) buildBaseTypes(td metadata.TypeDefinition, kind unresolved.TypeKind) []unresolved.TypeReference {
	var out []unresolved.TypeReference
	if bt := td.BaseType(); bt != nil {
		if ns, name, ok := typeSignatureName2(bt); !ok || ns != nsSystem || name != "Object" {
			out = append(out, r.refs.Build(bt, nil))
		}
	}
	for _, iface := range td.Interfaces() {
		out = append(out, r.refs.Build(iface, nil))
	}
	return out
}

// buildMembers implements the field/method/property/event portion of
// the init order: fields and raw methods first, then properties and
// events wired to the already-built accessor methods, with accessor
// methods excluded from the flat Members() list (spec.md §4.4's
// "accessor suppression").
func (r *typeDefinitionReader) buildMembers(td metadata.TypeDefinition, t *eagerTypeDefinition) {
	visible := func(a unresolved.Accessibility) bool { return a.IsVisible(r.opts.IncludeInternalMembers) }

	methodsByToken := make(map[uint32]*unresolved.Method, len(td.Methods()))
	accessorTokens := make(map[uint32]bool)

	var fields, methods, properties, events []unresolved.Member

	for _, fd := range td.Fields() {
		f := r.members.BuildField(fd, t)
		if visible(f.Accessibility()) {
			fields = append(fields, f)
		}
	}

	for _, md := range td.Methods() {
		m := r.members.BuildMethod(md, t)
		methodsByToken[md.Token()] = m
		if m.IsExtensionMethod {
			t.hasExtensionMethods = true
		}
	}

	accessor := func(md metadata.MethodDefinition) *unresolved.Method {
		if md == nil {
			return nil
		}
		accessorTokens[md.Token()] = true
		return methodsByToken[md.Token()]
	}

	for _, pd := range td.Properties() {
		getter := accessor(pd.Getter())
		setter := accessor(pd.Setter())
		p := r.members.BuildProperty(pd, t, getter, setter)
		if visible(p.Accessibility()) {
			properties = append(properties, p)
		}
	}

	for _, ed := range td.Events() {
		add := accessor(ed.AddMethod())
		remove := accessor(ed.RemoveMethod())
		invoke := accessor(ed.InvokeMethod())
		e := r.members.BuildEvent(ed, t, add, remove, invoke)
		if visible(e.Accessibility()) {
			events = append(events, e)
		}
	}

	// Methods keep declaration order; accessor methods (get_/set_/add_/
	// remove_/...) are excluded here since they are reachable through
	// their owning Property/Event instead (spec.md §4.4's "accessor
	// suppression").
	for _, md := range td.Methods() {
		if accessorTokens[md.Token()] {
			continue
		}
		m := methodsByToken[md.Token()]
		if visible(m.Accessibility()) {
			methods = append(methods, m)
		}
	}

	t.members = append(t.members, fields...)
	t.members = append(t.members, methods...)
	t.members = append(t.members, properties...)
	t.members = append(t.members, events...)
}

// requiresDefaultConstructor reports whether kind is one of the value
// kinds that always gets an implicit parameterless constructor (spec.md
// §4.5 step 9): struct or enum. This is a pure function of kind, not a
// scan for an explicit .ctor.
func requiresDefaultConstructor(kind unresolved.TypeKind, members []unresolved.Member) bool {
	return kind == unresolved.TypeKindStruct || kind == unresolved.TypeKindEnum
}
