package loader

import (
	"sync"
	"sync/atomic"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

// lazyCell is a generic OnceCell/Lazy-style primitive parameterized by
// a shared mutex (spec.md §9's design note): the fast path is a lock-
// free atomic load of the published value; the slow path takes the
// mutex the whole assembly's lazy type definitions share, so two
// goroutines racing to materialize different types never contend on
// per-type locks but still can't observe a half-built value.
type lazyCell[T any] struct {
	value atomic.Pointer[T]
	mu    *sync.Mutex
	once  func() T
}

func newLazyCell[T any](mu *sync.Mutex, compute func() T) *lazyCell[T] {
	return &lazyCell[T]{mu: mu, once: compute}
}

func (c *lazyCell[T]) Get() T {
	if v := c.value.Load(); v != nil {
		return *v
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if v := c.value.Load(); v != nil {
		return *v
	}
	result := c.once()
	c.value.Store(&result)
	c.once = nil // release the closure's captured state once it has run
	return result
}

// memberSet bundles the three interdependent results of buildMembers so
// a single lazyCell computes them together.
type memberSet struct {
	members             []unresolved.Member
	hasExtensionMethods bool
	addDefaultCtor      bool
}

// lazyTypeDefinition is the deferred unresolved.TypeDefinition
// implementation used for a top-level type when Options.LazyLoad is
// set (spec.md §4.6): identity, kind, modifiers, type parameters and
// attributes are resolved eagerly at construction (they involve no
// dependency on any other type's own lazy state), while BaseTypes,
// NestedTypes and Members are deferred to first access.
type lazyTypeDefinition struct {
	token         uint32
	namespace     string
	name          string
	fullName      string
	kind          unresolved.TypeKind
	accessibility unresolved.Accessibility
	modifiers     unresolved.TypeModifiers
	typeParams    []*unresolved.TypeParameter
	attributes    []*unresolved.Attribute

	baseTypes   *lazyCell[[]unresolved.TypeReference]
	nestedTypes *lazyCell[[]unresolved.TypeDefinition]
	members     *lazyCell[memberSet]
}

// BuildLazy performs the eager portion of the init order with r's
// (real, interning) pool, then wires the deferred portion to run
// against lazyReader (a typeDefinitionReader backed by the dummy pool)
// under the assembly-wide mutex mu.
func (r *typeDefinitionReader) BuildLazy(td metadata.TypeDefinition, mu *sync.Mutex, lazyReader *typeDefinitionReader) unresolved.TypeDefinition {
	kind := classifyKind(td)
	attrs := td.Attributes()

	t := &lazyTypeDefinition{
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

	t.attributes = r.attrs.Decode(td.CustomAttributes())
	t.attributes = append(t.attributes, r.attrs.SynthesizeTypeAttributes(td, kind)...)
	t.attributes = append(t.attributes, r.attrs.DecodeSecurity(td.SecurityDeclarations())...)

	t.baseTypes = newLazyCell(mu, func() []unresolved.TypeReference {
		return lazyReader.buildBaseTypes(td, kind)
	})
	t.nestedTypes = newLazyCell(mu, func() []unresolved.TypeDefinition {
		var out []unresolved.TypeDefinition
		for _, n := range td.NestedTypes() {
			if !typeAccessibility(n.Attributes()).IsVisible(lazyReader.opts.IncludeInternalMembers) {
				continue
			}
			// Nested types are always built eagerly once their lazy
			// parent is materialized (spec.md §4.6: only top-level
			// types get a second layer of laziness).
			out = append(out, lazyReader.BuildEager(n))
		}
		return out
	})
	t.members = newLazyCell(mu, func() memberSet {
		// buildMembers wants a concrete *eagerTypeDefinition to hang
		// Member.DeclaringType() off; shell carries the same identity
		// (token/fullName) as t; Entity equality is by Id(), not
		// pointer, so this satisfies spec.md §3's "interchangeable"
		// invariant without needing t itself to exist before its own
		// fields are computed.
		shell := &eagerTypeDefinition{
			token: t.token, namespace: t.namespace, name: t.name, fullName: t.fullName,
			kind: t.kind, accessibility: t.accessibility, modifiers: t.modifiers,
			typeParams: t.typeParams, attributes: t.attributes,
		}
		lazyReader.buildMembers(td, shell)
		return memberSet{members: shell.members, hasExtensionMethods: shell.hasExtensionMethods, addDefaultCtor: requiresDefaultConstructor(kind, shell.members)}
	})

	return t
}

func (t *lazyTypeDefinition) Id() string                              { return unresolved.TypeId(t.token, t.fullName) }
func (t *lazyTypeDefinition) Namespace() string                       { return t.namespace }
func (t *lazyTypeDefinition) Name() string                            { return t.name }
func (t *lazyTypeDefinition) FullName() string                        { return t.fullName }
func (t *lazyTypeDefinition) Token() uint32                           { return t.token }
func (t *lazyTypeDefinition) Kind() unresolved.TypeKind               { return t.kind }
func (t *lazyTypeDefinition) Accessibility() unresolved.Accessibility { return t.accessibility }
func (t *lazyTypeDefinition) Modifiers() unresolved.TypeModifiers     { return t.modifiers }
func (t *lazyTypeDefinition) TypeParameters() []*unresolved.TypeParameter {
	return t.typeParams
}
func (t *lazyTypeDefinition) Attributes() []*unresolved.Attribute { return t.attributes }

func (t *lazyTypeDefinition) BaseTypes() []unresolved.TypeReference {
	return t.baseTypes.Get()
}
func (t *lazyTypeDefinition) NestedTypes() []unresolved.TypeDefinition {
	return t.nestedTypes.Get()
}
func (t *lazyTypeDefinition) Members() []unresolved.Member {
	return t.members.Get().members
}
func (t *lazyTypeDefinition) HasExtensionMethods() bool {
	return t.members.Get().hasExtensionMethods
}
func (t *lazyTypeDefinition) AddDefaultConstructorIfRequired() bool {
	return t.members.Get().addDefaultCtor
}

// finish forces every still-unmaterialized cell, per spec.md §4.6's
// Finish operation. lazyCell.Get already nils out its closure once it
// has run, so simply visiting the three cells is enough to release
// whatever metadata.TypeDefinition/typeDefinitionReader state a caller
// never asked for.
func (t *lazyTypeDefinition) finish() {
	t.baseTypes.Get()
	t.nestedTypes.Get()
	t.members.Get()
}

// finishTypes walks types, forcing every lazyTypeDefinition among them
// to materialize and release its backing metadata references. Nested
// types are never themselves lazy (BuildLazy always builds them
// eagerly), so a single pass over the top-level list is sufficient.
func finishTypes(types []unresolved.TypeDefinition) {
	for _, td := range types {
		if lz, ok := td.(*lazyTypeDefinition); ok {
			lz.finish()
		}
	}
}
