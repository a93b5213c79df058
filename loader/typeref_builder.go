package loader

import (
	"strconv"
	"strings"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

// typeRefBuilder implements the type-reference translation described in
// spec.md §4.2: metadata.TypeSignature -> unresolved.TypeReference,
// threading the dynamicIndex/tupleIndex cursors that let a nested
// DynamicAttribute or TupleElementNamesAttribute apply to the right
// leaf of a compound signature.
type typeRefBuilder struct {
	pool unresolved.Pool
	opts *Options
}

func newTypeRefBuilder(pool unresolved.Pool, opts *Options) *typeRefBuilder {
	return &typeRefBuilder{pool: pool, opts: opts}
}

// refCursor carries the two positional cursors and the decoded marker
// attributes across one call to Build's recursive walk. A fresh cursor
// is created per top-level signature (a parameter, a return type, a
// field type): the indices reset to zero at each such boundary.
type refCursor struct {
	dynamicIndex int
	dynFlags     []bool
	hasDyn       bool

	tupleIndex int
	tupleNames []string
	hasTuple   bool
}

// Build translates sig into an unresolved.TypeReference. attrs is the
// custom-attribute list of the entity that owns this signature (a
// parameter, return type or field) and is consulted for DynamicAttribute
// and TupleElementNamesAttribute exactly as spec.md §4.2 describes.
func (b *typeRefBuilder) Build(sig metadata.TypeSignature, attrs []metadata.CustomAttribute) unresolved.TypeReference {
	if sig == nil {
		return b.intern(unresolved.Unknown)
	}
	c := &refCursor{}
	if b.opts.UseDynamicType {
		c.dynFlags, c.hasDyn = extractDynamicFlags(attrs)
	}
	if b.opts.UseTupleTypes {
		c.tupleNames, c.hasTuple = extractTupleElementNames(attrs)
	}
	return b.build(sig, c)
}

// intern registers ref with the pool so structurally identical
// references built from different signature occurrences collapse to
// one shared value (spec.md §3, §4.1).
func (b *typeRefBuilder) intern(ref unresolved.TypeReference) unresolved.TypeReference {
	if ref == nil {
		return ref
	}
	return b.pool.InternTypeReference(unresolved.TypeReferenceKey(ref), ref)
}

// build dispatches on sig's concrete case and interns the result;
// every recursive call goes through here, so a compound reference's
// leaves are interned before the compound value built from them is.
func (b *typeRefBuilder) build(sig metadata.TypeSignature, c *refCursor) unresolved.TypeReference {
	return b.intern(b.buildOne(sig, c))
}

func (b *typeRefBuilder) buildOne(sig metadata.TypeSignature, c *refCursor) unresolved.TypeReference {
	switch t := sig.(type) {
	case metadata.PrimitiveSignature:
		return b.buildPrimitive(t, c)
	case metadata.PointerSignature:
		c.dynamicIndex++
		return unresolved.PointerType{Element: b.build(t.Element, c)}
	case metadata.ByRefSignature:
		c.dynamicIndex++
		return unresolved.ByReferenceType{Element: b.build(t.Element, c)}
	case metadata.TypeParameterSignature:
		kind := unresolved.TypeParameterKindClass
		if t.IsMethodParameter {
			kind = unresolved.TypeParameterKindMethod
		}
		return unresolved.TypeParameterReference{Kind: kind, Position: t.Position}
	case metadata.ArraySignature:
		c.dynamicIndex++
		rank := t.Rank
		if rank == 0 {
			rank = 1
		}
		return unresolved.ArrayType{Element: b.build(t.Element, c), Rank: rank}
	case metadata.GenericInstanceSignature:
		return b.buildGenericInstance(t, c)
	case metadata.FunctionPointerSignature:
		// Case 6: unrepresentable, replaced by the native-int reference.
		return unresolved.IntPtr
	case metadata.ModifierSignature:
		// Case 8: modreq/modopt is transparent to the unresolved model.
		return b.build(t.Element, c)
	case metadata.PinnedSignature:
		return b.build(t.Element, c)
	case metadata.SentinelSignature:
		return unresolved.ArgList
	case metadata.TypeDefOrRefSignature:
		return b.buildTypeDefOrRef(t, c)
	default:
		return unresolved.Unknown
	}
}

// buildPrimitive handles case 1, plus the System.Object/dynamic
// substitution of case 7. ELEMENT_TYPE_OBJECT is the only primitive
// that consumes a dynamicIndex slot; every other primitive is a leaf
// that does not advance either cursor.
func (b *typeRefBuilder) buildPrimitive(p metadata.PrimitiveSignature, c *refCursor) unresolved.TypeReference {
	if p.Kind == metadata.ElementTypeObject {
		idx := c.dynamicIndex
		c.dynamicIndex++
		if c.hasDyn && idx < len(c.dynFlags) && c.dynFlags[idx] {
			return unresolved.Dynamic
		}
		return unresolved.Object
	}
	return unresolved.PrimitiveByIndex(int(p.Kind))
}

// buildGenericInstance handles case 5, dispatching to the value-tuple
// flattening in §4.2.1 when the open type is System.ValueTuple`N and
// tuple flattening is enabled.
func (b *typeRefBuilder) buildGenericInstance(g metadata.GenericInstanceSignature, c *refCursor) unresolved.TypeReference {
	if b.opts.UseTupleTypes && isValueTupleOpenType(g.GenericType) {
		if ref, ok := b.buildValueTuple(g, c); ok {
			return ref
		}
	}
	openRef := b.buildTypeDefOrRef(g.GenericType, c)
	args := make([]unresolved.TypeReference, len(g.Arguments))
	for i, arg := range g.Arguments {
		c.dynamicIndex++
		args[i] = b.build(arg, c)
	}
	return unresolved.ParameterizedType{GenericType: openRef, Arguments: args}
}

func isValueTupleOpenType(sig metadata.TypeDefOrRefSignature) bool {
	ns, name, ok := typeSignatureName(sig)
	return ok && ns == nsSystem && strings.HasPrefix(name, "ValueTuple`")
}

// buildValueTuple implements spec.md §4.2.1: an 8-arity ValueTuple
// instantiation chains through its 8th (TRest) argument as long as that
// argument is itself a ValueTuple instantiation; any other arity is a
// terminal tuple of that many elements. Element names are drawn
// positionally from the owning TupleElementNamesAttribute starting at
// the cursor's tupleIndex. A cardinality-1 result collapses to its bare
// element (still consuming one name slot), per the invariant that a
// 1-tuple is unrepresentable as a TupleType.
func (b *typeRefBuilder) buildValueTuple(g metadata.GenericInstanceSignature, c *refCursor) (unresolved.TypeReference, bool) {
	var elements []unresolved.TypeReference
	current := g
	for {
		n := len(current.Arguments)
		if n == 0 {
			return nil, false
		}
		if n == 8 {
			for i := 0; i < 7; i++ {
				c.dynamicIndex++
				elements = append(elements, b.build(current.Arguments[i], c))
			}
			c.dynamicIndex++
			rest := current.Arguments[7]
			if nextGI, ok := rest.(metadata.GenericInstanceSignature); ok && isValueTupleOpenType(nextGI.GenericType) {
				current = nextGI
				continue
			}
			// TRest wasn't itself a value tuple. This should not happen
			// for compiler-emitted signatures; fall back to a terminal
			// element rather than dropping the load.
			elements = append(elements, b.build(rest, c))
			break
		}
		for i := 0; i < n; i++ {
			c.dynamicIndex++
			elements = append(elements, b.build(current.Arguments[i], c))
		}
		break
	}

	start := c.tupleIndex
	c.tupleIndex += len(elements)

	names := make([]string, len(elements))
	if c.hasTuple {
		for i := range elements {
			idx := start + i
			if idx < len(c.tupleNames) {
				names[i] = c.tupleNames[idx]
			}
		}
	}

	if len(elements) == 1 {
		return elements[0], true
	}
	return unresolved.TupleType{Elements: elements, Names: names}, true
}

// buildTypeDefOrRef handles cases 10 (raw TypeDefinition), 11 (named
// TypeReference) and 12 (nested TypeReference).
func (b *typeRefBuilder) buildTypeDefOrRef(t metadata.TypeDefOrRefSignature, c *refCursor) unresolved.TypeReference {
	if t.Definition != nil {
		return &unresolved.TypeDefinitionTokenReference{
			Token:     t.Definition.Token(),
			Namespace: t.Definition.Namespace(),
			Name:      t.Definition.Name(),
		}
	}
	ref := t.Reference
	if ref == nil {
		return unresolved.Unknown
	}

	isRef, known := false, false
	if t.ValueTypeHint != nil {
		known = true
		isRef = !*t.ValueTypeHint
	}

	if nested, ok := ref.Scope.(metadata.NestedTypeScope); ok {
		declaringSig := metadata.TypeDefOrRefSignature{Reference: nested.DeclaringType}
		declaring := b.buildTypeDefOrRef(declaringSig, c)
		base, arity := splitGenericArity(ref.Name)
		return unresolved.NewNestedTypeReference(declaring, base, arity, isRef, known)
	}

	assemblyName := ""
	if scope, ok := ref.Scope.(metadata.AssemblyRefScope); ok {
		assemblyName = scope.AssemblyName
	}
	base, arity := splitGenericArity(ref.Name)
	return unresolved.NewNamedTypeReference(assemblyName, ref.Namespace, base, arity, isRef, known)
}

// splitGenericArity strips a CLR generic-arity suffix (`N) off a type
// name, e.g. "List`1" -> ("List", 1). A name with no backtick, or a
// malformed suffix, is returned unchanged with arity 0.
func splitGenericArity(name string) (base string, arity int) {
	i := strings.LastIndexByte(name, '`')
	if i < 0 || i == len(name)-1 {
		return name, 0
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil || n < 0 {
		return name, 0
	}
	return name[:i], n
}
