package loader

import (
	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

// attributeDecoder translates metadata.CustomAttribute/SecurityDeclaration
// rows and the handful of pseudo-custom-attributes ECMA-335 represents
// as structural columns instead (spec.md §4.3) into unresolved.Attribute
// values, interning every result by value.
type attributeDecoder struct {
	pool unresolved.Pool
	refs *typeRefBuilder
}

func newAttributeDecoder(pool unresolved.Pool, refs *typeRefBuilder) *attributeDecoder {
	return &attributeDecoder{pool: pool, refs: refs}
}

// filteredAttribute reports whether a raw CustomAttribute row is fully
// absorbed into a structured field elsewhere in the unresolved model
// (a type-reference shape, an extension or params-array flag, a decimal
// constant, the module type kind) and so must not also survive as a
// plain Attribute. DefaultMemberAttribute is dropped as well; nothing
// reads it, and indexers are recognized by their index parameters.
func filteredAttribute(a metadata.CustomAttribute) bool {
	absorbed := [][2]string{
		{nsCompilerServices, attrDynamic},
		{nsCompilerServices, attrTupleElementNames},
		{nsCompilerServices, attrExtension},
		{nsCompilerServices, attrDecimalConstant},
		{nsCompilerServices, attrCompilerGlobalScope},
		{nsCompilerServices, attrStandardModule},
		{nsSystem, attrParamArray},
		{nsReflection, attrDefaultMember},
	}
	for _, p := range absorbed {
		if isWellKnownAttribute(a, p[0], p[1]) {
			return true
		}
	}
	return false
}

// Decode translates a raw attribute list, dropping the absorbed subset
// above and preserving everything else blob-backed (spec.md §4.3).
func (d *attributeDecoder) Decode(raw []metadata.CustomAttribute) []*unresolved.Attribute {
	if len(raw) == 0 {
		return nil
	}
	out := make([]*unresolved.Attribute, 0, len(raw))
	for _, a := range raw {
		if filteredAttribute(a) {
			continue
		}
		out = append(out, d.intern(d.buildBlobAttribute(a)))
	}
	return out
}

func (d *attributeDecoder) buildBlobAttribute(a metadata.CustomAttribute) *unresolved.Attribute {
	attrType := d.refs.Build(a.Constructor.DeclaringType, nil)
	ctorParams := make([]unresolved.TypeReference, len(a.Constructor.ParameterTypes))
	for i, p := range a.Constructor.ParameterTypes {
		ctorParams[i] = d.refs.Build(p, nil)
	}
	return unresolved.NewBlobAttribute(attrType, ctorParams, a.Blob)
}

// DecodeSecurity translates DeclSecurity rows (spec.md §4.3: "wrapped
// similarly, keyed by action code").
func (d *attributeDecoder) DecodeSecurity(secs []metadata.SecurityDeclaration) []*unresolved.Attribute {
	if len(secs) == 0 {
		return nil
	}
	out := make([]*unresolved.Attribute, 0, len(secs))
	for _, s := range secs {
		out = append(out, d.intern(unresolved.NewSecurityDeclarationAttribute(unresolved.Unknown, s.Action, s.Blob)))
	}
	return out
}

// DecodeDecimalConstant looks for a DecimalConstantAttribute among raw
// and, if present, decodes its five constructor arguments into a
// unresolved.Decimal (spec.md §4.4). The attribute itself is one of the
// filtered kinds above; this is the only place its blob is consulted.
func (d *attributeDecoder) DecodeDecimalConstant(raw []metadata.CustomAttribute) (unresolved.Decimal, bool) {
	a, ok := findAttribute(raw, nsCompilerServices, attrDecimalConstant)
	if !ok {
		return unresolved.Decimal{}, false
	}
	r := newBlobReader(a.Blob)
	prolog, err := r.readU16()
	if err != nil || prolog != 1 {
		return unresolved.Decimal{}, false
	}
	scale, err := r.readU8()
	if err != nil {
		return unresolved.Decimal{}, false
	}
	sign, err := r.readU8()
	if err != nil {
		return unresolved.Decimal{}, false
	}
	hi, err := r.readU32()
	if err != nil {
		return unresolved.Decimal{}, false
	}
	mid, err := r.readU32()
	if err != nil {
		return unresolved.Decimal{}, false
	}
	lo, err := r.readU32()
	if err != nil {
		return unresolved.Decimal{}, false
	}
	return unresolved.NewDecimalFromParts(scale, sign, hi, mid, lo), true
}

// SynthesizeTypeAttributes builds the pseudo-custom-attributes ECMA-335
// represents as TypeDef flags/tables instead of CustomAttribute rows:
// SerializableAttribute, ComImportAttribute and StructLayoutAttribute
// (spec.md §4.3, §4.5). kind is td's already-classified unresolved.TypeKind,
// needed here only to know the layout the runtime assumes with no
// source-level [StructLayout]: Sequential for a non-enum value type,
// Auto for everything else. A compiled struct carries the Sequential
// bit whether or not it wrote the attribute, so comparing against that
// default (rather than against zero) is what keeps this from emitting a
// StructLayoutAttribute on nearly every struct in the assembly.
func (d *attributeDecoder) SynthesizeTypeAttributes(td metadata.TypeDefinition, kind unresolved.TypeKind) []*unresolved.Attribute {
	var out []*unresolved.Attribute
	attrs := td.Attributes()

	if attrs.Has(metadata.TypeAttrSerializable) {
		out = append(out, d.intern(d.synth(nsSystem, attrSerializable, nil, nil)))
	}
	if attrs.Has(metadata.TypeAttrImport) {
		out = append(out, d.intern(d.synth(nsInteropServices, attrComImport, nil, nil)))
	}

	defaultLayout := metadata.TypeAttributes(0) // Auto
	if kind == unresolved.TypeKindStruct {
		defaultLayout = metadata.TypeAttrSequentialLayout
	}
	_, packing, size, hasRow := td.Layout()
	nonDefaultLayout := attrs.Layout() != defaultLayout
	nonDefaultCharSet := attrs.CharSet() != metadata.TypeAttrAnsiClass
	if nonDefaultLayout || nonDefaultCharSet || packing != 0 || size != 0 {
		named := map[string]any{
			"CharSet": charSetName(attrs),
		}
		if hasRow {
			if packing != 0 {
				named["Pack"] = packing
			}
			if size != 0 {
				named["Size"] = size
			}
		}
		out = append(out, d.intern(d.synth(nsInteropServices, attrStructLayout, []any{layoutKindName(attrs)}, named)))
	}
	return out
}

func layoutKindName(attrs metadata.TypeAttributes) string {
	switch attrs.Layout() {
	case metadata.TypeAttrExplicitLayout:
		return "Explicit"
	case metadata.TypeAttrSequentialLayout:
		return "Sequential"
	default:
		return "Auto"
	}
}

func charSetName(attrs metadata.TypeAttributes) string {
	switch attrs & metadata.TypeAttrStringFormatMask {
	case metadata.TypeAttrUnicodeClass:
		return "Unicode"
	case metadata.TypeAttrAutoClass:
		return "Auto"
	default:
		return "Ansi"
	}
}

// SynthesizeFieldAttributes builds FieldOffsetAttribute, NonSerializedAttribute
// and MarshalAsAttribute from a field's structural columns (spec.md §4.3, §4.4).
func (d *attributeDecoder) SynthesizeFieldAttributes(fd metadata.FieldDefinition) []*unresolved.Attribute {
	var out []*unresolved.Attribute
	if offset, ok := fd.Offset(); ok {
		out = append(out, d.intern(d.synth(nsInteropServices, attrFieldOffset, []any{offset}, nil)))
	}
	if fd.Attributes().Has(metadata.FieldAttrNotSerialized) {
		out = append(out, d.intern(d.synth(nsSystem, attrNonSerialized, nil, nil)))
	}
	if m := fd.Marshal(); m != nil {
		out = append(out, d.intern(d.synthMarshal(m)))
	}
	return out
}

// SynthesizeParameterAttributes builds MarshalAsAttribute for a
// parameter or return value that carries a FieldMarshal row.
func (d *attributeDecoder) SynthesizeParameterAttributes(pd metadata.ParameterDefinition) []*unresolved.Attribute {
	if m := pd.Marshal(); m != nil {
		return []*unresolved.Attribute{d.intern(d.synthMarshal(m))}
	}
	return nil
}

func (d *attributeDecoder) synthMarshal(m *metadata.MarshalInfo) *unresolved.Attribute {
	named := map[string]any{}
	if m.ArrayElementType != "" {
		named["ArraySubType"] = m.ArrayElementType
	}
	if m.HasArraySizeParamIndex {
		named["SizeParamIndex"] = m.ArraySizeParamIndex
	}
	if m.HasArraySizeConst {
		named["SizeConst"] = m.ArraySizeConst
	}
	if m.SafeArraySubType != "" {
		named["SafeArraySubType"] = m.SafeArraySubType
	}
	if m.CustomMarshalerType != "" {
		named["MarshalTypeRef"] = m.CustomMarshalerType
	}
	return d.synth(nsInteropServices, attrMarshalAs, []any{m.NativeType}, named)
}

// SynthesizeMethodAttributes builds DllImportAttribute (from the
// ImplMap row), PreserveSigAttribute and MethodImplAttribute (from the
// ImplFlags column) for a method (spec.md §4.3, §4.4). Named fields
// that equal DllImport's own defaults are omitted rather than emitted
// redundantly: calling convention when Winapi, character set when
// unspecified, entry point when it equals the method's own name. When
// a P/Invoke record exists, an ImplFlags PreserveSig bit is absorbed
// into DllImport's named arguments instead of re-emitted as its own
// PreserveSigAttribute.
func (d *attributeDecoder) SynthesizeMethodAttributes(md metadata.MethodDefinition) []*unresolved.Attribute {
	var out []*unresolved.Attribute

	impl := md.ImplAttributes()
	preserveSigAbsorbed := false

	if pi := md.PInvoke(); pi != nil {
		named := map[string]any{}
		if pi.EntryPoint != md.Name() {
			named["EntryPoint"] = pi.EntryPoint
		}
		if cs := pInvokeCharSetName(pi.Attributes); cs != "NotSpecified" {
			named["CharSet"] = cs
		}
		if cc := pInvokeCallConvName(pi.Attributes); cc != "Winapi" {
			named["CallingConvention"] = cc
		}
		if pi.Attributes.Has(metadata.PInvokeSupportsLastError) {
			named["SetLastError"] = true
		}
		if pi.Attributes.Has(metadata.PInvokeNoMangle) {
			named["ExactSpelling"] = true
		}
		switch pi.Attributes & metadata.PInvokeBestFitMask {
		case metadata.PInvokeBestFitEnabled:
			named["BestFitMapping"] = true
		case metadata.PInvokeBestFitDisabled:
			named["BestFitMapping"] = false
		}
		switch pi.Attributes & metadata.PInvokeThrowOnUnmappableMask {
		case metadata.PInvokeThrowOnUnmappableEnabled:
			named["ThrowOnUnmappableChar"] = true
		case metadata.PInvokeThrowOnUnmappableDisabled:
			named["ThrowOnUnmappableChar"] = false
		}
		if impl.Has(metadata.MethodImplPreserveSig) {
			named["PreserveSig"] = true
			preserveSigAbsorbed = true
		}
		out = append(out, d.intern(d.synth(nsInteropServices, attrDllImport, []any{pi.ModuleName}, named)))
	}

	if impl.Has(metadata.MethodImplPreserveSig) && !preserveSigAbsorbed {
		out = append(out, d.intern(d.synth(nsInteropServices, attrPreserveSig, nil, nil)))
	}
	if flags := methodImplOptionsName(impl); flags != nil {
		out = append(out, d.intern(d.synth(nsCompilerServices, attrMethodImpl, []any{flags}, nil)))
	}

	return out
}

func pInvokeCharSetName(attrs metadata.PInvokeAttributes) string {
	switch attrs & metadata.PInvokeCharSetMask {
	case metadata.PInvokeCharSetAnsi:
		return "Ansi"
	case metadata.PInvokeCharSetUnicode:
		return "Unicode"
	case metadata.PInvokeCharSetAuto:
		return "Auto"
	default:
		return "NotSpecified"
	}
}

func pInvokeCallConvName(attrs metadata.PInvokeAttributes) string {
	switch attrs & metadata.PInvokeCallConvMask {
	case metadata.PInvokeCallConvCdecl:
		return "Cdecl"
	case metadata.PInvokeCallConvStdcall:
		return "StdCall"
	case metadata.PInvokeCallConvThiscall:
		return "ThisCall"
	case metadata.PInvokeCallConvFastcall:
		return "FastCall"
	default:
		return "Winapi"
	}
}

// methodImplOptionsName returns the System.Runtime.CompilerServices.MethodImplOptions
// flag names set on impl, or nil if none of the ones this loader tracks are set.
func methodImplOptionsName(impl metadata.MethodImplAttributes) []string {
	var names []string
	add := func(bit metadata.MethodImplAttributes, name string) {
		if impl.Has(bit) {
			names = append(names, name)
		}
	}
	add(metadata.MethodImplInternalCall, "InternalCall")
	add(metadata.MethodImplSynchronized, "Synchronized")
	add(metadata.MethodImplNoInlining, "NoInlining")
	add(metadata.MethodImplForwardRef, "ForwardRef")
	add(metadata.MethodImplNoOptimization, "NoOptimization")
	return names
}

// synth builds a synthesized attribute of the named BCL type, resolving
// its Type reference as a NamedTypeReference in the current assembly
// scope's terms (its own assembly is unknown to attributeDecoder, so
// the reference carries an empty assembly name and is not rewritten
// afterwards).
func (d *attributeDecoder) synth(namespace, name string, positional []any, named map[string]any) *unresolved.Attribute {
	ref := unresolved.NewNamedTypeReference("", namespace, name, 0, true, true)
	return unresolved.NewSynthesizedAttribute(ref, positional, named)
}

func (d *attributeDecoder) intern(a *unresolved.Attribute) *unresolved.Attribute {
	return d.pool.InternAttribute(a.Key(), a)
}
