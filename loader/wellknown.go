package loader

import "github.com/jprathore/clrmeta/metadata"

// typeSignatureName extracts the (namespace, name) of a TypeSignature
// that names a type by TypeDef or TypeRef. The resolution scope is not
// examined, so a nested type yields its own namespace and short name
// (sufficient for the well-known BCL attribute types this loader
// special-cases, none of which are nested).
func typeSignatureName(sig metadata.TypeSignature) (namespace, name string, ok bool) {
	td, ok := sig.(metadata.TypeDefOrRefSignature)
	if !ok {
		return "", "", false
	}
	if td.Definition != nil {
		return td.Definition.Namespace(), td.Definition.Name(), true
	}
	if td.Reference != nil {
		return td.Reference.Namespace, td.Reference.Name, true
	}
	return "", "", false
}

// isWellKnownAttribute reports whether a CustomAttribute's constructor
// targets the BCL attribute type named by (namespace, name).
func isWellKnownAttribute(attr metadata.CustomAttribute, namespace, name string) bool {
	ns, n, ok := typeSignatureName(attr.Constructor.DeclaringType)
	return ok && ns == namespace && n == name
}

const (
	nsCompilerServices = "System.Runtime.CompilerServices"
	nsInteropServices  = "System.Runtime.InteropServices"
	nsSystem           = "System"
	nsReflection       = "System.Reflection"

	attrDynamic             = "DynamicAttribute"
	attrTupleElementNames   = "TupleElementNamesAttribute"
	attrExtension           = "ExtensionAttribute"
	attrParamArray          = "ParamArrayAttribute"
	attrDecimalConstant     = "DecimalConstantAttribute"
	attrDefaultMember       = "DefaultMemberAttribute"
	attrDllImport           = "DllImportAttribute"
	attrPreserveSig         = "PreserveSigAttribute"
	attrMethodImpl          = "MethodImplAttribute"
	attrSerializable        = "SerializableAttribute"
	attrComImport           = "ComImportAttribute"
	attrStructLayout        = "StructLayoutAttribute"
	attrFieldOffset         = "FieldOffsetAttribute"
	attrNonSerialized       = "NonSerializedAttribute"
	attrMarshalAs           = "MarshalAsAttribute"
	attrStandardModule      = "StandardModuleAttribute"
	attrCompilerGlobalScope = "CompilerGlobalScopeAttribute"
)

// extractDynamicFlags decodes a DynamicAttribute's flag array, if
// present, from the raw attribute list of an entity. Returns
// (nil, false) when there is none; the marker-only constructor
// (`[Dynamic]`, no arguments) yields ([]bool{true}, true).
func extractDynamicFlags(attrs []metadata.CustomAttribute) ([]bool, bool) {
	for _, a := range attrs {
		if !isWellKnownAttribute(a, nsCompilerServices, attrDynamic) {
			continue
		}
		if len(a.Blob) <= 2 {
			return []bool{true}, true
		}
		r := newBlobReader(a.Blob)
		if _, err := r.readU16(); err != nil { // prolog
			return []bool{true}, true
		}
		if flags, err := r.readBoolArray(); err == nil {
			return flags, true
		}
		// Single-bool overload: [Dynamic(true)].
		r2 := newBlobReader(a.Blob)
		_, _ = r2.readU16()
		if b, err := r2.readU8(); err == nil {
			return []bool{b != 0}, true
		}
		return []bool{true}, true
	}
	return nil, false
}

// extractTupleElementNames decodes a TupleElementNamesAttribute's name
// array, if present.
func extractTupleElementNames(attrs []metadata.CustomAttribute) ([]string, bool) {
	for _, a := range attrs {
		if !isWellKnownAttribute(a, nsCompilerServices, attrTupleElementNames) {
			continue
		}
		if len(a.Blob) <= 2 {
			return nil, true
		}
		r := newBlobReader(a.Blob)
		if _, err := r.readU16(); err != nil {
			return nil, true
		}
		names, err := r.readStringArray()
		if err != nil {
			return nil, true
		}
		return names, true
	}
	return nil, false
}

func hasMarkerAttribute(attrs []metadata.CustomAttribute, namespace, name string) bool {
	for _, a := range attrs {
		if isWellKnownAttribute(a, namespace, name) {
			return true
		}
	}
	return false
}

func findAttribute(attrs []metadata.CustomAttribute, namespace, name string) (metadata.CustomAttribute, bool) {
	for _, a := range attrs {
		if isWellKnownAttribute(a, namespace, name) {
			return a, true
		}
	}
	return metadata.CustomAttribute{}, false
}
