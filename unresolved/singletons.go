package unresolved

// Well-known singleton references (spec.md §3 invariant: "every
// reference the loader returns is either a known singleton ... or has
// been registered with the interning pool"). These are compile-time
// constants per design note in spec.md §9; loader code must return
// these exact values rather than constructing equal-but-distinct ones.
var (
	Void      TypeReference = KnownTypeReference{Name: "void"}
	Object    TypeReference = KnownTypeReference{Name: "object"}
	Dynamic   TypeReference = KnownTypeReference{Name: "dynamic"}
	ArgList   TypeReference = KnownTypeReference{Name: "arglist"}
	Unknown   TypeReference = KnownTypeReference{Name: "unknown"}
	Boolean   TypeReference = KnownTypeReference{Name: "bool"}
	Char      TypeReference = KnownTypeReference{Name: "char"}
	SByte     TypeReference = KnownTypeReference{Name: "sbyte"}
	Byte      TypeReference = KnownTypeReference{Name: "byte"}
	Int16     TypeReference = KnownTypeReference{Name: "short"}
	UInt16    TypeReference = KnownTypeReference{Name: "ushort"}
	Int32     TypeReference = KnownTypeReference{Name: "int"}
	UInt32    TypeReference = KnownTypeReference{Name: "uint"}
	Int64     TypeReference = KnownTypeReference{Name: "long"}
	UInt64    TypeReference = KnownTypeReference{Name: "ulong"}
	Single    TypeReference = KnownTypeReference{Name: "float"}
	Double    TypeReference = KnownTypeReference{Name: "double"}
	String    TypeReference = KnownTypeReference{Name: "string"}
	IntPtr    TypeReference = KnownTypeReference{Name: "nint"}
	UIntPtr   TypeReference = KnownTypeReference{Name: "nuint"}
	TypedRef  TypeReference = KnownTypeReference{Name: "TypedReference"}
)

// primitiveSingletons maps a metadata.ElementType (mirrored here
// by its numeric value to avoid an import of the metadata package,
// which unresolved must not depend on) to its singleton reference.
// The loader package owns the metadata.ElementType -> index translation.
var primitiveSingletons = [...]TypeReference{
	Void, Boolean, Char, SByte, Byte, Int16, UInt16, Int32, UInt32,
	Int64, UInt64, Single, Double, String, Object, IntPtr, UIntPtr, TypedRef,
}

// PrimitiveByIndex returns the singleton reference for the Nth
// metadata.ElementType constant (in the order that type is declared).
// Index out of range returns Unknown.
func PrimitiveByIndex(i int) TypeReference {
	if i < 0 || i >= len(primitiveSingletons) {
		return Unknown
	}
	return primitiveSingletons[i]
}
