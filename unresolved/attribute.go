package unresolved

import (
	"fmt"
	"sort"
	"strings"
)

// Attribute is a translated custom attribute or security declaration
// (spec.md §3, §4.3). A user-authored attribute is preserved
// blob-backed (Blob non-nil, arguments unset); a loader-synthesized
// attribute (DllImport, StructLayout, ...) carries decoded arguments
// instead (Blob nil).
type Attribute struct {
	Type                      TypeReference
	ConstructorParameterTypes []TypeReference
	Blob                      []byte
	PositionalArguments       []any
	NamedArguments            map[string]any

	// IsSecurityDeclaration and SecurityAction apply only to
	// attributes built from a DeclSecurity row (spec.md §4.3: "Security
	// declarations are wrapped similarly, keyed by action code").
	IsSecurityDeclaration bool
	SecurityAction        uint16
}

// NewBlobAttribute wraps a user custom attribute whose argument blob is
// left undecoded.
func NewBlobAttribute(attrType TypeReference, ctorParams []TypeReference, blob []byte) *Attribute {
	return &Attribute{Type: attrType, ConstructorParameterTypes: ctorParams, Blob: blob}
}

// NewSynthesizedAttribute wraps a loader-synthesized attribute with
// already-decoded arguments.
func NewSynthesizedAttribute(attrType TypeReference, positional []any, named map[string]any) *Attribute {
	return &Attribute{Type: attrType, PositionalArguments: positional, NamedArguments: named}
}

// NewSecurityDeclarationAttribute wraps a DeclSecurity row.
func NewSecurityDeclarationAttribute(attrType TypeReference, action uint16, blob []byte) *Attribute {
	return &Attribute{Type: attrType, Blob: blob, IsSecurityDeclaration: true, SecurityAction: action}
}

// Key returns a stable string suitable for interning-pool
// deduplication: two value-equal attributes produce the same key.
func (a *Attribute) Key() string {
	var sb strings.Builder
	sb.WriteString(TypeReferenceKey(a.Type))
	if a.IsSecurityDeclaration {
		fmt.Fprintf(&sb, "|sec:%d|blob:%x", a.SecurityAction, a.Blob)
		return sb.String()
	}
	if a.Blob != nil {
		fmt.Fprintf(&sb, "|blob:%x", a.Blob)
		return sb.String()
	}
	fmt.Fprintf(&sb, "|pos:%v", a.PositionalArguments)
	if len(a.NamedArguments) > 0 {
		keys := make([]string, 0, len(a.NamedArguments))
		for k := range a.NamedArguments {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("|named:")
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s=%v;", k, a.NamedArguments[k])
		}
	}
	return sb.String()
}

// TypeReferenceKey builds a stable string key for a TypeReference tree,
// used both for attribute deduplication and for interning
// TypeReferences themselves.
func TypeReferenceKey(ref TypeReference) string {
	if ref == nil {
		return "<nil>"
	}
	switch t := ref.(type) {
	case KnownTypeReference:
		return "K:" + t.Name
	case PointerType:
		return "P:" + TypeReferenceKey(t.Element)
	case ByReferenceType:
		return "R:" + TypeReferenceKey(t.Element)
	case ArrayType:
		return fmt.Sprintf("A%d:%s", t.Rank, TypeReferenceKey(t.Element))
	case ParameterizedType:
		var sb strings.Builder
		sb.WriteString("G:")
		sb.WriteString(TypeReferenceKey(t.GenericType))
		for _, arg := range t.Arguments {
			sb.WriteByte(',')
			sb.WriteString(TypeReferenceKey(arg))
		}
		return sb.String()
	case TupleType:
		var sb strings.Builder
		sb.WriteString("T:")
		for i, el := range t.Elements {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(t.Names[i])
			sb.WriteByte(':')
			sb.WriteString(TypeReferenceKey(el))
		}
		return sb.String()
	case TypeParameterReference:
		return fmt.Sprintf("V%d:%d", t.Kind, t.Position)
	case *NamedTypeReference:
		return fmt.Sprintf("N:%s/%s.%s`%d", t.Assembly, t.Namespace, t.Name, t.Arity)
	case *NestedTypeReference:
		return fmt.Sprintf("%s+%s`%d", TypeReferenceKey(t.DeclaringType), t.Name, t.Arity)
	case *TypeDefinitionTokenReference:
		return fmt.Sprintf("D:0x%08x", t.Token)
	default:
		return fmt.Sprintf("?:%v", ref)
	}
}
