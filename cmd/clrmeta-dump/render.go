package main

import (
	"fmt"
	"strings"

	"github.com/jprathore/clrmeta/unresolved"
)

// describeRef renders a TypeReference as a short, C#-like display
// string, recursing through the compound constructors named in
// spec.md §4.2. It exists only for this command's text/JSON output; it
// carries no semantic meaning back into package loader or unresolved.
func describeRef(ref unresolved.TypeReference) string {
	if ref == nil {
		return "<none>"
	}
	switch t := ref.(type) {
	case unresolved.KnownTypeReference:
		return t.Name
	case unresolved.PointerType:
		return describeRef(t.Element) + "*"
	case unresolved.ByReferenceType:
		return describeRef(t.Element) + "&"
	case unresolved.ArrayType:
		if t.Rank <= 1 {
			return describeRef(t.Element) + "[]"
		}
		return fmt.Sprintf("%s[%s]", describeRef(t.Element), strings.Repeat(",", t.Rank-1))
	case unresolved.ParameterizedType:
		args := make([]string, len(t.Arguments))
		for i, a := range t.Arguments {
			args[i] = describeRef(a)
		}
		return fmt.Sprintf("%s<%s>", describeRef(t.GenericType), strings.Join(args, ", "))
	case unresolved.TupleType:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			if t.Names[i] != "" {
				parts[i] = fmt.Sprintf("%s %s", describeRef(e), t.Names[i])
			} else {
				parts[i] = describeRef(e)
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case unresolved.TypeParameterReference:
		if t.Kind == unresolved.TypeParameterKindMethod {
			return fmt.Sprintf("!!%d", t.Position)
		}
		return fmt.Sprintf("!%d", t.Position)
	case *unresolved.NamedTypeReference:
		name := fullyQualify(t.Namespace, t.Name)
		if t.Assembly != "" {
			return fmt.Sprintf("%s [%s]", name, t.Assembly)
		}
		return name
	case *unresolved.NestedTypeReference:
		return describeRef(t.DeclaringType) + "+" + t.Name
	case *unresolved.TypeDefinitionTokenReference:
		return fullyQualify(t.Namespace, t.Name)
	default:
		return "<unknown>"
	}
}

func fullyQualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

func describeMember(m unresolved.Member) string {
	switch m.Kind() {
	case unresolved.MemberKindMethod:
		mm := m.(*unresolved.Method)
		params := make([]string, len(mm.Parameters))
		for i, p := range mm.Parameters {
			params[i] = describeRef(p.Type)
		}
		return fmt.Sprintf("%s %s(%s)", describeRef(mm.ReturnType()), mm.Name(), strings.Join(params, ", "))
	case unresolved.MemberKindField:
		return fmt.Sprintf("%s %s", describeRef(m.ReturnType()), m.Name())
	case unresolved.MemberKindProperty:
		pp := m.(*unresolved.Property)
		if pp.IsIndexer {
			return fmt.Sprintf("%s this[]", describeRef(pp.ReturnType()))
		}
		return fmt.Sprintf("%s %s { get; set; }", describeRef(pp.ReturnType()), pp.Name())
	case unresolved.MemberKindEvent:
		return fmt.Sprintf("event %s %s", describeRef(m.ReturnType()), m.Name())
	default:
		return m.Name()
	}
}
