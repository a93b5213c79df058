package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jprathore/clrmeta/unresolved"
)

// AssemblyDump, TypeDump and MemberDump are the JSON output shapes for
// this command; they flatten the recursive unresolved.TypeDefinition
// graph into something a caller can json.Unmarshal without importing
// package unresolved itself.
type AssemblyDump struct {
	File       string     `json:"file"`
	Name       string     `json:"name"`
	Location   string     `json:"location"`
	Mvid       string     `json:"mvid"`
	Executable bool       `json:"executable"`
	Types      []TypeDump `json:"types"`
}

type TypeDump struct {
	Token         string       `json:"token"`
	FullName      string       `json:"fullName"`
	Kind          string       `json:"kind"`
	Accessibility string       `json:"accessibility"`
	BaseTypes     []string     `json:"baseTypes,omitempty"`
	Members       []MemberDump `json:"members,omitempty"`
	NestedTypes   []TypeDump   `json:"nestedTypes,omitempty"`
}

type MemberDump struct {
	Kind          string `json:"kind"`
	Signature     string `json:"signature"`
	Accessibility string `json:"accessibility"`
}

func buildAssemblyDump(file string, asm *unresolved.Assembly) AssemblyDump {
	types := asm.Types()
	out := AssemblyDump{
		File:       file,
		Name:       asm.Name(),
		Location:   asm.Location(),
		Mvid:       formatMvid(asm.Mvid()),
		Executable: asm.IsExecutable(),
		Types:      make([]TypeDump, len(types)),
	}
	for i, t := range types {
		out.Types[i] = buildTypeDump(t)
	}
	return out
}

func buildTypeDump(t unresolved.TypeDefinition) TypeDump {
	baseTypes := make([]string, len(t.BaseTypes()))
	for i, bt := range t.BaseTypes() {
		baseTypes[i] = describeRef(bt)
	}
	members := make([]MemberDump, len(t.Members()))
	for i, m := range t.Members() {
		members[i] = MemberDump{
			Kind:          memberKindName(m.Kind()),
			Signature:     describeMember(m),
			Accessibility: m.Accessibility().String(),
		}
	}
	nested := make([]TypeDump, len(t.NestedTypes()))
	for i, n := range t.NestedTypes() {
		nested[i] = buildTypeDump(n)
	}
	return TypeDump{
		Token:         fmt.Sprintf("0x%08x", t.Token()),
		FullName:      t.FullName(),
		Kind:          t.Kind().String(),
		Accessibility: t.Accessibility().String(),
		BaseTypes:     baseTypes,
		Members:       members,
		NestedTypes:   nested,
	}
}

func memberKindName(k unresolved.MemberKind) string {
	switch k {
	case unresolved.MemberKindMethod:
		return "method"
	case unresolved.MemberKindField:
		return "field"
	case unresolved.MemberKindProperty:
		return "property"
	case unresolved.MemberKindEvent:
		return "event"
	default:
		return "unknown"
	}
}

func formatMvid(mvid [16]byte) string {
	return hex.EncodeToString(mvid[:])
}

func dumpJSON(files []string, assemblies []*unresolved.Assembly) error {
	dumps := make([]AssemblyDump, len(assemblies))
	for i, asm := range assemblies {
		dumps[i] = buildAssemblyDump(files[i], asm)
	}
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dumps)
}

func dumpText(files []string, assemblies []*unresolved.Assembly) error {
	for i, asm := range assemblies {
		fmt.Fprintf(output, "=== %s (%s) ===\n", asm.Name(), files[i])
		fmt.Fprintf(output, "location: %s\n", asm.Location())
		fmt.Fprintf(output, "mvid: %s\n", formatMvid(asm.Mvid()))
		fmt.Fprintf(output, "executable: %v\n", asm.IsExecutable())
		for _, t := range asm.Types() {
			writeTypeText(t, 0)
		}
		fmt.Fprintln(output)
	}
	return nil
}

func writeTypeText(t unresolved.TypeDefinition, depth int) {
	indent := strings.Repeat("  ", depth)
	base := ""
	if bases := t.BaseTypes(); len(bases) > 0 {
		names := make([]string, len(bases))
		for i, b := range bases {
			names[i] = describeRef(b)
		}
		base = " : " + strings.Join(names, ", ")
	}
	fmt.Fprintf(output, "%s%s %s %s%s\n", indent, t.Accessibility(), t.Kind(), t.FullName(), base)
	for _, m := range t.Members() {
		fmt.Fprintf(output, "%s  %s %s\n", indent, m.Accessibility(), describeMember(m))
	}
	for _, n := range t.NestedTypes() {
		writeTypeText(n, depth+1)
	}
}
