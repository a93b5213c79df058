// Package jsonmodule implements the metadata package's interfaces
// (metadata.Module, metadata.TypeDefinition, ...) backed by a compact
// JSON serialization of an already-decoded CLI object graph. Producing
// that graph from a raw PE/CLI image is a separate concern this module
// does not take on (spec.md §1); jsonmodule exists so cmd/clrmeta-dump
// and the loader tests have a concrete, file-based metadata.Module to
// drive without one, the same way the retrieval pack's own scanner
// caches its scan result as gzip+JSON rather than re-walking source.
package jsonmodule

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jprathore/clrmeta/metadata"
)

func parseToken(s string) uint32 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	return uint32(v)
}

func parseMvid(s string) [16]byte {
	var out [16]byte
	b, err := hex.DecodeString(strings.ReplaceAll(s, "-", ""))
	if err != nil {
		return out
	}
	copy(out[:], b)
	return out
}

func decodeBlob(s string) []byte {
	if s == "" {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

// document is the root of a parsed JSON module file. It implements
// metadata.Module directly; wireType/wireField/... implement the
// corresponding metadata interfaces, resolving cross-references (a
// property's getter token, an override's declaring type) against doc
// via a back-pointer installed by link().
type document struct {
	NameField        string            `json:"name"`
	LocationField    string            `json:"location"`
	MvidField        string            `json:"mvid"`
	EntryPointField  string            `json:"entryPointToken"`
	AssemblyField    *wireAssemblyInfo `json:"assembly"`
	ModuleAttrsField []wireAttribute   `json:"moduleAttributes"`
	TypesField       []*wireType       `json:"types"`
	ForwardersField  []wireForwarder   `json:"forwarders"`

	byToken map[uint32]*wireType
}

// Load parses one JSON module file into a metadata.Module.
func Load(r io.Reader) (metadata.Module, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsonmodule: decode: %w", err)
	}
	doc.link()
	return &doc, nil
}

func (d *document) link() {
	d.byToken = make(map[uint32]*wireType)
	var walk func(types []*wireType, declaring *wireType)
	walk = func(types []*wireType, declaring *wireType) {
		for _, t := range types {
			t.doc = d
			t.declaring = declaring
			d.byToken[parseToken(t.TokenField)] = t

			t.methodsByToken = make(map[uint32]*wireMethod, len(t.MethodsField))
			for _, f := range t.FieldsField {
				f.doc = d
				f.declaring = t
			}
			for _, m := range t.MethodsField {
				m.doc = d
				m.declaring = t
				t.methodsByToken[parseToken(m.TokenField)] = m
				for _, p := range m.ParametersField {
					p.doc = d
				}
				for _, gp := range m.GenericParamsField {
					gp.doc = d
				}
			}
			for _, p := range t.PropertiesField {
				p.doc = d
				p.owner = t
			}
			for _, e := range t.EventsField {
				e.doc = d
				e.owner = t
			}
			for _, gp := range t.GenericParamsField {
				gp.doc = d
			}
			walk(t.NestedField, t)
		}
	}
	walk(d.TypesField, nil)
}

func (d *document) Name() string     { return d.NameField }
func (d *document) Location() string { return d.LocationField }
func (d *document) Mvid() [16]byte   { return parseMvid(d.MvidField) }
func (d *document) EntryPointToken() uint32 {
	return parseToken(d.EntryPointField)
}

func (d *document) Assembly() *metadata.AssemblyInfo {
	if d.AssemblyField == nil {
		return nil
	}
	return &metadata.AssemblyInfo{
		Name:           d.AssemblyField.Name,
		Version:        d.AssemblyField.Version,
		Culture:        d.AssemblyField.Culture,
		PublicKeyToken: decodeBlob(d.AssemblyField.PublicKeyToken),
		Attributes:     convertAttrs(d, d.AssemblyField.Attributes),
	}
}

func (d *document) ModuleAttributes() []metadata.CustomAttribute {
	return convertAttrs(d, d.ModuleAttrsField)
}

func (d *document) Types() []metadata.TypeDefinition {
	out := make([]metadata.TypeDefinition, len(d.TypesField))
	for i, t := range d.TypesField {
		out[i] = t
	}
	return out
}

func (d *document) TypeForwarders() []metadata.TypeForwarder {
	out := make([]metadata.TypeForwarder, len(d.ForwardersField))
	for i, f := range d.ForwardersField {
		out[i] = metadata.TypeForwarder{
			Namespace: f.Namespace,
			Name:      f.Name,
			Arity:     f.Arity,
			Scope:     metadata.AssemblyRefScope{AssemblyName: f.Assembly},
		}
	}
	return out
}

type wireAssemblyInfo struct {
	Name           string          `json:"name"`
	Version        [4]uint16       `json:"version"`
	Culture        string          `json:"culture"`
	PublicKeyToken string          `json:"publicKeyToken"`
	Attributes     []wireAttribute `json:"attributes"`
}

type wireForwarder struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Arity     int    `json:"arity"`
	Assembly  string `json:"assembly"`
}

type wireAttribute struct {
	Constructor wireMethodRef `json:"constructor"`
	Blob        string        `json:"blob"`
}

func convertAttrs(d *document, raw []wireAttribute) []metadata.CustomAttribute {
	if len(raw) == 0 {
		return nil
	}
	out := make([]metadata.CustomAttribute, len(raw))
	for i, a := range raw {
		out[i] = metadata.CustomAttribute{
			Constructor: a.Constructor.toMethodReference(d),
			Blob:        decodeBlob(a.Blob),
		}
	}
	return out
}

type wireSecurity struct {
	Action uint16 `json:"action"`
	Blob   string `json:"blob"`
}

func convertSecurity(raw []wireSecurity) []metadata.SecurityDeclaration {
	if len(raw) == 0 {
		return nil
	}
	out := make([]metadata.SecurityDeclaration, len(raw))
	for i, s := range raw {
		out[i] = metadata.SecurityDeclaration{Action: s.Action, Blob: decodeBlob(s.Blob)}
	}
	return out
}

type wireMethodRef struct {
	DeclaringType  wireSignature   `json:"declaringType"`
	Name           string          `json:"name"`
	ParameterTypes []wireSignature `json:"parameterTypes"`
}

func (m wireMethodRef) toMethodReference(d *document) metadata.MethodReference {
	params := make([]metadata.TypeSignature, len(m.ParameterTypes))
	for i, p := range m.ParameterTypes {
		params[i] = p.toSignature(d)
	}
	return metadata.MethodReference{
		DeclaringType:  m.DeclaringType.toSignature(d),
		Name:           m.Name,
		ParameterTypes: params,
	}
}

type wireMarshal struct {
	NativeType             string `json:"nativeType"`
	ArrayElementType       string `json:"arrayElementType"`
	ArraySizeParamIndex    *int   `json:"arraySizeParamIndex"`
	ArraySizeConst         *int   `json:"arraySizeConst"`
	SafeArraySubType       string `json:"safeArraySubType"`
	CustomMarshalerType    string `json:"customMarshalerType"`
}

func (m *wireMarshal) toMarshalInfo() *metadata.MarshalInfo {
	if m == nil {
		return nil
	}
	out := &metadata.MarshalInfo{
		NativeType:          m.NativeType,
		ArrayElementType:    m.ArrayElementType,
		SafeArraySubType:    m.SafeArraySubType,
		CustomMarshalerType: m.CustomMarshalerType,
	}
	if m.ArraySizeParamIndex != nil {
		out.HasArraySizeParamIndex = true
		out.ArraySizeParamIndex = *m.ArraySizeParamIndex
	}
	if m.ArraySizeConst != nil {
		out.HasArraySizeConst = true
		out.ArraySizeConst = *m.ArraySizeConst
	}
	return out
}

type wireConstant struct {
	Type  uint8 `json:"type"`
	Value any   `json:"value"`
}

func (c *wireConstant) toConstantInfo() *metadata.ConstantInfo {
	if c == nil {
		return nil
	}
	return &metadata.ConstantInfo{Type: metadata.ElementType(c.Type), Value: c.Value}
}
