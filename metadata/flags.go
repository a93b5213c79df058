// Package metadata describes the object graph a CLI metadata parser is
// expected to expose. It is the external collaborator this loader
// consumes: nothing in this package touches the byte layout of a
// metadata image, that parser lives outside this module.
package metadata

// ElementType identifies a primitive CLI type, as used both for the
// leaves of a type signature and for boxed constant values.
type ElementType uint8

const (
	ElementTypeVoid ElementType = iota
	ElementTypeBoolean
	ElementTypeChar
	ElementTypeSByte
	ElementTypeByte
	ElementTypeInt16
	ElementTypeUInt16
	ElementTypeInt32
	ElementTypeUInt32
	ElementTypeInt64
	ElementTypeUInt64
	ElementTypeSingle
	ElementTypeDouble
	ElementTypeString
	ElementTypeObject
	ElementTypeIntPtr
	ElementTypeUIntPtr
	ElementTypeTypedByRef
)

// TypeAttributes mirrors ECMA-335 §II.23.1.15 (a subset relevant to
// visibility, layout and semantic kind).
type TypeAttributes uint32

const (
	TypeAttrVisibilityMask TypeAttributes = 0x7
	TypeAttrNotPublic      TypeAttributes = 0x0
	TypeAttrPublic         TypeAttributes = 0x1
	TypeAttrNestedPublic   TypeAttributes = 0x2
	TypeAttrNestedPrivate  TypeAttributes = 0x3
	TypeAttrNestedFamily   TypeAttributes = 0x4
	TypeAttrNestedAssembly TypeAttributes = 0x5
	TypeAttrNestedFamANDAssem TypeAttributes = 0x6
	TypeAttrNestedFamORAssem  TypeAttributes = 0x7

	TypeAttrSequentialLayout TypeAttributes = 0x8
	TypeAttrExplicitLayout   TypeAttributes = 0x10
	TypeAttrLayoutMask       TypeAttributes = 0x18

	TypeAttrInterface TypeAttributes = 0x20
	TypeAttrAbstract  TypeAttributes = 0x80
	TypeAttrSealed    TypeAttributes = 0x100

	TypeAttrAnsiClass    TypeAttributes = 0x0
	TypeAttrUnicodeClass TypeAttributes = 0x10000
	TypeAttrAutoClass    TypeAttributes = 0x20000
	TypeAttrStringFormatMask TypeAttributes = 0x30000

	TypeAttrSerializable TypeAttributes = 0x2000
	TypeAttrImport       TypeAttributes = 0x1000 // ComImport
)

func (f TypeAttributes) Visibility() TypeAttributes { return f & TypeAttrVisibilityMask }
func (f TypeAttributes) Has(bit TypeAttributes) bool { return f&bit == bit }
func (f TypeAttributes) Layout() TypeAttributes      { return f & TypeAttrLayoutMask }
func (f TypeAttributes) CharSet() TypeAttributes     { return f & TypeAttrStringFormatMask }

// MethodAttributes mirrors ECMA-335 §II.23.1.10.
type MethodAttributes uint16

const (
	MethodAttrMemberAccessMask MethodAttributes = 0x7
	MethodAttrPrivateScope     MethodAttributes = 0x0
	MethodAttrPrivate          MethodAttributes = 0x1
	MethodAttrFamANDAssem      MethodAttributes = 0x2
	MethodAttrAssembly         MethodAttributes = 0x3
	MethodAttrFamily           MethodAttributes = 0x4
	MethodAttrFamORAssem       MethodAttributes = 0x5
	MethodAttrPublic           MethodAttributes = 0x6

	MethodAttrStatic       MethodAttributes = 0x10
	MethodAttrFinal        MethodAttributes = 0x20
	MethodAttrVirtual      MethodAttributes = 0x40
	MethodAttrHideBySig    MethodAttributes = 0x80
	MethodAttrNewSlot      MethodAttributes = 0x100
	MethodAttrAbstract     MethodAttributes = 0x400
	MethodAttrSpecialName  MethodAttributes = 0x800
	MethodAttrPInvokeImpl  MethodAttributes = 0x2000
)

func (f MethodAttributes) Access() MethodAttributes { return f & MethodAttrMemberAccessMask }
func (f MethodAttributes) Has(bit MethodAttributes) bool { return f&bit == bit }

// FieldAttributes mirrors ECMA-335 §II.23.1.5.
type FieldAttributes uint16

const (
	FieldAttrFieldAccessMask FieldAttributes = 0x7
	FieldAttrPrivateScope    FieldAttributes = 0x0
	FieldAttrPrivate         FieldAttributes = 0x1
	FieldAttrFamANDAssem     FieldAttributes = 0x2
	FieldAttrAssembly        FieldAttributes = 0x3
	FieldAttrFamily          FieldAttributes = 0x4
	FieldAttrFamORAssem      FieldAttributes = 0x5
	FieldAttrPublic          FieldAttributes = 0x6

	FieldAttrStatic       FieldAttributes = 0x10
	FieldAttrInitOnly     FieldAttributes = 0x20
	FieldAttrLiteral      FieldAttributes = 0x40
	FieldAttrNotSerialized FieldAttributes = 0x80
	FieldAttrHasFieldRVA  FieldAttributes = 0x100
)

func (f FieldAttributes) Access() FieldAttributes { return f & FieldAttrFieldAccessMask }
func (f FieldAttributes) Has(bit FieldAttributes) bool { return f&bit == bit }

// ParamAttributes mirrors ECMA-335 §II.23.1.13.
type ParamAttributes uint16

const (
	ParamAttrIn       ParamAttributes = 0x1
	ParamAttrOut      ParamAttributes = 0x2
	ParamAttrOptional ParamAttributes = 0x10
	ParamAttrHasDefault ParamAttributes = 0x1000
)

func (f ParamAttributes) Has(bit ParamAttributes) bool { return f&bit == bit }

// MethodSemanticsAttributes mirrors ECMA-335 §II.23.1.12.
type MethodSemanticsAttributes uint16

const (
	MethodSemanticsNone     MethodSemanticsAttributes = 0x0
	MethodSemanticsGetter   MethodSemanticsAttributes = 0x2
	MethodSemanticsSetter   MethodSemanticsAttributes = 0x1
	MethodSemanticsOther    MethodSemanticsAttributes = 0x4
	MethodSemanticsAddOn    MethodSemanticsAttributes = 0x8
	MethodSemanticsRemoveOn MethodSemanticsAttributes = 0x10
	MethodSemanticsFire     MethodSemanticsAttributes = 0x20
)

// MethodImplAttributes mirrors ECMA-335 §II.23.1.11 (CodeType bits
// omitted, only the bits this loader synthesizes attributes from).
type MethodImplAttributes uint16

const (
	MethodImplPreserveSig MethodImplAttributes = 0x80
	MethodImplInternalCall MethodImplAttributes = 0x1000
	MethodImplSynchronized MethodImplAttributes = 0x20
	MethodImplNoInlining   MethodImplAttributes = 0x8
	MethodImplForwardRef   MethodImplAttributes = 0x10
	MethodImplNoOptimization MethodImplAttributes = 0x40
)

func (f MethodImplAttributes) Has(bit MethodImplAttributes) bool { return f&bit == bit }

// PInvokeAttributes mirrors ECMA-335 §II.23.1.8.
type PInvokeAttributes uint16

const (
	PInvokeNoMangle              PInvokeAttributes = 0x1
	PInvokeCharSetMask           PInvokeAttributes = 0x6
	PInvokeCharSetNotSpec        PInvokeAttributes = 0x0
	PInvokeCharSetAnsi           PInvokeAttributes = 0x2
	PInvokeCharSetUnicode        PInvokeAttributes = 0x4
	PInvokeCharSetAuto           PInvokeAttributes = 0x6
	PInvokeSupportsLastError     PInvokeAttributes = 0x40
	PInvokeCallConvMask          PInvokeAttributes = 0x700
	PInvokeCallConvWinapi        PInvokeAttributes = 0x100
	PInvokeCallConvCdecl         PInvokeAttributes = 0x200
	PInvokeCallConvStdcall       PInvokeAttributes = 0x300
	PInvokeCallConvThiscall      PInvokeAttributes = 0x400
	PInvokeCallConvFastcall      PInvokeAttributes = 0x500
	PInvokeBestFitEnabled        PInvokeAttributes = 0x10
	PInvokeBestFitDisabled       PInvokeAttributes = 0x20
	PInvokeBestFitMask           PInvokeAttributes = 0x30
	PInvokeThrowOnUnmappableEnabled  PInvokeAttributes = 0x1000
	PInvokeThrowOnUnmappableDisabled PInvokeAttributes = 0x2000
	PInvokeThrowOnUnmappableMask     PInvokeAttributes = 0x3000
)

func (f PInvokeAttributes) Has(bit PInvokeAttributes) bool { return f&bit == bit }

// CallingConvention mirrors the low nibble of ECMA-335 §II.23.2.1
// MethodDefSig calling-convention byte.
type CallingConvention uint8

const (
	CallingConventionDefault CallingConvention = iota
	CallingConventionVarArg
	CallingConventionGeneric
	CallingConventionUnmanaged
)

// GenericParameterAttributes mirrors ECMA-335 §II.23.1.7.
type GenericParameterAttributes uint16

const (
	GenericParamVarianceMask     GenericParameterAttributes = 0x3
	GenericParamNonVariant       GenericParameterAttributes = 0x0
	GenericParamCovariant        GenericParameterAttributes = 0x1
	GenericParamContravariant    GenericParameterAttributes = 0x2
	GenericParamReferenceTypeConstraint GenericParameterAttributes = 0x4
	GenericParamNotNullableValueTypeConstraint GenericParameterAttributes = 0x8
	GenericParamDefaultConstructorConstraint   GenericParameterAttributes = 0x10
)

func (f GenericParameterAttributes) Has(bit GenericParameterAttributes) bool { return f&bit == bit }
