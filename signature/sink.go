// Package signature defines the output side of the engine: a token sink that
// receives generic-signature writer calls, a serializer for the JVM signature
// and descriptor grammars, and a token recorder.
//
// Sinks are owned by the caller. The engine writes to a sink for the duration
// of one call and keeps no reference to it afterwards. Sinks are not safe for
// concurrent use.
package signature

import "github.com/willhansen/jvmsig/ir"

// Sink receives the token stream of one mapped type.
type Sink interface {
	// WriteAsmType writes a class type without generic arguments.
	WriteAsmType(internalName string)

	// WriteClassBegin starts a parameterized class type.
	WriteClassBegin(internalName string)

	// WriteOuterClassBegin starts a nested generic chain. resultingName is
	// the internal name of the whole type (used for the erased descriptor);
	// outerName is the internal name of the chain's root class.
	WriteOuterClassBegin(resultingName, outerName string)

	// WriteInnerClass continues a nested chain with the next level's short name.
	WriteInnerClass(shortName string)

	// WriteClassEnd ends the type started by WriteClassBegin or WriteOuterClassBegin.
	WriteClassEnd()

	// WriteTypeArgument starts a type argument with the given variance marker.
	WriteTypeArgument(variance ir.Variance)

	// WriteTypeArgumentEnd ends the argument started by WriteTypeArgument.
	WriteTypeArgumentEnd()

	// WriteUnboundedWildcard writes a "*" argument.
	WriteUnboundedWildcard()

	// WriteTypeVariable writes a use of a type parameter; erasure is the
	// internal name of its erased upper bound.
	WriteTypeVariable(name, erasure string)

	// WriteArrayType starts an array type; the element type follows.
	WriteArrayType()

	// WriteArrayEnd ends the array started by WriteArrayType.
	WriteArrayEnd()

	// WritePrimitive writes a primitive base type such as 'I' or 'Z'.
	WritePrimitive(descriptor byte)
}

// TokenKind identifies a Sink call.
type TokenKind int

const (
	TokenAsmType TokenKind = iota
	TokenClassBegin
	TokenOuterClassBegin
	TokenInnerClass
	TokenClassEnd
	TokenTypeArgument
	TokenTypeArgumentEnd
	TokenUnboundedWildcard
	TokenTypeVariable
	TokenArrayType
	TokenArrayEnd
	TokenPrimitive
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenAsmType:
		return "asmType"
	case TokenClassBegin:
		return "classBegin"
	case TokenOuterClassBegin:
		return "outerClassBegin"
	case TokenInnerClass:
		return "innerClass"
	case TokenClassEnd:
		return "classEnd"
	case TokenTypeArgument:
		return "typeArgument"
	case TokenTypeArgumentEnd:
		return "typeArgumentEnd"
	case TokenUnboundedWildcard:
		return "unboundedWildcard"
	case TokenTypeVariable:
		return "typeVariable"
	case TokenArrayType:
		return "arrayType"
	case TokenArrayEnd:
		return "arrayEnd"
	case TokenPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// VarianceMarker returns the signature marker for v: '+', '-' or 0 for invariant.
func VarianceMarker(v ir.Variance) byte {
	switch v {
	case ir.Out:
		return '+'
	case ir.In:
		return '-'
	default:
		return 0
	}
}
