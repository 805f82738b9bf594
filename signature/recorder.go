package signature

import (
	"fmt"
	"strings"

	"github.com/willhansen/jvmsig/ir"
)

// Token is one recorded Sink call.
type Token struct {
	Kind TokenKind

	// Name is the internal name, short name or type variable name.
	Name string

	// Outer is the root internal name of an outer-class-begin token, or the
	// erasure of a type variable.
	Outer string

	Variance  ir.Variance
	Primitive byte
}

// String renders the token as a call, e.g. "classBegin(java/util/List)".
func (t Token) String() string {
	switch t.Kind {
	case TokenAsmType, TokenClassBegin, TokenInnerClass:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Name)
	case TokenOuterClassBegin:
		return fmt.Sprintf("%s(%s, %s)", t.Kind, t.Name, t.Outer)
	case TokenTypeVariable:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Name)
	case TokenTypeArgument:
		if m := VarianceMarker(t.Variance); m != 0 {
			return fmt.Sprintf("%s(%c)", t.Kind, m)
		}
		return fmt.Sprintf("%s(=)", t.Kind)
	case TokenPrimitive:
		return fmt.Sprintf("%s(%c)", t.Kind, t.Primitive)
	default:
		return t.Kind.String()
	}
}

// Recorder is a Sink that stores every call for inspection or replay.
type Recorder struct {
	Tokens []Token
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(t Token) { r.Tokens = append(r.Tokens, t) }

func (r *Recorder) WriteAsmType(internalName string) {
	r.add(Token{Kind: TokenAsmType, Name: internalName})
}

func (r *Recorder) WriteClassBegin(internalName string) {
	r.add(Token{Kind: TokenClassBegin, Name: internalName})
}

func (r *Recorder) WriteOuterClassBegin(resultingName, outerName string) {
	r.add(Token{Kind: TokenOuterClassBegin, Name: resultingName, Outer: outerName})
}

func (r *Recorder) WriteInnerClass(shortName string) {
	r.add(Token{Kind: TokenInnerClass, Name: shortName})
}

func (r *Recorder) WriteClassEnd() { r.add(Token{Kind: TokenClassEnd}) }

func (r *Recorder) WriteTypeArgument(variance ir.Variance) {
	r.add(Token{Kind: TokenTypeArgument, Variance: variance})
}

func (r *Recorder) WriteTypeArgumentEnd() { r.add(Token{Kind: TokenTypeArgumentEnd}) }

func (r *Recorder) WriteUnboundedWildcard() { r.add(Token{Kind: TokenUnboundedWildcard}) }

func (r *Recorder) WriteTypeVariable(name, erasure string) {
	r.add(Token{Kind: TokenTypeVariable, Name: name, Outer: erasure})
}

func (r *Recorder) WriteArrayType() { r.add(Token{Kind: TokenArrayType}) }

func (r *Recorder) WriteArrayEnd() { r.add(Token{Kind: TokenArrayEnd}) }

func (r *Recorder) WritePrimitive(descriptor byte) {
	r.add(Token{Kind: TokenPrimitive, Primitive: descriptor})
}

// Count returns the number of recorded tokens of the given kind.
func (r *Recorder) Count(kind TokenKind) int {
	n := 0
	for _, t := range r.Tokens {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// String renders the recorded calls separated by " -> ".
func (r *Recorder) String() string {
	parts := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " -> ")
}

// Replay writes the recorded calls to s in order.
func Replay(tokens []Token, s Sink) {
	for _, t := range tokens {
		switch t.Kind {
		case TokenAsmType:
			s.WriteAsmType(t.Name)
		case TokenClassBegin:
			s.WriteClassBegin(t.Name)
		case TokenOuterClassBegin:
			s.WriteOuterClassBegin(t.Name, t.Outer)
		case TokenInnerClass:
			s.WriteInnerClass(t.Name)
		case TokenClassEnd:
			s.WriteClassEnd()
		case TokenTypeArgument:
			s.WriteTypeArgument(t.Variance)
		case TokenTypeArgumentEnd:
			s.WriteTypeArgumentEnd()
		case TokenUnboundedWildcard:
			s.WriteUnboundedWildcard()
		case TokenTypeVariable:
			s.WriteTypeVariable(t.Name, t.Outer)
		case TokenArrayType:
			s.WriteArrayType()
		case TokenArrayEnd:
			s.WriteArrayEnd()
		case TokenPrimitive:
			s.WritePrimitive(t.Primitive)
		}
	}
}

// Tee returns a Sink that forwards every call to each of sinks.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) WriteAsmType(n string) {
	for _, s := range t {
		s.WriteAsmType(n)
	}
}

func (t tee) WriteClassBegin(n string) {
	for _, s := range t {
		s.WriteClassBegin(n)
	}
}

func (t tee) WriteOuterClassBegin(r, o string) {
	for _, s := range t {
		s.WriteOuterClassBegin(r, o)
	}
}

func (t tee) WriteInnerClass(n string) {
	for _, s := range t {
		s.WriteInnerClass(n)
	}
}

func (t tee) WriteClassEnd() {
	for _, s := range t {
		s.WriteClassEnd()
	}
}

func (t tee) WriteTypeArgument(v ir.Variance) {
	for _, s := range t {
		s.WriteTypeArgument(v)
	}
}

func (t tee) WriteTypeArgumentEnd() {
	for _, s := range t {
		s.WriteTypeArgumentEnd()
	}
}

func (t tee) WriteUnboundedWildcard() {
	for _, s := range t {
		s.WriteUnboundedWildcard()
	}
}

func (t tee) WriteTypeVariable(n, e string) {
	for _, s := range t {
		s.WriteTypeVariable(n, e)
	}
}

func (t tee) WriteArrayType() {
	for _, s := range t {
		s.WriteArrayType()
	}
}

func (t tee) WriteArrayEnd() {
	for _, s := range t {
		s.WriteArrayEnd()
	}
}

func (t tee) WritePrimitive(d byte) {
	for _, s := range t {
		s.WritePrimitive(d)
	}
}
