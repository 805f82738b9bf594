package signature

import (
	"strings"

	"github.com/willhansen/jvmsig/ir"
)

// TextSink serializes the token stream to the textual generic signature
// grammar (JVMS §4.7.9.1) and, in parallel, to the erased field descriptor
// (JVMS §4.3.2). Type arguments only reach the signature.
type TextSink struct {
	sig  strings.Builder
	desc strings.Builder

	// argDepth counts open type arguments; the descriptor is only written
	// at depth zero.
	argDepth int

	// open tracks, per open class type, whether its '<' has been written.
	open []bool
}

// NewTextSink returns an empty TextSink.
func NewTextSink() *TextSink {
	return &TextSink{}
}

// Signature returns the generic signature written so far.
func (s *TextSink) Signature() string { return s.sig.String() }

// Descriptor returns the erased descriptor written so far.
func (s *TextSink) Descriptor() string { return s.desc.String() }

// GenericSignature returns the signature, or "" when it carries no
// information beyond the descriptor.
func (s *TextSink) GenericSignature() string {
	if s.sig.String() == s.desc.String() {
		return ""
	}
	return s.sig.String()
}

// Reset clears the sink for reuse.
func (s *TextSink) Reset() {
	s.sig.Reset()
	s.desc.Reset()
	s.argDepth = 0
	s.open = s.open[:0]
}

func (s *TextSink) descriptor(parts ...string) {
	if s.argDepth > 0 {
		return
	}
	for _, p := range parts {
		s.desc.WriteString(p)
	}
}

func (s *TextSink) openArguments() {
	if n := len(s.open); n > 0 && !s.open[n-1] {
		s.sig.WriteByte('<')
		s.open[n-1] = true
	}
}

func (s *TextSink) closeArguments() {
	if n := len(s.open); n > 0 && s.open[n-1] {
		s.sig.WriteByte('>')
		s.open[n-1] = false
	}
}

func (s *TextSink) WriteAsmType(internalName string) {
	s.sig.WriteString("L" + internalName + ";")
	s.descriptor("L", internalName, ";")
}

func (s *TextSink) WriteClassBegin(internalName string) {
	s.sig.WriteString("L" + internalName)
	s.descriptor("L", internalName, ";")
	s.open = append(s.open, false)
}

func (s *TextSink) WriteOuterClassBegin(resultingName, outerName string) {
	s.sig.WriteString("L" + outerName)
	s.descriptor("L", resultingName, ";")
	s.open = append(s.open, false)
}

func (s *TextSink) WriteInnerClass(shortName string) {
	s.closeArguments()
	s.sig.WriteString("." + shortName)
}

func (s *TextSink) WriteClassEnd() {
	s.closeArguments()
	s.sig.WriteByte(';')
	if n := len(s.open); n > 0 {
		s.open = s.open[:n-1]
	}
}

func (s *TextSink) WriteTypeArgument(variance ir.Variance) {
	s.openArguments()
	if m := VarianceMarker(variance); m != 0 {
		s.sig.WriteByte(m)
	}
	s.argDepth++
}

func (s *TextSink) WriteTypeArgumentEnd() {
	if s.argDepth > 0 {
		s.argDepth--
	}
}

func (s *TextSink) WriteUnboundedWildcard() {
	s.openArguments()
	s.sig.WriteByte('*')
}

func (s *TextSink) WriteTypeVariable(name, erasure string) {
	s.sig.WriteString("T" + name + ";")
	s.descriptor("L", erasure, ";")
}

func (s *TextSink) WriteArrayType() {
	s.sig.WriteByte('[')
	s.descriptor("[")
}

func (s *TextSink) WriteArrayEnd() {}

func (s *TextSink) WritePrimitive(descriptor byte) {
	s.sig.WriteByte(descriptor)
	s.descriptor(string(descriptor))
}
