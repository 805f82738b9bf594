package jvm

import (
	"log/slog"

	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/names"
	"github.com/willhansen/jvmsig/signature"
)

// NonExistentClassName is written for types whose declaration is absent or
// an error placeholder.
const NonExistentClassName = "error/NonExistentClass"

// Options configures an Engine.
type Options struct {
	// LanguageVersion selects the name sanitization rules.
	LanguageVersion string

	// BigArity overrides the package BigArity when positive.
	BigArity int

	// Logger receives debug output of the resolver. Nil uses slog.Default().
	Logger *slog.Logger
}

// Engine is the recursive type mapper.
type Engine struct {
	resolver *Resolver
	writer   *Writer
}

// NewEngine returns an Engine configured by opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		resolver: NewResolver(names.LanguageVersionConfig{Version: opts.LanguageVersion}, opts.Logger),
	}
	e.resolver.BigArity = opts.BigArity
	e.writer = NewWriter(e.resolver, e.MapType)
	return e
}

// Resolver returns the engine's resolver.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// InternalName returns the internal name of ref.
func (e *Engine) InternalName(ref ir.Ref) (string, error) {
	return e.resolver.InternalName(ref)
}

// MapType writes t to sink.
func (e *Engine) MapType(t *ir.Type, mode Mode, sink signature.Sink) error {
	if t == nil {
		return ir.NewError(ir.CodeMalformedType, "nil type")
	}
	t = t.Unflexible()

	switch ctor := t.Constructor.(type) {
	case nil, *ir.ErrorRef:
		sink.WriteAsmType(NonExistentClassName)
		return nil
	case *ir.TypeParameterRef:
		erasure, err := e.erasure(ctor, 0)
		if err != nil {
			return err
		}
		sink.WriteTypeVariable(names.Sanitize(ctor.Name, e.resolver.names), erasure)
		return nil
	case *ir.TypeAliasRef:
		expanded, err := ir.ExpandAliases(t)
		if err != nil {
			return err
		}
		return e.MapType(expanded, mode, sink)
	case *ir.ClassRef:
		return e.mapClass(t, ctor, mode, sink)
	default:
		return ir.Errorf(ir.CodeUnsupportedRefKind, "cannot map type with %T constructor", ctor)
	}
}

func (e *Engine) mapClass(t *ir.Type, c *ir.ClassRef, mode Mode, sink signature.Sink) error {
	if c.Marker == ir.MarkerArray {
		sink.WriteArrayType()
		if len(t.Arguments) == 0 || t.Arguments[0].Star || t.Arguments[0].Type == nil {
			sink.WriteAsmType(ObjectInternalName)
		} else if err := e.MapType(t.Arguments[0].Type, mode.ArgumentMode(), sink); err != nil {
			return err
		}
		sink.WriteArrayEnd()
		return nil
	}

	if c.Marker == ir.MarkerNothing {
		sink.WriteAsmType("java/lang/Void")
		return nil
	}

	if p, ok := e.resolver.platformClass(c); ok && p.Primitive != 0 && !mode.BoxPrimitives && !t.Nullable {
		sink.WritePrimitive(p.Primitive)
		return nil
	}

	name, err := e.resolver.ClassInternalName(c)
	if err != nil {
		return err
	}
	return e.writer.WriteGenericType(t, name, mode, sink)
}

// erasure returns the internal name of the erased upper bound of p.
func (e *Engine) erasure(p *ir.TypeParameterRef, depth int) (string, error) {
	if len(p.UpperBounds) == 0 || depth > maxChainDepth {
		return ObjectInternalName, nil
	}
	bound, err := ir.ExpandAliases(p.UpperBounds[0].Unflexible())
	if err != nil {
		return "", err
	}
	switch ctor := bound.Constructor.(type) {
	case *ir.TypeParameterRef:
		return e.erasure(ctor, depth+1)
	case *ir.ClassRef:
		if ctor.Marker == ir.MarkerArray {
			return ObjectInternalName, nil
		}
		return e.resolver.ClassInternalName(ctor)
	default:
		return NonExistentClassName, nil
	}
}

// Result is the textual form of a mapped type.
type Result struct {
	// Descriptor is the erased field descriptor, e.g. "Ljava/util/List;".
	Descriptor string

	// Signature is the generic signature, e.g. "Ljava/util/List<TT;>;".
	Signature string
}

// Generic returns the signature, or "" when it equals the descriptor.
func (r Result) Generic() string {
	if r.Signature == r.Descriptor {
		return ""
	}
	return r.Signature
}

// Signature maps t into a fresh TextSink and returns its output.
func (e *Engine) Signature(t *ir.Type, mode Mode) (Result, error) {
	sink := signature.NewTextSink()
	if err := e.MapType(t, mode, sink); err != nil {
		return Result{}, err
	}
	return Result{Descriptor: sink.Descriptor(), Signature: sink.Signature()}, nil
}

// Trace maps t into a Recorder and returns the recorded tokens.
func (e *Engine) Trace(t *ir.Type, mode Mode) ([]signature.Token, error) {
	rec := signature.NewRecorder()
	if err := e.MapType(t, mode, rec); err != nil {
		return nil, err
	}
	return rec.Tokens, nil
}
