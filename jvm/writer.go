package jvm

import (
	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/signature"
)

// BigArity is the largest function arity with a dedicated carrier class.
// Function types above it, like reflective function types, are written with
// their return type as the single type argument.
const BigArity = 22

// TypeMapFunc writes a complete type to a sink. The Writer calls it for every
// type argument.
type TypeMapFunc func(t *ir.Type, mode Mode, sink signature.Sink) error

// Writer emits the generic structure of class types.
// The big-arity threshold is the resolver's, so that the carrier class named
// for a function type and its argument list agree.
type Writer struct {
	resolver *Resolver
	mapType  TypeMapFunc
}

// NewWriter returns a Writer naming classes with r and writing arguments
// with mapType.
func NewWriter(r *Resolver, mapType TypeMapFunc) *Writer {
	return &Writer{resolver: r, mapType: mapType}
}

// WriteGenericType writes t, whose erased class has the given internal name.
//
// Erased modes, types without arguments, types with an absent or error
// declaration and types with Nothing in a non-contravariant position are
// written as the bare class token. Otherwise the type is decomposed and the
// root level is written followed by each nested level with its short name.
func (w *Writer) WriteGenericType(t *ir.Type, internalName string, mode Mode, sink signature.Sink) error {
	if mode.SkipGenerics || len(t.Arguments) == 0 || t.IsError() || HasNothingInNonContravariantPosition(t) {
		sink.WriteAsmType(internalName)
		return nil
	}

	chain, err := Decompose(t)
	if err != nil {
		return ir.Wrap(err, ir.CodeMalformedType, "cannot write generic type "+t.String()).
			WithDetail("type", t.String())
	}

	if len(chain.Nested) == 0 {
		sink.WriteClassBegin(internalName)
		if err := w.writeArguments(chain.Root, mode, sink); err != nil {
			return err
		}
		sink.WriteClassEnd()
		return nil
	}

	outer, err := w.resolver.ClassInternalName(chain.Root.Class)
	if err != nil {
		return err
	}
	sink.WriteOuterClassBegin(internalName, outer)
	if err := w.writeArguments(chain.Root, mode, sink); err != nil {
		return err
	}
	for _, level := range chain.Nested {
		sink.WriteInnerClass(w.resolver.ShortName(level.Class))
		if err := w.writeArguments(level, mode, sink); err != nil {
			return err
		}
	}
	sink.WriteClassEnd()
	return nil
}

// writeArguments writes the arguments of one level paired with the level's
// declared parameters.
func (w *Writer) writeArguments(level *ir.PossiblyInnerType, mode Mode, sink signature.Sink) error {
	args := level.Arguments
	params := level.Class.TypeParameters

	// The carrier keeps a single parameter, the trailing return type R.
	if w.singleCarrier(level.Class) && len(args) > 0 && len(params) > 0 {
		args = args[len(args)-1:]
		params = params[len(params)-1:]
	}

	for i := range min(len(args), len(params)) {
		if err := w.writeArgument(args[i], params[i], mode, sink); err != nil {
			return err
		}
	}
	return nil
}

// singleCarrier reports whether c compiles to a carrier class with a single
// type parameter: reflective function types, and function types whose arity
// exceeds the big-arity threshold.
func (w *Writer) singleCarrier(c *ir.ClassRef) bool {
	if c.Marker == ir.MarkerReflectFunction {
		return true
	}
	n, ok := FunctionArity(c)
	return ok && n > w.resolver.bigArity()
}

func (w *Writer) writeArgument(arg ir.TypeArgument, param *ir.TypeParameterRef, mode Mode, sink signature.Sink) error {
	if arg.Star || arg.Type == nil || (arg.Type.IsNothing() && param.Variance == ir.In) {
		sink.WriteUnboundedWildcard()
		return nil
	}
	sink.WriteTypeArgument(WildcardVariance(param, arg, mode))
	if err := w.mapType(arg.Type, mode.ArgumentMode(), sink); err != nil {
		return err
	}
	sink.WriteTypeArgumentEnd()
	return nil
}

// WildcardVariance returns the variance marker written before arg, an
// argument for param.
//
// Invariant parameters keep the use-site projection. Otherwise the
// declaration-site variance is written unless the mode skips it; a use-site
// projection opposing the declaration collapses to "out", the star form.
func WildcardVariance(param *ir.TypeParameterRef, arg ir.TypeArgument, mode Mode) ir.Variance {
	if param.Variance == ir.Invariant {
		return arg.Projection
	}
	if mode.SkipDeclarationSiteWildcards {
		return ir.Invariant
	}
	if arg.Projection == ir.Invariant || arg.Projection == param.Variance {
		if mode.SkipDeclarationSiteWildcardsIfPossible && !arg.Star && arg.Type != nil {
			if param.Variance == ir.Out && mostPreciseCovariant(arg.Type) {
				return ir.Invariant
			}
			if param.Variance == ir.In && mostPreciseContravariant(arg.Type) {
				return ir.Invariant
			}
		}
		return param.Variance
	}
	return ir.Out
}

// mostPreciseCovariant reports whether t has no proper subtypes, so that
// "? extends t" says nothing more than t.
func mostPreciseCovariant(t *ir.Type) bool {
	c := t.Unflexible().Class()
	return c != nil && c.Final && !t.Unflexible().Nullable
}

// mostPreciseContravariant reports whether t is the top type.
func mostPreciseContravariant(t *ir.Type) bool {
	p, ok := platformClassOf(t.Unflexible().Class(), 0)
	return ok && p.InternalName == ObjectInternalName
}

// HasNothingInNonContravariantPosition reports whether Nothing, or nullable
// Nothing in any position, occurs as an argument of t outside an "in"
// parameter. Such types are written erased.
func HasNothingInNonContravariantPosition(t *ir.Type) bool {
	return hasNothing(t, 0)
}

func hasNothing(t *ir.Type, depth int) bool {
	if t == nil || depth > maxChainDepth {
		return false
	}
	var params []*ir.TypeParameterRef
	if c := t.Class(); c != nil {
		params = c.AllTypeParameters()
	}
	for i, arg := range t.Arguments {
		if arg.Star || arg.Type == nil {
			continue
		}
		variance := ir.Invariant
		if i < len(params) {
			variance = params[i].Variance
		}
		if arg.Type.IsNullableNothing() || (arg.Type.IsNothing() && variance != ir.In) {
			return true
		}
		if hasNothing(arg.Type, depth+1) {
			return true
		}
	}
	return false
}
