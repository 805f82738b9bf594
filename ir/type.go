package ir

import "strings"

// Variance is the declaration-site or use-site variance of a type argument.
type Variance int

const (
	Invariant Variance = iota
	In                 // Contravariant: written as "-" in a generic signature
	Out                // Covariant: written as "+" in a generic signature
)

// String returns the source form of the variance ("", "in" or "out").
func (v Variance) String() string {
	switch v {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return ""
	}
}

// Opposite returns the opposite variance. Invariant is its own opposite.
func (v Variance) Opposite() Variance {
	switch v {
	case In:
		return Out
	case Out:
		return In
	default:
		return Invariant
	}
}

// ParseVariance parses "in", "out" or "" (invariant).
func ParseVariance(s string) (Variance, bool) {
	switch strings.TrimSpace(s) {
	case "", "invariant":
		return Invariant, true
	case "in":
		return In, true
	case "out":
		return Out, true
	default:
		return Invariant, false
	}
}

// TypeParameterRef is a formal type parameter of a class, alias or callable.
type TypeParameterRef struct {
	// Name is the declared parameter name.
	Name string

	// Variance is the declaration-site variance.
	Variance Variance

	// UpperBounds are the declared bounds; empty means the top type.
	UpperBounds []*Type

	// Reified marks inline-function parameters available at runtime.
	Reified bool
}

// TypeParam returns a TypeParameterRef with the given variance and bounds.
func TypeParam(name string, variance Variance, bounds ...*Type) *TypeParameterRef {
	return &TypeParameterRef{Name: name, Variance: variance, UpperBounds: bounds}
}

// Kind returns KindTypeParameter.
func (p *TypeParameterRef) Kind() RefKind { return KindTypeParameter }

// DeclaredName returns the parameter name.
func (p *TypeParameterRef) DeclaredName() string { return p.Name }

func (*TypeParameterRef) sealed() {}

// Type is a use of a type constructor with arguments.
type Type struct {
	// Constructor is the underlying declaration. A nil constructor marks a
	// type whose declaration is absent.
	Constructor Ref

	// Arguments are the type arguments. For an inner class the arguments of
	// every level are flattened innermost first: the class's own arguments,
	// then its owner's, and so on outward.
	Arguments []TypeArgument

	// Nullable marks a nullable use of the type.
	Nullable bool

	// Flexible is non-nil for platform types spanning a nullability range.
	Flexible *FlexibleBounds
}

// FlexibleBounds are the lower and upper bounds of a flexible type.
type FlexibleBounds struct {
	Lower *Type
	Upper *Type
}

// TypeArgument is a single argument of a Type: either a projected type or a
// star projection.
type TypeArgument struct {
	// Type is the argument type; nil for star projections.
	Type *Type

	// Projection is the use-site variance.
	Projection Variance

	// Star marks a star projection ("*").
	Star bool
}

// Arg returns an invariant argument.
func Arg(t *Type) TypeArgument { return TypeArgument{Type: t} }

// OutOf returns a covariant ("out") argument.
func OutOf(t *Type) TypeArgument { return TypeArgument{Type: t, Projection: Out} }

// InOf returns a contravariant ("in") argument.
func InOf(t *Type) TypeArgument { return TypeArgument{Type: t, Projection: In} }

// Star returns a star projection.
func Star() TypeArgument { return TypeArgument{Star: true} }

// Of returns a type applying ref to the given arguments.
func Of(ref Ref, args ...TypeArgument) *Type {
	return &Type{Constructor: ref, Arguments: args}
}

// Simple returns the type of ref applied to invariant arguments.
func Simple(ref Ref, args ...*Type) *Type {
	t := &Type{Constructor: ref}
	for _, a := range args {
		t.Arguments = append(t.Arguments, Arg(a))
	}
	return t
}

// AsNullable returns a nullable copy of the type.
func (t *Type) AsNullable() *Type {
	c := *t
	c.Nullable = true
	return &c
}

// Class returns the constructor as a class, or nil.
func (t *Type) Class() *ClassRef {
	if t == nil {
		return nil
	}
	c, _ := t.Constructor.(*ClassRef)
	return c
}

// Unflexible returns the lower bound of a flexible type, or t itself.
func (t *Type) Unflexible() *Type {
	if t != nil && t.Flexible != nil && t.Flexible.Lower != nil {
		return t.Flexible.Lower
	}
	return t
}

// IsError reports whether the type's declaration is absent or an error placeholder.
func (t *Type) IsError() bool {
	if t == nil || t.Constructor == nil {
		return true
	}
	_, isErr := t.Constructor.(*ErrorRef)
	return isErr
}

// IsNothing reports whether the type is the non-null bottom type.
func (t *Type) IsNothing() bool {
	c := t.Unflexible().Class()
	return c != nil && c.Marker == MarkerNothing && !t.Unflexible().Nullable
}

// IsNullableNothing reports whether the type is the nullable bottom type.
func (t *Type) IsNullableNothing() bool {
	c := t.Unflexible().Class()
	return c != nil && c.Marker == MarkerNothing && t.Unflexible().Nullable
}

// String renders the type in the graph-file expression syntax.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t *Type) writeTo(b *strings.Builder) {
	switch c := t.Constructor.(type) {
	case nil:
		b.WriteString("<absent>")
	case *ClassRef:
		if fq := c.FqName(); fq != "" {
			b.WriteString(fq)
		} else {
			b.WriteString(c.Name)
		}
	default:
		b.WriteString(c.DeclaredName())
	}
	if len(t.Arguments) > 0 {
		b.WriteByte('<')
		for i, a := range t.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			if a.Star {
				b.WriteByte('*')
				continue
			}
			if a.Projection != Invariant {
				b.WriteString(a.Projection.String())
				b.WriteByte(' ')
			}
			a.Type.writeTo(b)
		}
		b.WriteByte('>')
	}
	if t.Nullable {
		b.WriteByte('?')
	}
}
