package ir

// PossiblyInnerType is one level of a nested generic instantiation, e.g. the
// Inner<B> part of Outer<A>.Inner<B>.
type PossiblyInnerType struct {
	// Class is the classifier at this level.
	Class *ClassRef

	// Arguments are the arguments supplied for Class's own type parameters.
	Arguments []TypeArgument

	// Outer is the enclosing level for inner classes, nil otherwise.
	Outer *PossiblyInnerType
}

// Segments returns the chain from the outermost level to this one.
func (p *PossiblyInnerType) Segments() []*PossiblyInnerType {
	var depth int
	for cur := p; cur != nil; cur = cur.Outer {
		depth++
	}
	segs := make([]*PossiblyInnerType, depth)
	for cur := p; cur != nil; cur = cur.Outer {
		depth--
		segs[depth] = cur
	}
	return segs
}

// NestedTypeChain is a nested generic instantiation split at the first level
// carrying arguments. Nested holds the levels after Root, outer to inner.
type NestedTypeChain struct {
	Root   *PossiblyInnerType
	Nested []*PossiblyInnerType
}

// BuildPossiblyInnerType splits the flattened arguments of t over the levels
// of its inner-class chain. It fails with CodeNotInnerCapable when the
// constructor is not a class, and with CodeMalformedType when the argument
// count does not match the parameters of the chain.
func BuildPossiblyInnerType(t *Type) (*PossiblyInnerType, error) {
	class := t.Class()
	if class == nil {
		return nil, notInnerCapable(t)
	}
	return possiblyInner(class, t.Arguments, 0, t)
}

func possiblyInner(class *ClassRef, args []TypeArgument, index int, t *Type) (*PossiblyInnerType, error) {
	used := index + len(class.TypeParameters)
	owner := class.OwnerClass()
	if !class.Inner || owner == nil {
		if used != len(args) {
			return nil, Errorf(CodeMalformedType,
				"%s expects %d type arguments at this level, got %d", t, used-index, len(args)-index).
				WithDetail("class", class.Name)
		}
		return &PossiblyInnerType{Class: class, Arguments: args[index:]}, nil
	}
	if used > len(args) {
		return nil, Errorf(CodeMalformedType,
			"%s has too few type arguments for inner class %s", t, class.Name).
			WithDetail("class", class.Name)
	}
	outer, err := possiblyInner(owner, args, used, t)
	if err != nil {
		return nil, err
	}
	return &PossiblyInnerType{Class: class, Arguments: args[index:used], Outer: outer}, nil
}

func notInnerCapable(t *Type) *Error {
	kind := "absent"
	if t != nil && t.Constructor != nil {
		kind = t.Constructor.Kind().String()
	}
	return Errorf(CodeNotInnerCapable, "type %s with %s constructor has no possibly-inner form", t, kind).
		WithDetail("kind", kind)
}

// NotInnerCapable returns the error reported for a type whose constructor is
// not class-like.
func NotInnerCapable(t *Type) error { return notInnerCapable(t) }
