package jvm

import "github.com/willhansen/jvmsig/ir"

// Decompose splits t into the first level of its inner-class chain that
// carries type arguments (the root) and the levels after it.
//
// A chain of one level, or one where no level carries arguments, collapses
// to a single root holding all of t's arguments. Aliases are expanded first.
// The error has code ir.CodeNotInnerCapable when t is not a class type and
// ir.CodeMalformedType when its argument count does not fit the chain.
func Decompose(t *ir.Type) (ir.NestedTypeChain, error) {
	t, err := ir.ExpandAliases(t)
	if err != nil {
		return ir.NestedTypeChain{}, err
	}
	pit, err := ir.BuildPossiblyInnerType(t)
	if err != nil {
		return ir.NestedTypeChain{}, err
	}

	segments := pit.Segments()
	first := -1
	for i, s := range segments {
		if len(s.Arguments) > 0 {
			first = i
			break
		}
	}
	if first < 0 || len(segments) == 1 {
		class := t.Class()
		if class == nil {
			return ir.NestedTypeChain{}, ir.NotInnerCapable(t)
		}
		return ir.NestedTypeChain{
			Root: &ir.PossiblyInnerType{Class: class, Arguments: t.Arguments},
		}, nil
	}
	return ir.NestedTypeChain{
		Root:   segments[first],
		Nested: segments[first+1:],
	}, nil
}
