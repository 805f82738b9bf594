package ir

// TypeAliasRef is a type alias. Aliases are transparent to naming: every
// operation of the engine looks through them to the expansion.
type TypeAliasRef struct {
	// Name is the alias name.
	Name string

	// Owner is the containing declaration.
	Owner Container

	// TypeParameters are the alias's own parameters, substituted into
	// Expanded on expansion.
	TypeParameters []*TypeParameterRef

	// Expanded is the aliased type. It may itself use another alias.
	Expanded *Type
}

// Alias returns a TypeAliasRef owned by the given container.
func Alias(name string, owner Container, expanded *Type, params ...*TypeParameterRef) *TypeAliasRef {
	return &TypeAliasRef{Name: name, Owner: owner, Expanded: expanded, TypeParameters: params}
}

// Kind returns KindTypeAlias.
func (a *TypeAliasRef) Kind() RefKind { return KindTypeAlias }

// DeclaredName returns the alias name.
func (a *TypeAliasRef) DeclaredName() string { return a.Name }

func (*TypeAliasRef) sealed() {}

// ExpandAliases follows alias constructors until a non-alias constructor is
// reached, substituting alias arguments into each expansion. The nullability
// of the use is kept. A chain that revisits an alias is a MalformedType error.
func ExpandAliases(t *Type) (*Type, error) {
	seen := make(map[*TypeAliasRef]bool)
	for t != nil {
		alias, ok := t.Constructor.(*TypeAliasRef)
		if !ok {
			return t, nil
		}
		if seen[alias] {
			return nil, Errorf(CodeMalformedType, "type alias cycle through %s", alias.Name).
				WithDetail("alias", alias.Name)
		}
		seen[alias] = true
		if alias.Expanded == nil {
			return nil, Errorf(CodeMalformedType, "type alias %s has no expansion", alias.Name).
				WithDetail("alias", alias.Name)
		}
		expanded := Substitute(alias.Expanded, bindings(alias.TypeParameters, t.Arguments))
		if t.Nullable && !expanded.Nullable {
			expanded = expanded.AsNullable()
		}
		t = expanded
	}
	return nil, NewError(CodeMalformedType, "nil type")
}

// ExpandedConstructor returns the first non-alias constructor reached from ref.
func ExpandedConstructor(ref Ref) (Ref, error) {
	alias, ok := ref.(*TypeAliasRef)
	if !ok {
		return ref, nil
	}
	t, err := ExpandAliases(&Type{Constructor: alias})
	if err != nil {
		return nil, err
	}
	return t.Constructor, nil
}

func bindings(params []*TypeParameterRef, args []TypeArgument) map[*TypeParameterRef]TypeArgument {
	if len(params) == 0 {
		return nil
	}
	m := make(map[*TypeParameterRef]TypeArgument, len(params))
	for i, p := range params {
		if i < len(args) {
			m[p] = args[i]
		}
	}
	return m
}

// Substitute replaces uses of the bound type parameters in t. Types that
// contain no bound parameter are returned unchanged (not copied).
func Substitute(t *Type, m map[*TypeParameterRef]TypeArgument) *Type {
	if t == nil || len(m) == 0 {
		return t
	}
	if p, ok := t.Constructor.(*TypeParameterRef); ok {
		arg, bound := m[p]
		if !bound || arg.Star || arg.Type == nil {
			return t
		}
		if t.Nullable && !arg.Type.Nullable {
			return arg.Type.AsNullable()
		}
		return arg.Type
	}
	var args []TypeArgument
	set := func(i int, a TypeArgument) {
		if args == nil {
			args = make([]TypeArgument, len(t.Arguments))
			copy(args, t.Arguments)
		}
		args[i] = a
	}
	for i, a := range t.Arguments {
		if a.Star || a.Type == nil {
			continue
		}
		// A projected parameter substituted by a projected argument keeps the
		// use-site projection; a conflicting pair degrades to a star.
		if p, ok := a.Type.Constructor.(*TypeParameterRef); ok {
			if inner, bound := m[p]; bound {
				proj := a.Projection
				switch {
				case inner.Star || inner.Type == nil:
					set(i, Star())
					continue
				case inner.Projection == Invariant:
				case proj == Invariant:
					proj = inner.Projection
				case proj != inner.Projection:
					set(i, Star())
					continue
				}
				set(i, TypeArgument{Type: Substitute(a.Type, m), Projection: proj})
				continue
			}
		}
		if sub := Substitute(a.Type, m); sub != a.Type {
			set(i, TypeArgument{Type: sub, Projection: a.Projection})
		}
	}
	if args == nil {
		return t
	}
	c := *t
	c.Arguments = args
	return &c
}
