package ir

import "strings"

// Graph is a registry of the declarations of one compilation unit.
type Graph struct {
	// LanguageVersion is the language version the graph was produced for.
	LanguageVersion string

	classes []*ClassRef
	aliases []*TypeAliasRef
	byFq    map[string]Ref
	byID    map[string]Ref

	// Types are named type uses, e.g. the "types" section of a graph file.
	Types map[string]*Type

	// Warnings contains non-fatal issues encountered while building the graph.
	Warnings []Warning

	// Packages are the packages the graph's own declarations were extracted
	// from. Other classes are builtins or external references.
	Packages []string
}

// Warning represents a non-fatal issue encountered while building a graph.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Declaration is the declaration that triggered the warning, if any.
	Declaration string
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		byFq:  make(map[string]Ref),
		byID:  make(map[string]Ref),
		Types: make(map[string]*Type),
	}
}

// AddClass registers a class. Classes with an fq name become findable by it.
func (g *Graph) AddClass(c *ClassRef) {
	g.classes = append(g.classes, c)
	if fq := c.FqName(); fq != "" {
		if _, exists := g.byFq[fq]; !exists {
			g.byFq[fq] = c
		}
	}
}

// AddAlias registers a type alias.
func (g *Graph) AddAlias(a *TypeAliasRef) {
	g.aliases = append(g.aliases, a)
	if fq := aliasFqName(a); fq != "" {
		if _, exists := g.byFq[fq]; !exists {
			g.byFq[fq] = a
		}
	}
}

// SetID registers ref under a lookup id, for declarations without a usable
// fq name such as anonymous objects.
func (g *Graph) SetID(id string, ref Ref) {
	g.byID[id] = ref
}

// AddWarning adds a warning to the graph.
func (g *Graph) AddWarning(w Warning) {
	g.Warnings = append(g.Warnings, w)
}

// Classes returns the registered classes in insertion order.
func (g *Graph) Classes() []*ClassRef {
	return append([]*ClassRef(nil), g.classes...)
}

// Aliases returns the registered aliases in insertion order.
func (g *Graph) Aliases() []*TypeAliasRef {
	return append([]*TypeAliasRef(nil), g.aliases...)
}

// Lookup finds a declaration by fq name or id. Returns nil if not found.
func (g *Graph) Lookup(name string) Ref {
	if ref, ok := g.byID[name]; ok {
		return ref
	}
	if ref, ok := g.byFq[name]; ok {
		return ref
	}
	return nil
}

// FindClass looks up a class by fq name or id. Returns nil if not found.
func (g *Graph) FindClass(name string) *ClassRef {
	c, _ := g.Lookup(name).(*ClassRef)
	return c
}

// FindAlias looks up an alias by fq name or id. Returns nil if not found.
func (g *Graph) FindAlias(name string) *TypeAliasRef {
	a, _ := g.Lookup(name).(*TypeAliasRef)
	return a
}

func aliasFqName(a *TypeAliasRef) string {
	if IsSpecialName(a.Name) {
		return ""
	}
	switch owner := a.Owner.(type) {
	case *PackageRef:
		if owner.IsRoot() {
			return a.Name
		}
		return owner.Path + "." + a.Name
	case *ClassRef:
		if fq := owner.FqName(); fq != "" {
			return fq + "." + a.Name
		}
	}
	return ""
}

// ValidationError describes a structural issue in a graph.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

// Validate checks the graph for structural issues.
// Returns all validation errors found (not just the first).
func (g *Graph) Validate() []error {
	var errs []*ValidationError

	for _, a := range g.aliases {
		if _, err := ExpandAliases(&Type{Constructor: a}); err != nil {
			errs = append(errs, &ValidationError{
				Code:    "alias_cycle",
				Message: "type alias " + a.Name + " does not expand to a class: " + err.Error(),
			})
		}
	}

	for _, c := range g.classes {
		name := displayName(c)
		if hasOwnerCycle(c) {
			errs = append(errs, &ValidationError{
				Code:    "owner_cycle",
				Message: "class " + name + " is its own owner",
			})
			continue
		}
		if c.Inner && c.OwnerClass() == nil {
			errs = append(errs, &ValidationError{
				Code:    "inner_without_owner",
				Message: "inner class " + name + " is not owned by a class",
			})
		}
		for _, st := range c.Supertypes {
			if st.Class() == c {
				errs = append(errs, &ValidationError{
					Code:    "self_supertype",
					Message: "class " + name + " lists itself as a supertype",
				})
			}
			if st == nil || st.IsError() {
				continue
			}
			expanded, err := ExpandAliases(st)
			if err != nil || expanded.Class() == nil {
				continue
			}
			if len(expanded.Class().AllTypeParameters()) != len(expanded.Arguments) {
				errs = append(errs, &ValidationError{
					Code:    "argument_count",
					Message: "supertype " + st.String() + " of " + name + " has wrong number of type arguments",
				})
			}
		}
	}

	result := make([]error, len(errs))
	for i, e := range errs {
		result[i] = e
	}
	return result
}

func hasOwnerCycle(c *ClassRef) bool {
	seen := map[*ClassRef]bool{}
	for cur := c; cur != nil; cur = cur.OwnerClass() {
		if seen[cur] {
			return true
		}
		seen[cur] = true
	}
	return false
}

func displayName(c *ClassRef) string {
	var parts []string
	var cur Container = c
	for depth := 0; cur != nil && depth < 64; depth++ {
		if name := cur.containerName(); name != "" {
			parts = append(parts, name)
		}
		switch owner := cur.(type) {
		case *ClassRef:
			cur = owner.Owner
		case *CallableRef:
			cur = owner.Owner
		default:
			cur = nil
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// String returns the dotted declaration path of the class, including
// callables and special names, e.g. "com.acme.run.<anonymous>".
func (c *ClassRef) String() string { return displayName(c) }
